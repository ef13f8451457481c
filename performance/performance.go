// This file is part of Dawstream.
//
// Dawstream is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dawstream is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dawstream.  If not, see <https://www.gnu.org/licenses/>.

package performance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/sound"
	"github.com/dawstream/dawstream/streamer"
	"github.com/dawstream/dawstream/track"
)

// Result of a performance check.
type Result struct {
	Renders  int
	Samples  int
	Duration time.Duration
}

// Realtime returns the speed of rendering as a multiple of real time. A value
// of 1.0 means that one second of audio takes one second to render.
func (r Result) Realtime() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Samples) / sound.SampleRate / r.Duration.Seconds()
}

func (r Result) String() string {
	return fmt.Sprintf("%.2fx realtime (%d samples in %d renders over %.2f seconds)",
		r.Realtime(), r.Samples, r.Renders, r.Duration.Seconds())
}

// nopSender discards every packet
type nopSender struct{}

func (nopSender) Send(_ context.Context, _ []byte) error {
	return nil
}

// Measure renders the track repeatedly until the duration has elapsed. Each
// render runs to completion so the measurement will take a little longer
// than the duration.
func Measure(payload track.Payload, duration time.Duration) (Result, error) {
	var r Result

	start := time.Now()
	for r.Renders == 0 || time.Since(start) < duration {
		stats, err := streamer.Stream(context.Background(), payload.MusicBox(), nopSender{})
		if err != nil {
			return r, curated.Errorf(PerformanceError, err)
		}
		r.Samples += stats.Samples
		r.Renders++

		// an empty track renders in no time at all
		if stats.Samples == 0 {
			break
		}
	}
	r.Duration = time.Since(start)

	return r, nil
}

// Check the performance of the engine using the supplied track. The track is
// rendered for the specified duration with the profiling defined by the
// Profile argument.
func Check(output io.Writer, profile Profile, payload track.Payload, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	var r Result

	err = RunProfiler(profile, "performance", func() error {
		var err error
		r, err = Measure(payload, dur)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(output, r)

	return nil
}
