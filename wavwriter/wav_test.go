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

package wavwriter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/packet"
	"github.com/dawstream/dawstream/streamer"
	"github.com/dawstream/dawstream/test"
	"github.com/dawstream/dawstream/track"
	"github.com/dawstream/dawstream/wavwriter"
	"github.com/go-audio/wav"
)

func decodeFile(t *testing.T, filename string) (*wav.Decoder, []int) {
	t.Helper()

	f, err := os.Open(filename)
	test.DemandSuccess(t, err)
	t.Cleanup(func() { f.Close() })

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)

	return dec, buf.Data
}

func TestStreamToFile(t *testing.T) {
	p, err := track.Decode([]byte(`{"tempo": 60, "instruments": [{"name": "sine", "gain": 0, "notes": {"0": ["A4"], "1": ["C4"]}}]}`))
	test.DemandSuccess(t, err)

	filename := filepath.Join(t.TempDir(), "out.wav")
	aw, err := wavwriter.New(filename)
	test.DemandSuccess(t, err)

	stats, err := streamer.Stream(context.Background(), p.MusicBox(), aw)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, aw.NumSamples(), stats.Samples)
	test.DemandSuccess(t, aw.Close())

	dec, data := decodeFile(t, filename)
	test.ExpectEquality(t, int(dec.SampleRate), 44100)
	test.ExpectEquality(t, int(dec.NumChans), 1)
	test.ExpectEquality(t, int(dec.BitDepth), 16)
	test.ExpectEquality(t, len(data), stats.Samples)
	test.ExpectEquality(t, len(data), p.TotalSamples())

	// the envelope begins at zero
	test.ExpectEquality(t, data[0], 0)
}

func TestClamping(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "clamp.wav")
	aw, err := wavwriter.New(filename)
	test.DemandSuccess(t, err)

	msg := packet.Encode(packet.NewEnd(packet.Mono([]float32{2.0, -2.0, 0.5, 0})))
	test.DemandSuccess(t, aw.Send(context.Background(), msg))
	test.DemandSuccess(t, aw.Close())

	_, data := decodeFile(t, filename)
	test.DemandEquality(t, len(data), 4)
	test.ExpectEquality(t, data[0], 32767)
	test.ExpectEquality(t, data[1], -32767)
	test.ExpectEquality(t, data[2], 16384)
	test.ExpectEquality(t, data[3], 0)
}

func TestAfterEnd(t *testing.T) {
	aw, err := wavwriter.New(filepath.Join(t.TempDir(), "end.wav"))
	test.DemandSuccess(t, err)

	msg := packet.Encode(packet.NewEnd(packet.Mono(nil)))
	test.ExpectSuccess(t, aw.Send(context.Background(), msg))

	err = aw.Send(context.Background(), msg)
	test.ExpectSuccess(t, curated.Is(err, wavwriter.WavWriterError))
}

func TestBadPacket(t *testing.T) {
	aw, err := wavwriter.New(filepath.Join(t.TempDir(), "bad.wav"))
	test.DemandSuccess(t, err)

	err = aw.Send(context.Background(), []byte{0x05})
	test.ExpectSuccess(t, curated.Has(err, packet.UnknownPacketTag))
}

func TestNoFilename(t *testing.T) {
	_, err := wavwriter.New("")
	test.ExpectFailure(t, err)
}
