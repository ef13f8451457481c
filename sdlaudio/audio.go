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

// Package sdlaudio plays a packet stream through the default SDL audio
// device. The Audio type implements the streamer.Sender interface and so can
// be used as the destination of streamer.Stream().
//
// Send() blocks while the device queue is full, which limits the amount of
// audio that is rendered ahead of playback.
package sdlaudio

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/logger"
	"github.com/dawstream/dawstream/packet"
	"github.com/dawstream/dawstream/sound"
	"github.com/dawstream/dawstream/streamer"
	"github.com/veandco/go-sdl2/sdl"
)

// SDLAudioError is the pattern for all errors returned by the package.
const SDLAudioError = "sdlaudio: %v"

// number of sample frames requested by the device per callback. the precise
// value is not critical
const bufferLength = 4096

// the number of bytes per sample in the device format
const sampleSize = 4

// Send() will block while more than this number of chunks are queued
const queuedChunks = 2

// how often the queue is checked while waiting
const pollInterval = 10 * time.Millisecond

// Audio outputs sound using SDL.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	// samples converted to the device format. reused on every call to Send()
	buffer []byte

	// the number of queued bytes above which Send() will block
	limit uint32
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() (*Audio, error) {
	err := sdl.InitSubSystem(sdl.INIT_AUDIO)
	if err != nil {
		return nil, curated.Errorf(SDLAudioError, err)
	}

	aud := &Audio{
		buffer: make([]byte, 0, streamer.ChunkSize*sampleSize),
		limit:  uint32(queuedChunks * streamer.ChunkSize * sampleSize),
	}

	spec := &sdl.AudioSpec{
		Freq:     sound.SampleRate,
		Format:   sdl.AUDIO_F32LSB,
		Channels: 1,
		Samples:  bufferLength,
	}

	// no changes to the spec are allowed so the obtained spec will be the
	// same as the requested spec
	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, curated.Errorf(SDLAudioError, err)
	}

	logger.Logf(logger.Allow, "sdlaudio", "frequency: %d samples/sec", aud.spec.Freq)
	logger.Logf(logger.Allow, "sdlaudio", "buffer size: %d samples", aud.spec.Samples)

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// Send implements the streamer.Sender interface. Only the left channel of
// stereo data is played.
func (aud *Audio) Send(ctx context.Context, msg []byte) error {
	p, err := packet.Decode(msg, streamer.ChunkSize)
	if err != nil {
		return curated.Errorf(SDLAudioError, err)
	}

	if !p.HasChannels() {
		return nil
	}

	aud.buffer = aud.buffer[:0]
	for _, v := range p.Channels.Left {
		aud.buffer = binary.LittleEndian.AppendUint32(aud.buffer, math.Float32bits(v))
	}

	err = sdl.QueueAudio(aud.id, aud.buffer)
	if err != nil {
		return curated.Errorf(SDLAudioError, err)
	}

	return aud.wait(ctx, aud.limit)
}

// wait until no more than limit bytes are queued
func (aud *Audio) wait(ctx context.Context, limit uint32) error {
	tck := time.NewTicker(pollInterval)
	defer tck.Stop()

	for sdl.GetQueuedAudioSize(aud.id) > limit {
		select {
		case <-ctx.Done():
			sdl.ClearQueuedAudio(aud.id)
			return curated.Errorf(SDLAudioError, ctx.Err())
		case <-tck.C:
		}
	}

	return nil
}

// Drain blocks until all queued audio has been played or until the context
// is cancelled.
func (aud *Audio) Drain(ctx context.Context) error {
	return aud.wait(ctx, 0)
}

// Close the audio device. Any audio still queued is discarded.
func (aud *Audio) Close() {
	sdl.CloseAudioDevice(aud.id)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
}
