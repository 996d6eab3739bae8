//go:build speaker
// +build speaker

package playback

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// DevicePlayer decodes MP3 and plays it on the default output device.
type DevicePlayer struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
}

func NewDevicePlayer() (*DevicePlayer, error) {
	return &DevicePlayer{}, nil
}

func (p *DevicePlayer) Play(ctx context.Context, data []byte) error {
	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decoding mp3: %w", err)
	}
	defer streamer.Close()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sampleRate != format.SampleRate {
		if p.sampleRate != 0 {
			speaker.Close()
		}
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("initializing speaker: %w", err)
		}
		p.sampleRate = format.SampleRate
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}
