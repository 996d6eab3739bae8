//go:build portaudio
// +build portaudio

package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuffer = 1024

// MicrophoneSource captures one utterance at a time from the default input:
// it waits for speech, then records until a second of silence or ten
// seconds have passed.
type MicrophoneSource struct {
	stream     *portaudio.Stream
	frame      []int16
	sampleRate int
	threshold  int16
	logger     *slog.Logger
}

func NewMicrophoneSource(sampleRate int, logger *slog.Logger) *MicrophoneSource {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &MicrophoneSource{
		frame:      make([]int16, framesPerBuffer),
		sampleRate: sampleRate,
		threshold:  500,
		logger:     logger,
	}
}

func (m *MicrophoneSource) Name() string {
	return "microphone"
}

func (m *MicrophoneSource) Start(_ context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.sampleRate), framesPerBuffer, m.frame)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("starting stream: %w", err)
	}

	m.stream = stream
	m.logger.Info("microphone started", "sample_rate", m.sampleRate)
	return nil
}

func (m *MicrophoneSource) Stop() error {
	if m.stream != nil {
		m.stream.Stop()
		m.stream.Close()
		m.stream = nil
	}
	return portaudio.Terminate()
}

func (m *MicrophoneSource) NextCommand(ctx context.Context) ([]byte, error) {
	var samples []int16
	silent := 0
	maxSilence := m.sampleRate
	maxSamples := m.sampleRate * 10

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.stream.Read(); err != nil {
			return nil, fmt.Errorf("reading from stream: %w", err)
		}

		loud := isLoud(m.frame, m.threshold)
		if len(samples) == 0 && !loud {
			continue
		}

		samples = append(samples, m.frame...)
		if loud {
			silent = 0
		} else {
			silent += len(m.frame)
		}

		if silent > maxSilence || len(samples) >= maxSamples {
			break
		}
	}

	m.logger.Debug("utterance captured", "samples", len(samples))
	return samplesToWav(samples, m.sampleRate), nil
}

func isLoud(frame []int16, threshold int16) bool {
	for _, s := range frame {
		if s > threshold || s < -threshold {
			return true
		}
	}
	return false
}

// samplesToWav wraps mono 16-bit PCM in a RIFF header.
func samplesToWav(samples []int16, sampleRate int) []byte {
	var buf bytes.Buffer

	dataSize := len(samples) * 2

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, int32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, int32(16))
	binary.Write(&buf, binary.LittleEndian, int16(1))
	binary.Write(&buf, binary.LittleEndian, int16(1))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, int32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, int16(2))
	binary.Write(&buf, binary.LittleEndian, int16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, int32(dataSize))
	binary.Write(&buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
