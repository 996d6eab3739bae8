//go:build !speaker
// +build !speaker

package playback

import "context"

// DevicePlayer stub when built without speaker support.
type DevicePlayer struct{}

func NewDevicePlayer() (*DevicePlayer, error) {
	return nil, ErrUnavailable
}

func (p *DevicePlayer) Play(_ context.Context, _ []byte) error {
	return ErrUnavailable
}
