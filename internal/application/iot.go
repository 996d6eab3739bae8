package application

import "context"

type LightSwitch interface {
	SetLights(ctx context.Context, on bool) error
}
