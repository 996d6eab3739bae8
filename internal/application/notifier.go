package application

import (
	"context"
	"errors"

	"patriot-buddy/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, event domain.Event) error
}

type NoopNotifier struct{}

func (n *NoopNotifier) Notify(_ context.Context, _ domain.Event) error {
	return nil
}

// Notifiers fans an event out to every sink, joining their errors.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, n := range ns {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
