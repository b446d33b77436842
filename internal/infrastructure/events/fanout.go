package events

import (
	"context"
	"errors"

	"github.com/hilthontt/huddle/internal/domain"
)

// Fanout delivers every event to all publishers, even when some of them fail.
type Fanout struct {
	publishers []domain.RoomEventPublisher
}

func NewFanout(publishers ...domain.RoomEventPublisher) *Fanout {
	return &Fanout{publishers: publishers}
}

func (f *Fanout) Add(p domain.RoomEventPublisher) {
	f.publishers = append(f.publishers, p)
}

func (f *Fanout) Publish(ctx context.Context, event domain.RoomEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
