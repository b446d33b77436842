package events

import (
	"context"
	"encoding/json"

	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/infrastructure/contracts"
)

type messagePublisher interface {
	PublishMessage(ctx context.Context, routingKey string, message contracts.AmqpMessage) error
}

// RoomPublisher forwards room events to the broker using the event type as routing key.
type RoomPublisher struct {
	broker messagePublisher
}

func NewRoomPublisher(broker messagePublisher) *RoomPublisher {
	return &RoomPublisher{
		broker: broker,
	}
}

func (p *RoomPublisher) Publish(ctx context.Context, event domain.RoomEvent) error {
	roomEventJSON, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.broker.PublishMessage(ctx, string(event.Type), contracts.AmqpMessage{
		RoomID: event.RoomID,
		Data:   roomEventJSON,
	})
}
