package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/infrastructure/contracts"
	"github.com/hilthontt/huddle/internal/infrastructure/logging"
	"github.com/hilthontt/huddle/internal/infrastructure/messaging"
	"github.com/rabbitmq/amqp091-go"
)

type RoomConsumer struct {
	rabbitmq *messaging.RabbitMQ
	audit    domain.RoomAuditRepository
	logger   logging.Logger
}

func NewRoomConsumer(rabbitmq *messaging.RabbitMQ, audit domain.RoomAuditRepository, logger logging.Logger) *RoomConsumer {
	return &RoomConsumer{
		rabbitmq: rabbitmq,
		audit:    audit,
		logger:   logger,
	}
}

// Listen writes every room event from the queue to the audit log until ctx ends.
func (c *RoomConsumer) Listen(ctx context.Context) error {
	return c.rabbitmq.ConsumeMessages(ctx, contracts.RoomEventsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		return c.handle(ctx, msg.Body)
	})
}

func (c *RoomConsumer) handle(ctx context.Context, body []byte) error {
	var message contracts.AmqpMessage
	if err := json.Unmarshal(body, &message); err != nil {
		c.logger.Error(logging.RabbitMQ, logging.Consume, "failed to unmarshal message", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return err
	}

	var event domain.RoomEvent
	if err := json.Unmarshal(message.Data, &event); err != nil {
		c.logger.Error(logging.RabbitMQ, logging.Consume, "failed to unmarshal room event", map[logging.ExtraKey]any{
			logging.RoomID:       message.RoomID,
			logging.ErrorMessage: err.Error(),
		})
		return err
	}

	if err := c.audit.Log(ctx, domain.NewRoomAuditLog(event)); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	c.logger.Debug(logging.RabbitMQ, logging.Consume, "room event audited", map[logging.ExtraKey]any{
		logging.RoomID:    event.RoomID,
		logging.EventType: string(event.Type),
	})

	return nil
}
