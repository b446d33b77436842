package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/infrastructure/contracts"
	"github.com/hilthontt/huddle/internal/infrastructure/logging"
	"github.com/hilthontt/huddle/internal/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingBroker struct {
	routingKeys []string
	messages    []contracts.AmqpMessage
	err         error
}

func (b *recordingBroker) PublishMessage(_ context.Context, routingKey string, message contracts.AmqpMessage) error {
	b.routingKeys = append(b.routingKeys, routingKey)
	b.messages = append(b.messages, message)
	return b.err
}

type memoryAuditRepository struct {
	mu   sync.Mutex
	logs []domain.RoomAuditLog
	err  error
}

func (r *memoryAuditRepository) Log(_ context.Context, log *domain.RoomAuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *memoryAuditRepository) GetByRoomID(_ context.Context, roomID string, limit int) ([]domain.RoomAuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RoomAuditLog
	for _, l := range r.logs {
		if l.RoomID == roomID {
			out = append(out, l)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryAuditRepository) EnsureIndexes(context.Context) error { return nil }

func TestRoomPublisher_RoutesByEventType(t *testing.T) {
	broker := &recordingBroker{}
	publisher := NewRoomPublisher(broker)

	event := domain.RoomEvent{
		Type:        domain.EventMessageSent,
		RoomID:      "room-1",
		Username:    "bob",
		MessageID:   "msg-1",
		MemberCount: 2,
		OccurredAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.Publish(context.Background(), event))

	require.Equal(t, []string{"message.sent"}, broker.routingKeys)
	require.Equal(t, "room-1", broker.messages[0].RoomID)

	var decoded domain.RoomEvent
	require.NoError(t, json.Unmarshal(broker.messages[0].Data, &decoded))
	require.Equal(t, event, decoded)
}

func TestRoomPublisher_PropagatesBrokerError(t *testing.T) {
	broker := &recordingBroker{err: errors.New("channel closed")}
	publisher := NewRoomPublisher(broker)

	err := publisher.Publish(context.Background(), domain.RoomEvent{Type: domain.EventRoomCreated, RoomID: "r"})
	require.EqualError(t, err, "channel closed")
}

func TestFanout_DeliversToAllPublishers(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockRoomEventPublisher(ctrl)
	second := mocks.NewMockRoomEventPublisher(ctrl)

	event := domain.RoomEvent{Type: domain.EventMemberJoined, RoomID: "r"}
	boom := errors.New("boom")
	first.EXPECT().Publish(gomock.Any(), event).Return(boom)
	second.EXPECT().Publish(gomock.Any(), event).Return(nil)

	fanout := NewFanout(first)
	fanout.Add(second)

	err := fanout.Publish(context.Background(), event)
	require.ErrorIs(t, err, boom)
}

func TestFanout_Empty(t *testing.T) {
	require.NoError(t, NewFanout().Publish(context.Background(), domain.RoomEvent{}))
}

func TestRoomConsumer_WritesAuditLog(t *testing.T) {
	audit := &memoryAuditRepository{}
	consumer := NewRoomConsumer(nil, audit, logging.NewNop())

	event := domain.RoomEvent{
		Type:        domain.EventRoomDeleted,
		RoomID:      "room-9",
		Reason:      domain.DeleteReasonExpired,
		MemberCount: 0,
		OccurredAt:  time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(event)
	require.NoError(t, err)
	body, err := json.Marshal(contracts.AmqpMessage{RoomID: event.RoomID, Data: data})
	require.NoError(t, err)

	require.NoError(t, consumer.handle(context.Background(), body))

	logs, err := audit.GetByRoomID(context.Background(), "room-9", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, domain.EventRoomDeleted, logs[0].EventType)
	require.Equal(t, "expired", logs[0].Metadata["reason"])
	require.True(t, logs[0].Timestamp.Equal(event.OccurredAt))
}

func TestRoomConsumer_RejectsMalformedBody(t *testing.T) {
	audit := &memoryAuditRepository{}
	consumer := NewRoomConsumer(nil, audit, logging.NewNop())

	require.Error(t, consumer.handle(context.Background(), []byte("not json")))

	body, err := json.Marshal(contracts.AmqpMessage{RoomID: "r", Data: []byte("{")})
	require.NoError(t, err)
	require.Error(t, consumer.handle(context.Background(), body))
	require.Empty(t, audit.logs)
}

func TestRoomConsumer_AuditFailure(t *testing.T) {
	audit := &memoryAuditRepository{err: errors.New("mongo down")}
	consumer := NewRoomConsumer(nil, audit, logging.NewNop())

	data, _ := json.Marshal(domain.RoomEvent{Type: domain.EventRoomCreated, RoomID: "r"})
	body, _ := json.Marshal(contracts.AmqpMessage{RoomID: "r", Data: data})

	err := consumer.handle(context.Background(), body)
	require.ErrorContains(t, err, "mongo down")
}
