package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomAuditLog struct {
	ID        string         `bson:"_id" json:"id"`
	RoomID    string         `bson:"room_id" json:"roomId"`
	EventType RoomEventType  `bson:"event_type" json:"eventType"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type RoomAuditRepository interface {
	Log(ctx context.Context, log *RoomAuditLog) error
	GetByRoomID(ctx context.Context, roomID string, limit int) ([]RoomAuditLog, error)
	EnsureIndexes(ctx context.Context) error
}

// NewRoomAuditLog converts a room event into an audit entry. Usernames are
// never recorded, only ids and counts.
func NewRoomAuditLog(event RoomEvent) *RoomAuditLog {
	metadata := map[string]any{
		"member_count": event.MemberCount,
	}
	if event.Reason != "" {
		metadata["reason"] = event.Reason
	}
	if event.MessageID != "" {
		metadata["message_id"] = event.MessageID
	}

	at := event.OccurredAt
	if at.IsZero() {
		at = time.Now()
	}

	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomID:    event.RoomID,
		EventType: event.Type,
		Timestamp: at,
		Metadata:  metadata,
	}
}
