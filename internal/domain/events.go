package domain

import (
	"context"
	"time"
)

type RoomEventType string

const (
	EventRoomCreated  RoomEventType = "room.created"
	EventMemberJoined RoomEventType = "member.joined"
	EventMemberLeft   RoomEventType = "member.left"
	EventMessageSent  RoomEventType = "message.sent"
	EventRoomDeleted  RoomEventType = "room.deleted"
)

const (
	DeleteReasonEmpty   = "empty"
	DeleteReasonExpired = "expired"
)

// AllRoomEventTypes lists every event type the store emits.
var AllRoomEventTypes = []RoomEventType{
	EventRoomCreated,
	EventMemberJoined,
	EventMemberLeft,
	EventMessageSent,
	EventRoomDeleted,
}

type RoomEvent struct {
	Type        RoomEventType `json:"type"`
	RoomID      string        `json:"roomId"`
	Username    string        `json:"username,omitempty"`
	MessageID   string        `json:"messageId,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	MemberCount int           `json:"memberCount"`
	OccurredAt  time.Time     `json:"occurredAt"`
}

//go:generate mockgen -destination=../mocks/mock_room_event_publisher.go -package=mocks github.com/hilthontt/huddle/internal/domain RoomEventPublisher

type RoomEventPublisher interface {
	Publish(ctx context.Context, event RoomEvent) error
}
