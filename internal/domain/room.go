package domain

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultExpiry is the lifetime of a room measured from its creation.
const DefaultExpiry = time.Hour

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Room struct {
	ID           string
	Messages     []Message
	Members      map[string]struct{}
	CreatedAt    time.Time
	LastActivity time.Time
	ExpiresAt    time.Time
}

type RoomInfo struct {
	ID           string    `json:"id"`
	Members      []string  `json:"members"`
	MessageCount int       `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type RoomRepository interface {
	Create(ctx context.Context, username string) (*RoomInfo, error)
	Join(ctx context.Context, roomID, username string) error
	PostMessage(ctx context.Context, roomID, text, username string) (Message, error)
	MessagesSince(ctx context.Context, roomID, cursor string) ([]Message, error)
	Leave(ctx context.Context, roomID, username string) error
	GetByID(ctx context.Context, roomID string) (*RoomInfo, error)
}

func NewRoom(creator string, now time.Time, expiry time.Duration) *Room {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}

	return &Room{
		ID:           uuid.NewString(),
		Messages:     make([]Message, 0, 16),
		Members:      map[string]struct{}{creator: {}},
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(expiry),
	}
}

// AddMember reports whether username was not already a member.
func (r *Room) AddMember(username string) bool {
	if _, ok := r.Members[username]; ok {
		return false
	}
	r.Members[username] = struct{}{}
	return true
}

// RemoveMember reports whether username was a member.
func (r *Room) RemoveMember(username string) bool {
	if _, ok := r.Members[username]; !ok {
		return false
	}
	delete(r.Members, username)
	return true
}

func (r *Room) IsEmpty() bool {
	return len(r.Members) == 0
}

func (r *Room) Touch(now time.Time) {
	r.LastActivity = now
}

// Append adds m to the log. A positive capacity drops the oldest messages
// once the log grows past it.
func (r *Room) Append(m Message, capacity uint) {
	r.Messages = append(r.Messages, m)

	if capacity > 0 && len(r.Messages) > int(capacity) {
		excess := len(r.Messages) - int(capacity)
		r.Messages = slices.Clone(r.Messages[excess:])
	}
}

// MessagesSince returns a copy of every message stored after the one whose id
// is cursor. An empty or unknown cursor yields the whole log.
func (r *Room) MessagesSince(cursor string) []Message {
	start := 0
	if cursor != "" {
		idx := slices.IndexFunc(r.Messages, func(m Message) bool {
			return m.ID == cursor
		})
		start = idx + 1
	}

	out := make([]Message, len(r.Messages)-start)
	copy(out, r.Messages[start:])
	return out
}

func (r *Room) Info() RoomInfo {
	return RoomInfo{
		ID:           r.ID,
		Members:      slices.Sorted(maps.Keys(r.Members)),
		MessageCount: len(r.Messages),
		CreatedAt:    r.CreatedAt,
		LastActivity: r.LastActivity,
		ExpiresAt:    r.ExpiresAt,
	}
}
