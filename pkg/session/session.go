package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hilthontt/huddle/internal/infrastructure/logging"
)

const DefaultPollInterval = time.Second

var (
	ErrRoomExpired  = errors.New("room has expired")
	ErrEmptyMessage = errors.New("message cannot be empty")
	ErrNotJoined    = errors.New("not in a room")
	ErrRoomRequired = errors.New("room id is required")
)

type State int

const (
	Idle State = iota
	Joined
	Left
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Joined:
		return "joined"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is one client's membership in one room. The local message list
// mirrors the server log and only feeds the poll cursor and the UI.
type Session struct {
	api    API
	logger logging.Logger

	mu         sync.Mutex
	state      State
	roomID     string
	username   string
	messages   []Message
	seen       map[string]struct{}
	generation uint64
}

func New(api API, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		api:    api,
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Create opens a new room and joins it as its only member.
func (s *Session) Create(ctx context.Context, username string) error {
	username = ResolveUsername(username)

	roomID, err := s.api.CreateRoom(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	s.enter(roomID, username)
	return nil
}

func (s *Session) Join(ctx context.Context, roomID, username string) error {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		return ErrRoomRequired
	}
	username = ResolveUsername(username)

	if err := s.api.JoinRoom(ctx, roomID, username); err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	s.enter(roomID, username)
	return nil
}

func (s *Session) enter(roomID, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = Joined
	s.roomID = roomID
	s.username = username
	s.messages = nil
	s.seen = make(map[string]struct{})
}

// Poll fetches messages newer than the last local one and returns those that
// were appended. Any failure ends the session.
func (s *Session) Poll(ctx context.Context) ([]Message, error) {
	s.mu.Lock()
	if s.state != Joined {
		s.mu.Unlock()
		return nil, ErrNotJoined
	}
	gen, roomID, cursor := s.generation, s.roomID, s.cursorLocked()
	s.mu.Unlock()

	msgs, err := s.api.ListMessages(ctx, roomID, cursor)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return nil, nil
	}

	if err != nil {
		s.state = Left
		s.generation++
		s.logger.Warn(logging.Client, logging.Poll, "poll failed, leaving room", map[logging.ExtraKey]any{
			logging.RoomID:       roomID,
			logging.ErrorMessage: err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrRoomExpired, err)
	}

	return s.appendLocked(msgs), nil
}

// Send posts text and appends the stored message without waiting for the next poll.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.state != Joined {
		s.mu.Unlock()
		return Message{}, ErrNotJoined
	}
	gen, roomID, username := s.generation, s.roomID, s.username
	s.mu.Unlock()

	msg, err := s.api.PostMessage(ctx, roomID, text, username)
	if err != nil {
		s.logger.Warn(logging.Client, logging.Send, "send failed", map[logging.ExtraKey]any{
			logging.RoomID:       roomID,
			logging.ErrorMessage: err.Error(),
		})
		return Message{}, fmt.Errorf("failed to send message: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		// Advances the cursor past messages others posted since the last poll;
		// those are not fetched afterwards.
		s.appendLocked([]Message{msg})
	}

	return msg, nil
}

// Leave notifies the server and ends the session. In-flight polls and sends
// complete but their results are dropped.
func (s *Session) Leave(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Joined {
		s.mu.Unlock()
		return nil
	}
	roomID, username := s.roomID, s.username
	s.state = Left
	s.generation++
	s.mu.Unlock()

	if err := s.api.LeaveRoom(ctx, roomID, username); err != nil {
		return fmt.Errorf("failed to leave room: %w", err)
	}
	return nil
}

// Run polls every interval until ctx ends or the room goes away. onUpdate is
// called with newly appended messages.
func (s *Session) Run(ctx context.Context, interval time.Duration, onUpdate func([]Message)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		msgs, err := s.Poll(ctx)
		if err != nil {
			return err
		}
		if len(msgs) > 0 && onUpdate != nil {
			onUpdate(msgs)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// Messages returns a copy of the local message list.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Cursor is the id of the last local message, empty before the first one.
func (s *Session) Cursor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursorLocked()
}

func (s *Session) cursorLocked() string {
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1].ID
}

func (s *Session) appendLocked(msgs []Message) []Message {
	var added []Message
	for _, m := range msgs {
		if _, ok := s.seen[m.ID]; ok {
			continue
		}
		s.seen[m.ID] = struct{}{}
		s.messages = append(s.messages, m)
		added = append(added, m)
	}
	return added
}
