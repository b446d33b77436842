package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/infrastructure/logging"
	"github.com/hilthontt/huddle/internal/infrastructure/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type roomEntry struct {
	room  *domain.Room
	timer *time.Timer
}

type Options struct {
	// Expiry is measured from creation and never extended by activity.
	Expiry time.Duration
	// MessageCapacity caps each room's log; zero keeps everything.
	MessageCapacity uint
	Publisher       domain.RoomEventPublisher
	Logger          logging.Logger
}

// RoomStore keeps every room in process memory. A single mutex guards the map
// and the rooms it holds, so each operation is atomic.
type RoomStore struct {
	rooms           map[string]*roomEntry
	expiry          time.Duration
	messageCapacity uint
	publisher       domain.RoomEventPublisher
	logger          logging.Logger
	tracer          trace.Tracer
	now             func() time.Time
	mu              sync.Mutex
}

var _ domain.RoomRepository = (*RoomStore)(nil)

func NewRoomStore(opts Options) *RoomStore {
	if opts.Expiry <= 0 {
		opts.Expiry = domain.DefaultExpiry
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	return &RoomStore{
		rooms:           make(map[string]*roomEntry),
		expiry:          opts.Expiry,
		messageCapacity: opts.MessageCapacity,
		publisher:       opts.Publisher,
		logger:          opts.Logger,
		tracer:          tracing.GetTracer("huddle/repository"),
		now:             time.Now,
	}
}

func (s *RoomStore) Create(ctx context.Context, username string) (*domain.RoomInfo, error) {
	ctx, span := s.startSpan(ctx, "RoomStore.Create", "")
	defer span.End()

	now := s.now()
	room := domain.NewRoom(username, now, s.expiry)
	entry := &roomEntry{room: room}

	s.mu.Lock()
	// the timer is armed once here and never reset
	entry.timer = time.AfterFunc(s.expiry, func() {
		s.expire(room.ID, entry)
	})
	s.rooms[room.ID] = entry
	info := room.Info()
	s.mu.Unlock()

	span.SetAttributes(attribute.String("room.id", room.ID))

	s.publish(ctx, domain.RoomEvent{
		Type:        domain.EventRoomCreated,
		RoomID:      room.ID,
		Username:    username,
		MemberCount: 1,
		OccurredAt:  now,
	})

	return &info, nil
}

func (s *RoomStore) Join(ctx context.Context, roomID, username string) error {
	ctx, span := s.startSpan(ctx, "RoomStore.Join", roomID)
	defer span.End()

	now := s.now()

	s.mu.Lock()
	entry, ok := s.rooms[roomID]
	if !ok {
		s.mu.Unlock()
		return recordErr(span, domain.ErrRoomNotFound)
	}
	added := entry.room.AddMember(username)
	entry.room.Touch(now)
	members := len(entry.room.Members)
	s.mu.Unlock()

	if added {
		s.publish(ctx, domain.RoomEvent{
			Type:        domain.EventMemberJoined,
			RoomID:      roomID,
			Username:    username,
			MemberCount: members,
			OccurredAt:  now,
		})
	}

	return nil
}

func (s *RoomStore) PostMessage(ctx context.Context, roomID, text, username string) (domain.Message, error) {
	ctx, span := s.startSpan(ctx, "RoomStore.PostMessage", roomID)
	defer span.End()

	now := s.now()

	s.mu.Lock()
	entry, ok := s.rooms[roomID]
	if !ok {
		s.mu.Unlock()
		return domain.Message{}, recordErr(span, domain.ErrRoomNotFound)
	}
	message := domain.NewMessage(text, username, now)
	entry.room.Append(message, s.messageCapacity)
	entry.room.Touch(now)
	members := len(entry.room.Members)
	s.mu.Unlock()

	span.SetAttributes(attribute.String("message.id", message.ID))

	s.publish(ctx, domain.RoomEvent{
		Type:        domain.EventMessageSent,
		RoomID:      roomID,
		Username:    username,
		MessageID:   message.ID,
		MemberCount: members,
		OccurredAt:  now,
	})

	return message, nil
}

func (s *RoomStore) MessagesSince(ctx context.Context, roomID, cursor string) ([]domain.Message, error) {
	_, span := s.startSpan(ctx, "RoomStore.MessagesSince", roomID)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.rooms[roomID]
	if !ok {
		return nil, recordErr(span, domain.ErrRoomNotFound)
	}
	entry.room.Touch(s.now())

	messages := entry.room.MessagesSince(cursor)
	span.SetAttributes(attribute.Int("messages.count", len(messages)))

	return messages, nil
}

func (s *RoomStore) Leave(ctx context.Context, roomID, username string) error {
	ctx, span := s.startSpan(ctx, "RoomStore.Leave", roomID)
	defer span.End()

	now := s.now()

	s.mu.Lock()
	entry, ok := s.rooms[roomID]
	if !ok {
		s.mu.Unlock()
		return recordErr(span, domain.ErrRoomNotFound)
	}
	removed := entry.room.RemoveMember(username)
	members := len(entry.room.Members)
	deleted := entry.room.IsEmpty()
	if deleted {
		entry.timer.Stop()
		delete(s.rooms, roomID)
	}
	s.mu.Unlock()

	if removed {
		s.publish(ctx, domain.RoomEvent{
			Type:        domain.EventMemberLeft,
			RoomID:      roomID,
			Username:    username,
			MemberCount: members,
			OccurredAt:  now,
		})
	}
	if deleted {
		s.publish(ctx, domain.RoomEvent{
			Type:       domain.EventRoomDeleted,
			RoomID:     roomID,
			Reason:     domain.DeleteReasonEmpty,
			OccurredAt: now,
		})
	}

	return nil
}

func (s *RoomStore) GetByID(ctx context.Context, roomID string) (*domain.RoomInfo, error) {
	_, span := s.startSpan(ctx, "RoomStore.GetByID", roomID)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.rooms[roomID]
	if !ok {
		return nil, recordErr(span, domain.ErrRoomNotFound)
	}

	info := entry.room.Info()
	return &info, nil
}

// Len reports the number of live rooms.
func (s *RoomStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.rooms)
}

// Close stops every pending expiry timer. Rooms stay readable.
func (s *RoomStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.rooms {
		entry.timer.Stop()
	}
}

// expire removes the room regardless of its members. entry guards against a
// stale timer firing for a room that was already deleted.
func (s *RoomStore) expire(roomID string, entry *roomEntry) {
	s.mu.Lock()
	current, ok := s.rooms[roomID]
	if !ok || current != entry {
		s.mu.Unlock()
		return
	}
	members := len(entry.room.Members)
	delete(s.rooms, roomID)
	s.mu.Unlock()

	s.logger.Info(logging.RoomStore, logging.Expiry, "room expired", map[logging.ExtraKey]any{
		logging.RoomID: roomID,
		"members":      members,
	})

	s.publish(context.Background(), domain.RoomEvent{
		Type:        domain.EventRoomDeleted,
		RoomID:      roomID,
		Reason:      domain.DeleteReasonExpired,
		MemberCount: members,
		OccurredAt:  s.now(),
	})
}

func (s *RoomStore) publish(ctx context.Context, event domain.RoomEvent) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(logging.RoomStore, logging.Publish, "failed to publish room event", map[logging.ExtraKey]any{
			logging.RoomID:       event.RoomID,
			logging.EventType:    string(event.Type),
			logging.ErrorMessage: err.Error(),
		})
	}
}

func (s *RoomStore) startSpan(ctx context.Context, name, roomID string) (context.Context, trace.Span) {
	ctx, span := s.tracer.Start(ctx, name)
	if roomID != "" {
		span.SetAttributes(attribute.String("room.id", roomID))
	}
	return ctx, span
}

func recordErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
