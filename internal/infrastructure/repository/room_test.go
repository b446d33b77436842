package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newStore(t *testing.T, opts Options) *RoomStore {
	t.Helper()
	store := NewRoomStore(opts)
	t.Cleanup(store.Close)
	return store
}

func eventOfType(typ domain.RoomEventType) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		event, ok := x.(domain.RoomEvent)
		return ok && event.Type == typ
	})
}

func TestRoomStore_Create_UniqueIDs(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{})
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		info, err := store.Create(ctx, "alice")
		req.NoError(err)
		req.False(seen[info.ID], "duplicate room id %s", info.ID)
		seen[info.ID] = true
		req.Equal([]string{"alice"}, info.Members)
	}
	req.Equal(100, store.Len())
}

func TestRoomStore_UnknownRoom(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{})
	ctx := context.Background()

	req.ErrorIs(store.Join(ctx, "missing", "bob"), domain.ErrRoomNotFound)
	_, err := store.PostMessage(ctx, "missing", "hi", "bob")
	req.ErrorIs(err, domain.ErrRoomNotFound)
	_, err = store.MessagesSince(ctx, "missing", "")
	req.ErrorIs(err, domain.ErrRoomNotFound)
	req.ErrorIs(store.Leave(ctx, "missing", "bob"), domain.ErrRoomNotFound)
	_, err = store.GetByID(ctx, "missing")
	req.ErrorIs(err, domain.ErrRoomNotFound)
}

func TestRoomStore_Join_Idempotent(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{})
	ctx := context.Background()

	info, err := store.Create(ctx, "alice")
	req.NoError(err)

	req.NoError(store.Join(ctx, info.ID, "bob"))
	req.NoError(store.Join(ctx, info.ID, "bob"))

	got, err := store.GetByID(ctx, info.ID)
	req.NoError(err)
	req.Equal([]string{"alice", "bob"}, got.Members)
}

func TestRoomStore_MessagesSince_Cursor(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{})
	ctx := context.Background()

	info, err := store.Create(ctx, "alice")
	req.NoError(err)

	var posted []domain.Message
	for i := 0; i < 6; i++ {
		m, err := store.PostMessage(ctx, info.ID, "text", "alice")
		req.NoError(err)
		posted = append(posted, m)
	}

	for k := range posted {
		got, err := store.MessagesSince(ctx, info.ID, posted[k].ID)
		req.NoError(err)
		req.Equal(posted[k+1:], got)
	}

	all, err := store.MessagesSince(ctx, info.ID, "")
	req.NoError(err)
	req.Equal(posted, all)

	unknown, err := store.MessagesSince(ctx, info.ID, "not-a-message")
	req.NoError(err)
	req.Equal(posted, unknown)
}

func TestRoomStore_Scenario(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{})
	ctx := context.Background()

	info, err := store.Create(ctx, "alice")
	req.NoError(err)
	req.NoError(store.Join(ctx, info.ID, "bob"))

	hi, err := store.PostMessage(ctx, info.ID, "hi", "bob")
	req.NoError(err)
	_, err = store.PostMessage(ctx, info.ID, "yo", "alice")
	req.NoError(err)

	got, err := store.MessagesSince(ctx, info.ID, hi.ID)
	req.NoError(err)
	req.Len(got, 1)
	req.Equal("yo", got[0].Text)
	req.Equal("alice", got[0].Username)
}

func TestRoomStore_Leave_LastMemberDeletesRoom(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{})
	ctx := context.Background()

	info, err := store.Create(ctx, "alice")
	req.NoError(err)
	req.NoError(store.Join(ctx, info.ID, "bob"))

	req.NoError(store.Leave(ctx, info.ID, "alice"))
	req.NoError(store.Leave(ctx, info.ID, "carol"), "leaving as a non-member is a no-op")
	_, err = store.GetByID(ctx, info.ID)
	req.NoError(err)

	req.NoError(store.Leave(ctx, info.ID, "bob"))

	req.ErrorIs(store.Join(ctx, info.ID, "bob"), domain.ErrRoomNotFound)
	_, err = store.PostMessage(ctx, info.ID, "hi", "bob")
	req.ErrorIs(err, domain.ErrRoomNotFound)
	_, err = store.MessagesSince(ctx, info.ID, "")
	req.ErrorIs(err, domain.ErrRoomNotFound)
	req.Zero(store.Len())
}

func TestRoomStore_Expiry_NotExtendedByActivity(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{Expiry: 300 * time.Millisecond})
	ctx := context.Background()

	info, err := store.Create(ctx, "alice")
	req.NoError(err)

	// keep the room busy for most of its lifetime
	for i := 0; i < 5; i++ {
		time.Sleep(20 * time.Millisecond)
		_, err := store.PostMessage(ctx, info.ID, "still here", "alice")
		req.NoError(err)
	}

	req.Eventually(func() bool {
		_, err := store.MessagesSince(ctx, info.ID, "")
		return errors.Is(err, domain.ErrRoomNotFound)
	}, time.Second, 10*time.Millisecond)

	req.ErrorIs(store.Join(ctx, info.ID, "bob"), domain.ErrRoomNotFound)
}

func TestRoomStore_Leave_StopsExpiryTimer(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockRoomEventPublisher(ctrl)

	publisher.EXPECT().Publish(gomock.Any(), eventOfType(domain.EventRoomCreated)).Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), eventOfType(domain.EventMemberLeft)).Return(nil)
	publisher.EXPECT().
		Publish(gomock.Any(), eventOfType(domain.EventRoomDeleted)).
		DoAndReturn(func(_ context.Context, event domain.RoomEvent) error {
			req.Equal(domain.DeleteReasonEmpty, event.Reason)
			return nil
		}).
		Times(1)

	store := newStore(t, Options{Expiry: 50 * time.Millisecond, Publisher: publisher})
	ctx := context.Background()

	info, err := store.Create(ctx, "alice")
	req.NoError(err)
	req.NoError(store.Leave(ctx, info.ID, "alice"))

	// an expiry firing now would publish a second room.deleted
	time.Sleep(120 * time.Millisecond)
}

func TestRoomStore_PublishesLifecycleEvents(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockRoomEventPublisher(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		publisher.EXPECT().Publish(gomock.Any(), eventOfType(domain.EventRoomCreated)).Return(nil),
		publisher.EXPECT().Publish(gomock.Any(), eventOfType(domain.EventMemberJoined)).Return(nil),
		publisher.EXPECT().Publish(gomock.Any(), eventOfType(domain.EventMessageSent)).Return(errors.New("broker down")),
	)

	store := newStore(t, Options{Publisher: publisher})

	info, err := store.Create(ctx, "alice")
	req.NoError(err)
	req.NoError(store.Join(ctx, info.ID, "bob"))
	// second join adds nobody and publishes nothing
	req.NoError(store.Join(ctx, info.ID, "bob"))

	_, err = store.PostMessage(ctx, info.ID, "hi", "bob")
	req.NoError(err, "publisher failures never fail the operation")
}

func TestRoomStore_ExpiryPublishesDeletion(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockRoomEventPublisher(ctrl)
	expired := make(chan domain.RoomEvent, 1)

	publisher.EXPECT().Publish(gomock.Any(), eventOfType(domain.EventRoomCreated)).Return(nil)
	publisher.EXPECT().
		Publish(gomock.Any(), eventOfType(domain.EventRoomDeleted)).
		DoAndReturn(func(_ context.Context, event domain.RoomEvent) error {
			expired <- event
			return nil
		})

	store := newStore(t, Options{Expiry: 30 * time.Millisecond, Publisher: publisher})

	info, err := store.Create(context.Background(), "alice")
	req.NoError(err)

	select {
	case event := <-expired:
		req.Equal(info.ID, event.RoomID)
		req.Equal(domain.DeleteReasonExpired, event.Reason)
		req.Equal(1, event.MemberCount)
	case <-time.After(time.Second):
		req.Fail("room did not expire")
	}
}

func TestRoomStore_MessageCapacity(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{MessageCapacity: 2})
	ctx := context.Background()

	info, err := store.Create(ctx, "alice")
	req.NoError(err)

	var posted []domain.Message
	for i := 0; i < 4; i++ {
		m, err := store.PostMessage(ctx, info.ID, "text", "alice")
		req.NoError(err)
		posted = append(posted, m)
	}

	got, err := store.MessagesSince(ctx, info.ID, "")
	req.NoError(err)
	req.Equal(posted[2:], got)
}

func TestRoomStore_ConcurrentPosts(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{})
	ctx := context.Background()

	info, err := store.Create(ctx, "alice")
	req.NoError(err)

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.PostMessage(ctx, info.ID, "hello", "alice")
			_, _ = store.MessagesSince(ctx, info.ID, "")
		}()
	}
	wg.Wait()

	got, err := store.MessagesSince(ctx, info.ID, "")
	req.NoError(err)
	req.Len(got, writers)
}

func TestRoomStore_ListRefreshesLastActivity(t *testing.T) {
	req := require.New(t)
	store := newStore(t, Options{})
	ctx := context.Background()

	info, err := store.Create(ctx, "alice")
	req.NoError(err)

	time.Sleep(5 * time.Millisecond)
	_, err = store.MessagesSince(ctx, info.ID, "")
	req.NoError(err)

	got, err := store.GetByID(ctx, info.ID)
	req.NoError(err)
	req.True(got.LastActivity.After(info.LastActivity))
	req.Equal(info.ExpiresAt, got.ExpiresAt)
}
