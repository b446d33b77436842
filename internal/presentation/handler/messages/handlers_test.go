package messages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/infrastructure/logging"
	"github.com/hilthontt/huddle/internal/infrastructure/repository"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (http.Handler, *repository.RoomStore, string) {
	t.Helper()
	store := repository.NewRoomStore(repository.Options{})
	t.Cleanup(store.Close)

	info, err := store.Create(context.Background(), "alice")
	require.NoError(t, err)

	h := NewHandler(store, logging.NewNop())
	r := chi.NewRouter()
	r.Post("/rooms/{roomId}/messages", h.CreateNewMessageHandler)
	r.Get("/rooms/{roomId}/messages", h.ListMessagesHandler)
	return r, store, info.ID
}

func post(t *testing.T, h http.Handler, roomID, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rooms/"+roomID+"/messages", strings.NewReader(body)))
	return rec
}

func list(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, []domain.Message) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var msgs []domain.Message
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	}
	return rec, msgs
}

func TestCreateNewMessageHandler(t *testing.T) {
	router, _, roomID := setup(t)

	rec := post(t, router, roomID, `{"message":"hello","username":"alice"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var msg domain.Message
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	require.NotEmpty(t, msg.ID)
	require.Equal(t, "hello", msg.Text)
	require.Equal(t, "alice", msg.Username)
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, msg.Timestamp)
}

func TestCreateNewMessageHandler_Errors(t *testing.T) {
	router, _, roomID := setup(t)

	rec := post(t, router, "missing", `{"message":"hello","username":"alice"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Room not found"}`, rec.Body.String())

	rec = post(t, router, roomID, `not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMessagesHandler_EmptyLogIsArray(t *testing.T) {
	router, _, roomID := setup(t)

	rec, _ := list(t, router, "/rooms/"+roomID+"/messages")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListMessagesHandler_Cursor(t *testing.T) {
	router, _, roomID := setup(t)

	var ids []string
	for _, text := range []string{"one", "two", "three"} {
		rec := post(t, router, roomID, `{"message":"`+text+`","username":"alice"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var msg domain.Message
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		ids = append(ids, msg.ID)
	}

	_, all := list(t, router, "/rooms/"+roomID+"/messages")
	require.Len(t, all, 3)

	_, after := list(t, router, "/rooms/"+roomID+"/messages?lastMessageId="+ids[0])
	require.Len(t, after, 2)
	require.Equal(t, "two", after[0].Text)
	require.Equal(t, "three", after[1].Text)

	rec, none := list(t, router, "/rooms/"+roomID+"/messages?lastMessageId="+ids[2])
	require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	require.Empty(t, none)

	_, unknown := list(t, router, "/rooms/"+roomID+"/messages?lastMessageId=does-not-exist")
	require.Len(t, unknown, 3)
}

func TestListMessagesHandler_NotFound(t *testing.T) {
	router, _, _ := setup(t)

	rec, _ := list(t, router, "/rooms/missing/messages")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Room not found"}`, rec.Body.String())
}
