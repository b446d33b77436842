package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hilthontt/huddle/internal/domain"
	"github.com/hilthontt/huddle/internal/infrastructure/configs"
	"github.com/hilthontt/huddle/internal/infrastructure/logging"
	"github.com/hilthontt/huddle/internal/infrastructure/metrics"
	"github.com/hilthontt/huddle/internal/infrastructure/repository"
	healthHandler "github.com/hilthontt/huddle/internal/presentation/handler/health"
	messagesHandler "github.com/hilthontt/huddle/internal/presentation/handler/messages"
	roomHandler "github.com/hilthontt/huddle/internal/presentation/handler/rooms"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := configs.Config{
		HTTP:    configs.HTTPConfig{RequestTimeout: 5 * time.Second},
		Metrics: configs.MetricsConfig{Enabled: true, Path: "/metrics"},
	}

	m := metrics.New()
	store := repository.NewRoomStore(repository.Options{Publisher: m})
	t.Cleanup(store.Close)

	logger := logging.NewNop()
	app := NewApplication(
		cfg,
		roomHandler.NewHandler(store, logger),
		healthHandler.NewHandler(),
		messagesHandler.NewHandler(store, logger),
		logger,
		m,
	)

	srv := httptest.NewServer(app.Mount())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestChatScenario(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api"

	var created struct {
		RoomID string `json:"roomId"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/rooms", map[string]string{"username": "alice"}, &created))
	require.NotEmpty(t, created.RoomID)

	var ok struct {
		Success bool `json:"success"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/rooms/join",
		map[string]string{"roomId": created.RoomID, "username": "bob"}, &ok))
	require.True(t, ok.Success)

	var first domain.Message
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/rooms/"+created.RoomID+"/messages",
		map[string]string{"message": "hi bob", "username": "alice"}, &first))
	require.Equal(t, "hi bob", first.Text)

	var second domain.Message
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/rooms/"+created.RoomID+"/messages",
		map[string]string{"message": "hey alice", "username": "bob"}, &second))

	var polled []domain.Message
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet,
		base+"/rooms/"+created.RoomID+"/messages?lastMessageId="+first.ID, nil, &polled))
	require.Equal(t, []domain.Message{second}, polled)

	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/rooms/"+created.RoomID+"/leave",
		map[string]string{"username": "alice"}, &ok))
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, base+"/rooms/"+created.RoomID+"/leave",
		map[string]string{"username": "bob"}, &ok))

	var notFound map[string]string
	require.Equal(t, http.StatusNotFound, doJSON(t, http.MethodGet, base+"/rooms/"+created.RoomID+"/messages", nil, &notFound))
	require.Equal(t, map[string]string{"error": "Room not found"}, notFound)
}

func TestCorsPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/rooms/anything/messages", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestCorsHeaderOnRegularResponses(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var created struct {
		RoomID string `json:"roomId"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, srv.URL+"/api/rooms", map[string]string{"username": "alice"}, &created))

	var msgs []domain.Message
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, srv.URL+"/api/rooms/"+created.RoomID+"/messages", nil, &msgs))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := string(data)
	require.Contains(t, body, "huddle_active_rooms 1")
	require.Contains(t, body, `route="/api/rooms"`)
	require.Contains(t, body, `route="/api/rooms/{roomId}/messages"`)
	require.NotContains(t, body, created.RoomID)
}
