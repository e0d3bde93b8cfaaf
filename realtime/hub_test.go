package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(hub, conn, r.URL.Query().Get("room")).Serve()
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, srv, cancel
}

func dial(t *testing.T, srv *httptest.Server, room string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?room=" + room
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHubBroadcastToRoom(t *testing.T) {
	hub, srv, _ := newTestHub(t)

	cup := dial(t, srv, "Cup")
	defer cup.Close()
	other := dial(t, srv, "Other")
	defer other.Close()

	require.Eventually(t, func() bool { return hub.RoomSize("Cup") == 1 && hub.RoomSize("Other") == 1 },
		2*time.Second, 10*time.Millisecond)

	sent := hub.BroadcastToRoom("Cup", Message{Type: MessageBracketUpdated, Payload: map[string]string{"name": "Cup"}})
	assert.Equal(t, 1, sent)

	cup.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := cup.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
		Room    string            `json:"room"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, MessageBracketUpdated, msg.Type)
	assert.Equal(t, "Cup", msg.Room)
	assert.Equal(t, "Cup", msg.Payload["name"])

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHubBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub(nil)
	assert.Equal(t, 0, hub.BroadcastToRoom("nobody", Message{Type: MessageTournamentDeleted}))
	assert.Equal(t, 0, hub.RoomSize("nobody"))
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub, srv, _ := newTestHub(t)

	conn := dial(t, srv, "Cup")
	require.Eventually(t, func() bool { return hub.RoomSize("Cup") == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.RoomSize("Cup") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubShutdownClosesClients(t *testing.T) {
	hub, srv, cancel := newTestHub(t)

	conn := dial(t, srv, "Cup")
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.RoomSize("Cup") == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.Eventually(t, func() bool { return hub.RoomSize("Cup") == 0 }, 2*time.Second, 10*time.Millisecond)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
