package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diag "github.com/coreman2200/textime/internal/diagnostics"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	h := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	mux := http.NewServeMux()
	h.Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return h, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func clients(h *Hub) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.statusClients) + len(h.frameClients)
}

func TestStatusReplaysRetainedTopics(t *testing.T) {
	h, srv := startHub(t)
	h.Publish("mode", "3")
	require.Eventually(t, func() bool { return len(h.out) == 0 }, time.Second, 10*time.Millisecond)

	conn := dial(t, srv, "/status")
	var m statusMsg
	readJSON(t, conn, &m)
	assert.Equal(t, statusMsg{Topic: "mode", Payload: "3"}, m)

	require.Eventually(t, func() bool { return clients(h) == 1 }, time.Second, 10*time.Millisecond)
	h.Publish("color", "#FF0000")
	readJSON(t, conn, &m)
	assert.Equal(t, statusMsg{Topic: "color", Payload: "#FF0000"}, m)
}

func TestControlDeliversCommands(t *testing.T) {
	h, srv := startHub(t)
	conn := dial(t, srv, "/control")
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"mode":2,"auto":false}`)))

	select {
	case cmd := <-h.Commands():
		require.NotNil(t, cmd.Mode)
		assert.Equal(t, 2, *cmd.Mode)
		require.NotNil(t, cmd.Auto)
		assert.False(t, *cmd.Auto)
		assert.Nil(t, cmd.Animation)
	case <-time.After(2 * time.Second):
		t.Fatal("no command delivered")
	}
}

func TestControlRejectsGarbage(t *testing.T) {
	h, srv := startHub(t)
	status := dial(t, srv, "/status")
	require.Eventually(t, func() bool { return clients(h) == 1 }, time.Second, 10*time.Millisecond)

	conn := dial(t, srv, "/control")
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{}`)))

	var d diag.Diagnostic
	readJSON(t, status, &d)
	assert.Equal(t, diag.ControlParse, d.Code)
	assert.Len(t, h.Commands(), 0)
}

func TestFramesAndHealth(t *testing.T) {
	h, srv := startHub(t)
	frames := dial(t, srv, "/frames")
	require.Eventually(t, func() bool { return clients(h) == 1 }, time.Second, 10*time.Millisecond)

	h.Publish("animation", "1")
	h.Frame([]byte{1, 2, 3, 4, 5, 6})
	var f frameMsg
	readJSON(t, frames, &f)
	assert.Equal(t, uint64(1), f.FrameID)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, f.RGB)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var health struct {
		FrameID uint64            `json:"frame_id"`
		Count   int               `json:"count"`
		Clients int               `json:"clients"`
		Status  map[string]string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, uint64(1), health.FrameID)
	assert.Equal(t, 2, health.Count)
	assert.Equal(t, 1, health.Clients)
	assert.Equal(t, "1", health.Status["animation"])
}

func TestPublishNeverBlocks(t *testing.T) {
	h := NewHub(zerolog.Nop())
	for i := 0; i < queueSize*3; i++ {
		h.Publish("brightness", "10")
	}
	assert.Equal(t, uint64(queueSize*2), h.dropped)
}

func TestSlowReplayDoesNotHoldUpFrames(t *testing.T) {
	h := NewHub(zerolog.Nop())
	h.Publish("mode", "1")
	h.Publish("color", "#FF0000")

	writing := make(chan struct{})
	release := make(chan struct{})
	replayed := make(chan struct{})
	go func() {
		n := 0
		h.replay(func(b []byte) error {
			if n == 0 {
				close(writing)
				<-release
			}
			n++
			return nil
		})
		assert.Equal(t, 2, n)
		close(replayed)
	}()
	<-writing

	done := make(chan struct{})
	go func() {
		h.Frame([]byte{1, 2, 3})
		h.Publish("brightness", "40")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Frame blocked behind a status replay")
	}

	close(release)
	<-replayed
}

func TestCommandEmpty(t *testing.T) {
	assert.True(t, Command{}.Empty())
	b := true
	assert.False(t, Command{Auto: &b}.Empty())
}
