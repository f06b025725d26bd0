package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	diag "github.com/coreman2200/textime/internal/diagnostics"
)

const (
	writeWait = 200 * time.Millisecond
	queueSize = 64
)

// Command is one control message. Only the fields present are applied.
type Command struct {
	Mode        *int    `json:"mode,omitempty"`
	Animation   *int    `json:"animation,omitempty"`
	Config      *int    `json:"config,omitempty"`
	Color       *string `json:"color,omitempty"`
	ColorRandom *int    `json:"color_random,omitempty"`
	Brightness  *int    `json:"brightness,omitempty"`
	Auto        *bool   `json:"auto,omitempty"`
}

func (c Command) Empty() bool {
	return c.Mode == nil && c.Animation == nil && c.Config == nil && c.Color == nil &&
		c.ColorRandom == nil && c.Brightness == nil && c.Auto == nil
}

type statusMsg struct {
	Topic   string `json:"topic"`
	Payload string `json:"payload"`
}

type frameMsg struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []byte `json:"rgb"`
}

type outMsg struct {
	frames bool
	data   []byte
}

// Hub is the operator surface: status and diagnostics out, control commands
// in, and a preview of every transmitted frame. Publish and Frame never
// block; messages are dropped when no writer keeps up.
type Hub struct {
	log      zerolog.Logger
	commands chan Command
	out      chan outMsg

	mu            sync.RWMutex
	statusClients map[*websocket.Conn]bool
	frameClients  map[*websocket.Conn]bool
	retained      map[string]string
	frameID       uint64
	count         int
	startTime     time.Time
	dropped       uint64
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:           log,
		commands:      make(chan Command, queueSize),
		out:           make(chan outMsg, queueSize),
		statusClients: map[*websocket.Conn]bool{},
		frameClients:  map[*websocket.Conn]bool{},
		retained:      map[string]string{},
		startTime:     time.Now(),
	}
}

// Commands delivers control messages in arrival order.
func (h *Hub) Commands() <-chan Command { return h.commands }

func (h *Hub) Publish(topic, payload string) {
	h.mu.Lock()
	h.retained[topic] = payload
	h.mu.Unlock()
	b, _ := json.Marshal(statusMsg{Topic: topic, Payload: payload})
	h.enqueue(outMsg{data: b})
}

func (h *Hub) PushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	h.enqueue(outMsg{data: b})
}

// Frame records a transmitted frame. rgb is copied.
func (h *Hub) Frame(rgb []byte) {
	h.mu.Lock()
	h.frameID++
	h.count = len(rgb) / 3
	id := h.frameID
	h.mu.Unlock()
	b, _ := json.Marshal(frameMsg{T: time.Now().UnixNano(), FrameID: id, RGB: rgb})
	h.enqueue(outMsg{frames: true, data: b})
}

func (h *Hub) enqueue(m outMsg) {
	select {
	case h.out <- m:
	default:
		h.mu.Lock()
		h.dropped++
		h.mu.Unlock()
	}
}

// Run writes queued messages to clients until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case m := <-h.out:
			h.broadcast(m)
		}
	}
}

func (h *Hub) broadcast(m outMsg) {
	h.mu.RLock()
	set := h.statusClients
	if m.frames {
		set = h.frameClients
	}
	conns := make([]*websocket.Conn, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, m.data); err != nil {
			h.log.Debug().Err(err).Msg("ws write")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.statusClients {
		c.Close()
	}
	for c := range h.frameClients {
		c.Close()
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// track registers conn in set and drains reads until the peer goes away.
func (h *Hub) track(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	h.mu.Lock()
	set[conn] = true
	h.mu.Unlock()
	go func() {
		defer func() {
			h.mu.Lock()
			delete(set, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HandleStatusWS streams status messages and diagnostics. A new client first
// receives the last value of every topic.
func (h *Hub) HandleStatusWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.replay(func(b []byte) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteMessage(websocket.TextMessage, b)
	})
	h.track(conn, h.statusClients)
}

// replay hands the retained topics to write. The lock is released before
// the first write so a slow client never holds up Publish or Frame.
func (h *Hub) replay(write func([]byte) error) {
	h.mu.RLock()
	msgs := make([][]byte, 0, len(h.retained))
	for topic, payload := range h.retained {
		b, _ := json.Marshal(statusMsg{Topic: topic, Payload: payload})
		msgs = append(msgs, b)
	}
	h.mu.RUnlock()
	for _, b := range msgs {
		if write(b) != nil {
			return
		}
	}
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.track(conn, h.frameClients)
}

func (h *Hub) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil || cmd.Empty() {
			h.PushDiag(diag.Diagnostic{
				Severity: diag.Warn, Code: diag.ControlParse, Summary: "Unreadable control message",
				Evidence: map[string]any{"message": string(data)},
			})
			continue
		}
		select {
		case h.commands <- cmd:
		default:
			h.PushDiag(diag.Diagnostic{Severity: diag.Warn, Code: diag.ControlBusy, Summary: "Control queue full"})
		}
	}
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	status := make(map[string]string, len(h.retained))
	for k, v := range h.retained {
		status[k] = v
	}
	resp := map[string]any{
		"frame_id": h.frameID,
		"uptime_s": time.Since(h.startTime).Seconds(),
		"count":    h.count,
		"clients":  len(h.statusClients) + len(h.frameClients),
		"dropped":  h.dropped,
		"status":   status,
	}
	h.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Register mounts every endpoint on mux.
func (h *Hub) Register(mux *http.ServeMux) {
	mux.HandleFunc("/status", h.HandleStatusWS)
	mux.HandleFunc("/frames", h.HandleFramesWS)
	mux.HandleFunc("/control", h.HandleControlWS)
	mux.HandleFunc("/health", h.HandleHealth)
}
