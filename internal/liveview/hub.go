package liveview

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/commentsync/internal/comments"
	"github.com/ziadkadry99/commentsync/internal/controller"
	"github.com/ziadkadry99/commentsync/internal/render"
)

const sendBuffer = 16

// event is the outgoing WebSocket message format.
type event struct {
	Type     string `json:"type"` // "loading", "comments" or "error"
	HTML     string `json:"html,omitempty"`
	Sort     string `json:"sort,omitempty"`
	Quantity string `json:"quantity,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Hub is a controller.View that pushes every re-render to connected
// browsers. Slow clients whose buffer fills up are dropped.
type Hub struct {
	html *render.HTML
	log  *zap.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	last    string
	prefs   controller.Preferences
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

var _ controller.View = (*Hub)(nil)

// NewHub creates a Hub rendering with html.
func NewHub(html *render.HTML, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		html:    html,
		log:     log,
		clients: make(map[*client]struct{}),
		prefs:   controller.DefaultPreferences,
	}
}

func (h *Hub) Loading(controller.Preferences) {
	h.broadcast(event{Type: "loading"})
}

func (h *Hub) Render(list []comments.Comment, p controller.Preferences) {
	frag, err := h.html.Fragment(render.Rows(list), p)
	if err != nil {
		h.log.Error("rendering comment list", zap.Error(err))
		h.broadcast(event{Type: "error", Message: err.Error()})
		return
	}

	h.mu.Lock()
	h.last = frag
	h.prefs = p
	h.mu.Unlock()

	h.broadcast(event{Type: "comments", HTML: frag, Sort: string(p.Sort), Quantity: p.PageSize.String()})
}

func (h *Hub) Fail(err *controller.SyncError) {
	h.broadcast(event{Type: "error", Message: err.Error()})
}

// Current returns the last rendered fragment and its preferences.
func (h *Hub) Current() (string, controller.Preferences) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.prefs
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	go c.writeLoop(h.log)
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcast(e event) {
	msg, err := json.Marshal(e)
	if err != nil {
		h.log.Error("encoding live view event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("dropping slow live view client")
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// sendTo queues a message for a single client.
func (h *Hub) sendTo(c *client, e event) {
	msg, err := json.Marshal(e)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (c *client) writeLoop(log *zap.Logger) {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Debug("live view: websocket write", zap.Error(err))
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
