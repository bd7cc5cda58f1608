package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/learnhub/internal/app"
	"github.com/ziadkadry99/learnhub/internal/loader"
	"github.com/ziadkadry99/learnhub/internal/tabs"
	"github.com/ziadkadry99/learnhub/internal/views"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: sameOrigin,
}

// sameOrigin accepts requests without an Origin header (non-browser
// clients) and browser requests from this host only.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// liveRequest is the incoming WebSocket message format.
type liveRequest struct {
	Type string `json:"type"` // "activate" or "reload"
	Pane string `json:"pane"`
}

// liveResponse is the outgoing WebSocket message format.
type liveResponse struct {
	Type   string            `json:"type"` // "update", "navigate" or "error"
	Target string            `json:"target,omitempty"`
	Error  string            `json:"error,omitempty"`
	Update *loader.Snapshot  `json:"update,omitempty"`
	Totals map[string]string `json:"counters,omitempty"`
}

// liveConn serialises writes to one socket.
type liveConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *liveConn) send(resp liveResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(resp); err != nil {
		log.Printf("web: websocket write: %v", err)
	}
}

// handleLive drives the dashboard panes of one open page. Each connection
// owns its regions; closing it cancels in-flight fetches.
func (h *Handler) handleLive(w http.ResponseWriter, r *http.Request) {
	v := visitorFrom(r.Context())
	if !h.signedIn(r, v) {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	lc := &liveConn{conn: conn}
	board := views.NewBoard(h.client, h.opts.Views)
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer func() {
		cancel()
		board.Wait()
	}()

	publish := func(s loader.Snapshot) {
		lc.send(liveResponse{Type: "update", Update: &s, Totals: board.Counters()})
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("web: websocket read: %v", err)
			}
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			lc.send(liveResponse{Type: "error", Error: "invalid message format"})
			continue
		}

		var ev app.Event
		switch req.Type {
		case "activate":
			ev = app.TabSelected{Group: tabs.DashboardGroup.Name, Key: req.Pane}
		case "reload":
			ev = app.ReloadRequested{Pane: req.Pane}
		default:
			lc.send(liveResponse{Type: "error", Error: "unknown message type: " + req.Type})
			continue
		}

		_, effects := app.Reduce(h.state(r.WithContext(ctx), v), ev)
		target, loads, err := h.apply(ctx, v, effects)
		if err != nil {
			log.Printf("web: %v", err)
		}
		if target != "" {
			lc.send(liveResponse{Type: "navigate", Target: target})
			return
		}
		for _, pane := range loads {
			if err := board.Activate(ctx, pane, publish); err != nil {
				lc.send(liveResponse{Type: "error", Error: err.Error()})
			}
		}
	}
}
