// Package ws pushes query invalidations to connected consoles.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"partnerhub/pkg/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	queueSize  = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// subscriber is one console connection. events is closed by the hub.
type subscriber struct {
	conn   *websocket.Conn
	events chan []byte
}

// Hub keeps the set of subscribers and fans invalidation events out to them.
// A subscriber whose queue is full is dropped; it reconnects and refetches.
type Hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	events chan []byte
	join   chan *subscriber
	leave  chan *subscriber
	done   chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[*subscriber]struct{}),
		events: make(chan []byte, 64),
		join:   make(chan *subscriber),
		leave:  make(chan *subscriber),
		done:   make(chan struct{}),
	}
}

// Run owns the subscriber set until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for s := range h.subs {
				h.drop(s)
			}
			h.mu.Unlock()
			return
		case s := <-h.join:
			h.mu.Lock()
			h.subs[s] = struct{}{}
			n := len(h.subs)
			h.mu.Unlock()
			log.Printf("Console subscribed to events (%d connected)", n)
		case s := <-h.leave:
			h.mu.Lock()
			if _, ok := h.subs[s]; ok {
				h.drop(s)
			}
			h.mu.Unlock()
		case payload := <-h.events:
			h.mu.Lock()
			for s := range h.subs {
				select {
				case s.events <- payload:
				default:
					log.Println("Console not keeping up with events, disconnecting it")
					h.drop(s)
				}
			}
			h.mu.Unlock()
		}
	}
}

// drop must be called with mu held.
func (h *Hub) drop(s *subscriber) {
	delete(h.subs, s)
	close(s.events)
}

// Subscribers returns the number of connected consoles.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Invalidate tells subscribers that the given query keys are stale. It
// never blocks a request: when the queue is full the event is dropped and
// subscribers fall back to polling.
func (h *Hub) Invalidate(keys ...string) {
	if len(keys) == 0 {
		return
	}
	payload, err := json.Marshal(models.Event{Type: models.EventInvalidate, Keys: keys})
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}
	select {
	case h.events <- payload:
	default:
		log.Printf("Event queue full, dropping invalidation of %v", keys)
	}
}

// ServeWs upgrades the request and streams events until either side goes
// away.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	s := &subscriber{conn: conn, events: make(chan []byte, queueSize)}
	select {
	case h.join <- s:
	case <-h.done:
		conn.Close()
		return
	}

	go h.write(s)
	go h.read(s)
}

// read discards client frames and notices when the console goes away.
func (h *Hub) read(s *subscriber) {
	defer func() {
		select {
		case h.leave <- s:
		case <-h.done:
		}
		s.conn.Close()
	}()
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) write(s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-s.events:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
