package feed

import (
	"bufio"
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"storefront/internal/storefront"
)

const writeTimeout = 2 * time.Second

// Hub fans catalog events out to TCP and WebSocket subscribers. A subscriber
// that cannot take a write within writeTimeout is dropped.
type Hub struct {
	mu        sync.Mutex
	clients   map[net.Conn]struct{}
	wsClients map[*websocket.Conn]struct{}
	last      Event
}

type Stats struct {
	TCPClients int    `json:"tcp_clients"`
	WSClients  int    `json:"ws_clients"`
	Version    uint64 `json:"version"`
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[net.Conn]struct{}),
		wsClients: make(map[*websocket.Conn]struct{}),
	}
}

// Attach broadcasts an event after every reload of c. The returned func detaches.
func (h *Hub) Attach(c *storefront.Catalog) func() {
	return c.Subscribe(func(s *storefront.Snapshot) {
		h.Publish(ReloadEvent(s))
	})
}

func (h *Hub) Add(conn net.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn net.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) AddWS(ws *websocket.Conn) {
	h.mu.Lock()
	h.wsClients[ws] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) RemoveWS(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.wsClients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// Publish records ev as the latest state and sends it to every subscriber.
func (h *Hub) Publish(ev Event) {
	b, err := encode(ev)
	if err != nil {
		log.Errorf("[feed] encode %s: %v", ev.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = ev

	for c := range h.clients {
		_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
		w := bufio.NewWriter(c)
		if _, err := w.Write(b); err != nil {
			h.dropLocked(c)
			continue
		}
		if err := w.Flush(); err != nil {
			h.dropLocked(c)
		}
	}

	for ws := range h.wsClients {
		_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(h.wsClients, ws)
		}
	}
	log.Debugf("[feed] %s v%d sent to %d tcp / %d ws", ev.Type, ev.Version, len(h.clients), len(h.wsClients))
}

func (h *Hub) dropLocked(c net.Conn) {
	_ = c.Close()
	delete(h.clients, c)
}

// CloseAll disconnects every subscriber.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.Close()
		delete(h.clients, c)
	}
	for ws := range h.wsClients {
		_ = ws.Close()
		delete(h.wsClients, ws)
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		TCPClients: len(h.clients),
		WSClients:  len(h.wsClients),
		Version:    h.last.Version,
	}
}

// welcome tells a new subscriber which catalog version is current.
func (h *Hub) welcome(transport string) ([]byte, error) {
	h.mu.Lock()
	ev := Event{
		ID:        uuid.NewString(),
		Type:      TypeWelcome,
		Version:   h.last.Version,
		Products:  h.last.Products,
		Transport: transport,
		Clients:   len(h.clients) + len(h.wsClients),
		At:        time.Now().UTC(),
	}
	h.mu.Unlock()
	return encode(ev)
}

func encode(ev Event) ([]byte, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
