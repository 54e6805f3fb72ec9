package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"

	log "github.com/sirupsen/logrus"

	"storefront/internal/storefront"
)

// TypeRegister is the datagram a UDP subscriber sends to start receiving events.
const TypeRegister = "register"

type RegisterMessage struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id"`
}

// Registry maps subscriber ids to their last seen UDP address.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*net.UDPAddr
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*net.UDPAddr)}
}

func (r *Registry) Register(id string, addr *net.UDPAddr) {
	if id == "" || addr == nil {
		return
	}
	r.mu.Lock()
	r.clients[id] = addr
	r.mu.Unlock()
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.clients, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *Registry) snapshot() map[string]*net.UDPAddr {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*net.UDPAddr, len(r.clients))
	for id, addr := range r.clients {
		out[id] = addr
	}
	return out
}

// UDPServer pushes catalog events as single datagrams to registered
// subscribers. Delivery is best effort: a subscriber that fails two sends in
// a row is forgotten and must register again.
type UDPServer struct {
	Addr     string
	Registry *Registry

	mu   sync.RWMutex
	conn *net.UDPConn
}

func NewUDPServer(addr string) *UDPServer {
	return &UDPServer{Addr: addr, Registry: NewRegistry()}
}

// Attach sends an event to every subscriber after each reload of c.
func (s *UDPServer) Attach(c *storefront.Catalog) func() {
	return c.Subscribe(func(snap *storefront.Snapshot) {
		s.Publish(ReloadEvent(snap))
	})
}

func (s *UDPServer) Run(ctx context.Context) error {
	udpAddr, err := net.ResolveUDPAddr("udp", s.Addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, conn)
}

// Serve reads registrations from conn until ctx is cancelled.
func (s *UDPServer) Serve(ctx context.Context, conn *net.UDPConn) error {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.conn = nil
		s.mu.Unlock()
		_ = conn.Close()
	}()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	log.Infof("📡 [udp-feed] listening on %s", conn.LocalAddr())

	buf := make([]byte, 2048)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		var msg RegisterMessage
		if err := json.Unmarshal(buf[:n], &msg); err != nil {
			log.Debugf("[udp-feed] bad datagram from %s: %v", addr, err)
			continue
		}
		if msg.Type != TypeRegister || msg.ClientID == "" {
			continue
		}
		s.Registry.Register(msg.ClientID, addr)
		log.Infof("[udp-feed] registered %s (%s)", msg.ClientID, addr)
	}
}

func (s *UDPServer) Publish(ev Event) {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()
	if conn == nil {
		return
	}

	payload, err := encode(ev)
	if err != nil {
		log.Errorf("[udp-feed] encode %s: %v", ev.Type, err)
		return
	}
	for id, addr := range s.Registry.snapshot() {
		if _, err := conn.WriteToUDP(payload, addr); err == nil {
			continue
		}
		if _, err := conn.WriteToUDP(payload, addr); err != nil {
			log.Warnf("[udp-feed] dropping %s at %s: %v", id, addr, err)
			s.Registry.Remove(id)
		}
	}
}
