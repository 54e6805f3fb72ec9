package feed

import (
	"bufio"
	"context"
	"errors"
	"net"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Server is the line-delimited JSON feed over plain TCP.
type Server struct {
	Addr string
	Hub  *Hub
}

func NewServer(addr string, hub *Hub) *Server {
	return &Server{Addr: addr, Hub: hub}
}

func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts subscribers on ln until ctx is cancelled, then disconnects
// them and returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log.Infof("📡 [tcp-feed] listening on %s", ln.Addr())

	var wg sync.WaitGroup
	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
		s.Hub.CloseAll()
	})
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				wg.Wait()
				return nil
			}
			log.Warnf("[tcp-feed] accept: %v", err)
			continue
		}

		if msg, err := s.Hub.welcome("tcp"); err == nil {
			_, _ = conn.Write(msg)
		}
		s.Hub.Add(conn)
		if ctx.Err() != nil {
			s.Hub.Remove(conn)
			continue
		}
		log.Infof("[tcp-feed] client connected: %s", conn.RemoteAddr())

		wg.Add(1)
		go func(c net.Conn) {
			defer wg.Done()
			defer func() {
				s.Hub.Remove(c)
				log.Infof("[tcp-feed] client disconnected: %s", c.RemoteAddr())
			}()

			// subscribers have nothing to say; drain until they hang up
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}
