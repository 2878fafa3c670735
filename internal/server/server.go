// Package server exposes a printer.Service over a unix socket speaking
// newline-delimited JSON requests.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/AvengeMedia/dankprint/internal/log"
	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/AvengeMedia/dankprint/internal/server/models"
	"github.com/AvengeMedia/dankprint/internal/server/printing"
	"github.com/google/uuid"
)

const maxRequestSize = 64 << 20

type Server struct {
	socketPath string
	service    *printer.Service

	mu       sync.Mutex
	listener net.Listener
	conns    map[string]net.Conn
	wg       sync.WaitGroup
}

func New(socketPath string, service *printer.Service) *Server {
	return &Server{
		socketPath: socketPath,
		service:    service,
		conns:      make(map[string]net.Conn),
	}
}

// Listen binds the socket, replacing a stale socket file left by an earlier
// run.
func (s *Server) Listen() error {
	if _, err := os.Stat(s.socketPath); err == nil {
		if conn, err := net.Dial("unix", s.socketPath); err == nil {
			conn.Close()
			return fmt.Errorf("socket %s is already in use", s.socketPath)
		}
		if err := os.Remove(s.socketPath); err != nil {
			return fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	l, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.socketPath, err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		log.Warnf("[SERVER] chmod %s: %v", s.socketPath, err)
	}

	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()
	log.Infof("[SERVER] listening on %s", s.socketPath)
	return nil
}

// Serve accepts connections until ctx is done. Listen must be called first.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	l := s.listener
	s.mu.Unlock()
	if l == nil {
		return errors.New("server is not listening")
	}

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.wg.Wait()
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		id := uuid.NewString()
		s.mu.Lock()
		s.conns[id] = conn
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, id, conn)
		}()
	}
}

func (s *Server) handleConn(ctx context.Context, id string, conn net.Conn) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		conn.Close()
		s.mu.Lock()
		delete(s.conns, id)
		s.mu.Unlock()
		log.Debugf("[SERVER] client %s disconnected", id)
	}()
	log.Debugf("[SERVER] client %s connected", id)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req models.Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			models.RespondError(conn, 0, "invalid request: "+err.Error())
			continue
		}
		log.Debugf("[SERVER] client %s: %s (id %d)", id, req.Method, req.ID)
		s.route(ctx, conn, req)
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		log.Debugf("[SERVER] client %s read error: %v", id, err)
	}
}

func (s *Server) route(ctx context.Context, conn net.Conn, req models.Request) {
	switch {
	case req.Method == "ping":
		models.Respond(conn, req.ID, "pong")
	case req.Method == "backend":
		models.Respond(conn, req.ID, s.service.Backend().Name())
	case strings.HasPrefix(req.Method, "printer."):
		printing.HandleRequest(ctx, conn, req, s.service)
	default:
		models.RespondError(conn, req.ID, "unknown method: "+req.Method)
	}
}

// Close stops accepting, drops every client and removes the socket file.
func (s *Server) Close() {
	s.mu.Lock()
	l := s.listener
	s.listener = nil
	conns := make([]net.Conn, 0, len(s.conns))
	for _, c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	if l == nil {
		return
	}
	l.Close()
	for _, c := range conns {
		c.Close()
	}
	os.Remove(s.socketPath)
}
