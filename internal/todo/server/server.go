// Package server runs the connection multiplexer. Reader goroutines do line
// framing only; every parsed request is funnelled into a single dispatch
// goroutine that owns all session and domain state, executes the command to
// completion and writes the response before touching the next event. That
// keeps commands totally ordered across connections and means a slow
// handler (including the synchronous snapshot write) stalls every
// connection, which is an accepted property of the design.
package server

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/aussiebroadwan/taskhub/internal/todo/dispatch"
	"github.com/aussiebroadwan/taskhub/internal/todo/protocol"
	"github.com/aussiebroadwan/taskhub/pkg/idx"
	"golang.org/x/time/rate"
)

type Config struct {
	Addr      string
	RateLimit RateLimitConfig
}

type Server struct {
	cfg        Config
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger

	listener net.Listener
	events   chan event
	ready    chan struct{}
	stop     chan struct{}
	stopOnce sync.Once

	// conns is owned by the dispatch loop.
	conns map[idx.ID]*conn
}

type eventKind int

const (
	eventAccept eventKind = iota
	eventRequest
	eventClose
)

type event struct {
	kind    eventKind
	conn    *conn
	payload string
}

type conn struct {
	id      idx.ID
	nc      net.Conn
	limiter *rate.Limiter // nil when rate limiting is disabled
}

func New(cfg Config, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Server {
	return &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger,
		events:     make(chan event),
		ready:      make(chan struct{}),
		stop:       make(chan struct{}),
		conns:      make(map[idx.ID]*conn),
	}
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the bound listen address once Ready has fired, useful when
// the configured port is 0.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run binds the listener and blocks in the dispatch loop until Stop is
// called or a fatal error occurs.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	close(s.ready)

	s.logger.Info("server listening", slog.String("addr", ln.Addr().String()))

	go s.acceptLoop()
	return s.dispatchLoop()
}

// Stop closes the listener and wakes the dispatch loop for shutdown.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		if s.listener != nil {
			_ = s.listener.Close()
		}
	})
}

func (s *Server) acceptLoop() {
	for {
		nc, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("accept failed", slog.Any("error", err))
			continue
		}

		c := &conn{id: idx.New(), nc: nc}
		if s.cfg.RateLimit.Enabled() {
			c.limiter = s.cfg.RateLimit.newLimiter()
		}

		select {
		case s.events <- event{kind: eventAccept, conn: c}:
		case <-s.stop:
			_ = nc.Close()
			return
		}

		go s.readLoop(c)
	}
}

// readLoop frames one request per line and hands it to the dispatch loop.
// It performs no parsing and touches no shared state.
func (s *Server) readLoop(c *conn) {
	r := bufio.NewReader(c.nc)
	for {
		line, err := r.ReadString('\n')
		payload := strings.TrimRight(line, "\r\n")

		if payload != "" || err == nil {
			select {
			case s.events <- event{kind: eventRequest, conn: c, payload: payload}:
			case <-s.stop:
				return
			}
		}

		if err != nil {
			select {
			case s.events <- event{kind: eventClose, conn: c}:
			case <-s.stop:
			}
			return
		}
	}
}

func (s *Server) dispatchLoop() error {
	for {
		select {
		case <-s.stop:
			for _, c := range s.conns {
				_ = c.nc.Close()
			}
			return nil

		case ev := <-s.events:
			switch ev.kind {
			case eventAccept:
				s.conns[ev.conn.id] = ev.conn
				s.logger.Info("connection accepted",
					slog.String("conn_id", ev.conn.id.String()),
					slog.String("remote", ev.conn.nc.RemoteAddr().String()),
				)

			case eventClose:
				s.closeConn(ev.conn)

			case eventRequest:
				if _, live := s.conns[ev.conn.id]; !live {
					continue
				}

				if ev.conn.limiter != nil && !ev.conn.limiter.Allow() {
					s.write(ev.conn, protocol.Warningf("Too many commands, slow down"))
					continue
				}

				resp, err := s.dispatcher.Execute(ev.conn.id, ev.payload)
				if err != nil {
					// Persistence failure: abort the whole loop rather than
					// continue with state the snapshot no longer reflects.
					s.logger.Error("fatal command failure",
						slog.String("conn_id", ev.conn.id.String()),
						slog.Any("error", err),
					)
					s.Stop()
					return err
				}
				s.write(ev.conn, resp)
			}
		}
	}
}

func (s *Server) write(c *conn, resp string) {
	if _, err := c.nc.Write([]byte(resp)); err != nil {
		s.logger.Warn("write failed, dropping connection",
			slog.String("conn_id", c.id.String()),
			slog.Any("error", err),
		)
		s.closeConn(c)
	}
}

func (s *Server) closeConn(c *conn) {
	if _, live := s.conns[c.id]; !live {
		return
	}

	delete(s.conns, c.id)
	s.dispatcher.Disconnect(c.id)
	_ = c.nc.Close()

	s.logger.Info("connection closed", slog.String("conn_id", c.id.String()))
}
