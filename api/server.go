package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/moyoez/localshare-go/api/models"
	"github.com/moyoez/localshare-go/share"
	"github.com/moyoez/localshare-go/tool"
	"github.com/moyoez/localshare-go/types"
)

// ErrPortExhausted is returned by Start when every port in the range is taken.
var ErrPortExhausted = errors.New("no free port in range")

// StatusObserver is told about every lifecycle transition.
type StatusObserver interface {
	OnStatus(types.StatusEvent)
}

// Options configures the public listener.
type Options struct {
	Host       string
	Port       int
	PortRange  int
	RetryDelay time.Duration
	StopGrace  time.Duration
}

// Server is the public file-sharing HTTP server and its lifecycle.
type Server struct {
	opts    Options
	sc      *models.ServerContext
	handler http.Handler
	listen  func(network, address string) (net.Listener, error)

	opMu sync.Mutex // serialises Start and Stop

	mu      sync.RWMutex
	status  string
	port    int
	address string
	srv     *http.Server

	obsMu     sync.RWMutex
	observers []StatusObserver
}

// NewServer wires the router for sc. sc.Address is pointed at this server.
func NewServer(sc *models.ServerContext, opts Options) *Server {
	if opts.Port <= 0 {
		opts.Port = tool.DefaultPort
	}
	if opts.PortRange < 0 {
		opts.PortRange = 0
	}
	if opts.StopGrace <= 0 {
		opts.StopGrace = tool.DefaultStopGrace
	}
	s := &Server{
		opts:   opts,
		sc:     sc,
		listen: net.Listen,
		status: types.StatusStopped,
	}
	sc.Address = func() string { return s.Status().Address }
	s.handler = NewRouter(sc)
	return s
}

func (s *Server) Context() *models.ServerContext {
	return s.sc
}

// Subscribe registers o for future status events.
func (s *Server) Subscribe(o StatusObserver) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Server) emit(ev types.StatusEvent) {
	s.obsMu.RLock()
	observers := append([]StatusObserver(nil), s.observers...)
	s.obsMu.RUnlock()
	for _, o := range observers {
		o.OnStatus(ev)
	}
}

func (s *Server) setState(status string, port int, address string, srv *http.Server) {
	s.mu.Lock()
	s.status = status
	s.port = port
	s.address = address
	s.srv = srv
	s.mu.Unlock()
}

func (s *Server) Status() types.ServerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.ServerStatus{
		Status:    s.status,
		Listening: s.status == types.StatusRunning,
		Port:      s.port,
		Address:   s.address,
	}
}

// Start binds the first free port from the base port upward and serves in the background.
// A running server is stopped first.
func (s *Server) Start(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.stopLocked(ctx)

	base, last := s.opts.Port, s.opts.Port+s.opts.PortRange
	for port := base; port <= last; port++ {
		s.setState(types.StatusStarting, port, "", nil)
		s.emit(types.StatusEvent{Status: types.StatusStarting, Port: port})

		ln, err := s.listen("tcp", net.JoinHostPort(s.opts.Host, strconv.Itoa(port)))
		if err == nil {
			s.serve(ln, port)
			return nil
		}
		if !tool.IsAddrInUseError(err) {
			return s.fail(fmt.Errorf("bind port %d: %w", port, err))
		}
		tool.DefaultLogger.Warnf("[Server] Port %d is in use, trying %d", port, port+1)
		if port == last {
			break
		}
		if err := sleepCtx(ctx, s.opts.RetryDelay); err != nil {
			return s.fail(err)
		}
	}
	return s.fail(fmt.Errorf("%w: %d-%d", ErrPortExhausted, base, last))
}

func (s *Server) fail(err error) error {
	tool.DefaultLogger.Errorf("[Server] Failed to start: %v", err)
	s.setState(types.StatusError, 0, "", nil)
	s.emit(types.StatusEvent{Status: types.StatusError, Error: err.Error()})
	return err
}

func (s *Server) serve(ln net.Listener, port int) {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 30 * time.Second,
	}
	address := net.JoinHostPort(share.FirstLANIPv4(), strconv.Itoa(port))
	s.setState(types.StatusRunning, port, address, srv)
	tool.DefaultLogger.Infof("[Server] Sharing at http://%s", address)
	s.emit(types.StatusEvent{Status: types.StatusRunning, Address: address, Port: port})

	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		tool.DefaultLogger.Errorf("[Server] Serve stopped: %v", err)
		s.mu.Lock()
		current := s.srv == srv
		if current {
			s.status, s.port, s.address, s.srv = types.StatusError, 0, "", nil
		}
		s.mu.Unlock()
		if current {
			s.emit(types.StatusEvent{Status: types.StatusError, Error: err.Error()})
		}
	}()
}

// Stop closes the listener and every open connection, waiting at most the stop grace.
// The server is reported stopped afterwards even if closing timed out.
func (s *Server) Stop(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.stopLocked(ctx)
	return nil
}

func (s *Server) stopLocked(ctx context.Context) {
	s.mu.RLock()
	srv := s.srv
	s.mu.RUnlock()
	if srv == nil {
		return
	}

	done := make(chan error, 1)
	go func() { done <- srv.Close() }()
	timer := time.NewTimer(s.opts.StopGrace)
	defer timer.Stop()
	select {
	case err := <-done:
		if err != nil {
			tool.DefaultLogger.Warnf("[Server] Close returned: %v", err)
		}
	case <-timer.C:
		tool.DefaultLogger.Warnf("[Server] Close did not finish within %s", s.opts.StopGrace)
	case <-ctx.Done():
		tool.DefaultLogger.Warnf("[Server] Stop interrupted: %v", ctx.Err())
	}

	s.setState(types.StatusStopped, 0, "", nil)
	tool.DefaultLogger.Infof("[Server] Stopped")
	s.emit(types.StatusEvent{Status: types.StatusStopped})
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
