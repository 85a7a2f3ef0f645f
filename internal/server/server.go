package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/cpu"
	"github.com/ykhdr/crack-hash/common/consul"
	"github.com/ykhdr/crack-hash/common/http/middleware"
	inet "github.com/ykhdr/crack-hash/internal/net"
	"github.com/ykhdr/crack-hash/internal/report"
	"github.com/ykhdr/crack-hash/internal/search"
)

const ServiceName = "bruteforce-status"

const shutdownTimeout = 5 * time.Second

type ProgressSource interface {
	Progress() search.Progress
}

// ProgressResponse is the body of GET /api/progress.
type ProgressResponse struct {
	State    string  `json:"state"`
	Length   int     `json:"length"`
	Attempts int64   `json:"attempts"`
	Keyspace uint64  `json:"keyspace"`
	Elapsed  float64 `json:"elapsed"`
	Hps      float64 `json:"hps"`
	Cpu      float64 `json:"cpu"`
	Busy     int64   `json:"busy"`
}

// Server exposes the progress of a running search over HTTP.
type Server struct {
	l         zerolog.Logger
	addr      string
	progress  ProgressSource
	registrar consul.Registrar
	cpu       func() (float64, error)

	m         sync.Mutex
	srv       *http.Server
	bound     net.Addr
	ready     chan struct{}
	readyOnce sync.Once
}

// NewServer creates a status server listening on addr. A nil registrar
// skips consul registration.
func NewServer(addr string, progress ProgressSource, registrar consul.Registrar) *Server {
	return &Server{
		addr:      addr,
		progress:  progress,
		registrar: registrar,
		cpu:       sampleCPU,
		ready:     make(chan struct{}),
		l: log.With().
			Str("domain", "server").
			Str("type", "http").
			Logger(),
	}
}

func sampleCPU() (float64, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, errors.Wrap(err, "sample cpu")
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(s.l))
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/progress", s.handleProgress).Methods(http.MethodGet)
	return r
}

// Start serves until ctx is done, then shuts down and deregisters.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.l.Warn().Err(err).Str("address", s.addr).Msg("failed to listen")
		return errors.Wrapf(err, "listen on %s", s.addr)
	}
	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	s.m.Lock()
	s.srv = srv
	s.bound = ln.Addr()
	s.m.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
	s.l.Info().Msgf("status server is running on address: %s", ln.Addr())

	serviceId := s.register(ln.Addr())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.shutdown(srv, serviceId)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.l.Error().Err(err).Msg("status server failed")
		return errors.Wrap(err, "status server failed")
	}
	<-stopped
	s.l.Debug().Msg("status server stopped")
	return nil
}

// Addr blocks until the server is listening and returns the bound address.
func (s *Server) Addr() net.Addr {
	<-s.ready
	s.m.Lock()
	defer s.m.Unlock()
	return s.bound
}

func (s *Server) register(addr net.Addr) string {
	if s.registrar == nil {
		return ""
	}
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return ""
	}
	host, _, _ := net.SplitHostPort(s.addr)
	advertised, err := inet.AdvertisedHost(host)
	if err != nil {
		s.l.Warn().Err(err).Msg("cannot resolve advertised address, skipping consul registration")
		return ""
	}
	id, err := s.registrar.RegisterService(ServiceName, advertised, tcpAddr.Port)
	if err != nil {
		s.l.Warn().Err(err).Msg("consul registration failed")
		return ""
	}
	return id
}

func (s *Server) shutdown(srv *http.Server, serviceId string) {
	if serviceId != "" {
		if err := s.registrar.DeregisterService(serviceId); err != nil {
			s.l.Warn().Err(err).Msg("consul deregistration failed")
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.l.Warn().Err(err).Msg("status server shutdown failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.l.Warn().Err(err).Msg("failed to write health response")
	}
}

func (s *Server) handleProgress(w http.ResponseWriter, _ *http.Request) {
	p := s.progress.Progress()
	summary := report.Summary{Attempts: p.Attempts, Elapsed: p.Elapsed}
	resp := ProgressResponse{
		State:    p.State.String(),
		Length:   p.Length,
		Attempts: p.Attempts,
		Keyspace: p.Keyspace,
		Elapsed:  p.Elapsed.Seconds(),
		Hps:      summary.Throughput(),
		Busy:     p.BusyWorkers,
	}
	if usage, err := s.cpu(); err != nil {
		s.l.Debug().Err(err).Msg("cpu usage unavailable")
	} else {
		resp.Cpu = usage
	}
	body, err := json.Marshal(resp)
	if err != nil {
		s.l.Error().Err(err).Msg("failed to marshal progress")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.l.Warn().Err(err).Msg("failed to write progress response")
	}
}
