package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/livefeed/pkg/logger"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	server          *http.Server
	logger          *slog.Logger
	startHooks      []func(*slog.Logger)
	stopHooks       []func(*slog.Logger)
	shutdownFuncs   []func()
}

func defaultConfig() *config {
	return &config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
	}
}

// Server wraps http.Server with graceful shutdown and logging.
// Request contexts derive from a base context that is cancelled when shutdown
// begins, so streaming handlers observe shutdown through r.Context().
type Server struct {
	cfg        *config
	srv        *http.Server
	baseCtx    context.Context
	cancelBase context.CancelFunc
	once       sync.Once
	mu         sync.Mutex
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}
	baseCtx, cancel := context.WithCancel(context.Background())
	return &Server{cfg: cfg, baseCtx: baseCtx, cancelBase: cancel}
}

// Run starts the HTTP server and blocks until shutdown.
// It returns ErrStart wrapped with the underlying error if the server fails to start.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}

	cfg := s.cfg
	srv := cfg.server
	if srv == nil {
		srv = &http.Server{}
	}

	if srv.Addr == "" {
		srv.Addr = cfg.addr
	}
	if srv.ReadTimeout == 0 && cfg.readTimeout != 0 {
		srv.ReadTimeout = cfg.readTimeout
	}
	if srv.WriteTimeout == 0 && cfg.writeTimeout != 0 {
		srv.WriteTimeout = cfg.writeTimeout
	}
	if srv.IdleTimeout == 0 && cfg.idleTimeout != 0 {
		srv.IdleTimeout = cfg.idleTimeout
	}
	if srv.BaseContext == nil {
		srv.BaseContext = func(net.Listener) context.Context { return s.baseCtx }
	}
	srv.Handler = handler
	s.srv = srv
	s.mu.Unlock()

	for _, h := range cfg.startHooks {
		h(cfg.logger)
	}
	cfg.logger.Info("http server starting", slog.String("addr", srv.Addr))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		_ = s.Shutdown(context.Background())
		runErr = <-errCh
	case sig := <-stop:
		cfg.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		_ = s.Shutdown(context.Background())
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// Shutdown stops the server gracefully before Run returns.
// It is safe for repeated calls.
// Any error from http.Server.Shutdown is wrapped with ErrShutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		start := time.Now()
		for _, f := range s.cfg.shutdownFuncs {
			f()
		}
		s.cancelBase()

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)
		for _, h := range s.cfg.stopHooks {
			h(s.cfg.logger)
		}
		s.cfg.logger.Info("http server stopped",
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
