package card

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/alovak/namecard/internal/metrics"
	"github.com/alovak/namecard/internal/middleware"
	"github.com/alovak/namecard/internal/view"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

// App is the main application, it contains all the components of the card
// service and is responsible for starting and stopping them.
type App struct {
	srv     *http.Server
	wg      *sync.WaitGroup
	Addr    string
	logger  *slog.Logger
	config  *Config
	metrics *metrics.Metrics
	closeDB func() error
	stop    chan struct{}
}

func NewApp(logger *slog.Logger, config *Config) *App {
	logger = logger.With(slog.String("app", "namecard"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:      &sync.WaitGroup{},
		logger:  logger,
		config:  config,
		metrics: metrics.New(),
		closeDB: func() error { return nil },
		stop:    make(chan struct{}),
	}
}

// Router builds the HTTP handler. A config that does not validate is logged
// and every card request then renders the configuration error panel; no
// repository is created.
func (a *App) Router() (http.Handler, error) {
	var repository Repository
	if err := a.config.Validate(); err != nil {
		a.logger.Error("card store is not configured", slog.Any("err", err))
	} else {
		repo, closeDB, err := NewRepository(a.config)
		if err != nil {
			return nil, fmt.Errorf("creating repository: %w", err)
		}
		repository = repo
		a.closeDB = closeDB
		a.logger.Info("card store configured", slog.String("backend", repo.Backend()))
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	svc := NewService(repository, a.config, a.logger, a.metrics)

	router := chi.NewRouter()
	router.Use(middleware.RequestID())
	router.Use(middleware.NewStructuredLogger(a.logger))
	router.Use(chimw.Recoverer)
	router.Use(middleware.Metrics(a.metrics))

	// Health and metrics endpoints
	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Get("/-/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := svc.Ping(ctx); err != nil {
			a.logger.Warn("readiness check failed", slog.Any("err", err))
			http.Error(w, "card store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/-/metrics", a.metrics.Handler())

	router.Group(func(r chi.Router) {
		if a.config.RateLimit > 0 {
			limiter := middleware.NewRateLimiter(a.config.RateLimit, a.config.RateBurst, a.logger)
			r.Use(limiter.Handler)
			a.wg.Add(1)
			go a.sweep(limiter)
		}
		NewAPI(svc, renderer, a.logger).AppendRoutes(r)
	})

	return router, nil
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	router, err := a.Router()
	if err != nil {
		return err
	}

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.wg.Add(1)
	go func() {
		a.logger.Info("http server started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting http server", "err", err)
			}

			a.logger.Info("http server stopped")
		}

		a.wg.Done()
	}()

	return nil
}

// sweep forgets idle rate limit clients until the app stops.
func (a *App) sweep(limiter *middleware.RateLimiter) {
	defer a.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			if n := limiter.Cleanup(10 * time.Minute); n > 0 {
				a.logger.Debug("rate limiter cleanup", slog.Int("removed", n))
			}
		}
	}
}

func (a *App) Shutdown() {
	a.logger.Info("shutting down app...")

	close(a.stop)

	if a.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(ctx); err != nil {
			a.logger.Error("shutting down http server", "err", err)
		}
	}

	if err := a.closeDB(); err != nil {
		a.logger.Error("closing database", "err", err)
	}

	a.wg.Wait()

	a.logger.Info("app stopped")
}
