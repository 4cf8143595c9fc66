package card

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alovak/namecard/card/models"
	"github.com/alovak/namecard/internal/handle"
	"github.com/alovak/namecard/internal/metrics"
	"github.com/alovak/namecard/internal/view"
	"golang.org/x/exp/slog"
)

// LoadFailedMessage is shown when the store query fails. The underlying error
// is only logged.
const LoadFailedMessage = "Failed to load card."

// Service runs the lookup pipeline: config check, handle resolution, one
// store query, view state.
type Service struct {
	repo      Repository
	cfg       *Config
	configErr error
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewService creates a Service. repo may be nil only when cfg does not
// validate; every lookup then yields the configuration error panel.
func NewService(repo Repository, cfg *Config, logger *slog.Logger, m *metrics.Metrics) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Service{
		repo:      repo,
		cfg:       cfg,
		configErr: cfg.Validate(),
		logger:    logger,
		metrics:   m,
	}
}

// Configured reports whether the service can reach a store.
func (s *Service) Configured() bool {
	return s.configErr == nil && s.repo != nil
}

// Handle returns the lookup handle for a request path.
func (s *Service) Handle(path string) string {
	return handle.Resolve(path, s.cfg.DefaultHandle)
}

// FindCard queries the store once. It returns (nil, nil) when no card has
// the handle.
func (s *Service) FindCard(ctx context.Context, h string) (*models.Card, error) {
	start := time.Now()
	card, err := s.repo.FindByHandle(ctx, h)
	s.metrics.ObserveQuery(s.repo.Backend(), time.Since(start))
	if err != nil {
		s.logger.Error("finding card", slog.String("handle", h), slog.Any("err", err))
		return nil, fmt.Errorf("finding card %q: %w", h, err)
	}
	return card, nil
}

// Page computes the view state for a request path.
func (s *Service) Page(ctx context.Context, path string) view.State {
	if !s.Configured() {
		s.metrics.ObserveLookup(metrics.OutcomeConfigError)
		return view.Error(http.StatusServiceUnavailable, s.cfg.setupMessage())
	}

	h := s.Handle(path)
	card, err := s.FindCard(ctx, h)
	switch {
	case err != nil:
		s.metrics.ObserveLookup(metrics.OutcomeError)
		return view.Error(http.StatusBadGateway, LoadFailedMessage)
	case card == nil:
		s.metrics.ObserveLookup(metrics.OutcomeNotFound)
		return view.NotFound()
	default:
		s.metrics.ObserveLookup(metrics.OutcomeFound)
		return view.Found(h, card)
	}
}

// Contact fetches the card to export for a request path. It returns
// ErrNotFound when no card matches and ErrConfiguration when the store is not
// configured.
func (s *Service) Contact(ctx context.Context, path string) (*models.Card, error) {
	if !s.Configured() {
		s.metrics.ObserveLookup(metrics.OutcomeConfigError)
		return nil, s.unconfigured()
	}

	card, err := s.FindCard(ctx, s.Handle(path))
	if err != nil {
		s.metrics.ObserveLookup(metrics.OutcomeError)
		return nil, err
	}
	if card == nil {
		s.metrics.ObserveLookup(metrics.OutcomeNotFound)
		return nil, ErrNotFound
	}
	s.metrics.ObserveLookup(metrics.OutcomeFound)
	return card, nil
}

// Ping checks the store.
func (s *Service) Ping(ctx context.Context) error {
	if !s.Configured() {
		return s.unconfigured()
	}
	return s.repo.Ping(ctx)
}

func (s *Service) unconfigured() error {
	if s.configErr != nil {
		return s.configErr
	}
	return fmt.Errorf("%w: no repository", ErrConfiguration)
}
