package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/alovak/namecard/card/models"
	"github.com/alovak/namecard/internal/supabase"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

var ErrNotFound = fmt.Errorf("not found")

// Repository reads cards by handle. FindByHandle returns (nil, nil) when no
// card matches.
type Repository interface {
	FindByHandle(ctx context.Context, handle string) (*models.Card, error)
	Ping(ctx context.Context) error
	Backend() string
}

// NewRepository builds the repository selected by cfg.Backend. The returned
// closer releases the backend's resources and is never nil.
func NewRepository(cfg *Config) (Repository, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Backend) {
	case BackendPostgREST, "":
		client, err := supabase.New(supabase.Config{
			URL:        cfg.EndpointURL,
			APIKey:     cfg.AccessKey,
			HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		})
		if err != nil {
			return nil, noop, fmt.Errorf("creating supabase client: %w", err)
		}
		return NewPostgRESTRepository(client, cfg.table()), noop, nil
	case BackendPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxIdleConns(5)
		db.SetMaxOpenConns(10)
		return NewPGRepository(db, cfg.table()), db.Close, nil
	case BackendMemory:
		return NewMemRepository(cfg.Cards), noop, nil
	default:
		return nil, noop, fmt.Errorf("%w: unsupported backend %q", ErrConfiguration, cfg.Backend)
	}
}

// PostgRESTRepository reads cards through a Supabase REST endpoint.
type PostgRESTRepository struct {
	client *supabase.Client
	table  string
}

func NewPostgRESTRepository(client *supabase.Client, table string) *PostgRESTRepository {
	return &PostgRESTRepository{client: client, table: table}
}

func (r *PostgRESTRepository) FindByHandle(ctx context.Context, handle string) (*models.Card, error) {
	resp, err := r.client.From(r.table).
		Select(strings.Join(models.Columns, ",")).
		Eq("handle", handle).
		MaybeSingle().
		Execute(ctx)
	if err != nil {
		return nil, err
	}
	if err := resp.Error(); err != nil {
		return nil, err
	}
	if resp.IsNull() {
		return nil, nil
	}

	card := &models.Card{}
	if err := resp.JSON(card); err != nil {
		return nil, fmt.Errorf("decoding card: %w", err)
	}
	card.Normalize()
	return card, nil
}

func (r *PostgRESTRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func (r *PostgRESTRepository) Backend() string { return BackendPostgREST }

// PGRepository reads cards straight from Postgres.
type PGRepository struct {
	db    *sql.DB
	query string
	table string
}

func NewPGRepository(db *sql.DB, table string) *PGRepository {
	return &PGRepository{
		db:    db,
		table: table,
		query: fmt.Sprintf(`SELECT %s FROM %s WHERE handle=$1`,
			strings.Join(models.Columns, ", "), pq.QuoteIdentifier(table)),
	}
}

func (r *PGRepository) FindByHandle(ctx context.Context, handle string) (*models.Card, error) {
	var name, title, company, department, email, phone, address sql.NullString
	err := r.db.QueryRowContext(ctx, r.query, handle).
		Scan(&name, &title, &company, &department, &email, &phone, &address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("table %q does not exist: %w", r.table, err)
		}
		return nil, err
	}

	card := &models.Card{
		Name:           nullable(name),
		Title:          nullable(title),
		CompanyName:    nullable(company),
		Department:     nullable(department),
		Email:          nullable(email),
		PhoneNumber:    nullable(phone),
		CompanyAddress: nullable(address),
	}
	card.Normalize()
	return card, nil
}

// Ping returns DB readiness
func (r *PGRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PGRepository) Backend() string { return BackendPostgres }

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func isUndefinedTable(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == "42P01" {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "42P01" {
		return true
	}
	return false
}

// MemRepository keeps cards in memory. It backs local development and tests.
type MemRepository struct {
	mu    sync.RWMutex
	cards map[string]*models.Card
}

func NewMemRepository(seed []models.SeedCard) *MemRepository {
	r := &MemRepository{cards: make(map[string]*models.Card, len(seed))}
	for _, s := range seed {
		r.cards[s.Handle] = s.Card()
	}
	return r
}

// Put stores card under handle, replacing any previous card.
func (r *MemRepository) Put(handle string, card *models.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[handle] = card
}

func (r *MemRepository) FindByHandle(_ context.Context, handle string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	card, ok := r.cards[handle]
	if !ok {
		return nil, nil
	}
	c := *card
	return &c, nil
}

func (r *MemRepository) Ping(context.Context) error { return nil }

func (r *MemRepository) Backend() string { return BackendMemory }
