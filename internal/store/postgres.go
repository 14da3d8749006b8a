package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-analytics-service/internal/config"
	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// PostgresStore reads the wagering platform's ledger. All methods are reads;
// bets and events are written upstream by the platform itself.
type PostgresStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// BuildConnString builds a PostgreSQL connection string from config.
func BuildConnString(cfg config.PostgresConfig) string {
	// URL-encode password to handle special characters
	escapedPassword := url.QueryEscape(cfg.Password)

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		escapedPassword,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		sslMode,
	)
}

// NewPostgresStore opens the ledger database and verifies connectivity
func NewPostgresStore(cfg config.PostgresConfig, logger zerolog.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping ledger database: %w", err)
	}

	return &PostgresStore{
		db:     db,
		logger: logger.With().Str("component", "postgres_store").Logger(),
	}, nil
}

// GetBets returns the full ledger for an event, ascending by placement time
// (ties broken by id for a stable order)
func (s *PostgresStore) GetBets(ctx context.Context, eventID string) ([]models.BetRecord, error) {
	query := `
		SELECT id, event_id, option_id, user_id, amount, placed_at
		FROM bets
		WHERE event_id = $1
		ORDER BY placed_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("query bets for event %s: %w", eventID, wrapUnavailable(err))
	}
	defer rows.Close()

	var bets []models.BetRecord
	for rows.Next() {
		var bet models.BetRecord
		err := rows.Scan(
			&bet.ID,
			&bet.EventID,
			&bet.OptionID,
			&bet.UserID,
			&bet.Amount,
			&bet.PlacedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan bet row: %w", wrapUnavailable(err))
		}
		bets = append(bets, bet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bet rows: %w", wrapUnavailable(err))
	}

	return bets, nil
}

// GetOptions returns the event's betting options in their display order
func (s *PostgresStore) GetOptions(ctx context.Context, eventID string) ([]models.OptionMetadata, error) {
	query := `
		SELECT id, label
		FROM event_options
		WHERE event_id = $1
		ORDER BY position, id
	`

	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("query options for event %s: %w", eventID, wrapUnavailable(err))
	}
	defer rows.Close()

	var options []models.OptionMetadata
	for rows.Next() {
		var option models.OptionMetadata
		if err := rows.Scan(&option.ID, &option.Label); err != nil {
			return nil, fmt.Errorf("scan option row: %w", wrapUnavailable(err))
		}
		options = append(options, option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate option rows: %w", wrapUnavailable(err))
	}

	return options, nil
}

// GetEventTotals returns the platform's authoritative pool figures for an
// event. models.ErrNotFound when the event row does not exist.
func (s *PostgresStore) GetEventTotals(ctx context.Context, eventID string) (models.EventTotals, error) {
	query := `
		SELECT total_pool, participant_count
		FROM events
		WHERE id = $1
	`

	var totals models.EventTotals
	err := s.db.QueryRowContext(ctx, query, eventID).Scan(&totals.TotalPool, &totals.ParticipantCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EventTotals{}, fmt.Errorf("event %s: %w", eventID, models.ErrNotFound)
		}
		return models.EventTotals{}, fmt.Errorf("query totals for event %s: %w", eventID, wrapUnavailable(err))
	}

	return totals, nil
}

// GetOptionTotals returns the amount staked per option. Options without bets
// are absent from the map.
func (s *PostgresStore) GetOptionTotals(ctx context.Context, eventID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT option_id, COALESCE(SUM(amount), 0)
		FROM bets
		WHERE event_id = $1
		GROUP BY option_id
	`

	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("query option totals for event %s: %w", eventID, wrapUnavailable(err))
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var optionID string
		var total decimal.Decimal
		if err := rows.Scan(&optionID, &total); err != nil {
			return nil, fmt.Errorf("scan option total row: %w", wrapUnavailable(err))
		}
		totals[optionID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate option total rows: %w", wrapUnavailable(err))
	}

	return totals, nil
}

// CountBetsSince returns how many bets landed after the given instant
func (s *PostgresStore) CountBetsSince(ctx context.Context, eventID string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bets
		WHERE event_id = $1 AND placed_at > $2
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, eventID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bets for event %s: %w", eventID, wrapUnavailable(err))
	}

	return count, nil
}

// ListActiveEventIDs returns the ids of events still open for betting,
// consumed by the periodic refresher
func (s *PostgresStore) ListActiveEventIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT id
		FROM events
		WHERE status = 'active'
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query active events: %w", wrapUnavailable(err))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan event id: %w", wrapUnavailable(err))
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event ids: %w", wrapUnavailable(err))
	}

	return ids, nil
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// wrapUnavailable tags a driver failure so callers can classify it with
// errors.Is(err, models.ErrUpstreamUnavailable)
func wrapUnavailable(err error) error {
	return fmt.Errorf("%w: %v", models.ErrUpstreamUnavailable, err)
}
