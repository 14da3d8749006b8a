package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// Store is an interface that abstracts reads from the wagering platform's store
// This allows for easier testing and mocking
type Store interface {
	GetBets(ctx context.Context, eventID string) ([]models.BetRecord, error)
	GetOptions(ctx context.Context, eventID string) ([]models.OptionMetadata, error)
	GetEventTotals(ctx context.Context, eventID string) (models.EventTotals, error)
	GetOptionTotals(ctx context.Context, eventID string) (map[string]decimal.Decimal, error)
	CountBetsSince(ctx context.Context, eventID string, since time.Time) (int, error)
	ListActiveEventIDs(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
