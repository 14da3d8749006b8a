package service

import (
	"context"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	SetAnalytics(ctx context.Context, policy models.BucketPolicy, response *models.AnalyticsResponse) error
	GetAnalytics(ctx context.Context, eventID string, policy models.BucketPolicy) (*models.AnalyticsResponse, error)
	InvalidateAnalytics(ctx context.Context, eventID string) error
	SetSnapshot(ctx context.Context, eventID string, point *models.DataPoint) error
	GetSnapshot(ctx context.Context, eventID string) (*models.DataPoint, error)
	Ping(ctx context.Context) error
	Close() error
}
