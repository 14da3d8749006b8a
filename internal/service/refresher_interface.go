package service

import (
	"context"
)

// Refresher is an interface that abstracts the recompute-and-recache entry
// point used by change triggers
// This allows for easier testing and mocking
type Refresher interface {
	Refresh(ctx context.Context, eventID string) error
}
