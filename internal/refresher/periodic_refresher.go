package refresher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/bet-analytics-service/internal/service"
)

// PeriodicRefresher re-warms analytics for every active event on a fixed
// interval. It covers the triggers the Kafka consumer missed: a dropped or
// never-published change notification costs at most one interval of
// staleness.
type PeriodicRefresher struct {
	config    PeriodicRefresherConfig
	store     service.Store
	refresher service.Refresher
	logger    zerolog.Logger
}

// PeriodicRefresherConfig holds refresher configuration
type PeriodicRefresherConfig struct {
	Interval time.Duration // Time between refresh cycles
	Timeout  time.Duration // Per-event refresh timeout
}

// NewPeriodicRefresher creates a new periodic refresher
func NewPeriodicRefresher(
	config PeriodicRefresherConfig,
	store service.Store,
	refresher service.Refresher,
	logger zerolog.Logger,
) *PeriodicRefresher {
	return &PeriodicRefresher{
		config:    config,
		store:     store,
		refresher: refresher,
		logger:    logger.With().Str("component", "periodic_refresher").Logger(),
	}
}

// Start begins the refresh loop. It runs one cycle immediately so caches are
// warm right after boot, then one per interval until the context ends.
func (r *PeriodicRefresher) Start(ctx context.Context) error {
	r.logger.Info().
		Dur("interval", r.config.Interval).
		Msg("started periodic refresher")

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	r.refreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("stopping periodic refresher")
			return nil
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

// refreshAll re-warms every active event, one at a time. A failing event is
// logged and skipped; the next cycle retries it.
func (r *PeriodicRefresher) refreshAll(ctx context.Context) {
	start := time.Now()

	eventIDs, err := r.store.ListActiveEventIDs(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list active events")
		return
	}
	if len(eventIDs) == 0 {
		r.logger.Debug().Msg("no active events to refresh")
		return
	}

	refreshed := 0
	for _, eventID := range eventIDs {
		if err := r.refreshOne(ctx, eventID); err != nil {
			r.logger.Warn().
				Err(err).
				Str("event_id", eventID).
				Msg("failed to refresh event")
			continue
		}
		refreshed++
	}

	r.logger.Info().
		Int("events", len(eventIDs)).
		Int("refreshed", refreshed).
		Dur("duration", time.Since(start)).
		Msg("refresh cycle complete")
}

// refreshOne refreshes a single event under the per-event timeout
func (r *PeriodicRefresher) refreshOne(ctx context.Context, eventID string) error {
	refreshCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	return r.refresher.Refresh(refreshCtx, eventID)
}
