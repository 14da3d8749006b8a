package analytics

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// Engine reconstructs historical share series from a bet ledger and derives
// insight summaries. All entry points are pure functions of their arguments
// (the caller supplies "now"), so two runs over the same ledger snapshot
// produce identical output.
type Engine struct {
	params models.EngineParams
	logger zerolog.Logger
}

// NewEngine creates a new analytics engine
func NewEngine(params models.EngineParams, logger zerolog.Logger) *Engine {
	return &Engine{
		params: params,
		logger: logger.With().Str("component", "analytics_engine").Logger(),
	}
}

// BuildHistory turns a ledger snapshot into the smoothed DataPoint series for
// the requested bucketing policy. Rolling windows seed their running totals
// with the pre-window ledger so every point is the complete standing as of
// that hour boundary; full history reconstructs minute by occupied minute.
func (e *Engine) BuildHistory(bets []models.BetRecord, options []models.OptionMetadata, now time.Time, policy models.BucketPolicy) []models.DataPoint {
	var points []models.DataPoint

	switch policy {
	case models.PolicyRollingWindow:
		windowStart := now.Add(-time.Duration(e.params.RollingWindowHours) * time.Hour)
		opening, windowed := splitLedgerAt(bets, windowStart)
		buckets := bucketRollingWindow(windowed, now, e.params.RollingWindowHours)
		points = accumulate(buckets, options, opening, policy)
	default:
		buckets := bucketByMinute(bets)
		points = accumulate(buckets, options, nil, policy)
	}

	smoothed := smoothSeries(points)

	e.logger.Debug().
		Str("policy", string(policy)).
		Int("bet_count", len(bets)).
		Int("point_count", len(smoothed)).
		Msg("reconstructed history")

	return smoothed
}

// BuildSnapshot computes the current standing of an event straight from
// authoritative per-option totals, without replaying the ledger. Momentum is
// measured against the previous snapshot when one exists; the first snapshot
// reports zero momentum for every option. ParticipantCount and
// BettingVelocity are left for the caller, which has the authoritative
// counts.
func (e *Engine) BuildSnapshot(options []models.OptionMetadata, totals map[string]decimal.Decimal, previous *models.DataPoint, now time.Time) models.DataPoint {
	pool := decimal.Zero
	for _, opt := range options {
		if total, ok := totals[opt.ID]; ok {
			pool = pool.Add(total)
		}
	}

	percentages := shareOf(totals, pool, options)
	momentum := make(map[string]float64, len(options))
	for _, opt := range options {
		if previous == nil {
			momentum[opt.ID] = 0
		} else {
			momentum[opt.ID] = round2(percentages[opt.ID] - previous.Percentages[opt.ID])
		}
	}

	return models.DataPoint{
		Timestamp:   now,
		Percentages: percentages,
		TotalPool:   pool,
		Momentum:    momentum,
	}
}
