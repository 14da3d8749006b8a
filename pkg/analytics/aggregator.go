package analytics

import (
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// accumulate walks buckets chronologically and emits one DataPoint per
// bucket. Running totals start from the opening bets (empty outside rolling
// windows), so bucket i's percentages reflect the complete ledger state as of
// that bucket, not just its own activity. Increments for unknown option ids
// are ignored; the facade validates ledger integrity before computing.
func accumulate(buckets []models.TimeBucket, options []models.OptionMetadata, opening []models.BetRecord, policy models.BucketPolicy) []models.DataPoint {
	if len(buckets) == 0 {
		return nil
	}

	known := make(map[string]struct{}, len(options))
	totals := make(map[string]decimal.Decimal, len(options))
	for _, opt := range options {
		known[opt.ID] = struct{}{}
		totals[opt.ID] = decimal.Zero
	}

	bettors := make(map[uuid.UUID]struct{})
	for _, bet := range opening {
		if _, ok := known[bet.OptionID]; !ok {
			continue
		}
		totals[bet.OptionID] = totals[bet.OptionID].Add(bet.Amount)
		bettors[bet.UserID] = struct{}{}
	}

	points := make([]models.DataPoint, 0, len(buckets))
	var prev map[string]float64

	for _, bucket := range buckets {
		for _, opt := range options {
			if inc, ok := bucket.Increments[opt.ID]; ok {
				totals[opt.ID] = totals[opt.ID].Add(inc)
			}
		}
		for _, user := range bucket.Bettors {
			bettors[user] = struct{}{}
		}

		pool := decimal.Zero
		for _, opt := range options {
			pool = pool.Add(totals[opt.ID])
		}

		percentages := shareOf(totals, pool, options)
		momentum := make(map[string]float64, len(options))
		for _, opt := range options {
			if prev == nil {
				momentum[opt.ID] = 0
			} else {
				momentum[opt.ID] = round2(percentages[opt.ID] - prev[opt.ID])
			}
		}

		timestamp := bucket.Start
		if policy == models.PolicyRollingWindow {
			timestamp = bucket.End
		}

		points = append(points, models.DataPoint{
			Timestamp:        timestamp,
			Percentages:      percentages,
			TotalPool:        pool,
			ParticipantCount: len(bettors),
			BettingVelocity:  bucket.BetCount,
			Momentum:         momentum,
		})
		prev = percentages
	}

	return points
}

// shareOf converts running totals into per-option percentages (0-100, 2dp).
// A zero pool becomes an equal split across options rather than a division
// by zero, so an empty ledger never yields NaN.
func shareOf(totals map[string]decimal.Decimal, pool decimal.Decimal, options []models.OptionMetadata) map[string]float64 {
	percentages := make(map[string]float64, len(options))
	if len(options) == 0 {
		return percentages
	}

	if pool.IsZero() {
		equal := round2(100.0 / float64(len(options)))
		for _, opt := range options {
			percentages[opt.ID] = equal
		}
		return percentages
	}

	for _, opt := range options {
		share := totals[opt.ID].Div(pool).InexactFloat64() * 100.0
		percentages[opt.ID] = round2(share)
	}
	return percentages
}

// round2 rounds to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
