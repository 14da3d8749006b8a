package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// bucketByMinute groups bets into one bucket per distinct occupied minute.
// Minutes with no bets are absent; buckets are sorted chronologically. An
// empty ledger yields zero buckets.
func bucketByMinute(bets []models.BetRecord) []models.TimeBucket {
	if len(bets) == 0 {
		return nil
	}

	byMinute := make(map[int64]*models.TimeBucket)
	seen := make(map[int64]map[uuid.UUID]struct{})

	for _, bet := range bets {
		minute := bet.PlacedAt.Truncate(time.Minute)
		key := minute.Unix()

		bucket, ok := byMinute[key]
		if !ok {
			bucket = &models.TimeBucket{
				Start:      minute,
				End:        minute.Add(time.Minute),
				Increments: make(map[string]decimal.Decimal),
			}
			byMinute[key] = bucket
			seen[key] = make(map[uuid.UUID]struct{})
		}

		bucket.Increments[bet.OptionID] = bucket.Increments[bet.OptionID].Add(bet.Amount)
		bucket.BetCount++
		if _, dup := seen[key][bet.UserID]; !dup {
			seen[key][bet.UserID] = struct{}{}
			bucket.Bettors = append(bucket.Bettors, bet.UserID)
		}
	}

	keys := make([]int64, 0, len(byMinute))
	for key := range byMinute {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	buckets := make([]models.TimeBucket, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, *byMinute[key])
	}

	return buckets
}

// bucketRollingWindow emits a fixed count of hourly buckets covering
// (now-hours*1h, now], newest bucket ending exactly at now. Every slot is
// emitted even when empty. A bet belongs to the bucket whose half-open
// interval (start, end] contains its timestamp; bets at or before the window
// start, or after now, occupy no bucket.
func bucketRollingWindow(bets []models.BetRecord, now time.Time, hours int) []models.TimeBucket {
	if hours <= 0 {
		return nil
	}

	windowStart := now.Add(-time.Duration(hours) * time.Hour)

	buckets := make([]models.TimeBucket, hours)
	seen := make([]map[uuid.UUID]struct{}, hours)
	for i := range buckets {
		start := windowStart.Add(time.Duration(i) * time.Hour)
		buckets[i] = models.TimeBucket{
			Start:      start,
			End:        start.Add(time.Hour),
			Increments: make(map[string]decimal.Decimal),
		}
		seen[i] = make(map[uuid.UUID]struct{})
	}

	for _, bet := range bets {
		offset := bet.PlacedAt.Sub(windowStart)
		if offset <= 0 || bet.PlacedAt.After(now) {
			continue
		}
		idx := int((offset - time.Nanosecond) / time.Hour)
		if idx < 0 || idx >= hours {
			continue
		}

		bucket := &buckets[idx]
		bucket.Increments[bet.OptionID] = bucket.Increments[bet.OptionID].Add(bet.Amount)
		bucket.BetCount++
		if _, dup := seen[idx][bet.UserID]; !dup {
			seen[idx][bet.UserID] = struct{}{}
			bucket.Bettors = append(bucket.Bettors, bet.UserID)
		}
	}

	return buckets
}

// splitLedgerAt partitions bets into those at or before the cutoff (the
// opening state of a rolling window) and those after it.
func splitLedgerAt(bets []models.BetRecord, cutoff time.Time) (opening, rest []models.BetRecord) {
	for _, bet := range bets {
		if bet.PlacedAt.After(cutoff) {
			rest = append(rest, bet)
		} else {
			opening = append(opening, bet)
		}
	}
	return opening, rest
}
