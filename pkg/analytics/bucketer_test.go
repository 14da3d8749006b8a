package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// TestBucketByMinute_EmptyLedger tests that an empty ledger yields no buckets
func TestBucketByMinute_EmptyLedger(t *testing.T) {
	buckets := bucketByMinute(nil)
	assert.Nil(t, buckets)

	buckets = bucketByMinute([]models.BetRecord{})
	assert.Nil(t, buckets)
}

// TestBucketByMinute_GroupsByMinute tests that bets within the same minute
// share one bucket with summed increments
func TestBucketByMinute_GroupsByMinute(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	bets := []models.BetRecord{
		makeBet("opt-a", 100, t0.Add(5*time.Second)),
		makeBet("opt-a", 50, t0.Add(40*time.Second)),
		makeBet("opt-b", 200, t0.Add(59*time.Second)),
	}

	buckets := bucketByMinute(bets)

	require.Len(t, buckets, 1)
	assert.Equal(t, t0, buckets[0].Start)
	assert.Equal(t, t0.Add(time.Minute), buckets[0].End)
	assert.Equal(t, 3, buckets[0].BetCount)
	assert.True(t, buckets[0].Increments["opt-a"].Equal(decimalFrom(150)))
	assert.True(t, buckets[0].Increments["opt-b"].Equal(decimalFrom(200)))
}

// TestBucketByMinute_SkipsEmptyMinutes tests that only occupied minutes are
// emitted and that buckets come out chronologically sorted regardless of
// input order
func TestBucketByMinute_SkipsEmptyMinutes(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	// Out of order, with a 10 minute gap between occupied minutes
	bets := []models.BetRecord{
		makeBet("opt-b", 30, t0.Add(10*time.Minute)),
		makeBet("opt-a", 10, t0),
		makeBet("opt-a", 20, t0.Add(3*time.Minute)),
	}

	buckets := bucketByMinute(bets)

	require.Len(t, buckets, 3)
	assert.Equal(t, t0, buckets[0].Start)
	assert.Equal(t, t0.Add(3*time.Minute), buckets[1].Start)
	assert.Equal(t, t0.Add(10*time.Minute), buckets[2].Start)
}

// TestBucketByMinute_DeduplicatesBettors tests that a user placing several
// bets inside one minute counts once in Bettors but every bet counts in
// BetCount
func TestBucketByMinute_DeduplicatesBettors(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	user := uuid.New()

	bets := []models.BetRecord{
		makeBetBy(user, "opt-a", 100, t0),
		makeBetBy(user, "opt-b", 50, t0.Add(20*time.Second)),
		makeBet("opt-a", 25, t0.Add(30*time.Second)),
	}

	buckets := bucketByMinute(bets)

	require.Len(t, buckets, 1)
	assert.Equal(t, 3, buckets[0].BetCount)
	assert.Len(t, buckets[0].Bettors, 2)
}

// TestBucketRollingWindow_SlotLayout tests that the window emits one bucket
// per hour, contiguous, with the newest bucket ending exactly at now
func TestBucketRollingWindow_SlotLayout(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	buckets := bucketRollingWindow(nil, now, 24)

	require.Len(t, buckets, 24)
	assert.Equal(t, now.Add(-24*time.Hour), buckets[0].Start)
	assert.Equal(t, now, buckets[23].End)
	for i := 1; i < len(buckets); i++ {
		assert.Equal(t, buckets[i-1].End, buckets[i].Start, "buckets must be contiguous")
	}
}

// TestBucketRollingWindow_EmptySlotsEmitted tests that hours without bets
// still produce (empty) buckets
func TestBucketRollingWindow_EmptySlotsEmitted(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	bets := []models.BetRecord{
		makeBet("opt-a", 100, now.Add(-30*time.Minute)),
	}

	buckets := bucketRollingWindow(bets, now, 24)

	require.Len(t, buckets, 24)
	assert.Equal(t, 1, buckets[23].BetCount)
	for i := 0; i < 23; i++ {
		assert.Equal(t, 0, buckets[i].BetCount)
		assert.Empty(t, buckets[i].Increments)
	}
}

// TestBucketRollingWindow_BoundaryMembership tests the (start, end] interval
// convention at every edge of the window
func TestBucketRollingWindow_BoundaryMembership(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	windowStart := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		placedAt time.Time
		wantSlot int // -1 means the bet lands in no bucket
	}{
		{"Before window start", windowStart.Add(-time.Second), -1},
		{"Exactly at window start", windowStart, -1},
		{"Just after window start", windowStart.Add(time.Nanosecond), 0},
		{"Exactly at first slot end", windowStart.Add(time.Hour), 0},
		{"Just after first slot end", windowStart.Add(time.Hour + time.Nanosecond), 1},
		{"Mid window", windowStart.Add(12*time.Hour + 30*time.Minute), 12},
		{"Exactly at now", now, 23},
		{"After now", now.Add(time.Second), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bets := []models.BetRecord{makeBet("opt-a", 10, tt.placedAt)}

			buckets := bucketRollingWindow(bets, now, 24)

			require.Len(t, buckets, 24)
			got := -1
			for i, bucket := range buckets {
				if bucket.BetCount > 0 {
					got = i
					break
				}
			}
			assert.Equal(t, tt.wantSlot, got)
		})
	}
}

// TestBucketRollingWindow_ZeroHours tests that a degenerate window yields
// no buckets
func TestBucketRollingWindow_ZeroHours(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	assert.Nil(t, bucketRollingWindow(nil, now, 0))
}

// TestSplitLedgerAt tests the opening/rest partition around the cutoff,
// with bets exactly at the cutoff belonging to the opening side
func TestSplitLedgerAt(t *testing.T) {
	cutoff := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	before := makeBet("opt-a", 10, cutoff.Add(-time.Hour))
	at := makeBet("opt-a", 20, cutoff)
	after := makeBet("opt-b", 30, cutoff.Add(time.Minute))

	opening, rest := splitLedgerAt([]models.BetRecord{before, at, after}, cutoff)

	require.Len(t, opening, 2)
	require.Len(t, rest, 1)
	assert.Equal(t, before.ID, opening[0].ID)
	assert.Equal(t, at.ID, opening[1].ID)
	assert.Equal(t, after.ID, rest[0].ID)
}
