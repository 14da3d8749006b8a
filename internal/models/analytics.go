package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetRecord represents one bet from the event's ledger (from the wagering platform)
type BetRecord struct {
	ID       uuid.UUID       `json:"id"`
	EventID  string          `json:"event_id"`
	OptionID string          `json:"option_id"`
	UserID   uuid.UUID       `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	PlacedAt time.Time       `json:"placed_at"`
}

// OptionMetadata represents one betting option of an event
type OptionMetadata struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	DisplayColor string `json:"display_color"` // Assigned from the palette, not stored
}

// TimeBucket groups the bets of one fixed time interval. Derived and
// ephemeral; recomputed on every analytics request, never persisted.
type TimeBucket struct {
	Start      time.Time                  `json:"start"`
	End        time.Time                  `json:"end"`
	Increments map[string]decimal.Decimal `json:"increments"` // option id -> amount placed in this bucket
	BetCount   int                        `json:"bet_count"`
	Bettors    []uuid.UUID                `json:"bettors"` // distinct users seen in this bucket
}

// DataPoint is one reconstructed historical snapshot of option shares
type DataPoint struct {
	Timestamp        time.Time          `json:"timestamp"`
	Percentages      map[string]float64 `json:"percentages"` // option id -> share (0-100, 2dp)
	TotalPool        decimal.Decimal    `json:"total_pool"`
	ParticipantCount int                `json:"participant_count"`
	BettingVelocity  int                `json:"betting_velocity"` // bets inside this bucket only
	Momentum         map[string]float64 `json:"momentum"`         // option id -> pp delta vs previous point
}

// Trend classifies the direction of the leading option's share
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// VolatilityLevel classifies how much the leading option's share fluctuates
type VolatilityLevel string

const (
	VolatilityLow    VolatilityLevel = "low"
	VolatilityMedium VolatilityLevel = "medium"
	VolatilityHigh   VolatilityLevel = "high"
)

// InsightSummary holds the scalar/categorical summaries derived from a series
type InsightSummary struct {
	LeadingOption   string          `json:"leading_option"`
	Trend           Trend           `json:"trend"`
	Volatility      VolatilityLevel `json:"volatility"`
	VolatilityScore float64         `json:"volatility_score"` // 0-100
	PeakBettingHour int             `json:"peak_betting_hour"` // 0-23
	TrendingOption  string          `json:"trending_option"`
	LastMajorShift  *time.Time      `json:"last_major_shift,omitempty"` // nil when no shift found
}

// EventTotals holds the store's authoritative pool figures for an event.
// These may diverge slightly from sums over the ledger (external adjustments);
// the facade trusts them for the latest snapshot.
type EventTotals struct {
	TotalPool        decimal.Decimal `json:"total_pool"`
	ParticipantCount int             `json:"participant_count"`
}

// AnalyticsResponse is the assembled answer to one analytics request
type AnalyticsResponse struct {
	EventID          string           `json:"event_id"`
	Options          []OptionMetadata `json:"options"`
	TotalPool        decimal.Decimal  `json:"total_pool"`
	ParticipantCount int              `json:"participant_count"`
	HistoricalData   []DataPoint      `json:"historical_data"`
	Insights         InsightSummary   `json:"insights"`
	ComputedAt       time.Time        `json:"computed_at"`
}

// BucketPolicy selects how the ledger is discretized into buckets
type BucketPolicy string

const (
	// PolicyFullHistory emits one bucket per occupied minute of the ledger.
	PolicyFullHistory BucketPolicy = "full_history"
	// PolicyRollingWindow emits 24 hourly buckets covering (now-24h, now].
	PolicyRollingWindow BucketPolicy = "rolling_window"
)

// EngineParams holds the tuning knobs of the analytics engine
type EngineParams struct {
	RollingWindowHours     int     // Rolling window span in hourly buckets (24)
	TrendThreshold         float64 // pp change classified as rising/falling (2)
	VolatilityHighCutoff   float64 // mean |delta| above which volatility is high (10)
	VolatilityMediumCutoff float64 // mean |delta| above which volatility is medium (5)
	ShiftThresholdMinute   float64 // major-shift pp threshold for minute buckets (5)
	ShiftThresholdHour     float64 // major-shift pp threshold for hourly buckets (10)
}

// LedgerChangeEvent is the Kafka payload published by the wagering platform
// on bet/option/event row changes. Only the event id is ever trusted; the
// consumer re-derives everything else from the store.
type LedgerChangeEvent struct {
	EventID   string    `json:"event_id"`
	Table     string    `json:"table"`
	ChangedAt time.Time `json:"changed_at"`
}
