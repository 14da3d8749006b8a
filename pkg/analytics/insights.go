package analytics

import (
	"math"
	"time"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// ExtractInsights derives the summary signals from a finished series plus the
// raw ledger. Every field is computed independently: a degenerate input
// (empty ledger, single point) yields that field's default instead of an
// error, and no field can come out NaN.
func (e *Engine) ExtractInsights(series []models.DataPoint, bets []models.BetRecord, options []models.OptionMetadata, policy models.BucketPolicy) models.InsightSummary {
	leading := leadingOption(series, options)

	summary := models.InsightSummary{
		LeadingOption:   leading,
		Trend:           e.classifyTrend(series, leading),
		PeakBettingHour: peakBettingHour(bets),
		TrendingOption:  trendingOption(series, options),
		LastMajorShift:  lastMajorShift(series, options, e.shiftThreshold(policy)),
	}
	summary.Volatility, summary.VolatilityScore = e.classifyVolatility(series, leading)

	return summary
}

// leadingOption is the option with the highest share in the final DataPoint,
// ties broken by option-list order. Empty when there is no series or no
// option set to rank.
func leadingOption(series []models.DataPoint, options []models.OptionMetadata) string {
	if len(series) == 0 || len(options) == 0 {
		return ""
	}

	final := series[len(series)-1]
	leading := options[0].ID
	best := final.Percentages[leading]
	for _, opt := range options[1:] {
		if pct := final.Percentages[opt.ID]; pct > best {
			leading = opt.ID
			best = pct
		}
	}
	return leading
}

// classifyTrend compares the leading option's share across the last 3 points
// (2 when only 2 exist). Fewer than 2 points is always stable.
func (e *Engine) classifyTrend(series []models.DataPoint, leading string) models.Trend {
	if len(series) < 2 || leading == "" {
		return models.TrendStable
	}

	window := 3
	if len(series) < window {
		window = len(series)
	}
	oldest := series[len(series)-window]
	newest := series[len(series)-1]
	change := newest.Percentages[leading] - oldest.Percentages[leading]

	switch {
	case change > e.params.TrendThreshold:
		return models.TrendRising
	case change < -e.params.TrendThreshold:
		return models.TrendFalling
	default:
		return models.TrendStable
	}
}

// classifyVolatility averages the absolute share delta between consecutive
// points for the leading option and maps it onto a 0-100 score plus a class.
func (e *Engine) classifyVolatility(series []models.DataPoint, leading string) (models.VolatilityLevel, float64) {
	if len(series) < 2 || leading == "" {
		return models.VolatilityLow, 0
	}

	var sum float64
	for i := 1; i < len(series); i++ {
		sum += math.Abs(series[i].Percentages[leading] - series[i-1].Percentages[leading])
	}
	avgDelta := sum / float64(len(series)-1)
	score := round2(math.Min(100, avgDelta*10))

	switch {
	case avgDelta > e.params.VolatilityHighCutoff:
		return models.VolatilityHigh, score
	case avgDelta > e.params.VolatilityMediumCutoff:
		return models.VolatilityMedium, score
	default:
		return models.VolatilityLow, score
	}
}

// peakBettingHour is the hour of day (0-23) with the most bets across the
// whole ledger, ties broken by the lowest hour. 0 for an empty ledger.
func peakBettingHour(bets []models.BetRecord) int {
	var counts [24]int
	for _, bet := range bets {
		counts[bet.PlacedAt.Hour()]++
	}

	peak := 0
	for hour := 1; hour < 24; hour++ {
		if counts[hour] > counts[peak] {
			peak = hour
		}
	}
	return peak
}

// trendingOption is the option with the highest momentum in the final
// DataPoint, ties broken by option-list order.
func trendingOption(series []models.DataPoint, options []models.OptionMetadata) string {
	if len(series) == 0 || len(options) == 0 {
		return ""
	}

	final := series[len(series)-1]
	trending := options[0].ID
	best := final.Momentum[trending]
	for _, opt := range options[1:] {
		if m := final.Momentum[opt.ID]; m > best {
			trending = opt.ID
			best = m
		}
	}
	return trending
}

// lastMajorShift scans from newest to oldest for the most recent consecutive
// pair where any option's share moved by more than the threshold, and reports
// the later point's timestamp. Nil when no such transition exists.
func lastMajorShift(series []models.DataPoint, options []models.OptionMetadata, threshold float64) *time.Time {
	for i := len(series) - 1; i >= 1; i-- {
		for _, opt := range options {
			delta := math.Abs(series[i].Percentages[opt.ID] - series[i-1].Percentages[opt.ID])
			if delta > threshold {
				shiftedAt := series[i].Timestamp
				return &shiftedAt
			}
		}
	}
	return nil
}

// shiftThreshold selects the major-shift threshold for the bucketing policy:
// minute-resolution series move in smaller steps than hourly ones.
func (e *Engine) shiftThreshold(policy models.BucketPolicy) float64 {
	if policy == models.PolicyRollingWindow {
		return e.params.ShiftThresholdHour
	}
	return e.params.ShiftThresholdMinute
}
