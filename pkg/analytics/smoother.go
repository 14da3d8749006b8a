package analytics

import (
	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// 3-point weighted moving average over the percentage and momentum series.
const (
	smoothPrevWeight    = 0.2
	smoothCurrentWeight = 0.6
	smoothNextWeight    = 0.2
)

// smoothSeries returns a same-length copy of the series with interior
// percentages and momentum replaced by a 3-point weighted average. The first
// and last points pass through unchanged, as do TotalPool, BettingVelocity
// and ParticipantCount everywhere. Series shorter than 3 points are returned
// as-is. The input is never mutated.
func smoothSeries(series []models.DataPoint) []models.DataPoint {
	if len(series) < 3 {
		return series
	}

	out := make([]models.DataPoint, len(series))
	out[0] = clonePoint(series[0])
	out[len(series)-1] = clonePoint(series[len(series)-1])

	for i := 1; i < len(series)-1; i++ {
		point := clonePoint(series[i])
		point.Percentages = weightedAverage(series[i-1].Percentages, series[i].Percentages, series[i+1].Percentages)
		point.Momentum = weightedAverage(series[i-1].Momentum, series[i].Momentum, series[i+1].Momentum)
		out[i] = point
	}

	return out
}

// weightedAverage blends three per-option maps, keyed off the current point.
// Missing neighbor entries read as zero.
func weightedAverage(prev, current, next map[string]float64) map[string]float64 {
	blended := make(map[string]float64, len(current))
	for optionID, value := range current {
		blended[optionID] = round2(
			smoothPrevWeight*prev[optionID] +
				smoothCurrentWeight*value +
				smoothNextWeight*next[optionID])
	}
	return blended
}

// clonePoint deep-copies a DataPoint so smoothing never aliases input maps
func clonePoint(p models.DataPoint) models.DataPoint {
	out := p
	out.Percentages = make(map[string]float64, len(p.Percentages))
	for k, v := range p.Percentages {
		out.Percentages[k] = v
	}
	out.Momentum = make(map[string]float64, len(p.Momentum))
	for k, v := range p.Momentum {
		out.Momentum[k] = v
	}
	return out
}
