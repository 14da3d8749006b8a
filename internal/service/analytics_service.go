package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
	"github.com/cypherlabdev/bet-analytics-service/pkg/analytics"
)

// optionPalette supplies display colors, indexed by the option's position in
// the metadata list. Positions beyond the palette wrap around. Colors are
// assigned at response assembly, never stored, so recomputation over
// unchanged metadata always yields the same colors.
var optionPalette = []string{
	"#6366f1",
	"#ec4899",
	"#f59e0b",
	"#10b981",
	"#3b82f6",
	"#a855f7",
	"#ef4444",
	"#14b8a6",
}

// AnalyticsService orchestrates ledger reads, the analytics engine, and caching
type AnalyticsService struct {
	store  Store
	cache  Cache
	engine *analytics.Engine
	now    func() time.Time
	logger zerolog.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	store Store,
	cache Cache,
	engine *analytics.Engine,
	logger zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		store:  store,
		cache:  cache,
		engine: engine,
		now:    time.Now,
		logger: logger.With().Str("component", "analytics_service").Logger(),
	}
}

// GetAnalytics retrieves event analytics with cache-first strategy
func (s *AnalyticsService) GetAnalytics(ctx context.Context, eventID string, policy models.BucketPolicy) (*models.AnalyticsResponse, error) {
	// Try cache first
	cached, err := s.cache.GetAnalytics(ctx, eventID, policy)
	if err == nil && cached != nil {
		s.logger.Debug().
			Str("event_id", eventID).
			Str("policy", string(policy)).
			Msg("cache hit for analytics")
		return cached, nil
	}

	// Cache miss - recompute from the authoritative store
	response, err := s.ComputeAnalytics(ctx, eventID, policy)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetAnalytics(ctx, policy, response); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_id", eventID).
			Str("policy", string(policy)).
			Msg("failed to cache analytics response")
		// Don't fail the request on cache errors
	}

	return response, nil
}

// ComputeAnalytics rebuilds the analytics response for an event straight from
// the store: authoritative totals, option metadata, and the full bet ledger in
// one logical read, then the engine pipeline over that snapshot. The cache is
// neither consulted nor populated here.
func (s *AnalyticsService) ComputeAnalytics(ctx context.Context, eventID string, policy models.BucketPolicy) (*models.AnalyticsResponse, error) {
	totals, err := s.store.GetEventTotals(ctx, eventID)
	if err != nil {
		return nil, err
	}

	options, err := s.store.GetOptions(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("event %s has no options: %w", eventID, models.ErrDataIntegrity)
	}
	assignDisplayColors(options)

	bets, err := s.store.GetBets(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := validateLedger(eventID, bets, options); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	series := s.engine.BuildHistory(bets, options, now, policy)
	insights := s.engine.ExtractInsights(series, bets, options, policy)

	// The store's totals are authoritative for the present; computed
	// cumulative sums stand for history.
	if len(series) > 0 {
		last := &series[len(series)-1]
		last.TotalPool = totals.TotalPool
		last.ParticipantCount = totals.ParticipantCount
	}

	response := &models.AnalyticsResponse{
		EventID:          eventID,
		Options:          options,
		TotalPool:        totals.TotalPool,
		ParticipantCount: totals.ParticipantCount,
		HistoricalData:   series,
		Insights:         insights,
		ComputedAt:       now,
	}

	s.logger.Info().
		Str("event_id", eventID).
		Str("policy", string(policy)).
		Int("bet_count", len(bets)).
		Int("point_count", len(series)).
		Str("leading_option", insights.LeadingOption).
		Str("trend", string(insights.Trend)).
		Msg("computed analytics")

	return response, nil
}

// ComputeRealtimeSnapshot derives the event's current standing without
// replaying the ledger: current per-option totals, the trailing-hour bet
// count, and momentum relative to the previous stored snapshot. The new
// snapshot replaces the stored one so the next call has a baseline.
func (s *AnalyticsService) ComputeRealtimeSnapshot(ctx context.Context, eventID string) (*models.DataPoint, error) {
	totals, err := s.store.GetEventTotals(ctx, eventID)
	if err != nil {
		return nil, err
	}

	options, err := s.store.GetOptions(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("event %s has no options: %w", eventID, models.ErrDataIntegrity)
	}

	optionTotals, err := s.store.GetOptionTotals(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := validateTotals(eventID, optionTotals, options); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	recentBets, err := s.store.CountBetsSince(ctx, eventID, now.Add(-time.Hour))
	if err != nil {
		return nil, err
	}

	previous, err := s.cache.GetSnapshot(ctx, eventID)
	if err != nil {
		// First snapshot for this event, or cache trouble: momentum
		// starts from zero either way.
		previous = nil
	}

	point := s.engine.BuildSnapshot(options, optionTotals, previous, now)
	point.TotalPool = totals.TotalPool
	point.ParticipantCount = totals.ParticipantCount
	point.BettingVelocity = recentBets

	if err := s.cache.SetSnapshot(ctx, eventID, &point); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_id", eventID).
			Msg("failed to store realtime snapshot")
		// Don't fail the request on cache errors
	}

	s.logger.Debug().
		Str("event_id", eventID).
		Int("recent_bets", recentBets).
		Msg("computed realtime snapshot")

	return &point, nil
}

// GetInsights derives the insight summary by running the analytics path and
// discarding the series
func (s *AnalyticsService) GetInsights(ctx context.Context, eventID string) (*models.InsightSummary, error) {
	response, err := s.GetAnalytics(ctx, eventID, models.PolicyRollingWindow)
	if err != nil {
		return nil, err
	}
	return &response.Insights, nil
}

// Refresh recomputes an event's analytics from the authoritative store and
// replaces whatever the cache holds. Triggers carry no trustworthy payload,
// so the path is identical whether the trigger was a ledger change, a timer
// tick, or a duplicate delivery.
func (s *AnalyticsService) Refresh(ctx context.Context, eventID string) error {
	response, err := s.ComputeAnalytics(ctx, eventID, models.PolicyRollingWindow)
	if err != nil {
		return err
	}

	// Drop every cached range for the event before re-caching, so a stale
	// full-history response cannot outlive the change that invalidated it.
	if err := s.cache.InvalidateAnalytics(ctx, eventID); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_id", eventID).
			Msg("failed to invalidate cached analytics")
	}

	if err := s.cache.SetAnalytics(ctx, models.PolicyRollingWindow, response); err != nil {
		s.logger.Warn().
			Err(err).
			Str("event_id", eventID).
			Msg("failed to cache refreshed analytics")
	}

	if _, err := s.ComputeRealtimeSnapshot(ctx, eventID); err != nil {
		return err
	}

	s.logger.Info().
		Str("event_id", eventID).
		Str("leading_option", response.Insights.LeadingOption).
		Msg("refreshed event analytics")

	return nil
}

// assignDisplayColors colors options by their position in the metadata list
func assignDisplayColors(options []models.OptionMetadata) {
	for i := range options {
		options[i].DisplayColor = optionPalette[i%len(optionPalette)]
	}
}

// validateLedger rejects ledgers that reference options the event does not
// have. Aggregating around them would silently misstate every share.
func validateLedger(eventID string, bets []models.BetRecord, options []models.OptionMetadata) error {
	known := make(map[string]struct{}, len(options))
	for _, opt := range options {
		known[opt.ID] = struct{}{}
	}
	for _, bet := range bets {
		if _, ok := known[bet.OptionID]; !ok {
			return fmt.Errorf("event %s: bet %s references unknown option %s: %w",
				eventID, bet.ID, bet.OptionID, models.ErrDataIntegrity)
		}
	}
	return nil
}

// validateTotals rejects per-option totals for options the event does not have
func validateTotals(eventID string, totals map[string]decimal.Decimal, options []models.OptionMetadata) error {
	known := make(map[string]struct{}, len(options))
	for _, opt := range options {
		known[opt.ID] = struct{}{}
	}
	for optionID := range totals {
		if _, ok := known[optionID]; !ok {
			return fmt.Errorf("event %s: ledger totals reference unknown option %s: %w",
				eventID, optionID, models.ErrDataIntegrity)
		}
	}
	return nil
}
