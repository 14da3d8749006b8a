package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
)

// testRedisCacheSetup is a helper struct to hold test dependencies
type testRedisCacheSetup struct {
	cache     *RedisCache
	miniRedis *miniredis.Miniredis
	ctx       context.Context
}

// setupTestRedisCache creates a test cache with miniredis
func setupTestRedisCache(t *testing.T) *testRedisCacheSetup {
	// Create miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)

	logger := zerolog.Nop()

	config := RedisCacheConfig{
		Addr:     mr.Addr(),
		Password: "",
		DB:       0,
		TTL:      5 * time.Minute,
	}

	cache := NewRedisCache(config, logger)
	ctx := context.Background()

	return &testRedisCacheSetup{
		cache:     cache,
		miniRedis: mr,
		ctx:       ctx,
	}
}

// cleanup cleans up test resources
func (s *testRedisCacheSetup) cleanup() {
	s.cache.Close()
	s.miniRedis.Close()
}

// sampleResponse builds an analytics response fixture for cache tests
func sampleResponse(eventID string) *models.AnalyticsResponse {
	computedAt := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	return &models.AnalyticsResponse{
		EventID: eventID,
		Options: []models.OptionMetadata{
			{ID: "opt-a", Label: "Option A", DisplayColor: "#6366f1"},
			{ID: "opt-b", Label: "Option B", DisplayColor: "#ec4899"},
		},
		TotalPool:        decimal.NewFromFloat(1250.50),
		ParticipantCount: 42,
		HistoricalData: []models.DataPoint{
			{
				Timestamp:        computedAt.Add(-time.Hour),
				Percentages:      map[string]float64{"opt-a": 60.0, "opt-b": 40.0},
				TotalPool:        decimal.NewFromFloat(1000),
				ParticipantCount: 30,
				BettingVelocity:  12,
				Momentum:         map[string]float64{"opt-a": 0, "opt-b": 0},
			},
			{
				Timestamp:        computedAt,
				Percentages:      map[string]float64{"opt-a": 55.5, "opt-b": 44.5},
				TotalPool:        decimal.NewFromFloat(1250.50),
				ParticipantCount: 42,
				BettingVelocity:  9,
				Momentum:         map[string]float64{"opt-a": -4.5, "opt-b": 4.5},
			},
		},
		Insights: models.InsightSummary{
			LeadingOption:   "opt-a",
			Trend:           models.TrendFalling,
			Volatility:      models.VolatilityMedium,
			VolatilityScore: 45.0,
			PeakBettingHour: 20,
			TrendingOption:  "opt-b",
		},
		ComputedAt: computedAt,
	}
}

// TestNewRedisCache tests cache creation
func TestNewRedisCache(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NotNil(t, setup.cache)
	assert.NotNil(t, setup.cache.client)
	assert.Equal(t, 5*time.Minute, setup.cache.ttl)
}

// TestSetAnalytics_Success tests successful response caching
func TestSetAnalytics_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetAnalytics(setup.ctx, models.PolicyRollingWindow, sampleResponse("event-123"))

	assert.NoError(t, err)

	// Verify data was cached
	key := "analytics:event-123:rolling_window"
	exists := setup.miniRedis.Exists(key)
	assert.True(t, exists)
}

// TestSetAnalytics_ContextCanceled tests set operation with canceled context
func TestSetAnalytics_ContextCanceled(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := setup.cache.SetAnalytics(ctx, models.PolicyRollingWindow, sampleResponse("event-123"))

	assert.Error(t, err)
}

// TestGetAnalytics_Success tests a full cache round trip
func TestGetAnalytics_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	original := sampleResponse("event-123")

	// First, cache the response
	err := setup.cache.SetAnalytics(setup.ctx, models.PolicyRollingWindow, original)
	require.NoError(t, err)

	// Then retrieve it
	retrieved, err := setup.cache.GetAnalytics(setup.ctx, "event-123", models.PolicyRollingWindow)

	assert.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, original.EventID, retrieved.EventID)
	assert.Equal(t, original.Options, retrieved.Options)
	assert.Equal(t, original.ParticipantCount, retrieved.ParticipantCount)
	assert.True(t, original.TotalPool.Equal(retrieved.TotalPool))
	require.Len(t, retrieved.HistoricalData, 2)
	assert.Equal(t, original.HistoricalData[1].Percentages, retrieved.HistoricalData[1].Percentages)
	assert.Equal(t, original.HistoricalData[1].Momentum, retrieved.HistoricalData[1].Momentum)
	assert.Equal(t, original.Insights.LeadingOption, retrieved.Insights.LeadingOption)
	assert.Equal(t, original.Insights.Trend, retrieved.Insights.Trend)
	assert.Equal(t, original.Insights.VolatilityScore, retrieved.Insights.VolatilityScore)
	assert.Nil(t, retrieved.Insights.LastMajorShift)
}

// TestGetAnalytics_NotFound tests retrieval when nothing is cached
func TestGetAnalytics_NotFound(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	retrieved, err := setup.cache.GetAnalytics(setup.ctx, "nonexistent", models.PolicyRollingWindow)

	assert.Error(t, err)
	assert.Nil(t, retrieved)
	assert.Contains(t, err.Error(), "not found in cache")
}

// TestGetAnalytics_ExpiredKey tests retrieval of an expired entry
func TestGetAnalytics_ExpiredKey(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetAnalytics(setup.ctx, models.PolicyRollingWindow, sampleResponse("event-123"))
	require.NoError(t, err)

	// Fast forward time to expire the key
	setup.miniRedis.FastForward(10 * time.Minute)

	retrieved, err := setup.cache.GetAnalytics(setup.ctx, "event-123", models.PolicyRollingWindow)

	assert.Error(t, err)
	assert.Nil(t, retrieved)
}

// TestGetAnalytics_PoliciesIndependent tests that each policy has its own
// cache entry
func TestGetAnalytics_PoliciesIndependent(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetAnalytics(setup.ctx, models.PolicyRollingWindow, sampleResponse("event-123"))
	require.NoError(t, err)

	// Rolling entry hits
	retrieved, err := setup.cache.GetAnalytics(setup.ctx, "event-123", models.PolicyRollingWindow)
	assert.NoError(t, err)
	assert.NotNil(t, retrieved)

	// Full-history entry misses
	retrieved, err = setup.cache.GetAnalytics(setup.ctx, "event-123", models.PolicyFullHistory)
	assert.Error(t, err)
	assert.Nil(t, retrieved)
}

// TestInvalidateAnalytics tests that invalidation drops every policy entry
// for the event but leaves the snapshot baseline alone
func TestInvalidateAnalytics(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	require.NoError(t, setup.cache.SetAnalytics(setup.ctx, models.PolicyRollingWindow, sampleResponse("event-123")))
	require.NoError(t, setup.cache.SetAnalytics(setup.ctx, models.PolicyFullHistory, sampleResponse("event-123")))
	require.NoError(t, setup.cache.SetAnalytics(setup.ctx, models.PolicyRollingWindow, sampleResponse("event-456")))
	require.NoError(t, setup.cache.SetSnapshot(setup.ctx, "event-123", &sampleResponse("event-123").HistoricalData[1]))

	err := setup.cache.InvalidateAnalytics(setup.ctx, "event-123")

	assert.NoError(t, err)
	assert.False(t, setup.miniRedis.Exists("analytics:event-123:rolling_window"))
	assert.False(t, setup.miniRedis.Exists("analytics:event-123:full_history"))
	// Other events and the snapshot baseline are untouched
	assert.True(t, setup.miniRedis.Exists("analytics:event-456:rolling_window"))
	assert.True(t, setup.miniRedis.Exists("snapshot:event-123"))
}

// TestInvalidateAnalytics_NothingCached tests invalidation of an absent event
func TestInvalidateAnalytics_NothingCached(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.InvalidateAnalytics(setup.ctx, "nonexistent")

	assert.NoError(t, err)
}

// TestSnapshot_RoundTrip tests snapshot store and retrieve
func TestSnapshot_RoundTrip(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	point := &models.DataPoint{
		Timestamp:        time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		Percentages:      map[string]float64{"opt-a": 62.5, "opt-b": 37.5},
		TotalPool:        decimal.NewFromFloat(800),
		ParticipantCount: 17,
		BettingVelocity:  4,
		Momentum:         map[string]float64{"opt-a": 2.5, "opt-b": -2.5},
	}

	err := setup.cache.SetSnapshot(setup.ctx, "event-123", point)
	require.NoError(t, err)

	retrieved, err := setup.cache.GetSnapshot(setup.ctx, "event-123")

	assert.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, point.Percentages, retrieved.Percentages)
	assert.Equal(t, point.Momentum, retrieved.Momentum)
	assert.Equal(t, point.ParticipantCount, retrieved.ParticipantCount)
	assert.Equal(t, point.BettingVelocity, retrieved.BettingVelocity)
	assert.True(t, point.TotalPool.Equal(retrieved.TotalPool))
	assert.True(t, point.Timestamp.Equal(retrieved.Timestamp))
}

// TestGetSnapshot_NotFound tests snapshot retrieval when none exists
func TestGetSnapshot_NotFound(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	retrieved, err := setup.cache.GetSnapshot(setup.ctx, "nonexistent")

	assert.Error(t, err)
	assert.Nil(t, retrieved)
	assert.Contains(t, err.Error(), "not found in cache")
}

// TestCache_TTLRespected tests that TTL is properly set
func TestCache_TTLRespected(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.SetAnalytics(setup.ctx, models.PolicyRollingWindow, sampleResponse("event-123"))
	require.NoError(t, err)

	// Check TTL is set
	key := "analytics:event-123:rolling_window"
	ttl := setup.miniRedis.TTL(key)
	assert.True(t, ttl > 0)
	assert.True(t, ttl <= 5*time.Minute)
}

// TestPing_Success tests successful Redis ping
func TestPing_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.Ping(setup.ctx)

	assert.NoError(t, err)
}

// TestPing_RedisDown tests ping when Redis is down
func TestPing_RedisDown(t *testing.T) {
	setup := setupTestRedisCache(t)

	// Close Redis before ping
	setup.miniRedis.Close()

	err := setup.cache.Ping(setup.ctx)

	assert.Error(t, err)

	// Don't call cleanup() since we already closed Redis
	setup.cache.Close()
}

// TestClose tests cache closing
func TestClose(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.miniRedis.Close()

	err := setup.cache.Close()

	assert.NoError(t, err)
}

// TestCache_ConcurrentAccess tests thread safety
func TestCache_ConcurrentAccess(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	response := sampleResponse("event-123")

	// Set initial response
	err := setup.cache.SetAnalytics(setup.ctx, models.PolicyRollingWindow, response)
	require.NoError(t, err)

	// Run concurrent reads and writes
	done := make(chan bool)

	// Writers
	for i := 0; i < 5; i++ {
		go func() {
			err := setup.cache.SetAnalytics(setup.ctx, models.PolicyRollingWindow, response)
			assert.NoError(t, err)
			done <- true
		}()
	}

	// Readers
	for i := 0; i < 5; i++ {
		go func() {
			retrieved, err := setup.cache.GetAnalytics(setup.ctx, "event-123", models.PolicyRollingWindow)
			assert.NoError(t, err)
			assert.NotNil(t, retrieved)
			done <- true
		}()
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}
}

// TestNewRedisCache_Configuration tests cache creation with different configurations
func TestNewRedisCache_Configuration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	logger := zerolog.Nop()

	configs := []RedisCacheConfig{
		{
			Addr:     mr.Addr(),
			Password: "",
			DB:       0,
			TTL:      5 * time.Minute,
		},
		{
			Addr:     mr.Addr(),
			Password: "",
			DB:       1,
			TTL:      30 * time.Minute,
		},
		{
			Addr:     mr.Addr(),
			Password: "test-password",
			DB:       0,
			TTL:      1 * time.Hour,
		},
	}

	for _, config := range configs {
		cache := NewRedisCache(config, logger)
		assert.NotNil(t, cache)
		assert.Equal(t, config.TTL, cache.ttl)
		cache.Close()
	}
}
