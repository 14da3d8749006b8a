package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cypherlabdev/bet-analytics-service/internal/models"
	"github.com/cypherlabdev/bet-analytics-service/internal/service"
)

// AnalyticsHandler handles HTTP requests for event analytics
type AnalyticsHandler struct {
	service *service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics HTTP handler
func NewAnalyticsHandler(service *service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided router
func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/events/{eventID}", func(r chi.Router) {
		// GET /api/v1/events/{eventID}/analytics?range=24h|full
		r.Get("/analytics", h.handleGetAnalytics)

		// GET /api/v1/events/{eventID}/analytics/realtime
		r.Get("/analytics/realtime", h.handleGetRealtimeSnapshot)

		// GET /api/v1/events/{eventID}/insights
		r.Get("/insights", h.handleGetInsights)

		// POST /api/v1/events/{eventID}/refresh
		r.Post("/refresh", h.handleRefresh)
	})
}

// handleGetAnalytics handles GET /api/v1/events/{eventID}/analytics
func (h *AnalyticsHandler) handleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	policy, err := policyFromRange(r.URL.Query().Get("range"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "range must be 24h or full")
		return
	}

	response, err := h.service.GetAnalytics(r.Context(), eventID, policy)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("event_id", eventID).
			Str("policy", string(policy)).
			Msg("failed to get analytics")
		h.errorResponse(w, statusFor(err), messageFor(err))
		return
	}

	h.jsonResponse(w, http.StatusOK, response)
}

// handleGetRealtimeSnapshot handles GET /api/v1/events/{eventID}/analytics/realtime
func (h *AnalyticsHandler) handleGetRealtimeSnapshot(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	point, err := h.service.ComputeRealtimeSnapshot(r.Context(), eventID)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("event_id", eventID).
			Msg("failed to compute realtime snapshot")
		h.errorResponse(w, statusFor(err), messageFor(err))
		return
	}

	h.jsonResponse(w, http.StatusOK, point)
}

// handleGetInsights handles GET /api/v1/events/{eventID}/insights
func (h *AnalyticsHandler) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	insights, err := h.service.GetInsights(r.Context(), eventID)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("event_id", eventID).
			Msg("failed to get insights")
		h.errorResponse(w, statusFor(err), messageFor(err))
		return
	}

	h.jsonResponse(w, http.StatusOK, insights)
}

// handleRefresh handles POST /api/v1/events/{eventID}/refresh
func (h *AnalyticsHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	if err := h.service.Refresh(r.Context(), eventID); err != nil {
		h.logger.Warn().
			Err(err).
			Str("event_id", eventID).
			Msg("manual refresh failed")
		h.errorResponse(w, statusFor(err), messageFor(err))
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]string{
		"event_id": eventID,
		"status":   "refreshed",
	})
}

// policyFromRange maps the range query parameter onto a bucketing policy.
// The 24-hour rolling window is the default.
func policyFromRange(value string) (models.BucketPolicy, error) {
	switch value {
	case "", "24h":
		return models.PolicyRollingWindow, nil
	case "full":
		return models.PolicyFullHistory, nil
	default:
		return "", fmt.Errorf("unknown range %q", value)
	}
}

// statusFor maps the service error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDataIntegrity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// messageFor keeps client-facing error bodies free of store internals
func messageFor(err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return "event not found"
	case errors.Is(err, models.ErrDataIntegrity):
		return "event data cannot support analytics"
	case errors.Is(err, models.ErrUpstreamUnavailable):
		return "upstream store unavailable, retry later"
	default:
		return "internal error"
	}
}

// jsonResponse writes a JSON response
func (h *AnalyticsHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *AnalyticsHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
