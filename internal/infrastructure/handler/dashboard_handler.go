package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/haneulsoft/customs-fx-dashboard/internal/application/service"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/repository"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/cache"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/logger"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/middleware"
)

// DashboardHandler serves the snapshot and its derived aggregations. All
// endpoints are read-only views over the generator's output.
type DashboardHandler struct {
	cache  *cache.SnapshotCache
	logger logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(snapshotCache *cache.SnapshotCache, log logger.Logger) *DashboardHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &DashboardHandler{
		cache:  snapshotCache,
		logger: log,
	}
}

// GetSnapshot returns the full dataset as persisted
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	dataset, ok := h.loadDataset(w, r, requestID)
	if !ok {
		return
	}

	// The frontend contract is a single uncached GET
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dataset)
}

// GetLatestWeeks returns the newest and second-newest week slices
func (h *DashboardHandler) GetLatestWeeks(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	dataset, ok := h.loadDataset(w, r, requestID)
	if !ok {
		return
	}

	comparison := service.LatestWeeks(dataset)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LatestWeeksResponse{
		Current:  comparison.Current,
		Previous: comparison.Previous,
	})
}

// GetCurrencySeries returns one currency's weekly rates for charting
func (h *DashboardHandler) GetCurrencySeries(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	currency := mux.Vars(r)["currency"]

	direction := entity.DirectionImport
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		switch entity.Direction(typeParam) {
		case entity.DirectionImport, entity.DirectionExport:
			direction = entity.Direction(typeParam)
		default:
			h.logger.Warn("Invalid direction parameter", map[string]interface{}{
				"request_id": requestID,
				"type":       typeParam,
			})
			sendErrorResponse(w, h.logger, "Invalid direction",
				"The type parameter must be \"import\" or \"export\"", http.StatusBadRequest, requestID)
			return
		}
	}

	dataset, ok := h.loadDataset(w, r, requestID)
	if !ok {
		return
	}

	points := service.CurrencySeries(dataset, currency, direction)
	if len(points) == 0 {
		sendErrorResponse(w, h.logger, "Currency not found",
			"No rates recorded for the requested currency", http.StatusNotFound, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SeriesResponse{
		Currency: currency,
		Type:     direction,
		Points:   points,
	})
}

// Health reports service liveness
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// RegisterRoutes registers the dashboard handler routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/snapshot", h.GetSnapshot).Methods("GET")
	router.HandleFunc("/api/weeks/latest", h.GetLatestWeeks).Methods("GET")
	router.HandleFunc("/api/series/{currency}", h.GetCurrencySeries).Methods("GET")
	router.HandleFunc("/health", h.Health).Methods("GET")

	h.logger.Info("Dashboard routes registered", map[string]interface{}{
		"routes": []string{
			"GET /api/snapshot",
			"GET /api/weeks/latest",
			"GET /api/series/{currency}",
			"GET /health",
		},
	})
}

// loadDataset fetches the cached dataset, writing the error response itself
// when the snapshot is unavailable.
func (h *DashboardHandler) loadDataset(w http.ResponseWriter, r *http.Request, requestID string) (*entity.Dataset, bool) {
	dataset, err := h.cache.Get(r.Context())
	if err == nil {
		return dataset, true
	}

	if errors.Is(err, repository.ErrSnapshotNotFound) {
		h.logger.Warn("Snapshot not generated yet", map[string]interface{}{
			"request_id": requestID,
		})
		sendErrorResponse(w, h.logger, "Snapshot not available",
			"No dataset has been generated yet", http.StatusServiceUnavailable, requestID)
		return nil, false
	}

	h.logger.Error("Failed to load snapshot", map[string]interface{}{
		"request_id": requestID,
		"error":      err.Error(),
	})
	sendErrorResponse(w, h.logger, "Internal server error",
		"An unexpected error occurred while loading the snapshot",
		http.StatusInternalServerError, requestID)
	return nil, false
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	json.NewEncoder(w).Encode(resp)
}
