package handler

import "github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"

// LatestWeeksResponse pairs the newest week with the previous one for
// current-vs-previous comparison views
type LatestWeeksResponse struct {
	Current  *entity.WeekBucket `json:"current"`
	Previous *entity.WeekBucket `json:"previous"`
}

// SeriesResponse carries one currency's weekly rates keyed by week start date
type SeriesResponse struct {
	Currency string             `json:"currency"`
	Type     entity.Direction   `json:"type"`
	Points   map[string]float64 `json:"points"`
}

// HealthResponse represents the health endpoint payload
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents a standardized error payload
type ErrorResponse struct {
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description"`
	RequestID   string `json:"request_id"`
}
