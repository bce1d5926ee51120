package repository

import (
	"context"
	"errors"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
)

// ErrWeekNotFound is returned when the archive holds no records for a week.
var ErrWeekNotFound = errors.New("week not found in archive")

// WeekArchive defines the interface for the last-known-good weekly rate store.
// Fetched weeks are written through to the archive so later runs can fall
// back on them when the upstream API and the prior snapshot both fail.
type WeekArchive interface {
	// StoreWeek saves one week's records for a direction
	StoreWeek(ctx context.Context, direction entity.Direction, startDate string, records []entity.RateRecord) error

	// FindWeek retrieves one week's records for a direction
	FindWeek(ctx context.Context, direction entity.Direction, startDate string) ([]entity.RateRecord, error)
}
