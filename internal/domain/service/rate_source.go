package service

import (
	"context"
	"errors"
	"time"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
)

// ErrNoData signals that a source has no records for the requested week.
// It is the expected "try the next tier" result of the fallback chain and
// is never logged as a failure.
var ErrNoData = errors.New("no rate data available")

// RateSource defines the interface for one tier of the weekly rate fallback
// chain (live customs fetch, prior snapshot, archive, synthetic data).
type RateSource interface {
	// Name identifies the source in logs and source labels
	Name() string

	// FetchWeek returns the records for the week anchored at the given
	// Sunday, or ErrNoData when the source cannot serve that week
	FetchWeek(ctx context.Context, anchor time.Time, direction entity.Direction) ([]entity.RateRecord, error)
}
