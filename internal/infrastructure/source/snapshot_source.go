// Package source holds the non-network tiers of the weekly rate fallback
// chain. Each tier implements service.RateSource and reports
// service.ErrNoData when it cannot serve a week, so the generator can move
// on to the next tier.
package source

import (
	"context"
	"time"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/service"
)

// SnapshotSource serves weeks out of the previously written snapshot,
// preserving last-known-good data across transient upstream outages. The
// dataset is read-only for the lifetime of a generator run.
type SnapshotSource struct {
	dataset *entity.Dataset
}

// NewSnapshotSource creates a source over a loaded prior snapshot. A nil
// dataset (no snapshot yet) yields a source that never has data.
func NewSnapshotSource(dataset *entity.Dataset) *SnapshotSource {
	return &SnapshotSource{dataset: dataset}
}

// Name identifies the source in fallback-chain logs.
func (s *SnapshotSource) Name() string {
	return "prior-snapshot"
}

// FetchWeek returns the prior snapshot's records for the exact week start
// date, untouched, or ErrNoData.
func (s *SnapshotSource) FetchWeek(ctx context.Context, anchor time.Time, direction entity.Direction) ([]entity.RateRecord, error) {
	if s.dataset == nil {
		return nil, service.ErrNoData
	}

	week, ok := s.dataset.Week(anchor.Format("2006-01-02"))
	if !ok {
		return nil, service.ErrNoData
	}

	records := week.Records(direction)
	if len(records) == 0 {
		return nil, service.ErrNoData
	}

	return records, nil
}
