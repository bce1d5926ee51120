package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/repository"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/service"
)

// ArchiveSource serves weeks out of the persisted week archive.
type ArchiveSource struct {
	archive repository.WeekArchive
}

// NewArchiveSource creates a source over a week archive
func NewArchiveSource(archive repository.WeekArchive) *ArchiveSource {
	return &ArchiveSource{archive: archive}
}

// Name identifies the source in fallback-chain logs.
func (s *ArchiveSource) Name() string {
	return "week-archive"
}

// FetchWeek returns the archived records for the week, mapping an absent
// week to ErrNoData.
func (s *ArchiveSource) FetchWeek(ctx context.Context, anchor time.Time, direction entity.Direction) ([]entity.RateRecord, error) {
	records, err := s.archive.FindWeek(ctx, direction, anchor.Format("2006-01-02"))
	if errors.Is(err, repository.ErrWeekNotFound) {
		return nil, service.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("archive lookup: %w", err)
	}

	if len(records) == 0 {
		return nil, service.ErrNoData
	}

	return records, nil
}
