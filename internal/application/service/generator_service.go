// Package service internal/application/service/generator_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/repository"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/service"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/logger"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/source"
)

// sourceLabel marks snapshots produced by this generator
const sourceLabel = "customs-weekly-fx"

// GeneratorService runs one dataset generation cycle: compute the recent
// weekly anchors, resolve each week through the rate source fallback chain
// and persist the assembled snapshot. The chain order is fixed: live fetch,
// prior snapshot, week archive, synthetic data.
type GeneratorService struct {
	snapshotRepo repository.SnapshotRepository
	archive      repository.WeekArchive
	live         service.RateSource
	weeks        int
	logger       logger.Logger
	nowFn        func() time.Time
}

// NewGeneratorService creates a new generator service. live and archive may
// be nil; the corresponding chain tiers are then skipped.
func NewGeneratorService(snapshotRepo repository.SnapshotRepository, archive repository.WeekArchive, live service.RateSource, weeks int, log logger.Logger) *GeneratorService {
	if weeks <= 0 {
		weeks = 4
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &GeneratorService{
		snapshotRepo: snapshotRepo,
		archive:      archive,
		live:         live,
		weeks:        weeks,
		logger:       log,
		nowFn:        time.Now,
	}
}

// directionResult carries one direction's outcome for a week
type directionResult struct {
	records []entity.RateRecord
	origin  service.RateSource
}

// Run executes one full generation cycle and returns the persisted dataset.
// A failing week is dropped from the output; a failing snapshot write is the
// only fatal outcome.
func (s *GeneratorService) Run(ctx context.Context) (*entity.Dataset, error) {
	prior := s.loadPrior(ctx)
	chain := s.buildChain(prior)

	anchors := RecentSundays(s.nowFn(), s.weeks)

	s.logger.Info("Starting generation cycle", map[string]interface{}{
		"weeks":       len(anchors),
		"first":       DashDate(anchors[0]),
		"last":        DashDate(anchors[len(anchors)-1]),
		"prior_weeks": priorWeekCount(prior),
	})

	weeks := make([]entity.WeekBucket, 0, len(anchors))
	for _, anchor := range anchors {
		bucket := s.collectWeek(ctx, chain, anchor)
		if bucket.IsEmpty() {
			s.logger.Warn("Week unavailable from every source, omitting", map[string]interface{}{
				"week": DashDate(anchor),
			})
			continue
		}

		weeks = append(weeks, bucket)
	}

	// Generation timestamp is captured at write time, not at fetch start
	dataset := &entity.Dataset{
		GeneratedAt: s.nowFn().UTC().Format(time.RFC3339),
		Source:      sourceLabel,
		Weeks:       weeks,
	}

	if err := s.snapshotRepo.Save(ctx, dataset); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	s.logger.Info("Generation cycle completed", map[string]interface{}{
		"weeks":        len(dataset.Weeks),
		"generated_at": dataset.GeneratedAt,
	})

	return dataset, nil
}

// loadPrior reads the previous snapshot for fallback reuse. Absence is a
// normal first-run state.
func (s *GeneratorService) loadPrior(ctx context.Context) *entity.Dataset {
	prior, err := s.snapshotRepo.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrSnapshotNotFound) {
			s.logger.Warn("Prior snapshot unreadable, continuing without it", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil
	}

	return prior
}

// buildChain assembles the fallback chain in priority order
func (s *GeneratorService) buildChain(prior *entity.Dataset) []service.RateSource {
	chain := make([]service.RateSource, 0, 4)

	if s.live != nil {
		chain = append(chain, s.live)
	}

	chain = append(chain, source.NewSnapshotSource(prior))

	if s.archive != nil {
		chain = append(chain, source.NewArchiveSource(s.archive))
	}

	chain = append(chain, source.NewMockSource())

	return chain
}

// collectWeek resolves both directions of one week. The two directional
// fetches run concurrently; anchors themselves are processed sequentially to
// bound concurrent outbound requests.
func (s *GeneratorService) collectWeek(ctx context.Context, chain []service.RateSource, anchor time.Time) entity.WeekBucket {
	var results [2]directionResult
	var wg sync.WaitGroup

	for i, direction := range entity.Directions {
		wg.Add(1)
		go func(i int, direction entity.Direction) {
			defer wg.Done()
			results[i] = s.fetchWithFallback(ctx, chain, anchor, direction)
		}(i, direction)
	}

	wg.Wait()

	bucket := entity.WeekBucket{StartDate: DashDate(anchor)}
	for i, direction := range entity.Directions {
		bucket.SetRecords(direction, results[i].records)

		// Fresh live data is written through to the archive for later runs
		if s.archive != nil && results[i].origin == s.live && s.live != nil {
			if err := s.archive.StoreWeek(ctx, direction, DashDate(anchor), results[i].records); err != nil {
				s.logger.Warn("Failed to archive week", map[string]interface{}{
					"week":      DashDate(anchor),
					"direction": direction,
					"error":     err.Error(),
				})
			}
		}
	}

	return bucket
}

// fetchWithFallback walks the chain in order until a source yields records.
// ErrNoData moves on silently; any other failure is logged as a warning
// before falling back.
func (s *GeneratorService) fetchWithFallback(ctx context.Context, chain []service.RateSource, anchor time.Time, direction entity.Direction) directionResult {
	for _, src := range chain {
		records, err := src.FetchWeek(ctx, anchor, direction)
		if err == nil && len(records) > 0 {
			s.logger.Debug("Week resolved", map[string]interface{}{
				"week":      DashDate(anchor),
				"direction": direction,
				"source":    src.Name(),
				"records":   len(records),
			})
			return directionResult{records: records, origin: src}
		}

		if err != nil && !errors.Is(err, service.ErrNoData) {
			s.logger.Warn("Rate source failed, falling back", map[string]interface{}{
				"week":      DashDate(anchor),
				"direction": direction,
				"source":    src.Name(),
				"error":     err.Error(),
			})
		}
	}

	return directionResult{}
}

func priorWeekCount(prior *entity.Dataset) int {
	if prior == nil {
		return 0
	}
	return len(prior.Weeks)
}
