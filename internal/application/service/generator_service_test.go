package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/repository"
	domainservice "github.com/haneulsoft/customs-fx-dashboard/internal/domain/service"
	"github.com/haneulsoft/customs-fx-dashboard/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fixedNow is a Wednesday, so the most recent anchor is Sunday 2024-01-07
var fixedNow = time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

func priorWeekFixture() entity.WeekBucket {
	return entity.WeekBucket{
		StartDate: "2024-01-07",
		Export: []entity.RateRecord{
			entity.NewRateRecord("US", "US Dollar", "USD", 1300.5, "2024-01-07", entity.DirectionExport),
		},
		Import: []entity.RateRecord{
			entity.NewRateRecord("US", "US Dollar", "USD", 1302.1, "2024-01-07", entity.DirectionImport),
		},
	}
}

func TestRunFallsBackToPriorSnapshot(t *testing.T) {
	ctx := context.Background()

	prior := &entity.Dataset{
		GeneratedAt: "2024-01-03T09:10:00Z",
		Source:      "customs-weekly-fx",
		Weeks:       []entity.WeekBucket{priorWeekFixture()},
	}

	snapshotRepo := new(mocks.MockSnapshotRepository)
	snapshotRepo.On("Load", ctx).Return(prior, nil).Once()

	var saved *entity.Dataset
	snapshotRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entity.Dataset)
	}).Return(nil).Once()

	// The live source fails hard for every request
	live := new(mocks.MockRateSource)
	live.On("Name").Return("customs-api")
	live.On("FetchWeek", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("upstream down"))

	gen := NewGeneratorService(snapshotRepo, nil, live, 1, nil)
	gen.nowFn = func() time.Time { return fixedNow }

	dataset, err := gen.Run(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, saved, dataset)

	// The prior week's records are reused identically, not re-synthesized
	assert.Len(t, dataset.Weeks, 1)
	assert.Equal(t, priorWeekFixture(), dataset.Weeks[0])

	snapshotRepo.AssertExpectations(t)
}

func TestRunWithoutCredentialSynthesizesEveryWeek(t *testing.T) {
	ctx := context.Background()

	snapshotRepo := new(mocks.MockSnapshotRepository)
	snapshotRepo.On("Load", ctx).Return(nil, repository.ErrSnapshotNotFound).Once()
	snapshotRepo.On("Save", ctx, mock.Anything).Return(nil).Once()

	// Without a credential the client reports ErrNoData for every week
	live := new(mocks.MockRateSource)
	live.On("Name").Return("customs-api")
	live.On("FetchWeek", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domainservice.ErrNoData)

	gen := NewGeneratorService(snapshotRepo, nil, live, 3, nil)
	gen.nowFn = func() time.Time { return fixedNow }

	dataset, err := gen.Run(ctx)

	assert.NoError(t, err)
	assert.Len(t, dataset.Weeks, 3)

	expected := []string{"2024-01-07", "2023-12-31", "2023-12-24"}
	for i, week := range dataset.Weeks {
		assert.Equal(t, expected[i], week.StartDate)
		assert.NoError(t, week.Validate())

		for _, direction := range entity.Directions {
			records := week.Records(direction)
			assert.NotEmpty(t, records)
			for _, record := range records {
				assert.Greater(t, record.Rate, 0.0)
			}
		}
	}
}

func TestRunArchivesFreshLiveData(t *testing.T) {
	ctx := context.Background()

	liveExport := []entity.RateRecord{
		entity.NewRateRecord("US", "US Dollar", "USD", 1310.2, "2024-01-07", entity.DirectionExport),
	}
	liveImport := []entity.RateRecord{
		entity.NewRateRecord("US", "US Dollar", "USD", 1311.9, "2024-01-07", entity.DirectionImport),
	}

	snapshotRepo := new(mocks.MockSnapshotRepository)
	snapshotRepo.On("Load", ctx).Return(nil, repository.ErrSnapshotNotFound).Once()
	snapshotRepo.On("Save", ctx, mock.Anything).Return(nil).Once()

	live := new(mocks.MockRateSource)
	live.On("Name").Return("customs-api")
	live.On("FetchWeek", mock.Anything, mock.Anything, entity.DirectionExport).
		Return(liveExport, nil).Once()
	live.On("FetchWeek", mock.Anything, mock.Anything, entity.DirectionImport).
		Return(liveImport, nil).Once()

	archive := new(mocks.MockWeekArchive)
	archive.On("StoreWeek", ctx, entity.DirectionExport, "2024-01-07", liveExport).Return(nil).Once()
	archive.On("StoreWeek", ctx, entity.DirectionImport, "2024-01-07", liveImport).Return(nil).Once()

	gen := NewGeneratorService(snapshotRepo, archive, live, 1, nil)
	gen.nowFn = func() time.Time { return fixedNow }

	dataset, err := gen.Run(ctx)

	assert.NoError(t, err)
	assert.Len(t, dataset.Weeks, 1)
	assert.Equal(t, liveExport, dataset.Weeks[0].Export)
	assert.Equal(t, liveImport, dataset.Weeks[0].Import)

	archive.AssertExpectations(t)
	live.AssertExpectations(t)
}

func TestRunReusedDataIsNotArchived(t *testing.T) {
	ctx := context.Background()

	prior := &entity.Dataset{Weeks: []entity.WeekBucket{priorWeekFixture()}}

	snapshotRepo := new(mocks.MockSnapshotRepository)
	snapshotRepo.On("Load", ctx).Return(prior, nil).Once()
	snapshotRepo.On("Save", ctx, mock.Anything).Return(nil).Once()

	live := new(mocks.MockRateSource)
	live.On("Name").Return("customs-api")
	live.On("FetchWeek", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domainservice.ErrNoData)

	// No StoreWeek expectation: snapshot-sourced weeks must not be archived
	archive := new(mocks.MockWeekArchive)
	archive.On("FindWeek", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, repository.ErrWeekNotFound)

	gen := NewGeneratorService(snapshotRepo, archive, live, 1, nil)
	gen.nowFn = func() time.Time { return fixedNow }

	_, err := gen.Run(ctx)

	assert.NoError(t, err)
	archive.AssertNotCalled(t, "StoreWeek", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectWeekExhaustedChainYieldsEmptyBucket(t *testing.T) {
	ctx := context.Background()

	// A chain with no synthetic last tier can run dry; the bucket then
	// comes back empty and Run omits the week from the snapshot
	exhausted := new(mocks.MockRateSource)
	exhausted.On("Name").Return("customs-api")
	exhausted.On("FetchWeek", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domainservice.ErrNoData)

	gen := NewGeneratorService(new(mocks.MockSnapshotRepository), nil, exhausted, 1, nil)
	gen.nowFn = func() time.Time { return fixedNow }

	anchor := RecentSundays(fixedNow, 1)[0]
	chain := []domainservice.RateSource{exhausted}

	bucket := gen.collectWeek(ctx, chain, anchor)

	assert.True(t, bucket.IsEmpty())
	assert.Equal(t, "2024-01-07", bucket.StartDate)
	assert.Empty(t, bucket.Records(entity.DirectionExport))
	assert.Empty(t, bucket.Records(entity.DirectionImport))
}

func TestRunSnapshotWriteFailureIsFatal(t *testing.T) {
	ctx := context.Background()

	snapshotRepo := new(mocks.MockSnapshotRepository)
	snapshotRepo.On("Load", ctx).Return(nil, repository.ErrSnapshotNotFound).Once()
	snapshotRepo.On("Save", ctx, mock.Anything).Return(errors.New("disk full")).Once()

	gen := NewGeneratorService(snapshotRepo, nil, nil, 1, nil)
	gen.nowFn = func() time.Time { return fixedNow }

	dataset, err := gen.Run(ctx)

	assert.Error(t, err)
	assert.Nil(t, dataset)
	assert.Contains(t, err.Error(), "failed to persist snapshot")
}
