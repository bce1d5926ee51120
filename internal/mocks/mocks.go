// Package mocks internal/mocks/mocks.go
package mocks

import (
	"context"
	"time"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockSnapshotRepository mocks the SnapshotRepository interface
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Load(ctx context.Context) (*entity.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Dataset), args.Error(1)
}

func (m *MockSnapshotRepository) Save(ctx context.Context, dataset *entity.Dataset) error {
	args := m.Called(ctx, dataset)
	return args.Error(0)
}

// MockWeekArchive mocks the WeekArchive interface
type MockWeekArchive struct {
	mock.Mock
}

func (m *MockWeekArchive) StoreWeek(ctx context.Context, direction entity.Direction, startDate string, records []entity.RateRecord) error {
	args := m.Called(ctx, direction, startDate, records)
	return args.Error(0)
}

func (m *MockWeekArchive) FindWeek(ctx context.Context, direction entity.Direction, startDate string) ([]entity.RateRecord, error) {
	args := m.Called(ctx, direction, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RateRecord), args.Error(1)
}

// MockRateSource mocks one tier of the rate fallback chain
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRateSource) FetchWeek(ctx context.Context, anchor time.Time, direction entity.Direction) ([]entity.RateRecord, error) {
	args := m.Called(ctx, anchor, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RateRecord), args.Error(1)
}
