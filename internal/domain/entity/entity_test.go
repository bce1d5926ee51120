package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRateRecord(t *testing.T) {
	record := NewRateRecord("US", "US Dollar", "USD", 1300.5, "2024-01-07", DirectionExport)

	assert.Equal(t, "2024-01-07:USD:export", record.ID)
	assert.Equal(t, "US", record.CountryCode)
	assert.Equal(t, 1300.5, record.Rate)
	assert.NoError(t, record.Validate())
}

func TestRateRecordValidate(t *testing.T) {
	base := NewRateRecord("US", "US Dollar", "USD", 1300.5, "2024-01-07", DirectionExport)

	negative := base
	negative.Rate = -1
	assert.Error(t, negative.Validate())

	nan := base
	nan.Rate = math.NaN()
	assert.Error(t, nan.Validate())

	infinite := base
	infinite.Rate = math.Inf(1)
	assert.Error(t, infinite.Validate())

	noCode := base
	noCode.CurrencyCode = ""
	assert.Error(t, noCode.Validate())
}

func TestDirectionCodes(t *testing.T) {
	assert.Equal(t, "1", DirectionExport.Code())
	assert.Equal(t, "2", DirectionImport.Code())

	direction, err := DirectionFromCode("1")
	assert.NoError(t, err)
	assert.Equal(t, DirectionExport, direction)

	direction, err = DirectionFromCode("2")
	assert.NoError(t, err)
	assert.Equal(t, DirectionImport, direction)

	_, err = DirectionFromCode("3")
	assert.Error(t, err)
}

func TestWeekBucketValidate(t *testing.T) {
	bucket := WeekBucket{
		StartDate: "2024-01-07",
		Export: []RateRecord{
			NewRateRecord("US", "US Dollar", "USD", 1300.5, "2024-01-07", DirectionExport),
		},
	}

	assert.NoError(t, bucket.Validate())
	assert.False(t, bucket.IsEmpty())

	// A record dated outside the bucket's week is rejected
	bucket.Import = []RateRecord{
		NewRateRecord("US", "US Dollar", "USD", 1299.0, "2024-01-14", DirectionImport),
	}
	assert.Error(t, bucket.Validate())

	assert.True(t, (&WeekBucket{StartDate: "2024-01-07"}).IsEmpty())
}

func TestDatasetWeek(t *testing.T) {
	dataset := Dataset{
		Weeks: []WeekBucket{
			{StartDate: "2024-01-14"},
			{StartDate: "2024-01-07"},
		},
	}

	week, ok := dataset.Week("2024-01-07")
	assert.True(t, ok)
	assert.Equal(t, "2024-01-07", week.StartDate)

	_, ok = dataset.Week("2023-12-31")
	assert.False(t, ok)
}
