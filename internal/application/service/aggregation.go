package service

import (
	"sort"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
)

// The aggregation helpers are pure functions over a loaded dataset. They
// never touch the network or the snapshot file; the dashboard handlers call
// them on every request against the cached dataset.

// SortedWeeks returns a copy of the dataset's weeks sorted newest first.
// Persisted snapshots are already ordered, the sort is defensive.
func SortedWeeks(dataset *entity.Dataset) []entity.WeekBucket {
	weeks := make([]entity.WeekBucket, len(dataset.Weeks))
	copy(weeks, dataset.Weeks)

	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].StartDate > weeks[j].StartDate
	})

	return weeks
}

// FlattenRecords returns every record of one direction across all weeks,
// newest week first.
func FlattenRecords(dataset *entity.Dataset, direction entity.Direction) []entity.RateRecord {
	var records []entity.RateRecord
	for _, week := range SortedWeeks(dataset) {
		records = append(records, week.Records(direction)...)
	}

	return records
}

// WeekComparison pairs the newest week with the one before it for
// "current vs previous" views. Either side may be nil when the dataset is
// too small.
type WeekComparison struct {
	Current  *entity.WeekBucket
	Previous *entity.WeekBucket
}

// LatestWeeks derives the newest and second-newest week slices.
func LatestWeeks(dataset *entity.Dataset) WeekComparison {
	weeks := SortedWeeks(dataset)

	var comparison WeekComparison
	if len(weeks) > 0 {
		comparison.Current = &weeks[0]
	}
	if len(weeks) > 1 {
		comparison.Previous = &weeks[1]
	}

	return comparison
}

// CurrencySeries maps week start date to rate for one currency and
// direction. Weeks without that currency are simply absent.
func CurrencySeries(dataset *entity.Dataset, currencyCode string, direction entity.Direction) map[string]float64 {
	series := make(map[string]float64)
	for _, week := range dataset.Weeks {
		for _, record := range week.Records(direction) {
			if record.CurrencyCode == currencyCode {
				series[week.StartDate] = record.Rate
				break
			}
		}
	}

	return series
}

// MajorCurrencySeries maps week start date to the shortlist currencies'
// rates, for charting.
func MajorCurrencySeries(dataset *entity.Dataset, direction entity.Direction) map[string]map[string]float64 {
	series := make(map[string]map[string]float64)
	for _, week := range dataset.Weeks {
		byCode := make(map[string]float64, len(entity.MajorCurrencies))
		for _, record := range week.Records(direction) {
			for _, code := range entity.MajorCurrencies {
				if record.CurrencyCode == code {
					byCode[code] = record.Rate
					break
				}
			}
		}

		if len(byCode) > 0 {
			series[week.StartDate] = byCode
		}
	}

	return series
}
