package entity

import "fmt"

// MajorCurrencies is the fixed shortlist used for charts, synthetic data
// selection and the static HTML table. Order is significant.
var MajorCurrencies = []string{"USD", "EUR", "JPY", "CNY"}

// WeekBucket holds one reporting week's records, split by direction.
// StartDate is the Sunday anchor in YYYY-MM-DD form.
type WeekBucket struct {
	StartDate string       `json:"startDate"`
	Import    []RateRecord `json:"import"`
	Export    []RateRecord `json:"export"`
}

// Records returns the record list for one direction.
func (w *WeekBucket) Records(direction Direction) []RateRecord {
	if direction == DirectionImport {
		return w.Import
	}
	return w.Export
}

// SetRecords replaces the record list for one direction.
func (w *WeekBucket) SetRecords(direction Direction, records []RateRecord) {
	if direction == DirectionImport {
		w.Import = records
		return
	}
	w.Export = records
}

// IsEmpty reports whether the bucket carries no records in either direction.
func (w *WeekBucket) IsEmpty() bool {
	return len(w.Import) == 0 && len(w.Export) == 0
}

// Validate ensures every record in the bucket shares the bucket's start date.
func (w *WeekBucket) Validate() error {
	for _, direction := range Directions {
		for _, record := range w.Records(direction) {
			if record.Date != w.StartDate {
				return fmt.Errorf("record %s dated %s does not match week start %s",
					record.ID, record.Date, w.StartDate)
			}
			if err := record.Validate(); err != nil {
				return fmt.Errorf("invalid record %s: %w", record.ID, err)
			}
		}
	}

	return nil
}

// Dataset is the full generator output: weeks ordered most recent first,
// stamped with the generation time and a source label.
type Dataset struct {
	GeneratedAt string       `json:"generatedAt"`
	Source      string       `json:"source"`
	Weeks       []WeekBucket `json:"weeks"`
}

// Week finds the bucket with the given start date.
func (d *Dataset) Week(startDate string) (*WeekBucket, bool) {
	for i := range d.Weeks {
		if d.Weeks[i].StartDate == startDate {
			return &d.Weeks[i], true
		}
	}

	return nil, false
}
