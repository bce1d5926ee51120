package entity

import (
	"errors"
	"fmt"
	"math"
)

// Direction tells whether a rate applies to export or import declarations.
type Direction string

const (
	// DirectionExport is the customs direction code "1"
	DirectionExport Direction = "export"
	// DirectionImport is the customs direction code "2"
	DirectionImport Direction = "import"
)

// Directions lists both rate directions in upstream code order.
var Directions = []Direction{DirectionExport, DirectionImport}

// Code returns the upstream weekFxrtTpcd query value for the direction.
func (d Direction) Code() string {
	if d == DirectionImport {
		return "2"
	}
	return "1"
}

// DirectionFromCode maps an upstream imexTp code to a Direction.
func DirectionFromCode(code string) (Direction, error) {
	switch code {
	case "1":
		return DirectionExport, nil
	case "2":
		return DirectionImport, nil
	default:
		return "", fmt.Errorf("unknown direction code: %q", code)
	}
}

// RateRecord is one currency's quoted rate for one week and one direction.
// Rate is expressed in KRW per currency unit.
type RateRecord struct {
	ID           string    `json:"id"`
	CountryCode  string    `json:"countryCode"`
	CurrencyName string    `json:"currencyName"`
	CurrencyCode string    `json:"currencyCode"`
	Rate         float64   `json:"rate"`
	Date         string    `json:"date"`
	Type         Direction `json:"type"`
}

// NewRateRecord builds a record with its composite identifier derived from
// date, currency code and direction.
func NewRateRecord(countryCode, currencyName, currencyCode string, rate float64, date string, direction Direction) RateRecord {
	return RateRecord{
		ID:           fmt.Sprintf("%s:%s:%s", date, currencyCode, direction),
		CountryCode:  countryCode,
		CurrencyName: currencyName,
		CurrencyCode: currencyCode,
		Rate:         rate,
		Date:         date,
		Type:         direction,
	}
}

// Validate ensures the record meets all requirements
func (r *RateRecord) Validate() error {
	if r.CurrencyCode == "" {
		return errors.New("currency code must not be empty")
	}

	if r.Date == "" {
		return errors.New("date must not be empty")
	}

	if math.IsNaN(r.Rate) || math.IsInf(r.Rate, 0) || r.Rate < 0 {
		return errors.New("rate must be a finite non-negative number")
	}

	return nil
}
