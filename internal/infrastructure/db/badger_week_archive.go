package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/repository"
)

// BadgerWeekArchive implements the week archive interface using BadgerDB.
// It keeps the last successfully fetched records per week and direction so
// later runs can reuse them when the upstream API is down and the prior
// snapshot lacks the week.
type BadgerWeekArchive struct {
	db *badger.DB
}

// NewBadgerWeekArchive creates a new BadgerDB week archive
func NewBadgerWeekArchive(db *badger.DB) *BadgerWeekArchive {
	return &BadgerWeekArchive{db: db}
}

// weekKey builds the archive key for a week and direction
func weekKey(direction entity.Direction, startDate string) []byte {
	return []byte(fmt.Sprintf("week:%s:%s", direction, startDate))
}

// StoreWeek saves one week's records for a direction
func (a *BadgerWeekArchive) StoreWeek(ctx context.Context, direction entity.Direction, startDate string, records []entity.RateRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal week records: %w", err)
	}

	err = a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(weekKey(direction, startDate), data)
	})

	if err != nil {
		return fmt.Errorf("failed to store week %s (%s): %w", startDate, direction, err)
	}

	return nil
}

// FindWeek retrieves one week's records for a direction
func (a *BadgerWeekArchive) FindWeek(ctx context.Context, direction entity.Direction, startDate string) ([]entity.RateRecord, error) {
	var records []entity.RateRecord

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(weekKey(direction, startDate))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &records)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrWeekNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to retrieve week %s (%s): %w", startDate, direction, err)
	}

	return records, nil
}
