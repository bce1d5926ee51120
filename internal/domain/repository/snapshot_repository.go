// Package repository internal/domain/repository/snapshot_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
)

// ErrSnapshotNotFound is returned when no snapshot has been persisted yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository defines the interface for dataset snapshot persistence
type SnapshotRepository interface {
	// Load reads the last persisted dataset
	Load(ctx context.Context) (*entity.Dataset, error)

	// Save overwrites the persisted dataset with the given one
	Save(ctx context.Context, dataset *entity.Dataset) error
}
