package cache

import (
	"context"
	"sync"
	"time"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/repository"
)

// SnapshotCache provides a thread-safe TTL cache in front of the snapshot
// repository so the dashboard server does not re-read and re-parse the
// snapshot file on every request.
type SnapshotCache struct {
	repo       repository.SnapshotRepository
	expiration time.Duration
	mutex      sync.RWMutex
	dataset    *entity.Dataset
	loadedAt   time.Time
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache(repo repository.SnapshotRepository, expiration time.Duration) *SnapshotCache {
	if expiration <= 0 {
		expiration = time.Minute
	}

	return &SnapshotCache{
		repo:       repo,
		expiration: expiration,
	}
}

// Get returns the cached dataset, reloading it from the repository when the
// cached copy is missing or expired.
func (c *SnapshotCache) Get(ctx context.Context) (*entity.Dataset, error) {
	c.mutex.RLock()
	if c.dataset != nil && time.Since(c.loadedAt) < c.expiration {
		dataset := c.dataset
		c.mutex.RUnlock()
		return dataset, nil
	}
	c.mutex.RUnlock()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Another request may have reloaded while we waited for the lock
	if c.dataset != nil && time.Since(c.loadedAt) < c.expiration {
		return c.dataset, nil
	}

	dataset, err := c.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	c.dataset = dataset
	c.loadedAt = time.Now()

	return dataset, nil
}

// Invalidate drops the cached dataset so the next Get reloads
func (c *SnapshotCache) Invalidate() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dataset = nil
	c.loadedAt = time.Time{}
}

// SetExpiration sets the cache expiration duration
func (c *SnapshotCache) SetExpiration(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.expiration = duration
}
