package storage

import (
	"context"
	"errors"

	"github.com/can-bmu/restaurant-monitor/internal/models"
)

// ErrNotFound is returned when no snapshot has been persisted yet.
var ErrNotFound = errors.New("not found")

// Storer persists the latest sweep snapshot so a restarted process can
// serve last-known state until its first sweep completes. Only the most
// recent snapshot is kept; saving replaces whatever was there.
type Storer interface {
	SaveSnapshot(ctx context.Context, snap *models.Snapshot) error
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
	Close() error
}
