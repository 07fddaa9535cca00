// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/ridesplit/internal/models"
)

// ErrNotFound is returned (wrapped) when a ride does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for saved-ride storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer. Only ride inputs are stored;
// calculations are recomputed by the caller.
type Store interface {
	// CreateRide persists a new ride.
	// The ride.ID, ride.CreatedAt and (if empty) ride.Title fields will be populated by the store.
	CreateRide(ctx context.Context, ride *models.Ride) error

	// GetRide retrieves a ride with its participants and trips.
	// Returns an error wrapping ErrNotFound if the ride does not exist.
	GetRide(ctx context.Context, rideID string) (*models.Ride, error)

	// ListRides returns every ride, newest first, with participants but without trips.
	ListRides(ctx context.Context) ([]*models.Ride, error)

	// DeleteRide removes a ride and everything attached to it.
	// Returns an error wrapping ErrNotFound if the ride does not exist.
	DeleteRide(ctx context.Context, rideID string) error

	// Close releases any resources held by the store.
	Close() error
}
