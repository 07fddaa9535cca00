// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/ridesplit/internal/models"
	"github.com/mmynk/ridesplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps PRAGMA foreign_keys in effect for every query
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRide persists a new ride with its participants and trips.
func (s *SQLiteStore) CreateRide(ctx context.Context, ride *models.Ride) error {
	// Generate IDs if not set
	if ride.ID == "" {
		ride.ID = uuid.New().String()
	}
	if ride.CreatedAt == 0 {
		ride.CreatedAt = time.Now().Unix()
	}
	if ride.Title == "" {
		ride.Title = generateTitle(ride.Participants)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Insert ride
	_, err = tx.ExecContext(ctx,
		"INSERT INTO rides (id, title, created_at) VALUES (?, ?, ?)",
		ride.ID, ride.Title, ride.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ride: %w", err)
	}

	// Insert participants
	for i, p := range ride.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO ride_participants (ride_id, position, participant_id, name) VALUES (?, ?, ?, ?)",
			ride.ID, i, p.ID, p.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	// Insert trips
	if trip, ok := ride.Outbound.Get(); ok {
		if err := insertTrip(ctx, tx, ride.ID, directionOutbound, trip); err != nil {
			return err
		}
	}
	if trip, ok := ride.Return.Get(); ok {
		if err := insertTrip(ctx, tx, ride.ID, directionReturn, trip); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRide retrieves a ride by ID, including participants and trips.
func (s *SQLiteStore) GetRide(ctx context.Context, rideID string) (*models.Ride, error) {
	// Get ride
	ride := &models.Ride{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, created_at FROM rides WHERE id = ?",
		rideID,
	).Scan(&ride.ID, &ride.Title, &ride.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ride %s: %w", rideID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	ride.Participants, err = s.getParticipants(ctx, rideID)
	if err != nil {
		return nil, err
	}

	ride.Outbound, err = s.getTrip(ctx, rideID, directionOutbound)
	if err != nil {
		return nil, err
	}
	ride.Return, err = s.getTrip(ctx, rideID, directionReturn)
	if err != nil {
		return nil, err
	}

	return ride, nil
}

// ListRides retrieves all rides, newest first. Trips are not loaded.
func (s *SQLiteStore) ListRides(ctx context.Context) ([]*models.Ride, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, created_at FROM rides ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rides: %w", err)
	}

	var rides []*models.Ride
	for rows.Next() {
		ride := &models.Ride{}
		if err := rows.Scan(&ride.ID, &ride.Title, &ride.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan ride: %w", err)
		}
		rides = append(rides, ride)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rides: %w", err)
	}

	// Participants are loaded after the rows are closed; the store uses a single connection
	for _, ride := range rides {
		ride.Participants, err = s.getParticipants(ctx, ride.ID)
		if err != nil {
			return nil, err
		}
	}

	return rides, nil
}

// DeleteRide removes a ride by ID. Child rows are removed by cascade.
func (s *SQLiteStore) DeleteRide(ctx context.Context, rideID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM rides WHERE id = ?", rideID)
	if err != nil {
		return fmt.Errorf("failed to delete ride: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("ride %s: %w", rideID, storage.ErrNotFound)
	}

	return nil
}

func (s *SQLiteStore) getParticipants(ctx context.Context, rideID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id, name FROM ride_participants WHERE ride_id = ? ORDER BY position",
		rideID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// generateTitle creates an auto-generated title from participant names.
func generateTitle(participants []models.Participant) string {
	if len(participants) == 0 {
		return fmt.Sprintf("Ride - %s", time.Now().Format("Jan 2, 2006"))
	}

	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Ride with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Ride with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
