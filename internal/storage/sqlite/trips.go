package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/ridesplit/internal/models"
)

const (
	directionOutbound = "outbound"
	directionReturn   = "return"

	kindEntering = "entering"
	kindExiting  = "exiting"
)

// insertTrip writes one trip direction inside tx.
func insertTrip(ctx context.Context, tx *sql.Tx, rideID, direction string, trip models.Trip) error {
	var paidBy interface{} = nil
	if trip.PaidByID != "" {
		paidBy = trip.PaidByID
	}

	_, err := tx.ExecContext(ctx,
		"INSERT INTO trips (ride_id, direction, total_cost, paid_by_id) VALUES (?, ?, ?, ?)",
		rideID, direction, trip.TotalCost, paidBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert %s trip: %w", direction, err)
	}

	for i, stop := range trip.Stops {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO stops (ride_id, direction, position, stop_id, name, address) VALUES (?, ?, ?, ?, ?, ?)",
			rideID, direction, i, stop.ID, stop.Name, stop.Address,
		)
		if err != nil {
			return fmt.Errorf("failed to insert stop: %w", err)
		}

		passengers := []struct {
			kind string
			ids  []string
		}{{kindEntering, stop.Entering}, {kindExiting, stop.Exiting}}
		for _, group := range passengers {
			for j, id := range group.ids {
				_, err = tx.ExecContext(ctx,
					`INSERT INTO stop_passengers (ride_id, direction, stop_position, kind, position, participant_id)
					 VALUES (?, ?, ?, ?, ?, ?)`,
					rideID, direction, i, group.kind, j, id,
				)
				if err != nil {
					return fmt.Errorf("failed to insert stop passenger: %w", err)
				}
			}
		}
	}

	for i, distance := range trip.Distances {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO trip_legs (ride_id, direction, position, distance) VALUES (?, ?, ?, ?)",
			rideID, direction, i, distance,
		)
		if err != nil {
			return fmt.Errorf("failed to insert leg distance: %w", err)
		}
	}

	return nil
}

// getTrip loads one trip direction, or None if the ride has no such trip.
func (s *SQLiteStore) getTrip(ctx context.Context, rideID, direction string) (models.Optional[models.Trip], error) {
	none := models.None[models.Trip]()

	var trip models.Trip
	var paidBy sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT total_cost, paid_by_id FROM trips WHERE ride_id = ? AND direction = ?",
		rideID, direction,
	).Scan(&trip.TotalCost, &paidBy)
	if err == sql.ErrNoRows {
		return none, nil
	}
	if err != nil {
		return none, fmt.Errorf("failed to get %s trip: %w", direction, err)
	}
	if paidBy.Valid {
		trip.PaidByID = paidBy.String
	}

	if trip.Stops, err = s.getStops(ctx, rideID, direction); err != nil {
		return none, err
	}
	if err := s.attachPassengers(ctx, rideID, direction, trip.Stops); err != nil {
		return none, err
	}
	if trip.Distances, err = s.getDistances(ctx, rideID, direction); err != nil {
		return none, err
	}

	return models.Some(trip), nil
}

func (s *SQLiteStore) getStops(ctx context.Context, rideID, direction string) ([]models.Stop, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT stop_id, name, address FROM stops WHERE ride_id = ? AND direction = ? ORDER BY position",
		rideID, direction,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stops: %w", err)
	}
	defer rows.Close()

	stops := []models.Stop{}
	for rows.Next() {
		stop := models.Stop{Entering: []string{}, Exiting: []string{}}
		if err := rows.Scan(&stop.ID, &stop.Name, &stop.Address); err != nil {
			return nil, fmt.Errorf("failed to scan stop: %w", err)
		}
		stops = append(stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stops: %w", err)
	}

	return stops, nil
}

func (s *SQLiteStore) attachPassengers(ctx context.Context, rideID, direction string, stops []models.Stop) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stop_position, kind, participant_id FROM stop_passengers
		 WHERE ride_id = ? AND direction = ? ORDER BY stop_position, kind, position`,
		rideID, direction,
	)
	if err != nil {
		return fmt.Errorf("failed to get stop passengers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var position int
		var kind, id string
		if err := rows.Scan(&position, &kind, &id); err != nil {
			return fmt.Errorf("failed to scan stop passenger: %w", err)
		}
		if position < 0 || position >= len(stops) {
			return fmt.Errorf("stop passenger references missing stop %d", position)
		}
		if kind == kindEntering {
			stops[position].Entering = append(stops[position].Entering, id)
		} else {
			stops[position].Exiting = append(stops[position].Exiting, id)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate stop passengers: %w", err)
	}

	return nil
}

func (s *SQLiteStore) getDistances(ctx context.Context, rideID, direction string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT distance FROM trip_legs WHERE ride_id = ? AND direction = ? ORDER BY position",
		rideID, direction,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get leg distances: %w", err)
	}
	defer rows.Close()

	distances := []float64{}
	for rows.Next() {
		var d float64
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan leg distance: %w", err)
		}
		distances = append(distances, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leg distances: %w", err)
	}

	return distances, nil
}
