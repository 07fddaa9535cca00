package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/ridesplit/internal/models"
)

var (
	ErrNoParticipants     = errors.New("must have at least one participant")
	ErrInvalidParticipant = errors.New("invalid participant")
	ErrNoTrips            = errors.New("at least one of outbound or return trip is required")
	ErrTooFewStops        = errors.New("trip must have at least 2 stops")
	ErrDistanceCount      = errors.New("distance count must be one less than stop count")
	ErrNegativeDistance   = errors.New("distance cannot be negative")
	ErrNegativeCost       = errors.New("total cost cannot be negative")
	ErrUnknownPayer       = errors.New("payer must be one of the participants")
	ErrUnknownPassenger   = errors.New("passenger must be one of the participants")
)

// ValidateParticipants checks that the list is non-empty with unique, non-empty IDs.
func ValidateParticipants(participants []models.Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	seen := make(map[string]bool, len(participants))
	for i, p := range participants {
		if p.ID == "" {
			return fmt.Errorf("%w: participant %d has no id", ErrInvalidParticipant, i+1)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate id '%s'", ErrInvalidParticipant, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// ValidateTrip checks a trip against the preconditions the engine assumes.
// The engine itself never validates; callers run this at their input layer.
func ValidateTrip(trip models.Trip, participants []models.Participant) error {
	if len(trip.Stops) < 2 {
		return ErrTooFewStops
	}
	if len(trip.Distances) != len(trip.Stops)-1 {
		return fmt.Errorf("%w: got %d distances for %d stops", ErrDistanceCount, len(trip.Distances), len(trip.Stops))
	}
	for i, d := range trip.Distances {
		if d < 0 {
			return fmt.Errorf("%w: leg %d has %v km", ErrNegativeDistance, i+1, d)
		}
	}
	if trip.TotalCost < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeCost, trip.TotalCost)
	}

	index := models.IndexParticipants(participants)
	if trip.PaidByID != "" && !index.Contains(trip.PaidByID) {
		return fmt.Errorf("%w: '%s'", ErrUnknownPayer, trip.PaidByID)
	}
	for _, stop := range trip.Stops {
		for _, ids := range [][]string{stop.Entering, stop.Exiting} {
			for _, id := range ids {
				if !index.Contains(id) {
					return fmt.Errorf("%w: '%s' at stop '%s'", ErrUnknownPassenger, id, stop.Label())
				}
			}
		}
	}
	return nil
}

// ValidateRide checks participants and every present trip.
func ValidateRide(participants []models.Participant, outbound, returnTrip models.Optional[models.Trip]) error {
	if err := ValidateParticipants(participants); err != nil {
		return err
	}
	if !outbound.IsPresent() && !returnTrip.IsPresent() {
		return ErrNoTrips
	}
	if trip, ok := outbound.Get(); ok {
		if err := ValidateTrip(trip, participants); err != nil {
			return fmt.Errorf("outbound trip: %w", err)
		}
	}
	if trip, ok := returnTrip.Get(); ok {
		if err := ValidateTrip(trip, participants); err != nil {
			return fmt.Errorf("return trip: %w", err)
		}
	}
	return nil
}
