package calculator

import "github.com/mmynk/ridesplit/internal/models"

// CalculateTrip derives the legs of a trip, applies its gap distances and
// allocates its cost. A missing distance counts as 0 and extra distances are
// ignored.
func CalculateTrip(trip models.Trip, participants []models.Participant) models.RideCalculation {
	legs := DeriveLegs(trip.Stops)
	for i := range legs {
		if i < len(trip.Distances) {
			legs[i].Distance = trip.Distances[i]
		}
	}
	return AllocateCosts(trip.TotalCost, legs, participants, trip.PaidByID)
}

// CalculateRide runs the whole pipeline: each present trip is calculated,
// the trips are combined, and the combined ledger is settled.
func CalculateRide(participants []models.Participant, outbound, returnTrip models.Optional[models.Trip]) (models.FullRideCalculation, []models.Settlement) {
	calc := func(o models.Optional[models.Trip]) models.Optional[models.RideCalculation] {
		trip, ok := o.Get()
		if !ok {
			return models.None[models.RideCalculation]()
		}
		return models.Some(CalculateTrip(trip, participants))
	}

	full := Combine(calc(outbound), calc(returnTrip), participants)
	return full, Settle(full, participants)
}
