package calculator

import "github.com/mmynk/ridesplit/internal/models"

// AllocateCosts splits a trip's total cost across its legs in proportion to
// distance, and each leg's cost equally among the passengers on it.
//
// Algorithm:
// - cost_per_km = total_cost / total_distance
// - leg_cost = leg.distance × cost_per_km
// - each passenger on the leg pays leg_cost / passenger_count
//
// A trip with zero total distance cannot be split by distance, so everyone
// pays 0. A leg with no passengers is billed to nobody. Every participant
// gets an entry in participant order, even with zero cost. Negative costs
// and distances are not checked here; see ValidateTrip.
func AllocateCosts(totalCost float64, legs []models.Leg, participants []models.Participant, paidByID string) models.RideCalculation {
	totalDistance := 0.0
	for _, leg := range legs {
		totalDistance += leg.Distance
	}

	costs := newCostLedger(participants)
	result := models.RideCalculation{
		TotalCost:     totalCost,
		TotalDistance: totalDistance,
		Legs:          legs,
		PaidByID:      paidByID,
	}

	if totalDistance == 0 {
		result.ParticipantCosts = costs.entries
		return result
	}

	costPerKm := totalCost / totalDistance

	for _, leg := range legs {
		passengerCount := len(leg.Passengers)
		if passengerCount == 0 {
			continue
		}

		legCost := leg.Distance * costPerKm
		costPerPerson := legCost / float64(passengerCount)

		for _, passengerID := range leg.Passengers {
			costs.add(passengerID, costPerPerson, models.LegDetail{
				From:       leg.From.Label(),
				To:         leg.To.Label(),
				Cost:       costPerPerson,
				SharedWith: passengerCount,
			})
		}
	}

	result.ParticipantCosts = costs.entries
	return result
}

// costLedger accumulates ParticipantCost entries in participant order.
type costLedger struct {
	index   models.ParticipantIndex
	entries []models.ParticipantCost
}

func newCostLedger(participants []models.Participant) *costLedger {
	l := &costLedger{
		index:   models.IndexParticipants(participants),
		entries: make([]models.ParticipantCost, 0, len(participants)),
	}
	for i, p := range participants {
		if l.index[p.ID] != i {
			continue // duplicate ID, already has an entry
		}
		l.entries = append(l.entries, models.ParticipantCost{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			LegDetails:      []models.LegDetail{},
		})
	}
	// Re-point the index at entry positions, which differ from participant
	// positions once duplicates are skipped.
	for i, e := range l.entries {
		l.index[e.ParticipantID] = i
	}
	return l
}

// add credits cost and appends details to participant id. Unknown IDs are ignored.
func (l *costLedger) add(id string, cost float64, details ...models.LegDetail) {
	i, ok := l.index[id]
	if !ok {
		return
	}
	l.entries[i].TotalCost += cost
	l.entries[i].LegDetails = append(l.entries[i].LegDetails, details...)
}
