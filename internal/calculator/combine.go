package calculator

import "github.com/mmynk/ridesplit/internal/models"

// Combine merges the per-participant results of the outbound and return
// trips into one ledger. Outbound leg details precede return ones. Costs for
// IDs missing from participants are dropped. An absent trip contributes 0.
func Combine(outbound, returnTrip models.Optional[models.RideCalculation], participants []models.Participant) models.FullRideCalculation {
	combined := newCostLedger(participants)
	result := models.FullRideCalculation{
		Outbound: outbound,
		Return:   returnTrip,
	}

	for _, trip := range []models.Optional[models.RideCalculation]{outbound, returnTrip} {
		calc, ok := trip.Get()
		if !ok {
			continue
		}
		for _, cost := range calc.ParticipantCosts {
			combined.add(cost.ParticipantID, cost.TotalCost, cost.LegDetails...)
		}
		result.TotalCost += calc.TotalCost
		result.TotalDistance += calc.TotalDistance
	}

	result.CombinedCosts = combined.entries
	return result
}
