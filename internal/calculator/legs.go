// Package calculator splits ride costs by distance ridden and nets the
// resulting balances into payments. Every function is pure.
package calculator

import (
	"slices"

	"github.com/mmynk/ridesplit/internal/models"
)

// DeriveLegs turns an ordered list of stops into the legs between them,
// each carrying the passengers present on that leg.
//
// Algorithm:
// - Keep a running passenger list, initially empty
// - At each stop except the last: remove Exiting, then add Entering
// - Emit a leg with a snapshot of the running list and distance 0
//
// Exits are applied before entries, so someone listed in both at the same
// stop stays aboard. Removing an absent ID is a no-op and adding a present
// ID does not duplicate it. Fewer than 2 stops yields no legs.
func DeriveLegs(stops []models.Stop) []models.Leg {
	if len(stops) < 2 {
		return []models.Leg{}
	}

	legs := make([]models.Leg, 0, len(stops)-1)
	var current []string

	for i := 0; i < len(stops)-1; i++ {
		from := stops[i]

		current = slices.DeleteFunc(current, func(id string) bool {
			return slices.Contains(from.Exiting, id)
		})
		for _, id := range from.Entering {
			if !slices.Contains(current, id) {
				current = append(current, id)
			}
		}

		legs = append(legs, models.Leg{
			From:       from,
			To:         stops[i+1],
			Distance:   0, // filled in by the caller
			Passengers: slices.Clone(current),
		})
	}

	return legs
}
