package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/ridesplit/internal/models"
)

func TestCombine(t *testing.T) {
	participants := []models.Participant{p1, p2, p3}

	outbound := AllocateCosts(30, legsWithDistances([]models.Stop{
		{Name: "Home", Entering: []string{"p1", "p2"}},
		{Name: "Party"},
	}, 10), participants, "p1")
	ret := AllocateCosts(45, legsWithDistances([]models.Stop{
		{Name: "Party", Entering: []string{"p1", "p2", "p3"}},
		{Name: "Home"},
	}, 12), participants, "p3")

	t.Run("both trips add up per participant", func(t *testing.T) {
		full := Combine(models.Some(outbound), models.Some(ret), participants)

		if math.Abs(full.TotalCost-75) > 0.001 {
			t.Errorf("total cost = %v, want 75", full.TotalCost)
		}
		if math.Abs(full.TotalDistance-22) > 0.001 {
			t.Errorf("total distance = %v, want 22", full.TotalDistance)
		}
		for i, c := range full.CombinedCosts {
			want := outbound.ParticipantCosts[i].TotalCost + ret.ParticipantCosts[i].TotalCost
			if math.Abs(c.TotalCost-want) > 1e-9 {
				t.Errorf("%s combined = %v, want %v", c.ParticipantName, c.TotalCost, want)
			}
		}

		alice := full.CombinedCosts[0]
		if len(alice.LegDetails) != 2 {
			t.Fatalf("Alice has %d leg details, want 2", len(alice.LegDetails))
		}
		if alice.LegDetails[0].From != "Home" || alice.LegDetails[1].From != "Party" {
			t.Errorf("outbound details should precede return, got %s then %s",
				alice.LegDetails[0].From, alice.LegDetails[1].From)
		}

		if got, ok := full.Return.Get(); !ok || got.PaidByID != "p3" {
			t.Errorf("return trip not carried through: %+v", full.Return)
		}
	})

	t.Run("one-way ride", func(t *testing.T) {
		full := Combine(models.Some(outbound), models.None[models.RideCalculation](), participants)

		if full.Return.IsPresent() {
			t.Error("return should be absent")
		}
		if math.Abs(full.TotalCost-30) > 0.001 {
			t.Errorf("total cost = %v, want 30", full.TotalCost)
		}
		if len(full.CombinedCosts) != 3 {
			t.Fatalf("got %d combined costs, want 3", len(full.CombinedCosts))
		}
		if full.CombinedCosts[2].TotalCost != 0 {
			t.Errorf("Charlie combined = %v, want 0", full.CombinedCosts[2].TotalCost)
		}
	})

	t.Run("no trips", func(t *testing.T) {
		full := Combine(models.None[models.RideCalculation](), models.None[models.RideCalculation](), participants)
		if full.TotalCost != 0 || full.TotalDistance != 0 {
			t.Errorf("totals = %v, %v, want 0, 0", full.TotalCost, full.TotalDistance)
		}
		if len(full.CombinedCosts) != 3 {
			t.Errorf("got %d combined costs, want 3", len(full.CombinedCosts))
		}
	})

	t.Run("costs for unknown participants are dropped", func(t *testing.T) {
		full := Combine(models.Some(ret), models.None[models.RideCalculation](), []models.Participant{p1, p2})
		if len(full.CombinedCosts) != 2 {
			t.Fatalf("got %d combined costs, want 2", len(full.CombinedCosts))
		}
		if math.Abs(full.CombinedCosts[0].TotalCost-15) > 0.01 {
			t.Errorf("Alice combined = %v, want 15", full.CombinedCosts[0].TotalCost)
		}
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		before := len(outbound.ParticipantCosts[0].LegDetails)
		Combine(models.Some(outbound), models.Some(ret), participants)
		if len(outbound.ParticipantCosts[0].LegDetails) != before {
			t.Error("Combine changed the outbound leg details")
		}
	})
}
