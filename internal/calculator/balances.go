package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/ridesplit/internal/models"
)

// Epsilon is the balance tolerance in the unit of account (one cent).
// Balances within it count as settled, and smaller payments are not reported.
const Epsilon = 0.01

// MemberBalance is one participant's position across the whole ride.
type MemberBalance struct {
	ParticipantID string
	Name          string
	Paid          float64 // Fronted as trip payer
	ShouldPay     float64 // Combined cost share
	NetBalance    float64 // Positive = owed money, Negative = owes money
}

// CalculateBalances computes what each participant paid and should pay.
// Paid is the total cost of every trip they are the payer of. Entries follow
// participant order; payer IDs that are not participants are ignored.
func CalculateBalances(full models.FullRideCalculation, participants []models.Participant) []MemberBalance {
	index := models.IndexParticipants(participants)
	balances := make([]MemberBalance, 0, len(participants))
	for i, p := range participants {
		if index[p.ID] != i {
			continue
		}
		balances = append(balances, MemberBalance{ParticipantID: p.ID, Name: p.Name})
	}
	for i, b := range balances {
		index[b.ParticipantID] = i
	}

	for _, cost := range full.CombinedCosts {
		if i, ok := index[cost.ParticipantID]; ok {
			balances[i].ShouldPay = cost.TotalCost
		}
	}

	for _, trip := range []models.Optional[models.RideCalculation]{full.Outbound, full.Return} {
		calc, ok := trip.Get()
		if !ok || calc.PaidByID == "" {
			continue
		}
		if i, ok := index[calc.PaidByID]; ok {
			balances[i].Paid += calc.TotalCost
		}
	}

	for i := range balances {
		balances[i].NetBalance = balances[i].Paid - balances[i].ShouldPay
	}
	return balances
}

// Settle converts the ride ledger into payments that zero out all balances.
//
// Algorithm:
// - net_balance = paid - should_pay per participant
// - creditors (net > Epsilon) sorted descending, debtors (net < -Epsilon) most negative first
// - greedily pay min(credit, debt) from the current debtor to the current creditor
// - advance past anyone whose remaining balance is within Epsilon
//
// Ties keep participant order, so the output is stable for identical input.
// This does not always find the fewest payments, but runs in linear time
// after sorting.
func Settle(full models.FullRideCalculation, participants []models.Participant) []models.Settlement {
	var creditors, debtors []MemberBalance
	for _, b := range CalculateBalances(full, participants) {
		if b.NetBalance > Epsilon {
			creditors = append(creditors, b)
		} else if b.NetBalance < -Epsilon {
			debtors = append(debtors, b)
		}
	}
	slices.SortStableFunc(creditors, func(a, b MemberBalance) int {
		return cmp.Compare(b.NetBalance, a.NetBalance)
	})
	slices.SortStableFunc(debtors, func(a, b MemberBalance) int {
		return cmp.Compare(a.NetBalance, b.NetBalance)
	})

	settlements := []models.Settlement{}
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		// Amount to settle is the smaller of what is owed and what is due
		amount := min(creditor.NetBalance, -debtor.NetBalance)

		if amount > Epsilon {
			settlements = append(settlements, models.Settlement{
				FromID:   debtor.ParticipantID,
				FromName: debtor.Name,
				ToID:     creditor.ParticipantID,
				ToName:   creditor.Name,
				Amount:   amount,
			})
		}

		creditor.NetBalance -= amount
		debtor.NetBalance += amount

		if creditor.NetBalance < Epsilon {
			i++
		}
		if debtor.NetBalance > -Epsilon {
			j++
		}
	}

	return settlements
}
