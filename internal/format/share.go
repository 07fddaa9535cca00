package format

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mmynk/ridesplit/internal/models"
)

// ShareText builds the human-readable ride summary for messaging apps.
//
// Layout:
//   - title
//   - per direction with a positive cost: total and distance
//   - what each participant with a positive cost should pay, highest first
//   - the settlements, if any
//   - the tagline
func ShareText(full models.FullRideCalculation, settlements []models.Settlement, lang Language) string {
	t := LabelsFor(lang)
	var b strings.Builder

	b.WriteString(t.Title + "\n\n")

	writeTrip := func(label string, trip models.Optional[models.RideCalculation]) {
		calc, ok := trip.Get()
		if !ok || calc.TotalCost <= 0 {
			return
		}
		b.WriteString(label + "\n")
		fmt.Fprintf(&b, "%s: %s\n", t.TotalValue, FormatCurrency(calc.TotalCost, lang))
		fmt.Fprintf(&b, "%s: %s\n\n", t.Distance, FormatDistance(calc.TotalDistance))
	}
	writeTrip(t.Outbound, full.Outbound)
	writeTrip(t.Return, full.Return)

	b.WriteString(t.HowMuchEach + "\n")

	costs := slices.DeleteFunc(slices.Clone(full.CombinedCosts), func(c models.ParticipantCost) bool {
		return c.TotalCost <= 0
	})
	slices.SortStableFunc(costs, func(a, b models.ParticipantCost) int {
		return cmp.Compare(b.TotalCost, a.TotalCost)
	})
	for _, c := range costs {
		fmt.Fprintf(&b, "• %s: %s\n", c.ParticipantName, FormatCurrency(c.TotalCost, lang))
	}

	if len(settlements) > 0 {
		b.WriteString("\n" + t.Settlement + "\n")
		for _, s := range settlements {
			fmt.Fprintf(&b, "• %s %s %s %s %s\n",
				s.FromName, t.MustPay, FormatCurrency(s.Amount, lang), t.To, s.ToName)
		}
	}

	b.WriteString("\n" + t.Tagline)

	return b.String()
}
