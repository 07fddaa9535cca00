package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/ridesplit/internal/calculator"
	"github.com/mmynk/ridesplit/internal/format"
	"github.com/mmynk/ridesplit/internal/models"
)

type calcOutput struct {
	Calculation models.FullRideCalculation `json:"calculation"`
	Settlements []models.Settlement        `json:"settlements"`
}

func newCalcCmd() *cobra.Command {
	var (
		lang   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "calc FILE",
		Short: "Calculate costs and settlements for a ride file",
		Long: `Read a ride as JSON (participants, outbound and optional return trip)
and print the share text. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ride, err := readRide(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := calculator.ValidateRide(ride.Participants, ride.Outbound, ride.Return); err != nil {
				return err
			}

			full, settlements := calculator.CalculateRide(ride.Participants, ride.Outbound, ride.Return)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), calcOutput{Calculation: full, Settlements: settlements})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), format.ShareText(full, settlements, format.ParseLanguage(lang)))
			return err
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", string(format.DefaultLanguage), "Share text language (pt-BR, en-US)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the calculation as JSON")
	return cmd
}
