// Package cli implements the ridesplit command-line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/ridesplit/internal/config"
	"github.com/mmynk/ridesplit/internal/models"
	"github.com/mmynk/ridesplit/pkg/logging"
)

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "ridesplit",
		Short: "Split shared ride costs by distance",
		Long: `RideSplit divides the cost of a shared car ride among its passengers.
Each leg's cost is shared by whoever was in the car, and settlements
show who pays whom.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "Path to a TOML config file")

	root.AddCommand(newCalcCmd())
	root.AddCommand(newDistanceCmd())
	root.AddCommand(newGeocodeCmd())
	root.AddCommand(newRidesCmd())
	return root
}

// readRide decodes a ride from path, or from in when path is "-".
func readRide(path string, in io.Reader) (models.Ride, error) {
	var ride models.Ride

	r := in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return ride, err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&ride); err != nil {
		return ride, fmt.Errorf("invalid ride file %s: %w", path, err)
	}
	return ride, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
