package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/ridesplit/internal/format"
	"github.com/mmynk/ridesplit/internal/models"
	"github.com/mmynk/ridesplit/internal/routing"
)

var errNoAPIKey = errors.New("no Google Maps API key: set GOOGLE_MAPS_API_KEY or [maps].api_key")

// mapsFlags are shared by the commands that call Google Maps.
type mapsFlags struct {
	apiKey  string
	baseURL string
}

func (f *mapsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Google Maps API key (overrides config)")
	cmd.Flags().StringVar(&f.baseURL, "maps-url", "", "Google Maps API base URL")
	cmd.Flags().MarkHidden("maps-url")
}

func (f *mapsFlags) client(cmd *cobra.Command) (*routing.GoogleMaps, error) {
	cfg := configFrom(cmd.Context())
	key := f.apiKey
	if key == "" {
		key = cfg.Maps.APIKey
	}
	if key == "" {
		return nil, errNoAPIKey
	}

	opts := []routing.GoogleMapsOption{
		routing.WithLanguage(cfg.Maps.Language),
		routing.WithRegion(cfg.Maps.Region),
	}
	if f.baseURL != "" {
		opts = append(opts, routing.WithBaseURL(f.baseURL))
	}
	return routing.NewGoogleMaps(key, opts...)
}

func newDistanceCmd() *cobra.Command {
	var flags mapsFlags

	cmd := &cobra.Command{
		Use:   "distance STOP STOP [STOP...]",
		Short: "Look up driving distances between consecutive stops",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gm, err := flags.client(cmd)
			if err != nil {
				return err
			}

			stops := make([]models.Stop, len(args))
			for i, a := range args {
				stops[i] = models.Stop{Address: a}
			}

			distances, err := routing.LegDistances(cmd.Context(), gm, stops)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var total float64
			for i, km := range distances {
				total += km
				fmt.Fprintf(out, "%s -> %s: %s\n", args[i], args[i+1], format.FormatDistance(km))
			}
			if len(distances) > 1 {
				fmt.Fprintf(out, "Total: %s\n", format.FormatDistance(total))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newGeocodeCmd() *cobra.Command {
	var flags mapsFlags

	cmd := &cobra.Command{
		Use:   "geocode ADDRESS",
		Short: "Print the coordinates of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gm, err := flags.client(cmd)
			if err != nil {
				return err
			}

			c, err := gm.Geocode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6f,%.6f\n", c.Lat, c.Lng)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
