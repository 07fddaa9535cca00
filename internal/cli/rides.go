package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/ridesplit/internal/calculator"
	"github.com/mmynk/ridesplit/internal/format"
	"github.com/mmynk/ridesplit/internal/storage/sqlite"
)

// ridesFlags are shared by the rides subcommands.
type ridesFlags struct {
	dbPath string
}

func (f *ridesFlags) open(cmd *cobra.Command) (*sqlite.SQLiteStore, error) {
	path := f.dbPath
	if path == "" {
		path = configFrom(cmd.Context()).Storage.DBPath
	}
	return sqlite.New(path)
}

func newRidesCmd() *cobra.Command {
	var flags ridesFlags

	cmd := &cobra.Command{
		Use:   "rides",
		Short: "Inspect saved rides",
	}
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path (overrides config)")

	cmd.AddCommand(newRidesListCmd(&flags))
	cmd.AddCommand(newRidesShowCmd(&flags))
	cmd.AddCommand(newRidesSaveCmd(&flags))
	cmd.AddCommand(newRidesDeleteCmd(&flags))
	return cmd
}

func newRidesListCmd(flags *ridesFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved rides, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			rides, err := store.ListRides(cmd.Context())
			if err != nil {
				return err
			}
			if len(rides) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved rides.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPARTICIPANTS\tCREATED")
			for _, r := range rides {
				names := make([]string, len(r.Participants))
				for i, p := range r.Participants {
					names[i] = p.Name
				}
				created := time.Unix(r.CreatedAt, 0).Format(time.DateTime)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Title, strings.Join(names, ", "), created)
			}
			return w.Flush()
		},
	}
}

func newRidesShowCmd(flags *ridesFlags) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print the share text of a saved ride",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			ride, err := store.GetRide(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			full, settlements := calculator.CalculateRide(ride.Participants, ride.Outbound, ride.Return)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), format.ShareText(full, settlements, format.ParseLanguage(lang)))
			return err
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", string(format.DefaultLanguage), "Share text language (pt-BR, en-US)")
	return cmd
}

func newRidesSaveCmd(flags *ridesFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "save FILE",
		Short: "Save a ride file and print its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ride, err := readRide(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := calculator.ValidateRide(ride.Participants, ride.Outbound, ride.Return); err != nil {
				return err
			}

			store, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.CreateRide(cmd.Context(), &ride); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ride.ID)
			return err
		},
	}
}

func newRidesDeleteCmd(flags *ridesFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved ride",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			return store.DeleteRide(cmd.Context(), args[0])
		},
	}
}
