package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *app) *cobra.Command {
	var dateFlag string
	var logDir string
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a fresh day log, keeping the old one as .bak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := resolveDate(app, dateFlag)
			if err != nil {
				return err
			}

			if !yes {
				return fmt.Errorf("refusing to reset the log for %s without --yes", date)
			}

			if err := app.storeFor(logDir).Reset(cmd.Context(), date); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "day log for %s reset, previous log kept as .bak\n", date)
			return err
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "day to reset (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for day-log CSV files")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	return cmd
}
