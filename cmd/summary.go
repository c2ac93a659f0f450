package cmd

import (
	"fmt"

	"github.com/bnema/keytrack/internal/application"
	"github.com/bnema/keytrack/internal/domain"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *app) *cobra.Command {
	var dateFlag string
	var logDir string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a day's tracked time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := resolveDate(app, dateFlag)
			if err != nil {
				return err
			}

			entries, err := app.storeFor(logDir).ReadAll(cmd.Context(), date)
			if err != nil {
				return err
			}

			text, err := app.renderSummary(application.Summarize(date, entries))
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "day to summarize (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for day-log CSV files")

	return cmd
}

func resolveDate(app *app, flag string) (domain.Date, error) {
	if flag == "" {
		return domain.DateOf(app.now()), nil
	}

	date, err := domain.ParseDate(flag)
	if err != nil {
		return domain.Date{}, fmt.Errorf("parse date %q: %w", flag, err)
	}
	return date, nil
}
