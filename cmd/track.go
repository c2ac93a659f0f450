package cmd

import (
	"context"

	serialadapter "github.com/bnema/keytrack/internal/adapters/serial"
	"github.com/bnema/keytrack/internal/adapters/sleep"
	"github.com/bnema/keytrack/internal/application"
	"github.com/bnema/keytrack/internal/ports"
	"github.com/spf13/cobra"
)

func newTrackCmd(app *app) *cobra.Command {
	var port string
	var logDir string

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Connect to the keypad and track sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracker := application.NewTracker(app.storeFor(logDir), sleep.New(), ports.SystemClock{}, app.logger)
			keymap := application.NewKeyMap(app.config)

			dial := func(ctx context.Context) (ports.Transport, error) {
				name := port
				if name == "" {
					name = app.config.SerialPort
				}
				if name == "" {
					discovered, err := serialadapter.Discover(ctx, app.logger)
					if err != nil {
						return nil, err
					}
					name = discovered
				}
				return serialadapter.Open(name)
			}

			loop := application.NewLoop(
				dial,
				keymap,
				tracker,
				app.renderSummary,
				cmd.OutOrStdout(),
				app.logger,
				application.LoopConfig{
					ReconnectAttempts: app.config.ReconnectAttempts,
					ReconnectBackoff:  app.config.ReconnectBackoff,
				},
			)

			return loop.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "serial port of the keypad (skips discovery)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for day-log CSV files")

	return cmd
}
