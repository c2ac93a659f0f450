package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keytrack",
		Short:         "Track time with a USB keypad",
		Long:          "keytrack turns a 9-button Pico keypad into a time tracker: button presses start, switch and stop sessions, the LEDs mirror the current state, and completed sessions land in per-day CSV logs.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().BoolVar(&app.verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if app.verbose {
			app.logger.SetLevel(log.DebugLevel)
		}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newTrackCmd(app),
		newSummaryCmd(app),
		newResetCmd(app),
		newPingCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
