package cmd

import (
	"fmt"

	serialadapter "github.com/bnema/keytrack/internal/adapters/serial"
	"github.com/spf13/cobra"
)

func newPingCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Locate the keypad and print its serial port",
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, err := serialadapter.Discover(cmd.Context(), app.logger)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", port, serialadapter.DeviceID)
			return err
		},
	}
}
