package cmd

import (
	"fmt"

	configadapter "github.com/bnema/keytrack/internal/adapters/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the keytrack configuration",
	}

	cmd.AddCommand(newConfigInitCmd(app))

	return cmd
}

func newConfigInitCmd(_ *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default button labels",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configadapter.DefaultPath()
			if err != nil {
				return err
			}

			if err := configadapter.WriteDefault(path, force); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
