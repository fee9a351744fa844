package main

import (
	"focustimer/internal/storage"

	"github.com/spf13/cobra"
)

func settingsCmd(opts *options) *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(opts)
			if err != nil {
				return err
			}
			data, err := storage.MarshalSettings(settings, asTOML)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "print as TOML instead of YAML")

	return cmd
}
