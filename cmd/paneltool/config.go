package main

import (
	"ttypanel/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Validate a configuration file and print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(file)
			if err != nil {
				return err
			}
			return config.Write(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file to check (default: built-in defaults).")
	return cmd
}
