// Command paneltool prepares and checks card images for the panel from a
// desktop: it lists what the browser would show, streams files the way
// the panel does and prints the effective configuration.
package main

import (
	"os"

	"ttypanel/internal/buildinfo"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "paneltool",
		Short:        "Card and configuration helper for ttypanel",
		Version:      buildinfo.Long(),
		SilenceUsage: true,
	}
	cmd.AddCommand(newTreeCmd(), newSendCmd(), newConfigCmd())
	return cmd
}
