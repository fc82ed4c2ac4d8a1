package main

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "rigup",
		Short:         "rigup converges a workstation toward a declared configuration",
		Long:          "rigup reads a declaration document and reconciles the machine against it: every resource is probed first and only mutated when the desired state is absent, so re-running is always safe.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation reconciles the default document.
			return applyCmdRunner(applyOptions{
				ConfigPath:     defaultConfigPath(),
				Verbose:        flags.verbose,
				NonInteractive: !stdoutIsTerminal(),
			})
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newApplyCmd(flags))
	cmd.AddCommand(newPlanCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// defaultConfigPath is where a bare `rigup` looks for its document.
func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "rigup", "rigup.yaml")
}
