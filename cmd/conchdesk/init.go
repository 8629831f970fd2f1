package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/conchdesk/internal/paths"
)

// newInitCmd writes the default config (done while loading) and applies the
// schema by attaching the store once.
func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and initialize the store",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attach()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return fmt.Errorf("detach store: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "conchdesk initialized successfully")
			fmt.Fprintln(out, "  config:", paths.ConfigFile(a.configDir))
			fmt.Fprintln(out, "  data:  ", a.cfg.DataDir)
			fmt.Fprintln(out, "  store: ", a.cfg.Store.Backend)
			return nil
		},
	}
}
