package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <dir>",
		Short: "Write every table to <dir>/<table>.jsonl",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attach()
			if err != nil {
				return err
			}
			defer backend.Detach()

			counts, err := backend.Dump(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printCounts(cmd, "dumped", counts)
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <dir>",
		Short: "Load <dir>/<table>.jsonl files, skipping existing and invalid rows",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attach()
			if err != nil {
				return err
			}
			defer backend.Detach()

			counts, err := backend.Restore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printCounts(cmd, "restored", counts)
		},
	}
}

func (a *app) printCounts(cmd *cobra.Command, verb string, counts map[string]int) error {
	if a.flagJSON {
		return writeJSON(cmd.OutOrStdout(), counts)
	}
	for _, name := range types.StandardTableNames {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d %s\n", verb, counts[name], name)
	}
	return nil
}
