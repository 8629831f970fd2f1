package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/conchdesk/pkg/conchdesk"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the conchdesk version",
		Args:  exactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "conchdesk", conchdesk.Version)
		},
	}
}
