package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/conchdesk/internal/workspace"
	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

func newDeliverableCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deliverable",
		Aliases: []string{"run"},
		Short:   "Manage deliverable runs",
	}
	cmd.AddCommand(
		newDeliverableShowCmd(a),
		newDeliverableUpdateCmd(a),
		newDeliverableDeleteCmd(a),
	)
	return cmd
}

func printRun(cmd *cobra.Command, r *types.DeliverableRun) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %s\n", r.ID)
	fmt.Fprintf(out, "Engagement:  %s\n", r.EngagementID)
	fmt.Fprintf(out, "Key:         %s\n", r.Key)
	fmt.Fprintf(out, "Title:       %s\n", r.Title)
	fmt.Fprintf(out, "Status:      %s\n", r.Status)
	fmt.Fprintf(out, "Artifact:    %s\n", r.ArtifactPath)
	fmt.Fprintf(out, "Updated:     %s\n", r.UpdatedAt)
	if r.Notes != "" {
		fmt.Fprintf(out, "\nNotes:\n%s\n", r.Notes)
	}
}

func newDeliverableShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a deliverable run",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(_ *workspace.Registry, tr *workspace.Tracker) error {
				r, err := tr.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("deliverable run %q: %w", args[0], err)
				}
				if a.flagJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"deliverableRun": r})
				}
				printRun(cmd, r)
				return nil
			})
		},
	}
}

func newDeliverableUpdateCmd(a *app) *cobra.Command {
	var status, notes, artifact string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a deliverable run's status, notes or artifact path",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.DeliverableRunPatch
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if cmd.Flags().Changed("artifact") {
				patch.ArtifactPath = &artifact
			}
			return a.withWorkspace(func(_ *workspace.Registry, tr *workspace.Tracker) error {
				r, err := tr.Update(cmd.Context(), args[0], patch)
				if err != nil {
					return fmt.Errorf("update deliverable run %q: %w", args[0], err)
				}
				if a.flagJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"deliverableRun": r})
				}
				printRun(cmd, r)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "todo, in_progress or done")
	cmd.Flags().StringVar(&notes, "notes", "", "notes (stored verbatim)")
	cmd.Flags().StringVar(&artifact, "artifact", "", "artifact path or URL")
	return cmd
}

func newDeliverableDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a deliverable run",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(_ *workspace.Registry, tr *workspace.Tracker) error {
				if err := tr.Delete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("delete deliverable run %q: %w", args[0], err)
				}
				if !a.flagJSON {
					fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
				}
				return nil
			})
		},
	}
}
