package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/conchdesk/internal/workspace"
	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

func newEngagementCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "engagement",
		Aliases: []string{"engagements", "eng"},
		Short:   "Manage engagements",
	}
	cmd.AddCommand(
		newEngagementListCmd(a),
		newEngagementCreateCmd(a),
		newEngagementShowCmd(a),
		newEngagementUpdateCmd(a),
		newEngagementDeleteCmd(a),
		newEngagementExportCmd(a),
		newEngagementAuditCmd(a),
	)
	return cmd
}

func newEngagementListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List engagements, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(reg *workspace.Registry, _ *workspace.Tracker) error {
				engagements, err := reg.List(cmd.Context())
				if err != nil {
					return err
				}
				if a.flagJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"engagements": engagements})
				}
				w := table(cmd)
				fmt.Fprintln(w, "ID\tCOMPANY\tCONTACT\tSTATUS\tCREATED")
				for _, e := range engagements {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.CompanyName, e.ContactEmail, e.Status, e.CreatedAt)
				}
				return w.Flush()
			})
		},
	}
}

func newEngagementCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <company-name> <contact-email>",
		Short: "Create an engagement with the standard deliverables",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(reg *workspace.Registry, _ *workspace.Tracker) error {
				e, err := reg.Create(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if a.flagJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"engagement": e})
				}
				fmt.Fprintln(cmd.OutOrStdout(), e.ID)
				return nil
			})
		},
	}
}

func newEngagementShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an engagement and its deliverable runs",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(reg *workspace.Registry, _ *workspace.Tracker) error {
				detail, err := reg.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("engagement %q: %w", args[0], err)
				}
				if a.flagJSON {
					return writeJSON(cmd.OutOrStdout(), detail)
				}

				e := detail.Engagement
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:       %s\n", e.ID)
				fmt.Fprintf(out, "Company:  %s\n", e.CompanyName)
				fmt.Fprintf(out, "Contact:  %s\n", e.ContactEmail)
				fmt.Fprintf(out, "Status:   %s\n", e.Status)
				fmt.Fprintf(out, "Created:  %s\n", e.CreatedAt)
				fmt.Fprintln(out)

				w := table(cmd)
				fmt.Fprintln(w, "RUN ID\tKEY\tSTATUS\tTITLE")
				for _, r := range detail.DeliverableRuns {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Key, r.Status, r.Title)
				}
				return w.Flush()
			})
		},
	}
}

func newEngagementUpdateCmd(a *app) *cobra.Command {
	var company, email, status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an engagement's company, contact or status",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch types.EngagementPatch
			if cmd.Flags().Changed("company") {
				patch.CompanyName = &company
			}
			if cmd.Flags().Changed("email") {
				patch.ContactEmail = &email
			}
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			return a.withWorkspace(func(reg *workspace.Registry, _ *workspace.Tracker) error {
				e, err := reg.Update(cmd.Context(), args[0], patch)
				if err != nil {
					return fmt.Errorf("update engagement %q: %w", args[0], err)
				}
				if a.flagJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"engagement": e})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", e.ID, e.CompanyName, e.ContactEmail, e.Status)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&status, "status", "", "engagement status (free text, e.g. active, paused, completed)")
	return cmd
}

func newEngagementDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an engagement (its deliverable runs are kept)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(reg *workspace.Registry, _ *workspace.Tracker) error {
				if err := reg.Delete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("delete engagement %q: %w", args[0], err)
				}
				if !a.flagJSON {
					fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
				}
				return nil
			})
		},
	}
}

func newEngagementExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Render the engagement summary as markdown",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(reg *workspace.Registry, _ *workspace.Tracker) error {
				summary, err := reg.Export(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("export engagement %q: %w", args[0], err)
				}
				if output == "" {
					_, err := fmt.Fprint(cmd.OutOrStdout(), summary.Content)
					return err
				}
				if err := os.WriteFile(output, []byte(summary.Content), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newEngagementAuditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "List engagements missing standard deliverable runs",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(func(reg *workspace.Registry, _ *workspace.Tracker) error {
				findings, err := reg.Audit(cmd.Context())
				if err != nil {
					return err
				}
				if a.flagJSON {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"findings": findings})
				}
				out := cmd.OutOrStdout()
				if len(findings) == 0 {
					fmt.Fprintln(out, "all engagements have", workspace.ExpectedRunCount, "deliverable runs")
					return nil
				}
				for _, f := range findings {
					fmt.Fprintln(out, f.String())
				}
				return nil
			})
		},
	}
}
