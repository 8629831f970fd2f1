package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/conchdesk/internal/workspace"
	"github.com/mesh-intelligence/conchdesk/pkg/store"
)

// attach connects to the configured store. The caller must defer Detach.
func (a *app) attach() (store.Backend, error) {
	backend := store.NewBackend()
	if err := backend.Attach(a.cfg.Store); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return backend, nil
}

// withWorkspace attaches the store, runs fn with a registry and tracker over
// it, and detaches.
func (a *app) withWorkspace(fn func(reg *workspace.Registry, tr *workspace.Tracker) error) error {
	backend, err := a.attach()
	if err != nil {
		return err
	}
	defer backend.Detach()
	return fn(workspace.NewRegistry(backend), workspace.NewTracker(backend))
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// table returns a tabwriter for column output on cmd's stdout. Callers must
// Flush it.
func table(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
}
