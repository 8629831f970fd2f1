package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/conchdesk/internal/httpapi"
	"github.com/mesh-intelligence/conchdesk/internal/notify"
	"github.com/mesh-intelligence/conchdesk/internal/workspace"
)

// shutdownGrace bounds how long serve waits for in-flight requests.
const shutdownGrace = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the lead alert dispatcher",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

// serve runs until ctx is cancelled or the listener fails.
func (a *app) serve(ctx context.Context) error {
	backend, err := a.attach()
	if err != nil {
		return err
	}
	defer backend.Detach()

	dispatcher := notify.FromConfig(a.logger, a.cfg.Notify)
	api := httpapi.NewServer(a.logger,
		workspace.NewRegistry(backend),
		workspace.NewTracker(backend),
		workspace.NewIntake(backend, dispatcher, a.cfg.Lead.Source),
		httpapi.Options{BasePath: a.cfg.HTTP.BasePath, LeadRedirect: a.cfg.Lead.Redirect},
	)
	server := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		a.logger.Info("listening",
			zap.String("addr", server.Addr),
			zap.String("store", backend.Dialect()),
			zap.Strings("alerts", dispatcher.Senders()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		a.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
