package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/conchdesk/pkg/conchdesk"
	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// app carries global flag values and the state loaded before each command.
type app struct {
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool

	configDir string
	cfg       *types.Config
	logger    *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "conchdesk",
		Short:         "Lead intake and engagement workspace for Conch reliability work",
		Version:       conchdesk.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return asUserError(err)
	})

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/conchdesk)")
	root.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.conchdesk-db)")
	root.PersistentFlags().BoolVar(&a.flagJSON, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newConfigCmd(a),
		newServeCmd(a),
		newEngagementCmd(a),
		newDeliverableCmd(a),
		newDumpCmd(a),
		newRestoreCmd(a),
	)
	return root
}

// load resolves directories, reads config.yaml, and builds the logger.
func (a *app) load() error {
	configDir, err := resolveConfigDir(a.flagConfigDir)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(configDir, a.flagDataDir)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return asUserError(err)
	}

	a.configDir = configDir
	a.cfg = cfg
	a.logger = logger
	return nil
}

// exactArgs wraps cobra.ExactArgs so a wrong argument count exits as a user
// error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return asUserError(cobra.ExactArgs(n)(cmd, args))
	}
}
