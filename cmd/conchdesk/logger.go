package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

// newLogger builds the process logger. Production config writes JSON to
// stderr; development config writes console lines at debug level unless
// level says otherwise.
func newLogger(c types.LogConfig) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if c.Development {
		config = zap.NewDevelopmentConfig()
	}
	if c.Level != "" {
		level, err := zap.ParseAtomicLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", c.Level, err)
		}
		config.Level = level
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
