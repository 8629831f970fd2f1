// Package paths resolves where conchdesk keeps its configuration file and
// its local SQLite database.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user configuration directory.
const AppName = "conchdesk"

// File and directory names.
const (
	ConfigFileName     = "config.yaml"
	DatabaseFileName   = "conchdesk.db"
	DefaultDataDirName = ".conchdesk-db"
)

// Environment overrides.
const (
	EnvConfigDir = "CONCHDESK_CONFIG_DIR"
	EnvDataDir   = "CONCHDESK_DATA_DIR"
)

// lookups are swapped out in tests.
var lookups = struct {
	getenv        func(string) string
	getwd         func() (string, error)
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	getenv:        os.Getenv,
	getwd:         os.Getwd,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory:
// $XDG_CONFIG_HOME/conchdesk or ~/.config/conchdesk on Linux, and
// os.UserConfigDir()/conchdesk elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := lookups.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := lookups.getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := lookups.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ResolveConfigDir picks the configuration directory: flag, then
// CONCHDESK_CONFIG_DIR, then DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstNonEmpty(flag, lookups.getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the data directory: flag, then the data_dir config
// value, then CONCHDESK_DATA_DIR, then .conchdesk-db under the working
// directory.
func ResolveDataDir(flag, configValue string) (string, error) {
	if dir := firstNonEmpty(flag, configValue, lookups.getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := lookups.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile is the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// DatabaseFile is the default SQLite database path inside dataDir.
func DatabaseFile(dataDir string) string {
	return filepath.Join(dataDir, DatabaseFileName)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
