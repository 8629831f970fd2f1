package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/conchdesk/internal/notify"
	"github.com/mesh-intelligence/conchdesk/internal/paths"
	"github.com/mesh-intelligence/conchdesk/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyDataDir = "data_dir"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# conchdesk configuration

store:
  # sqlite or postgres
  backend: sqlite
  # SQLite file path or Postgres DSN. Empty uses <data_dir>/conchdesk.db.
  # url:
  # Postgres service-role key, used as the password when the DSN has none.
  # key:

http:
  addr: ":8080"
  base_path: ""

lead:
  source: app.conch.so
  redirect: /

notify:
  # discord_webhook_url:
  # telegram_bot_token:
  # telegram_chat_id:
  queue_size: 64
  timeout: 10s

log:
  level: info
  development: false

# Data directory (optional; overridable by --data-dir)
# data_dir:
`

// configDefaults seeds viper before config.yaml and the environment.
var configDefaults = map[string]any{
	"store.backend":              types.BackendSQLite,
	"store.url":                  "",
	"store.key":                  "",
	"http.addr":                  ":8080",
	"http.base_path":             "",
	"lead.source":                types.DefaultLeadSource,
	"lead.redirect":              "/",
	"notify.discord_webhook_url": "",
	"notify.telegram_bot_token":  "",
	"notify.telegram_chat_id":    "",
	"notify.telegram_api_url":    notify.DefaultTelegramAPIURL,
	"notify.queue_size":          notify.DefaultQueueSize,
	"notify.timeout":             notify.DefaultTimeout,
	"log.level":                  "info",
	"log.development":            false,
}

// envBindings lists the environment variables read for each key, highest
// precedence first. The unprefixed names match the hosted deployment.
var envBindings = map[string][]string{
	"store.backend":              {"CONCHDESK_STORE_BACKEND"},
	"store.url":                  {"CONCHDESK_STORE_URL", "SUPABASE_DB_URL"},
	"store.key":                  {"CONCHDESK_STORE_KEY", "SUPABASE_SERVICE_ROLE_KEY"},
	"http.addr":                  {"CONCHDESK_HTTP_ADDR"},
	"http.base_path":             {"CONCHDESK_HTTP_BASE_PATH"},
	"lead.source":                {"CONCHDESK_LEAD_SOURCE"},
	"lead.redirect":              {"CONCHDESK_LEAD_REDIRECT"},
	"notify.discord_webhook_url": {"CONCHDESK_NOTIFY_DISCORD_WEBHOOK_URL", "LEAD_ALERT_DISCORD_WEBHOOK_URL"},
	"notify.telegram_bot_token":  {"CONCHDESK_NOTIFY_TELEGRAM_BOT_TOKEN", "LEAD_ALERT_TELEGRAM_BOT_TOKEN"},
	"notify.telegram_chat_id":    {"CONCHDESK_NOTIFY_TELEGRAM_CHAT_ID", "LEAD_ALERT_TELEGRAM_CHAT_ID"},
	"notify.telegram_api_url":    {"CONCHDESK_NOTIFY_TELEGRAM_API_URL"},
	"notify.queue_size":          {"CONCHDESK_NOTIFY_QUEUE_SIZE"},
	"notify.timeout":             {"CONCHDESK_NOTIFY_TIMEOUT"},
	"log.level":                  {"CONCHDESK_LOG_LEVEL"},
	"log.development":            {"CONCHDESK_LOG_DEVELOPMENT"},
}

func resolveConfigDir(flag string) (string, error) {
	dir, err := paths.ResolveConfigDir(flag)
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return dir, nil
}

// loadConfig reads config.yaml from configDir, applies environment
// overrides, resolves the data directory, and validates the result. It
// creates the directory and a default config.yaml on first run.
func loadConfig(configDir, dataDirFlag string) (*types.Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, asUserError(fmt.Errorf("read config: %w", err))
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, asUserError(fmt.Errorf("decode config: %w", err))
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg.DataDir = dataDir
	if cfg.Store.Backend == types.BackendSQLite && cfg.Store.URL == "" {
		cfg.Store.URL = paths.DatabaseFile(dataDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, asUserError(fmt.Errorf("invalid config: %w", err))
	}
	return &cfg, nil
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml
// already exists.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
