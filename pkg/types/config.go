package types

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Supported store backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds every setting the service needs. It is decoded once at
// startup and passed to each component.
type Config struct {
	DataDir string       `mapstructure:"data_dir" yaml:"data_dir"`
	Store   StoreConfig  `mapstructure:"store" yaml:"store"`
	HTTP    HTTPConfig   `mapstructure:"http" yaml:"http"`
	Lead    LeadConfig   `mapstructure:"lead" yaml:"lead"`
	Notify  NotifyConfig `mapstructure:"notify" yaml:"notify"`
	Log     LogConfig    `mapstructure:"log" yaml:"log"`
}

// StoreConfig selects the relational store. For postgres, URL is a DSN and
// Key is the privileged access key used as the connection password when the
// DSN has none. For sqlite, URL is a database file path.
type StoreConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	URL     string `mapstructure:"url" yaml:"url"`
	Key     string `mapstructure:"key" yaml:"key"`
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	BasePath string `mapstructure:"base_path" yaml:"base_path"`
}

// LeadConfig parameterizes the lead intake handler.
type LeadConfig struct {
	Source   string `mapstructure:"source" yaml:"source"`
	Redirect string `mapstructure:"redirect" yaml:"redirect"`
}

// NotifyConfig holds the optional lead alert destinations.
type NotifyConfig struct {
	DiscordWebhookURL string        `mapstructure:"discord_webhook_url" yaml:"discord_webhook_url"`
	TelegramBotToken  string        `mapstructure:"telegram_bot_token" yaml:"telegram_bot_token"`
	TelegramChatID    string        `mapstructure:"telegram_chat_id" yaml:"telegram_chat_id"`
	TelegramAPIURL    string        `mapstructure:"telegram_api_url" yaml:"telegram_api_url"`
	QueueSize         int           `mapstructure:"queue_size" yaml:"queue_size"`
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// Config validation errors.
var (
	ErrBackendEmpty       = errors.New("backend must not be empty")
	ErrBackendUnknown     = errors.New("unknown backend")
	ErrStoreURLEmpty      = errors.New("store url must not be empty")
	ErrStoreKeyEmpty      = errors.New("store key must not be empty")
	ErrHTTPAddrEmpty      = errors.New("http addr must not be empty")
	ErrQueueSizeInvalid   = errors.New("notify queue size must be positive")
	ErrNotifyTimeoutValid = errors.New("notify timeout must be positive")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendPostgres: true,
}

// Validate checks that the store selection is usable. It returns a sentinel
// error from this package on failure.
func (c StoreConfig) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.URL == "" {
		return ErrStoreURLEmpty
	}
	if c.Backend == BackendPostgres && c.Key == "" && !dsnHasPassword(c.URL) {
		return ErrStoreKeyEmpty
	}
	return nil
}

// secretMask replaces secrets in printed configuration.
const secretMask = "********"

// dsnHasPassword reports whether a Postgres DSN, in URL or keyword/value
// form, carries its own password.
func dsnHasPassword(dsn string) bool {
	if u, err := url.Parse(dsn); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		if pw, ok := u.User.Password(); ok && pw != "" {
			return true
		}
		return u.Query().Get("password") != ""
	}
	for _, field := range strings.Fields(dsn) {
		if v, ok := strings.CutPrefix(field, "password="); ok && v != "" {
			return true
		}
	}
	return false
}

// redactDSN masks the password of a Postgres DSN. The URL form uses the
// net/url mask. Other URLs are returned unchanged.
func redactDSN(dsn string) string {
	if !dsnHasPassword(dsn) {
		return dsn
	}
	if u, err := url.Parse(dsn); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
		if q := u.Query(); q.Get("password") != "" {
			q.Set("password", "xxxxx")
			u.RawQuery = q.Encode()
		}
		return u.Redacted()
	}
	fields := strings.Fields(dsn)
	for i, field := range fields {
		if strings.HasPrefix(field, "password=") {
			fields[i] = "password=" + secretMask
		}
	}
	return strings.Join(fields, " ")
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if c.HTTP.Addr == "" {
		return ErrHTTPAddrEmpty
	}
	if c.Notify.QueueSize <= 0 {
		return ErrQueueSizeInvalid
	}
	if c.Notify.Timeout <= 0 {
		return ErrNotifyTimeoutValid
	}
	return nil
}

// Redacted returns a copy with secrets masked, suitable for printing.
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return secretMask
	}
	c.Store.URL = redactDSN(c.Store.URL)
	c.Store.Key = mask(c.Store.Key)
	c.Notify.DiscordWebhookURL = mask(c.Notify.DiscordWebhookURL)
	c.Notify.TelegramBotToken = mask(c.Notify.TelegramBotToken)
	return c
}
