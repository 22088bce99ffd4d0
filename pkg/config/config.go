// Package config loads Pandalearn settings.
//
// Settings are resolved in three layers: built-in defaults, an optional TOML
// file, then PANDALEARN_* environment variables. The result is validated
// before use.
//
//	[server]
//	addr = ":8080"
//	shutdown_timeout = "10s"
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[theme]
//	poll_interval = "2s"
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	perrors "github.com/pandalearn/pandalearn/pkg/errors"
	"github.com/pandalearn/pandalearn/pkg/store"
)

const (
	appName = "pandalearn"

	defaultAddr            = ":8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultSessionTTL      = 365 * 24 * time.Hour
	defaultPollInterval    = 2 * time.Second
	defaultRedisPrefix     = "pandalearn:"
	defaultMongoDatabase   = "pandalearn"
)

// Content sources.
const (
	SourceEmbedded = "embedded"
	SourceMongo    = "mongo"
)

// Config is the full application configuration.
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Store         StoreConfig         `toml:"store"`
	Content       ContentConfig       `toml:"content"`
	Theme         ThemeConfig         `toml:"theme"`
	Observability ObservabilityConfig `toml:"observability"`
}

// ServerConfig configures `pandalearn serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	SessionTTL      Duration `toml:"session_ttl"`
	SecureCookies   bool     `toml:"secure_cookies"`
}

// StoreConfig selects where theme preferences are persisted.
type StoreConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

// ContentConfig selects the lesson repository.
type ContentConfig struct {
	Source        string `toml:"source"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ThemeConfig tunes the theme manager.
type ThemeConfig struct {
	PinUserChoice bool     `toml:"pin_user_choice"`
	PollInterval  Duration `toml:"poll_interval"`
}

// ObservabilityConfig toggles tracing hooks.
type ObservabilityConfig struct {
	Tracing bool `toml:"tracing"`
}

// Duration is a time.Duration written as a string such as "5s" in TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            defaultAddr,
			ReadTimeout:     Duration(defaultReadTimeout),
			WriteTimeout:    Duration(defaultWriteTimeout),
			ShutdownTimeout: Duration(defaultShutdownTimeout),
			SessionTTL:      Duration(defaultSessionTTL),
		},
		Store: StoreConfig{
			Backend:     store.BackendFile,
			Dir:         defaultStoreDir(),
			RedisPrefix: defaultRedisPrefix,
		},
		Content: ContentConfig{
			Source:        SourceEmbedded,
			MongoDatabase: defaultMongoDatabase,
		},
		Theme: ThemeConfig{
			PollInterval: Duration(defaultPollInterval),
		},
	}
}

// Dir returns the Pandalearn configuration directory,
// $XDG_CONFIG_HOME/pandalearn or ~/.config/pandalearn.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".config", appName)
}

// DefaultPath returns the configuration file read when --config is not set.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

func defaultStoreDir() string {
	return filepath.Join(Dir(), "store")
}

// Load builds the configuration. An empty path reads DefaultPath and
// tolerates its absence; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return Config{}, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "read %s", path)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and required fields.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return invalid("server.addr must not be empty")
	}
	for name, d := range map[string]Duration{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"server.session_ttl":      c.Server.SessionTTL,
		"theme.poll_interval":     c.Theme.PollInterval,
	} {
		if d <= 0 {
			return invalid("%s must be greater than 0", name)
		}
	}

	switch c.Store.Backend {
	case store.BackendNone, store.BackendMemory:
	case store.BackendFile:
		if filepath.Clean(c.Store.Dir) == "." {
			return invalid("store.dir must not resolve to the current directory")
		}
	case store.BackendRedis:
		if c.Store.RedisAddr == "" {
			return invalid("store.redis_addr is required for the redis backend")
		}
		if c.Store.RedisDB < 0 || c.Store.RedisDB > 15 {
			return invalid("store.redis_db must be between 0 and 15")
		}
	default:
		return invalid("unknown store.backend %q", c.Store.Backend)
	}

	switch c.Content.Source {
	case SourceEmbedded:
	case SourceMongo:
		if c.Content.MongoURI == "" {
			return invalid("content.mongo_uri is required for the mongo source")
		}
		if c.Content.MongoDatabase == "" {
			return invalid("content.mongo_database must not be empty")
		}
	default:
		return invalid("unknown content.source %q", c.Content.Source)
	}
	return nil
}

// StoreOptions converts the store section for store.Open.
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Backend: c.Store.Backend,
		Dir:     c.Store.Dir,
		Redis: store.RedisOptions{
			Addr:     c.Store.RedisAddr,
			Password: c.Store.RedisPassword,
			DB:       c.Store.RedisDB,
			Prefix:   c.Store.RedisPrefix,
		},
	}
}

func invalid(format string, args ...any) error {
	return perrors.New(perrors.ErrCodeInvalidConfig, format, args...)
}

// =============================================================================
// Environment overrides
// =============================================================================

func applyEnv(c *Config) error {
	var err error
	set := func(e error) {
		if err == nil {
			err = e
		}
	}

	set(readString("PANDALEARN_ADDR", &c.Server.Addr))
	set(readDuration("PANDALEARN_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout))
	set(readBool("PANDALEARN_SECURE_COOKIES", &c.Server.SecureCookies))

	set(readString("PANDALEARN_STORE_BACKEND", &c.Store.Backend))
	set(readString("PANDALEARN_STORE_DIR", &c.Store.Dir))
	set(readString("PANDALEARN_REDIS_ADDR", &c.Store.RedisAddr))
	set(readString("PANDALEARN_REDIS_PASSWORD", &c.Store.RedisPassword))
	set(readInt("PANDALEARN_REDIS_DB", &c.Store.RedisDB))

	set(readString("PANDALEARN_CONTENT_SOURCE", &c.Content.Source))
	set(readString("PANDALEARN_MONGO_URI", &c.Content.MongoURI))
	set(readString("PANDALEARN_MONGO_DATABASE", &c.Content.MongoDatabase))

	set(readBool("PANDALEARN_THEME_PIN", &c.Theme.PinUserChoice))
	set(readDuration("PANDALEARN_THEME_POLL_INTERVAL", &c.Theme.PollInterval))

	set(readBool("PANDALEARN_TRACING", &c.Observability.Tracing))
	return err
}

func readString(key string, dst *string) error {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	if strings.TrimSpace(raw) == "" {
		return invalid("%s must not be empty", key)
	}
	*dst = raw
	return nil
}

func readInt(key string, dst *int) error {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "%s must be an integer", key)
	}
	*dst = parsed
	return nil
}

func readBool(key string, dst *bool) error {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "%s must be a boolean", key)
	}
	*dst = parsed
	return nil
}

func readDuration(key string, dst *Duration) error {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "%s must be a valid duration", key)
	}
	if parsed <= 0 {
		return invalid("%s must be greater than 0", key)
	}
	*dst = Duration(parsed)
	return nil
}
