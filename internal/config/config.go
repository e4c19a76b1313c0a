// Package config resolves clipshelf settings from flags, environment,
// an optional .env file and an optional config.yaml, in that order of
// precedence, with XDG base directories for default paths.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName names the XDG subdirectories and the config file directory.
	AppName = "clipshelf"
	// EnvPrefix prefixes every environment variable, e.g. CLIPSHELF_DATABASE.
	EnvPrefix = "CLIPSHELF"
)

// Keys shared by flags, environment and config file.
const (
	KeyDatabase        = "database"
	KeyEphemeral       = "ephemeral"
	KeyDebugLog        = "debug_log"
	KeyDebugLogMaxMB   = "debug_log_max_mb"
	KeyDebugLogBackups = "debug_log_backups"
	KeyDebugLogMaxAge  = "debug_log_max_age_days"
	KeySlowQueryMS     = "slow_query_ms"
	KeyVerbose         = "verbose"
	KeyQuiet           = "quiet"
	KeyPassphrase      = "passphrase"
)

const defaultSlowQueryMS = 50

var (
	ErrNoDatabase    = errors.New("database path is required unless ephemeral")
	ErrNegativeValue = errors.New("value must not be negative")
)

// Config is the resolved application configuration.
type Config struct {
	Database        string        // durable store file
	Ephemeral       bool          // memory-only store; Database is ignored
	DebugLog        string        // debug log file; empty disables it
	DebugLogMaxMB   int           // 0 means no size cap
	DebugLogBackups int           // rotated files kept; 0 keeps all
	DebugLogMaxAge  int           // days; 0 keeps all
	SlowQuery       time.Duration // slow-query log threshold
	Verbose         int
	Quiet           bool
	Passphrase      string // optional; prompted for when empty and needed
}

// DefaultDatabasePath returns $XDG_DATA_HOME/clipshelf/history.db.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, AppName, "history.db")
}

// DefaultDebugLogPath returns $XDG_STATE_HOME/clipshelf/debug.log.
func DefaultDebugLogPath() string {
	return filepath.Join(xdg.StateHome, AppName, "debug.log")
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// New returns a viper instance with defaults, environment binding and the
// config file search path set. Nothing is read yet.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	return v
}

// SetDefaults registers a default for every key so environment-only values
// are visible to Get.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabase, DefaultDatabasePath())
	v.SetDefault(KeyEphemeral, false)
	v.SetDefault(KeyDebugLog, DefaultDebugLogPath())
	v.SetDefault(KeyDebugLogMaxMB, 10)
	v.SetDefault(KeyDebugLogBackups, 3)
	v.SetDefault(KeyDebugLogMaxAge, 0)
	v.SetDefault(KeySlowQueryMS, defaultSlowQueryMS)
	v.SetDefault(KeyVerbose, 0)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyPassphrase, "")
}

// LoadDotEnv loads variables from path into the process environment.
// Existing variables win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ReadFile reads config.yaml if one is found on the search path.
func ReadFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load resolves a Config from v.
// PRE: flags, if any, are already bound to v
// POST: the returned Config has passed Validate
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Database:        v.GetString(KeyDatabase),
		Ephemeral:       v.GetBool(KeyEphemeral),
		DebugLog:        v.GetString(KeyDebugLog),
		DebugLogMaxMB:   v.GetInt(KeyDebugLogMaxMB),
		DebugLogBackups: v.GetInt(KeyDebugLogBackups),
		DebugLogMaxAge:  v.GetInt(KeyDebugLogMaxAge),
		SlowQuery:       time.Duration(v.GetInt(KeySlowQueryMS)) * time.Millisecond,
		Verbose:         v.GetInt(KeyVerbose),
		Quiet:           v.GetBool(KeyQuiet),
		Passphrase:      v.GetString(KeyPassphrase),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration's invariants.
func (c Config) Validate() error {
	if !c.Ephemeral && c.Database == "" {
		return ErrNoDatabase
	}
	if c.DebugLogMaxMB < 0 {
		return fmt.Errorf("%s: %w", KeyDebugLogMaxMB, ErrNegativeValue)
	}
	if c.DebugLogBackups < 0 {
		return fmt.Errorf("%s: %w", KeyDebugLogBackups, ErrNegativeValue)
	}
	if c.DebugLogMaxAge < 0 {
		return fmt.Errorf("%s: %w", KeyDebugLogMaxAge, ErrNegativeValue)
	}
	if c.SlowQuery < 0 {
		return fmt.Errorf("%s: %w", KeySlowQueryMS, ErrNegativeValue)
	}
	return nil
}
