// Package config loads runtime settings from defaults, an optional config
// file, WORDFREQ_* environment variables and command-line flags.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. WORDFREQ_HTTP_PORT.
const EnvPrefix = "WORDFREQ"

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LoadConfig configures document loading.
type LoadConfig struct {
	// MaxBytes rejects larger files. Zero means unlimited.
	MaxBytes int64 `mapstructure:"max_bytes"`

	// Root confines files loaded through the HTTP API to this directory.
	// Empty disables the check.
	Root string `mapstructure:"root"`
}

// Config is the full runtime configuration.
type Config struct {
	Analyzer string     `mapstructure:"analyzer"`
	TopK     int        `mapstructure:"top_k"`
	LogLevel string     `mapstructure:"log_level"`
	HTTP     HTTPConfig `mapstructure:"http"`
	Load     LoadConfig `mapstructure:"load"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Analyzer: "delimiter",
		TopK:     0,
		LogLevel: "info",
		HTTP: HTTPConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Load: LoadConfig{Root: "."},
	}
}

// Load resolves the configuration. path may be empty. Flags in fs whose
// names match a config key with "_" and "." spelled "-" (e.g. "top-k",
// "http-port") override every other source when set.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	if fs != nil {
		for _, key := range v.AllKeys() {
			if f := fs.Lookup(flagName.Replace(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, errors.Wrapf(err, "bind flag %s", f.Name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if cfg.TopK < 0 {
		return Config{}, errors.Errorf("top_k must be >= 0, got %d", cfg.TopK)
	}
	return cfg, nil
}

var flagName = strings.NewReplacer("_", "-", ".", "-")

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("analyzer", d.Analyzer)
	v.SetDefault("top_k", d.TopK)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("http.port", d.HTTP.Port)
	v.SetDefault("http.read_timeout", d.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", d.HTTP.WriteTimeout)
	v.SetDefault("http.idle_timeout", d.HTTP.IdleTimeout)
	v.SetDefault("load.max_bytes", d.Load.MaxBytes)
	v.SetDefault("load.root", d.Load.Root)
}

// ParseLogLevel maps a level name to a slog.Level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
