package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/smallserver"
	smallhttp "github.com/sagarc03/smallserver/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for smallserver.
type Config struct {
	Env      string               `mapstructure:"env" yaml:"env"`
	Root     string               `mapstructure:"root" yaml:"root" validate:"required"`
	Index    string               `mapstructure:"index" yaml:"index" validate:"required,excludesall=/\\"`
	Server   ServerConfig         `mapstructure:"server" yaml:"server"`
	Pages    PagesConfig          `mapstructure:"pages" yaml:"pages"`
	Cache    CacheConfig          `mapstructure:"cache" yaml:"cache"`
	Compress CompressConfig       `mapstructure:"compress" yaml:"compress"`
	MIME     MIMEConfig           `mapstructure:"mime" yaml:"mime"`
	CORS     smallhttp.CORSConfig `mapstructure:"cors" yaml:"-"`
	Metrics  MetricsConfig        `mapstructure:"metrics" yaml:"metrics"`
	Log      LogConfig            `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server configuration. Timeouts are in seconds.
type ServerConfig struct {
	Address         string `mapstructure:"address" yaml:"address"`
	Port            int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeout     int    `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    int    `mapstructure:"write_timeout" yaml:"write_timeout" validate:"min=0"`
	IdleTimeout     int    `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=0"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"min=1"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.Port)
}

// Duration converts a timeout in seconds.
func Duration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// PagesConfig overrides the built-in fallback pages with files on disk.
// Empty values keep the built-in pages.
type PagesConfig struct {
	Index    string `mapstructure:"index" yaml:"index"`
	NotFound string `mapstructure:"not_found" yaml:"not_found"`
}

// CacheConfig holds caching header configuration.
type CacheConfig struct {
	MaxAge     int      `mapstructure:"max_age" yaml:"max_age" validate:"min=0"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// CompressConfig holds response compression configuration.
type CompressConfig struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// MIMEConfig holds content-type overrides keyed by extension.
type MIMEConfig struct {
	Types map[string]string `mapstructure:"types" yaml:"types,omitempty"`
}

// MetricsConfig holds Prometheus metrics configuration.
// An empty address disables the metrics listener.
type MetricsConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"address":   "server.address",
	"port":      "server.port",
	"not-found": "pages.not_found",
	"max-age":   "cache.max_age",
	"log-level": "log.level",
	"metrics":   "metrics.address",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("root", ".")
	v.SetDefault("index", "index.html")

	v.SetDefault("server.address", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 30)
	v.SetDefault("server.write_timeout", 0) // 0 means no limit, large downloads stream for as long as they need
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("pages.index", "")
	v.SetDefault("pages.not_found", "")

	v.SetDefault("cache.max_age", smallserver.DefaultMaxAge)
	v.SetDefault("cache.extensions", smallserver.DefaultExtensions)
	v.SetDefault("compress.extensions", smallserver.DefaultExtensions)

	v.SetDefault("metrics.address", "")

	v.SetDefault("log.level", "info")
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFiles[0], err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merge config file %s: %w", cf, err)
			}
		}
	} else {
		v.SetConfigName("smallserver")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("SMALLSERVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
