package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "QMT_GATEWAY"

	ModeMock    = "mock"
	ModeXtQuant = "xtquant"
)

// Config is built once at startup and passed by value; request handlers never
// consult the environment.
type Config struct {
	// Token is the shared bearer secret. Empty disables the auth gate.
	Token            string        `mapstructure:"token"`
	Mode             string        `mapstructure:"mode"`
	Addr             string        `mapstructure:"addr"`
	LogLevel         string        `mapstructure:"log_level"`
	LogFormat        string        `mapstructure:"log_format"`
	GinMode          string        `mapstructure:"gin_mode"`
	IdempotentOrders bool          `mapstructure:"idempotent_orders"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthEnabled reports whether protected routes require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.Token != ""
}

type Options struct {
	// ConfigFile is an optional YAML file. Missing default files are ignored.
	ConfigFile string
	// EnvFile is an optional dotenv file loaded before the environment is read.
	EnvFile string
}

func Load(opts Options) (Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("qmt-gateway")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("token", "")
	v.SetDefault("mode", ModeMock)
	v.SetDefault("addr", ":19090")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("idempotent_orders", false)
	v.SetDefault("shutdown_timeout", 5*time.Second)
}

func (c *Config) normalize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode == "" {
		c.Mode = ModeMock
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.GinMode = strings.ToLower(strings.TrimSpace(c.GinMode))
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return errors.Errorf("unsupported log format %q", c.LogFormat)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return errors.Errorf("unsupported gin mode %q", c.GinMode)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	return nil
}

// loadEnvFile loads a dotenv file into the process environment. Variables
// already set in the environment win. A missing default ".env" is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load env file %s", path)
	}
	return nil
}
