package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML config file
const ConfigFileEnv = "SAREE_CONFIG_FILE"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Server   ServerConfig `mapstructure:"server"`
	Store    StoreConfig  `mapstructure:"store"`
	OTLP     OTLPConfig   `mapstructure:"otlp"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver"`
	Mongo  MongoConfig `mapstructure:"mongo"`
}

// MongoConfig holds the MongoDB connection settings
type MongoConfig struct {
	URI                    string        `mapstructure:"uri"`
	Database               string        `mapstructure:"database"`
	MaxPoolSize            uint64        `mapstructure:"max_pool_size"`
	MinPoolSize            uint64        `mapstructure:"min_pool_size"`
	MaxIdleTime            time.Duration `mapstructure:"max_idle_time"`
	ServerSelectionTimeout time.Duration `mapstructure:"server_selection_timeout"`
	SocketTimeout          time.Duration `mapstructure:"socket_timeout"`
	ConnectTimeout         time.Duration `mapstructure:"connect_timeout"`
}

type OTLPConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
}

var envBindings = map[string]string{
	"log_level":                            "LOG_LEVEL",
	"server.host":                          "SERVER_HOST",
	"server.port":                          "SERVER_PORT",
	"store.driver":                         "STORE_DRIVER",
	"store.mongo.uri":                      "MONGODB_URI",
	"store.mongo.database":                 "MONGODB_DATABASE",
	"store.mongo.max_pool_size":            "MONGODB_MAX_POOL_SIZE",
	"store.mongo.min_pool_size":            "MONGODB_MIN_POOL_SIZE",
	"store.mongo.max_idle_time":            "MONGODB_MAX_IDLE_TIME",
	"store.mongo.server_selection_timeout": "MONGODB_SERVER_SELECTION_TIMEOUT",
	"store.mongo.socket_timeout":           "MONGODB_SOCKET_TIMEOUT",
	"store.mongo.connect_timeout":          "MONGODB_CONNECT_TIMEOUT",
	"otlp.enabled":                         "OTEL_ENABLED",
	"otlp.endpoint":                        "OTEL_EXPORTER_OTLP_ENDPOINT",
	"otlp.service_name":                    "OTEL_SERVICE_NAME",
	"otlp.environment":                     "OTEL_ENVIRONMENT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("store.driver", StoreMongo)
	v.SetDefault("store.mongo.uri", "")
	v.SetDefault("store.mongo.database", "saree_catalog")
	v.SetDefault("store.mongo.max_pool_size", 10)
	v.SetDefault("store.mongo.min_pool_size", 2)
	v.SetDefault("store.mongo.max_idle_time", 30*time.Second)
	v.SetDefault("store.mongo.server_selection_timeout", 5*time.Second)
	v.SetDefault("store.mongo.socket_timeout", 45*time.Second)
	v.SetDefault("store.mongo.connect_timeout", 10*time.Second)
	v.SetDefault("otlp.enabled", false)
	v.SetDefault("otlp.endpoint", "localhost:4317")
	v.SetDefault("otlp.service_name", "saree-catalog-api")
	v.SetDefault("otlp.environment", "development")
}

// LoadConfig loads configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence. The file is
// taken from SAREE_CONFIG_FILE when set, otherwise from path; an empty
// path means no file.
func LoadConfig(path string) (*Config, error) {
	const op = "config.LoadConfig"

	if env, ok := os.LookupEnv(ConfigFileEnv); ok {
		path = env
	}

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%s: failed to read %s: %w", op, path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

// Validate checks settings that have no usable default
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMongo:
		if c.Store.Mongo.URI == "" {
			return errors.New("MONGODB_URI is required for the mongo store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error")
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Addr returns the host:port the HTTP server listens on
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Redacted returns the URI with any password removed, for logging
func (c MongoConfig) Redacted() string {
	scheme, rest, ok := strings.Cut(c.URI, "://")
	if !ok {
		return c.URI
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return c.URI
	}
	user, _, _ := strings.Cut(rest[:at], ":")
	return scheme + "://" + user + ":***@" + rest[at+1:]
}
