package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the storefront binaries.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
	TCPAddr  string `mapstructure:"tcp_addr"`
	UDPAddr  string `mapstructure:"udp_addr"` // empty disables the UDP feed
	GRPCAddr string `mapstructure:"grpc_addr"`
}

// CatalogConfig selects where the catalog CSV comes from.
//
// Source is one of "file", "http" or "db".
type CatalogConfig struct {
	Source         string `mapstructure:"source"`
	Path           string `mapstructure:"path"`
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	Watch          bool   `mapstructure:"watch"`
}

func (c CatalogConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	JWTSecret         string `mapstructure:"jwt_secret"`
	JWTIssuer         string `mapstructure:"jwt_issuer"`
	JWTTTLHours       int    `mapstructure:"jwt_ttl_hours"`
	AdminUsername     string `mapstructure:"admin_username"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

func (a AuthConfig) JWTDuration() time.Duration {
	if a.JWTTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.JWTTTLHours) * time.Hour
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// DefaultJWTSecret is the development signing secret. It is public, so Validate
// refuses it once an admin account is configured.
const DefaultJWTSecret = "dev-secret-change-me"

const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceDB   = "db"
)

// Load reads config.yaml from the working directory when present, then applies
// STOREFRONT_* environment overrides (server.http_addr -> STOREFRONT_SERVER_HTTP_ADDR).
func Load() (*Config, error) {
	return LoadFrom(viper.New(), ".")
}

// LoadFrom is Load with an explicit viper instance and config search path.
func LoadFrom(v *viper.Viper, dir string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	setDefaults(v)

	v.SetEnvPrefix("storefront")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected catalog source has what it needs, and that
// an enabled admin account signs tokens with a private secret.
func (c *Config) Validate() error {
	if c.Auth.AdminPasswordHash != "" {
		if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == DefaultJWTSecret {
			return errors.New("auth.jwt_secret must be set to a private value when auth.admin_password_hash is configured")
		}
	}

	switch c.Catalog.Source {
	case SourceFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for source %q", SourceFile)
		}
	case SourceHTTP:
		if c.Catalog.URL == "" {
			return fmt.Errorf("catalog.url is required for source %q", SourceHTTP)
		}
	case SourceDB:
	default:
		return fmt.Errorf("unknown catalog.source %q", c.Catalog.Source)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.tcp_addr", ":7070")
	v.SetDefault("server.udp_addr", ":7071")
	v.SetDefault("server.grpc_addr", ":9090")

	v.SetDefault("catalog.source", SourceFile)
	v.SetDefault("catalog.path", "data/products.csv")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.timeout_seconds", 10)
	v.SetDefault("catalog.watch", false)

	v.SetDefault("database.path", defaultDBPath())

	// dev default, rejected by Validate once an admin hash is set
	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.jwt_issuer", "storefront")
	v.SetDefault("auth.jwt_ttl_hours", 24)
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password_hash", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return filepath.Join(home, ".storefront", "data.db")
}
