package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, ":7070", cfg.Server.TCPAddr)
	assert.Equal(t, ":7071", cfg.Server.UDPAddr)
	assert.Equal(t, SourceFile, cfg.Catalog.Source)
	assert.Equal(t, "data/products.csv", cfg.Catalog.Path)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout())
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTDuration())
	assert.Equal(t, DefaultJWTSecret, cfg.Auth.JWTSecret)
	assert.Empty(t, cfg.Auth.AdminPasswordHash)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
catalog:
  source: http
  url: http://localhost:9000/products.csv
  watch: true
auth:
  jwt_ttl_hours: 2
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("STOREFRONT_SERVER_HTTP_ADDR", ":18080")
	t.Setenv("STOREFRONT_LOG_LEVEL", "warn")

	cfg, err := LoadFrom(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, SourceHTTP, cfg.Catalog.Source)
	assert.Equal(t, "http://localhost:9000/products.csv", cfg.Catalog.URL)
	assert.True(t, cfg.Catalog.Watch)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JWTDuration())
	assert.Equal(t, ":18080", cfg.Server.HTTPAddr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog CatalogConfig
		wantErr bool
	}{
		{"file with path", CatalogConfig{Source: SourceFile, Path: "x.csv"}, false},
		{"file without path", CatalogConfig{Source: SourceFile}, true},
		{"http without url", CatalogConfig{Source: SourceHTTP}, true},
		{"db", CatalogConfig{Source: SourceDB}, false},
		{"unknown", CatalogConfig{Source: "ftp"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Catalog: tt.catalog}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_AdminSecret(t *testing.T) {
	base := CatalogConfig{Source: SourceDB}
	tests := []struct {
		name    string
		auth    AuthConfig
		wantErr bool
	}{
		{"admin disabled with default secret", AuthConfig{JWTSecret: DefaultJWTSecret}, false},
		{"admin with default secret", AuthConfig{JWTSecret: DefaultJWTSecret, AdminPasswordHash: "$2a$10$x"}, true},
		{"admin with empty secret", AuthConfig{AdminPasswordHash: "$2a$10$x"}, true},
		{"admin with private secret", AuthConfig{JWTSecret: "s3cr3t", AdminPasswordHash: "$2a$10$x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Catalog: base, Auth: tt.auth}
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_AdminHashNeedsSecret(t *testing.T) {
	t.Setenv("STOREFRONT_AUTH_ADMIN_PASSWORD_HASH", "$2a$10$x")

	_, err := LoadFrom(viper.New(), t.TempDir())
	require.Error(t, err)

	t.Setenv("STOREFRONT_AUTH_JWT_SECRET", "private")
	cfg, err := LoadFrom(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "private", cfg.Auth.JWTSecret)
}
