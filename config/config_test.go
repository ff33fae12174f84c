package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmgilman/go/filehandler/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("FILEHANDLER_S3_PROVIDER", "aws")
	t.Setenv("FILEHANDLER_S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("FILEHANDLER_S3_REGION", "eu-west-1")
	t.Setenv("FILEHANDLER_S3_ACCESS_KEY", "key")
	t.Setenv("FILEHANDLER_S3_SECRET_KEY", "secret")
	t.Setenv("FILEHANDLER_S3_USE_SSL", "false")
	t.Setenv("FILEHANDLER_S3_PATH_STYLE", "true")
	t.Setenv("FILEHANDLER_S3_PART_SIZE", "8388608")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{
		Provider:  ProviderAWS,
		Endpoint:  "http://localhost:9000",
		Region:    "eu-west-1",
		AccessKey: "key",
		SecretKey: "secret",
		UseSSL:    false,
		PathStyle: true,
		PartSize:  8388608,
	}, cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s3.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: minio\nendpoint: localhost:9000\nuse_ssl: false\n"), 0o600))

	t.Run("file values", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "localhost:9000", cfg.Endpoint)
		assert.False(t, cfg.UseSSL)
		assert.Equal(t, "us-east-1", cfg.Region)
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv("FILEHANDLER_S3_ENDPOINT", "minio:9000")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "minio:9000", cfg.Endpoint)
	})

	t.Run("missing file falls back", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "aws without endpoint", mutate: func(c *Config) { c.Provider = ProviderAWS; c.Endpoint = "" }},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "gcs" }, wantErr: "Provider:oneof"},
		{name: "minio without endpoint", mutate: func(c *Config) { c.Endpoint = "" }, wantErr: "Endpoint:required_if"},
		{name: "access key without secret", mutate: func(c *Config) { c.AccessKey = "k" }, wantErr: "SecretKey:required_with"},
		{name: "part size too small", mutate: func(c *Config) { c.PartSize = 1024 }, wantErr: "PartSize:gte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("FILEHANDLER_S3_PROVIDER", "gcs")
	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeInvalidConfig))
}
