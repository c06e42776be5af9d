package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty file keeps defaults",
			yaml: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost:3000", cfg.Address)
				assert.NotEmpty(t, cfg.Database.Path)
			},
		},
		{
			name: "overrides merge over defaults",
			yaml: "address: \"0.0.0.0:8080\"\nlogging:\n  level: debug\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0:8080", cfg.Address)
				lvl, err := cfg.SlogLevel()
				require.NoError(t, err)
				assert.Equal(t, slog.LevelDebug, lvl)
				// untouched default survives
				assert.NotEmpty(t, cfg.Database.Path)
			},
		},
		{
			name:    "empty address fails validation",
			yaml:    `address: ""`,
			wantErr: "config validation failed",
		},
		{
			name:    "unknown logging level fails validation",
			yaml:    "logging:\n  level: loud\n",
			wantErr: "config validation failed",
		},
		{
			name:    "unknown field rejected",
			yaml:    `listen_addr: "localhost:1234"`,
			wantErr: "failed to unmarshal config file",
		},
		{
			name:    "invalid yaml syntax",
			yaml:    `invalid: [yaml: content`,
			wantErr: "failed to unmarshal config file",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestConfig(t, test.yaml)
			cfg, err := Load(path)

			if test.wantErr != "" {
				require.ErrorContains(t, err, test.wantErr)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if test.check != nil {
				test.check(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	require.ErrorContains(t, err, "failed to read config file")
	assert.Nil(t, cfg)
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
	return path
}
