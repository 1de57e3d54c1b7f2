package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickhohler/cider-tool/internal/domain"
)

func TestFileLoaderMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "loader must not create the config file")
}

func TestFileLoaderHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "amend:\n  strategy: structured\ndoctor:\n  tools:\n    security: /opt/bin/security\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyStructured, cfg.Amend.Strategy)
	assert.Equal(t, "/opt/bin/security", cfg.Doctor.Tools.Security)
	assert.Equal(t, domain.DefaultWhichCommand, cfg.Doctor.Tools.Which)
	assert.Equal(t, domain.DefaultDeveloperFilter, cfg.Doctor.DeveloperFilter)
	assert.Equal(t, domain.ColorAuto, cfg.Output.Color)
}

func TestFileLoaderRejectsUnknownStrategy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("amend:\n  strategy: sed\n"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.ErrorContains(t, err, "amend.strategy")
}

func TestFileLoaderPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(domain.EnvConfigPath, path)

	assert.Equal(t, path, NewFileLoader("").Path())
}

func TestSecretPrefersEnvironmentOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CIDER_TEST_SECRET=from-file\nCIDER_TEST_OTHER=other\n"), 0o600))
	loader := NewFileLoader(filepath.Join(dir, "config.yaml"))

	t.Setenv("CIDER_TEST_SECRET", "from-env")
	assert.Equal(t, "from-env", loader.Secret("CIDER_TEST_SECRET"))
	assert.Equal(t, "other", loader.Secret("CIDER_TEST_OTHER"))
	assert.Empty(t, loader.Secret("CIDER_TEST_MISSING"))
}

func TestSaveRoundTripsAndBacksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewFileLoader(path)

	cfg := DefaultConfig()
	cfg.Amend.Strategy = domain.StrategyLiteral
	require.NoError(t, loader.Save(cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.SecureFilePermissions), info.Mode().Perm())

	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	backup, err := loader.Backup()
	require.NoError(t, err)
	original, _ := os.ReadFile(path)
	copied, _ := os.ReadFile(backup)
	assert.Equal(t, original, copied)
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "config.yaml"))
	cfg := DefaultConfig()
	cfg.Output.Color = "sometimes"

	assert.Error(t, loader.Save(cfg))
}
