package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickhohler/cider-tool/internal/domain"
	configinfra "github.com/rickhohler/cider-tool/internal/infrastructure/config"
)

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	container := newTestContainer(&fakeRunner{})
	container.ConfigLoader = configinfra.NewFileLoader(path)

	out, err := execute(t, NewConfigCommand(container), "", "init")
	require.NoError(t, err)
	assert.Equal(t, "Configuration written to "+path+"\n", out)

	_, err = execute(t, NewConfigCommand(container), "", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = execute(t, NewConfigCommand(container), "", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Backed up existing configuration to ")

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestConfigDiff(t *testing.T) {
	container := newTestContainer(&fakeRunner{})
	container.Config = configinfra.DefaultConfig()

	out, err := execute(t, NewConfigCommand(container), "", "diff")
	require.NoError(t, err)
	assert.Equal(t, msgNoDifferencesFromDefault+"\n", out)

	container.Config.Amend.Strategy = domain.StrategyStructured
	out, err = execute(t, NewConfigCommand(container), "", "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "structured")
}

func TestConfigShow(t *testing.T) {
	container := newTestContainer(&fakeRunner{})

	out, err := execute(t, NewConfigCommand(container), "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "strategy: auto")
	assert.Contains(t, out, "developer_filter:")
	assert.Contains(t, out, "iPhone Developer:")
}
