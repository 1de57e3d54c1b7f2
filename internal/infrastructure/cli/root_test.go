package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickhohler/cider-tool/internal/app"
	"github.com/rickhohler/cider-tool/internal/version"
)

func TestRootVersionFlag(t *testing.T) {
	root := NewRootCmdWithContainer(&app.Container{})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "cider "+version.Info().String()+"\n", out.String())
}

func TestRootRegistersCommands(t *testing.T) {
	root := NewRootCmdWithContainer(&app.Container{})

	for _, name := range []string{"amend", "analyze", "doctor", "config", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
