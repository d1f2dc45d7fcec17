package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	root := GetRootCmd()

	t.Run("should register the subcommands", func(t *testing.T) {
		names := map[string]bool{}
		for _, cmd := range root.Commands() {
			names[cmd.Name()] = true
		}
		assert.True(t, names["run"])
		assert.True(t, names["tools"])
	})

	t.Run("should carry the global flags", func(t *testing.T) {
		assert.NotNil(t, root.PersistentFlags().Lookup("config"))
		assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
	})
}

func TestRunCommandFlags(t *testing.T) {
	root := GetRootCmd()
	run, _, err := root.Find([]string{"run"})
	require.NoError(t, err)

	for _, name := range []string{"question", "reflect", "no-reflect", "max-tool-rounds", "timeout"} {
		assert.NotNil(t, run.Flags().Lookup(name), "missing flag %s", name)
	}
}
