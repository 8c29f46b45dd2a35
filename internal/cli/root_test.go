package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "morf", cmd.Use)
	assert.Contains(t, cmd.Long, "analysis blocks and index")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"analyze", "serve", "validate", "replay", "show", "search", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestAnalyzeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	analyzeCmd, _, err := cmd.Find([]string{"analyze"})
	require.NoError(t, err)

	for _, name := range []string{"lexicon", "engine", "db", "text", "no-clean-root", "no-heuristics", "max-events"} {
		assert.NotNil(t, analyzeCmd.Flags().Lookup(name), "flag --%s", name)
	}
	workers := analyzeCmd.Flags().Lookup("workers")
	require.NotNil(t, workers)
	assert.Equal(t, "4", workers.DefValue)
}

func TestRootInvalidFormat(t *testing.T) {
	_, err := execute(t, NewRootCommand(), "", "--format", "xml", "validate", testLexicon)
	assert.Equal(t, ExitCommandError, exitCode(t, err))
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRootLoadsConfig(t *testing.T) {
	lexicon, err := filepath.Abs(testLexicon)
	require.NoError(t, err)
	configPath := filepath.Join(t.TempDir(), "morf.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("engine:\n  kind: table\n  lexicon: "+lexicon+"\n"), 0644))

	out, err := execute(t, NewRootCommand(), "", "--config", configPath, "analyze", "maja")
	require.NoError(t, err)
	assert.Contains(t, out, "maja+0 //_S_ sg g// maja")
}

func TestRootBadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "morf.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("engines: {}\n"), 0644))

	_, err := execute(t, NewRootCommand(), "", "--config", configPath, "validate", testLexicon)
	assert.Equal(t, ExitCommandError, exitCode(t, err))
	assert.Contains(t, err.Error(), "failed to load config")
}
