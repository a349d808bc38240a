package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
}

func TestSeedFileFlagDefault(t *testing.T) {
	flag := seedCmd.Flags().Lookup("file")
	require.NotNil(t, flag)
	assert.Equal(t, "seed.json", flag.DefValue)
}

func TestServeRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	err := runServe(serveCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
