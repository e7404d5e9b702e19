package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHeadless(t *testing.T) {
	cfg, code, handled := Parse([]string{})
	require.False(t, handled)
	require.Equal(t, ExitOK, code)
	assert.True(t, cfg.Headless)
	assert.False(t, cfg.Visual)
	assert.Equal(t, "universe.db", cfg.DBPath)
}

func TestParseReadsFlags(t *testing.T) {
	cfg, code, handled := Parse([]string{
		"--seed", "42", "--ticks", "1000", "--pipe", "--db", "save.db",
		"--save-interval", "50", "--resume", "--sim-years", "10", "--hours", "2",
	})
	require.False(t, handled)
	require.Equal(t, ExitOK, code)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, uint64(1000), cfg.Ticks)
	assert.True(t, cfg.Pipe)
	assert.Equal(t, "save.db", cfg.DBPath)
	assert.Equal(t, uint64(50), cfg.SaveInterval)
	assert.True(t, cfg.Resume)
	assert.Equal(t, uint64(10), cfg.SimYears)
	assert.Equal(t, uint64(2), cfg.Hours)
}

func TestParseRejectsHeadlessAndVisualTogether(t *testing.T) {
	_, code, handled := Parse([]string{"--headless", "--visual"})
	assert.True(t, handled)
	assert.Equal(t, ExitError, code)
}

func TestParseHelpReturnsExitOK(t *testing.T) {
	_, code, handled := Parse([]string{"--help"})
	assert.True(t, handled)
	assert.Equal(t, ExitOK, code)
}

func TestParseUnknownFlagIsError(t *testing.T) {
	_, code, handled := Parse([]string{"--bogus"})
	assert.True(t, handled)
	assert.Equal(t, ExitError, code)
}

func TestValidateRejectsPipeAndVisual(t *testing.T) {
	cfg := &Config{Pipe: true, Visual: true, DBPath: "x.db"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEmptyDBPath(t *testing.T) {
	cfg := &Config{DBPath: ""}
	assert.Error(t, cfg.Validate())
}
