package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/randrctl/randrctl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(nil)

	require.NoError(t, err)
	assert.Equal(t, config.DefaultEdidWeight, *cfg.Scoring.EdidMatch)
	assert.Equal(t, config.DefaultSupportsWeight, *cfg.Scoring.SupportsMatch)
	assert.Equal(t, config.DefaultPrefersWeight, *cfg.Scoring.PrefersMatch)
	assert.Equal(t, config.DefaultNameWeight, *cfg.Scoring.NameMatch)
	assert.False(t, *cfg.Notifications.Disabled)
	assert.Equal(t, config.DefaultUpdateDebounceTimerMs, *cfg.Daemon.UpdateDebounceTimerMs)
	assert.Empty(t, cfg.Hooks.Prior())
	assert.Empty(t, cfg.Hooks.Post())
	assert.Empty(t, cfg.Hooks.Fail())
}

func TestLoad_SingleFile(t *testing.T) {
	path := writeConfig(t, `
[hooks]
prior_switch = "echo start"
post_fail = "notify-send failed"

[scoring]
edid_match = 1000
`)

	cfg, err := config.Load([]string{path})

	require.NoError(t, err)
	assert.Equal(t, "echo start", cfg.Hooks.Prior())
	assert.Empty(t, cfg.Hooks.Post())
	assert.Equal(t, "notify-send failed", cfg.Hooks.Fail())
	assert.Equal(t, 1000, *cfg.Scoring.EdidMatch)
	assert.Equal(t, config.DefaultSupportsWeight, *cfg.Scoring.SupportsMatch, "unset weights keep defaults")
}

func TestLoad_ShallowOverlay(t *testing.T) {
	preferred := writeConfig(t, `
[hooks]
prior_switch = "preferred prior"
`)
	fallback := writeConfig(t, `
[hooks]
prior_switch = "fallback prior"
post_switch = "fallback post"

[scoring]
name_match = 7
`)

	cfg, err := config.Load([]string{preferred, fallback})

	require.NoError(t, err)
	// the hooks section is replaced wholesale, not merged field by field
	assert.Equal(t, "preferred prior", cfg.Hooks.Prior())
	assert.Empty(t, cfg.Hooks.Post(), "fallback post_switch must not leak through")
	// sections the preferred file does not define still come from the fallback
	assert.Equal(t, 7, *cfg.Scoring.NameMatch)
}

func TestLoad_MalformedFileSkipped(t *testing.T) {
	broken := writeConfig(t, "hooks = {{{ nope")
	good := writeConfig(t, `
[hooks]
prior_switch = "echo ok"
`)

	cfg, err := config.Load([]string{broken, good})

	require.NoError(t, err)
	assert.Equal(t, "echo ok", cfg.Hooks.Prior(), "other files still contribute")
}

func TestLoad_InvalidWeight(t *testing.T) {
	path := writeConfig(t, `
[scoring]
edid_match = 0
`)

	_, err := config.Load([]string{path})
	assert.Error(t, err)
}
