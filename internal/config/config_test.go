package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint = "https://dash.example.com/graphql"
page_size = 25
search_debounce_ms = 300
`), 0o644))

	cfg, err := loadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://dash.example.com/graphql", cfg.Endpoint)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce())
	// Untouched settings keep defaults.
	assert.Equal(t, 100*time.Millisecond, cfg.PageDebounce())
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`endpoint = "https://file.example.com"`), 0o644))

	t.Setenv("TASKDASH_ENDPOINT", "https://env.example.com")
	t.Setenv("TASKDASH_TOKEN", "tok123")

	cfg, err := loadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Endpoint)
	assert.Equal(t, "tok123", cfg.Token)
}

func TestValidate_ClampsRanges(t *testing.T) {
	cfg := Config{
		Endpoint:         "http://x",
		PageSize:         5000,
		SearchDebounceMS: -10,
		RequestTimeoutMS: 0,
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 0, cfg.SearchDebounceMS)
	assert.Equal(t, Default().RequestTimeoutMS, cfg.RequestTimeoutMS)
}

func TestValidate_RejectsEmptyEndpoint(t *testing.T) {
	cfg := Config{}
	assert.Error(t, cfg.Validate())
}
