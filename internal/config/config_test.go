package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdougie/phasekit/internal/config"
	"github.com/bdougie/phasekit/internal/phases"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(tempHome, ".config", "phasekit", "config.toml"), resolved)
	assert.Equal(t, phases.Cholec80, cfg.Dataset.Name)
	assert.Equal(t, "all", cfg.Dataset.FilterType)
	assert.True(t, filepath.IsAbs(cfg.Dataset.Root))
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFileExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PHASEKIT_PG_PASSWORD", "secret")

	path := filepath.Join(t.TempDir(), "phasekit.toml")
	contents := `
[dataset]
root = "~/data/m2cai"
name = "m2cai16-workflow-5"
special_list = [" workflow_video_01 ", ""]
filter_type = "IN"

[logging]
level = "DEBUG"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, filepath.Join(tempHome, "data", "m2cai"), cfg.Dataset.Root)
	assert.Equal(t, []string{"workflow_video_01"}, cfg.Dataset.SpecialList)
	assert.Equal(t, "in", cfg.Dataset.FilterType)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "secret", cfg.Postgres.Password)
	assert.Equal(t, "frames", cfg.Dataset.FeatureFolder, "unset keys keep defaults")
}

func TestLoadCustomMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phasekit.toml")
	contents := `
[dataset]
name = "sutures"

[mappings.sutures]
Idle = 0
Suturing = 1
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	m, err := cfg.Registry().Lookup("sutures")
	require.NoError(t, err)
	assert.Equal(t, []string{"Idle", "Suturing"}, m.Names())
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phasekit.toml")
	contents := `
[dataset]
name = "unknown-set"
filter_type = "maybe"

[extract]
fps = 0
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, _, _, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, phases.ErrUnknownDataset)
	assert.Contains(t, err.Error(), "dataset.filter_type")
	assert.Contains(t, err.Error(), "extract.fps")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phasekit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dataset]\nrooot = \"x\"\n"), 0o644))
	_, _, _, err := config.Load(path)
	assert.Error(t, err)
}

func TestSampleConfigLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, config.CreateSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, toml.Unmarshal(data, &raw))

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "not_in", cfg.Dataset.FilterType)
	assert.Len(t, cfg.Dataset.SpecialList, 5)
}

func TestMarshalRedactsPassword(t *testing.T) {
	cfg := config.Default()
	cfg.Postgres.Password = "hunter2"
	out, err := cfg.Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "hunter2")
	assert.Equal(t, "hunter2", cfg.Postgres.Password)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = config.ExpandPath("~/data/../frames")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "frames"), got)

	got, err = config.ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	got, err = config.ExpandPath("~other/x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "~other", "x"), got, "only the current user's home is expanded")
}
