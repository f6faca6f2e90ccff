package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdougie/phasekit/internal/storage"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// writeDataset lays out two cholec80-style videos under a temp root.
func writeDataset(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()

	videos := map[string][]string{
		"video01": {"Preparation", "Preparation", "CalotTriangleDissection"},
		"video02": {"GallbladderDissection", "GallbladderDissection"},
		"video03": {"Preparation", "CalotTriangleDissection", "CalotTriangleDissection"},
	}
	for name, labels := range videos {
		dir := filepath.Join(root, "frames", name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		var gt strings.Builder
		gt.WriteString("Frame\tPhase\n")
		for i, phase := range labels {
			file, err := os.Create(filepath.Join(dir, fmt.Sprintf("%d.jpg", i)))
			require.NoError(t, err)
			require.NoError(t, jpeg.Encode(file, image.NewGray(image.Rect(0, 0, 4, 4)), nil))
			require.NoError(t, file.Close())
			fmt.Fprintf(&gt, "%d\t%s\n", i, phase)
		}
		require.NoError(t, os.MkdirAll(filepath.Join(root, "phase_annotations"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "phase_annotations", name+".txt"), []byte(gt.String()), 0o644))
	}
	return root
}

func baseArgs(t *testing.T, root string) []string {
	return []string{"--config", filepath.Join(t.TempDir(), "absent.toml"), "--root", root}
}

func TestIndexVideos(t *testing.T) {
	root := writeDataset(t)
	args := append(baseArgs(t, root), "--filter", "not_in", "--special", "video02", "index", "--verify")
	out, err := runCLI(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "video01")
	assert.NotContains(t, out, "video02")
	assert.Contains(t, out, "2 videos, 6 frames")
	assert.Contains(t, out, "CalotTriangleDissection")
	assert.Contains(t, out, "Merged 2 videos into 6 frames")
	assert.Contains(t, out, "Decoded 6 frames")
}

func TestIndexFrames(t *testing.T) {
	root := writeDataset(t)
	args := append(baseArgs(t, root), "--filter", "in", "--special", "video02", "index", "--mode", "frames")
	out, err := runCLI(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Frame dataset holds 2 frames")
	assert.Contains(t, out, "GallbladderDissection")
}

func TestIndexRejectsBadMode(t *testing.T) {
	root := writeDataset(t)
	_, err := runCLI(t, append(baseArgs(t, root), "index", "--mode", "clips")...)
	assert.Error(t, err)
}

func TestInvalidFilterFlag(t *testing.T) {
	root := writeDataset(t)
	_, err := runCLI(t, append(baseArgs(t, root), "--filter", "maybe", "index")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter_type")
}

func TestExportAndSimilar(t *testing.T) {
	root := writeDataset(t)
	outDir := t.TempDir()

	out, err := runCLI(t, append(baseArgs(t, root), "export", "--out", outDir)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 videos")

	manifest, err := storage.ReadManifest(filepath.Join(outDir, storage.ManifestName))
	require.NoError(t, err)
	require.Len(t, manifest.Videos, 3)
	assert.Equal(t, "cholec80-workflow-5", manifest.Dataset)

	out, err = runCLI(t, append(baseArgs(t, root), "similar", "video01", "--limit", "1")...)
	require.NoError(t, err)
	assert.Contains(t, out, "video03")
	assert.NotContains(t, out, "video02")
}

func TestSimilarFiltersManifestByPartition(t *testing.T) {
	root := writeDataset(t)
	exportDir := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "phasekit.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf("[export]\noutput_dir = %q\n", exportDir)), 0o644))

	_, err := runCLI(t, "--config", configPath, "--root", root, "export")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(exportDir, storage.ManifestName))
	require.NoError(t, err)

	// Remove the frames so only the manifest can answer.
	require.NoError(t, os.RemoveAll(filepath.Join(root, "frames")))

	out, err := runCLI(t, "--config", configPath, "--root", root,
		"--filter", "not_in", "--special", "video03", "similar", "video01")
	require.NoError(t, err)
	assert.Contains(t, out, "video02")
	assert.NotContains(t, out, "video03")
}

func TestConfigInitAndShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "phasekit.toml")

	out, err := runCLI(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = runCLI(t, "config", "init", path)
	assert.Error(t, err, "refuses to overwrite")

	out, err = runCLI(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "not_in")
}
