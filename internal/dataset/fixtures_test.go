package dataset

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bdougie/phasekit/internal/partition"
	"github.com/bdougie/phasekit/internal/phases"
)

type fixtureVideo struct {
	name   string
	frames []string          // file names written to the feature folder
	phases map[string]string // ground truth, frame index -> phase
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, jpeg.Encode(file, img, nil))
}

func buildFixture(t *testing.T, videos ...fixtureVideo) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "frames"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "annotations"), 0o755))

	for _, v := range videos {
		dir := filepath.Join(root, "frames", v.name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for _, name := range v.frames {
			writeJPEG(t, filepath.Join(dir, name), 8, 6)
		}
		if v.phases == nil {
			continue
		}
		var b strings.Builder
		b.WriteString("Frame\tPhase\n")
		for idx, phase := range v.phases {
			fmt.Fprintf(&b, "%s\t%s\n", idx, phase)
		}
		gt := filepath.Join(root, "annotations", v.name+".txt")
		require.NoError(t, os.WriteFile(gt, []byte(b.String()), 0o644))
	}
	return root
}

func fixtureOptions(root string, filter partition.FilterType, special ...string) Options {
	return Options{
		Root:              root,
		Dataset:           phases.Cholec80,
		SpecialList:       special,
		FilterType:        filter,
		FeatureFolder:     "frames",
		GroundTruthFolder: "annotations",
		Workers:           2,
	}
}

func standardFixture(t *testing.T) string {
	t.Helper()
	return buildFixture(t,
		fixtureVideo{
			name:   "video01",
			frames: []string{"0.jpg", "1.jpg", "2.jpg", "10.jpg", "99.jpg"},
			phases: map[string]string{
				"0":  "Preparation",
				"1":  "Preparation",
				"2":  "CalotTriangleDissection",
				"10": "ClippingCutting",
			},
		},
		fixtureVideo{
			name:   "video02",
			frames: []string{"0.jpg", "1.jpg"},
			phases: map[string]string{
				"0": "GallbladderDissection",
				"1": "GallbladderRetraction",
			},
		},
		fixtureVideo{
			name:   "video41",
			frames: []string{"0.jpg"},
			phases: map[string]string{"0": "CleaningCoagulation"},
		},
	)
}
