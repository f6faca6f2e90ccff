package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bdougie/phasekit/internal/partition"
	"github.com/bdougie/phasekit/internal/phases"
)

const defaultWorkers = 4

var ErrIndexOutOfRange = errors.New("index out of range")

// Options select and locate the frames of a dataset.
type Options struct {
	// Root is the dataset root directory.
	Root string
	// Dataset names the label mapping, e.g. "cholec80-workflow-5".
	Dataset string
	// Mapping overrides the mapping looked up from Dataset.
	Mapping phases.Mapping
	// SpecialList holds the video names the filter applies to.
	SpecialList []string
	FilterType  partition.FilterType
	// FeatureFolder and GroundTruthFolder are relative to Root.
	FeatureFolder     string
	GroundTruthFolder string
	// Workers bounds concurrent video scans.
	Workers int
	Logger  *slog.Logger
}

func (o Options) featureDir() string {
	return filepath.Join(o.Root, o.FeatureFolder)
}

func (o Options) groundTruthPath(video string) string {
	return filepath.Join(o.Root, o.GroundTruthFolder, video+".txt")
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return defaultWorkers
	}
	return o.Workers
}

func (o Options) mapping() (phases.Mapping, error) {
	if o.Mapping != nil {
		return o.Mapping, nil
	}
	return phases.NewRegistry().Lookup(o.Dataset)
}

func (o Options) validate() error {
	if strings.TrimSpace(o.Root) == "" {
		return fmt.Errorf("dataset root is required")
	}
	if strings.TrimSpace(o.FeatureFolder) == "" {
		return fmt.Errorf("feature folder is required")
	}
	if strings.TrimSpace(o.GroundTruthFolder) == "" {
		return fmt.Errorf("ground truth folder is required")
	}
	switch o.FilterType {
	case partition.In, partition.NotIn, partition.All, "":
	default:
		return fmt.Errorf("%w: %q", partition.ErrInvalidFilter, o.FilterType)
	}
	return nil
}
