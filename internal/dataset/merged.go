package dataset

import (
	"fmt"
	"log/slog"
)

// VideoDataset concatenates the frames of several videos, as returned by
// VideoIndex.Slice, into one dataset.
type VideoDataset struct {
	paths  []string
	labels []int
	items  ItemOptions
}

// NewVideoDataset merges per-video paths and labels in order.
func NewVideoDataset(videoPaths [][]string, videoLabels [][]int, items ItemOptions, logger *slog.Logger) (*VideoDataset, error) {
	if len(videoPaths) != len(videoLabels) {
		return nil, fmt.Errorf("got %d path lists and %d label lists", len(videoPaths), len(videoLabels))
	}

	ds := &VideoDataset{items: items}
	for i := range videoPaths {
		if len(videoPaths[i]) != len(videoLabels[i]) {
			return nil, fmt.Errorf("video %d: %d paths and %d labels", i, len(videoPaths[i]), len(videoLabels[i]))
		}
		ds.paths = append(ds.paths, videoPaths[i]...)
		ds.labels = append(ds.labels, videoLabels[i]...)
	}

	if logger != nil {
		logger.Info("video dataset merged", "videos", len(videoPaths), "length", len(ds.paths))
	}
	return ds, nil
}

// Len returns the number of frames.
func (d *VideoDataset) Len() int {
	return len(d.paths)
}

// Item decodes frame i.
func (d *VideoDataset) Item(i int) (Sample, error) {
	if err := checkIndex(i, len(d.paths)); err != nil {
		return Sample{}, err
	}
	return d.items.load(d.paths[i], d.labels[i])
}

func (d *VideoDataset) Paths() []string { return d.paths }
func (d *VideoDataset) Labels() []int   { return d.labels }
