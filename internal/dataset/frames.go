package dataset

import (
	"context"
)

// FrameDataset is a flat list of every annotated frame of the selected
// videos.
type FrameDataset struct {
	paths  []string
	labels []int
	items  ItemOptions
}

// NewFrameDataset scans the feature folder described by opts.
func NewFrameDataset(ctx context.Context, opts Options, items ItemOptions) (*FrameDataset, error) {
	videos, err := scan(ctx, opts)
	if err != nil {
		return nil, err
	}

	ds := &FrameDataset{items: items}
	for _, v := range videos {
		for _, e := range v.entries {
			ds.paths = append(ds.paths, e.path)
			ds.labels = append(ds.labels, e.label)
		}
	}

	opts.logger().Info("frame dataset loaded",
		"root", opts.Root,
		"videos", len(videos),
		"length", len(ds.paths))
	return ds, nil
}

// Len returns the number of frames.
func (d *FrameDataset) Len() int {
	return len(d.paths)
}

// Item decodes frame i.
func (d *FrameDataset) Item(i int) (Sample, error) {
	if err := checkIndex(i, len(d.paths)); err != nil {
		return Sample{}, err
	}
	return d.items.load(d.paths[i], d.labels[i])
}

// Paths returns the frame paths, Labels the matching labels.
func (d *FrameDataset) Paths() []string { return d.paths }
func (d *FrameDataset) Labels() []int   { return d.labels }
