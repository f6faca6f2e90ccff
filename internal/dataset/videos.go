package dataset

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/bdougie/phasekit/internal/models"
)

// VideoIndex holds the frames of each selected video sorted by frame index.
type VideoIndex struct {
	dataset string
	videos  []models.Video
}

// NewVideoIndex scans the feature folder described by opts.
func NewVideoIndex(ctx context.Context, opts Options) (*VideoIndex, error) {
	scanned, err := scan(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := opts.logger()
	idx := &VideoIndex{dataset: opts.Dataset, videos: make([]models.Video, 0, len(scanned))}
	for _, sv := range scanned {
		frames := make([]models.Frame, 0, len(sv.entries))
		for _, e := range sv.entries {
			n, err := strconv.Atoi(e.key)
			if err != nil {
				return nil, fmt.Errorf("video %s: frame %q has no numeric index", sv.name, e.path)
			}
			frames = append(frames, models.Frame{
				Path:  e.path,
				Index: n,
				Phase: e.phase,
				Label: e.label,
			})
		}
		sort.SliceStable(frames, func(i, j int) bool { return frames[i].Index < frames[j].Index })

		logger.Debug("video indexed", "video", sv.name, "frames", len(frames))
		idx.videos = append(idx.videos, models.Video{Name: sv.name, Frames: frames})
	}

	logger.Info("video index loaded", "root", opts.Root, "length", len(idx.videos))
	return idx, nil
}

// Len returns the number of videos.
func (x *VideoIndex) Len() int {
	return len(x.videos)
}

// Dataset returns the label mapping name the index was built with.
func (x *VideoIndex) Dataset() string {
	return x.dataset
}

// Videos returns the indexed videos.
func (x *VideoIndex) Videos() []models.Video {
	return x.videos
}

// Slice returns the frame paths, labels and names of videos [start, end).
// Bounds follow slice-expression semantics: negative values count from the
// end and out-of-range values are clamped.
func (x *VideoIndex) Slice(start, end int) ([][]string, [][]int, []string) {
	start, end = clampRange(start, end, len(x.videos))

	paths := make([][]string, 0, end-start)
	labels := make([][]int, 0, end-start)
	names := make([]string, 0, end-start)
	for _, v := range x.videos[start:end] {
		paths = append(paths, v.Paths())
		labels = append(labels, v.Labels())
		names = append(names, v.Name)
	}
	return paths, labels, names
}

func clampRange(start, end, length int) (int, int) {
	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}
	start = min(max(start, 0), length)
	end = min(max(end, 0), length)
	if end < start {
		end = start
	}
	return start, end
}
