package dataset

import (
	"sort"

	"github.com/bdougie/phasekit/internal/models"
)

// VideoStat counts the frames of one video.
type VideoStat struct {
	Name   string
	Frames int
}

// Stats summarizes a set of videos.
type Stats struct {
	Videos   []VideoStat
	PerLabel map[int]int
	Total    int
}

// ComputeStats counts frames per video and per label.
func ComputeStats(videos []models.Video) Stats {
	stats := Stats{PerLabel: map[int]int{}}
	for _, v := range videos {
		stats.Videos = append(stats.Videos, VideoStat{Name: v.Name, Frames: len(v.Frames)})
		for _, f := range v.Frames {
			stats.PerLabel[f.Label]++
		}
		stats.Total += len(v.Frames)
	}
	return stats
}

// Labels returns the labels present, ascending.
func (s Stats) Labels() []int {
	labels := make([]int, 0, len(s.PerLabel))
	for label := range s.PerLabel {
		labels = append(labels, label)
	}
	sort.Ints(labels)
	return labels
}
