package models

// Frame is one annotated image of a video
type Frame struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
	Phase string `json:"phase"`
	Label int    `json:"label"`
}

// Video groups the annotated frames of a single source video
type Video struct {
	Name   string  `json:"name"`
	Frames []Frame `json:"frames"`
}

// Paths returns the frame image paths in stored order
func (v Video) Paths() []string {
	paths := make([]string, len(v.Frames))
	for i, f := range v.Frames {
		paths[i] = f.Path
	}
	return paths
}

// Labels returns the frame labels in stored order
func (v Video) Labels() []int {
	labels := make([]int, len(v.Frames))
	for i, f := range v.Frames {
		labels[i] = f.Label
	}
	return labels
}

// VideoSearchResult is a video ranked by phase-profile similarity
type VideoSearchResult struct {
	Name       string  `json:"name"`
	FrameCount int     `json:"frame_count"`
	Similarity float64 `json:"similarity"`
}
