// Package embeddings turns the label sequence of a video into a fixed
// length phase profile that can be compared across videos.
package embeddings

import (
	"math"
	"sort"

	"github.com/bdougie/phasekit/internal/models"
)

// PhaseProfile returns the fraction of frames per class. Labels outside
// [0, numClasses) are ignored.
func PhaseProfile(labels []int, numClasses int) []float32 {
	profile := make([]float32, numClasses)
	if numClasses <= 0 {
		return profile
	}
	counted := 0
	for _, label := range labels {
		if label < 0 || label >= numClasses {
			continue
		}
		profile[label]++
		counted++
	}
	if counted == 0 {
		return profile
	}
	for i := range profile {
		profile[i] /= float32(counted)
	}
	return profile
}

// Cosine returns the cosine similarity of a and b, 0 when either is zero or
// the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Rank orders videos by similarity of their phase profile to query, most
// similar first, and returns at most limit results.
func Rank(query []float32, videos []models.Video, numClasses, limit int) []models.VideoSearchResult {
	results := make([]models.VideoSearchResult, 0, len(videos))
	for _, v := range videos {
		results = append(results, models.VideoSearchResult{
			Name:       v.Name,
			FrameCount: len(v.Frames),
			Similarity: Cosine(query, PhaseProfile(v.Labels(), numClasses)),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
