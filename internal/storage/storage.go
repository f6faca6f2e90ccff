package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bdougie/phasekit/internal/models"
)

const (
	batchSize    = 10 // Number of videos to batch write
	ManifestName = "manifest.json"
)

// Storage defines the interface for exporting indexed videos
type Storage interface {
	// AddVideo adds a single indexed video
	AddVideo(ctx context.Context, video models.Video) error

	// Flush ensures all pending videos are saved
	Flush() error
}

// Manifest is the on-disk form of an exported index
type Manifest struct {
	Dataset string         `json:"dataset"`
	Videos  []models.Video `json:"videos"`
}

// FileStorage writes indexed videos to a JSON manifest
type FileStorage struct {
	pending   []models.Video
	mu        sync.Mutex
	outputDir string
	dataset   string
}

// NewStorage creates a manifest writer under outputDir
func NewStorage(outputDir, dataset string) *FileStorage {
	return &FileStorage{
		outputDir: outputDir,
		dataset:   dataset,
	}
}

// Path returns the manifest location
func (s *FileStorage) Path() string {
	return filepath.Join(s.outputDir, ManifestName)
}

// AddVideo adds a video to the batch and flushes if the batch is full
func (s *FileStorage) AddVideo(ctx context.Context, video models.Video) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, video)

	if len(s.pending) >= batchSize {
		return s.flush()
	}
	return nil
}

// Flush writes all pending videos to disk
func (s *FileStorage) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

func (s *FileStorage) flush() error {
	if len(s.pending) == 0 {
		return nil
	}

	manifest := Manifest{Dataset: s.dataset}
	existing, err := ReadManifest(s.Path())
	switch {
	case err == nil:
		manifest.Videos = existing.Videos
	case !os.IsNotExist(err):
		return err
	}

	// Replace videos exported earlier under the same name
	byName := make(map[string]int, len(manifest.Videos))
	for i, v := range manifest.Videos {
		byName[v.Name] = i
	}
	for _, v := range s.pending {
		if i, ok := byName[v.Name]; ok {
			manifest.Videos[i] = v
			continue
		}
		byName[v.Name] = len(manifest.Videos)
		manifest.Videos = append(manifest.Videos, v)
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeJSONFile(s.Path(), manifest); err != nil {
		return err
	}

	s.pending = nil
	return nil
}

// writeJSONFile encodes v next to path and renames it into place, leaving
// no temporary file behind on failure
func writeJSONFile(path string, v any) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by FileStorage
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest %s: %w", path, err)
	}
	return &manifest, nil
}
