package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Runner executes an external command and returns its combined output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Extractor writes video frames into a feature folder as <index>.jpg,
// numbered from 0
type Extractor struct {
	Runner Runner
	Logger *slog.Logger
	FFmpeg string
}

// New returns an extractor using the ffmpeg binary on PATH
func New(logger *slog.Logger) *Extractor {
	return &Extractor{Runner: ExecRunner{}, Logger: logger, FFmpeg: "ffmpeg"}
}

// VideoName is the file name of videoPath without extension
func VideoName(videoPath string) string {
	return strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
}

// ExtractFrames samples videoPath at fps frames per second into
// featureDir/<video>. It returns the frame directory.
func (e *Extractor) ExtractFrames(ctx context.Context, videoPath, featureDir string, fps float64) (string, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if fps <= 0 {
		return "", fmt.Errorf("fps must be positive, got %v", fps)
	}

	// Check if video file exists
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return "", fmt.Errorf("video file does not exist at path: '%s'", videoPath)
	}

	frameDirPath := filepath.Join(featureDir, VideoName(videoPath))

	// Frames already present are kept as-is
	if count := CountFrames(frameDirPath); count > 0 {
		logger.Info("frames already extracted, skipping", "dir", frameDirPath, "frames", count)
		return frameDirPath, nil
	}

	// ffmpeg writes into a hidden staging directory that only replaces
	// frameDirPath once every frame is on disk
	stagingDir := filepath.Join(featureDir, "."+VideoName(videoPath)+".partial")
	if err := os.RemoveAll(stagingDir); err != nil {
		return "", fmt.Errorf("failed to clear staging directory '%s': %w", stagingDir, err)
	}
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create frame directory '%s': %w", stagingDir, err)
	}

	logger.Info("extracting frames", "video", videoPath, "dir", frameDirPath, "fps", fps)

	binary := e.FFmpeg
	if binary == "" {
		binary = "ffmpeg"
	}
	runner := e.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	output, err := runner.Run(ctx, binary,
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vf", "fps="+strconv.FormatFloat(fps, 'f', -1, 64),
		"-start_number", "0",
		"-q:v", "2",
		filepath.Join(stagingDir, "%d.jpg"),
	)
	if err != nil {
		_ = os.RemoveAll(stagingDir)
		return "", fmt.Errorf("ffmpeg failed: %w\nOutput: %s", err, string(output))
	}

	// An empty frame directory left by an earlier tool is replaced
	if err := os.RemoveAll(frameDirPath); err != nil {
		_ = os.RemoveAll(stagingDir)
		return "", fmt.Errorf("failed to clear frame directory '%s': %w", frameDirPath, err)
	}
	if err := os.Rename(stagingDir, frameDirPath); err != nil {
		_ = os.RemoveAll(stagingDir)
		return "", fmt.Errorf("failed to move frames into '%s': %w", frameDirPath, err)
	}

	logger.Info("frames extracted", "dir", frameDirPath, "frames", CountFrames(frameDirPath))
	return frameDirPath, nil
}

// CountFrames counts the jpg files in dir
func CountFrames(dir string) int {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(strings.ToLower(file.Name()), ".jpg") {
			count++
		}
	}
	return count
}
