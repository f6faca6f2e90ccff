package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/bdougie/phasekit/internal/phases"
)

//go:embed sample_config.toml
var sampleConfig string

// Dataset locates the frames and ground truth and selects a partition.
type Dataset struct {
	Root              string   `toml:"root"`
	Name              string   `toml:"name"`
	FeatureFolder     string   `toml:"feature_folder"`
	GroundTruthFolder string   `toml:"ground_truth_folder"`
	SpecialList       []string `toml:"special_list"`
	FilterType        string   `toml:"filter_type"`
	Workers           int      `toml:"workers"`
}

// Transform describes the image preprocessing applied when samples load.
// Zero values disable the step.
type Transform struct {
	ResizeWidth  int `toml:"resize_width"`
	ResizeHeight int `toml:"resize_height"`
	CropWidth    int `toml:"crop_width"`
	CropHeight   int `toml:"crop_height"`
}

// Export contains the manifest output location.
type Export struct {
	OutputDir string `toml:"output_dir"`
}

// Extract contains ffmpeg frame extraction settings.
type Extract struct {
	FPS    float64 `toml:"fps"`
	FFmpeg string  `toml:"ffmpeg"`
}

// Postgres contains the connection used by the postgres exporter.
type Postgres struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for phasekit.
//
// Mappings adds or overrides dataset label mappings, keyed by dataset name
// then phase name.
type Config struct {
	Dataset   Dataset                   `toml:"dataset"`
	Mappings  map[string]phases.Mapping `toml:"mappings"`
	Transform Transform                 `toml:"transform"`
	Export    Export                    `toml:"export"`
	Extract   Extract                   `toml:"extract"`
	Postgres  Postgres                  `toml:"postgres"`
	Logging   Logging                   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/phasekit/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath returns the file to read and whether it exists. An
// explicit path is used as given; otherwise the first existing candidate
// wins and the user config path is reported when none exist.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		switch _, err := os.Stat(expanded); {
		case err == nil:
			return expanded, true, nil
		case errors.Is(err, fs.ErrNotExist):
			return expanded, false, nil
		default:
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}

	candidates := make([]string, 0, 2)
	for _, p := range []string{"~/.config/phasekit/config.toml", "phasekit.toml"} {
		expanded, err := expandPath(p)
		if err != nil {
			return "", false, err
		}
		candidates = append(candidates, expanded)
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true, nil
		}
	}
	return candidates[0], false, nil
}

func (c *Config) applyEnv() {
	if pw, ok := os.LookupEnv("PHASEKIT_PG_PASSWORD"); ok && c.Postgres.Password == "" {
		c.Postgres.Password = pw
	}
	if root, ok := os.LookupEnv("PHASEKIT_DATASET_ROOT"); ok && strings.TrimSpace(c.Dataset.Root) == "" {
		c.Dataset.Root = root
	}
}

// Registry returns the built-in label mappings with the configured ones applied.
func (c *Config) Registry() *phases.Registry {
	reg := phases.NewRegistry()
	for name, mapping := range c.Mappings {
		reg.Register(name, mapping)
	}
	return reg
}

// expandPath resolves a leading ~ or ~/ against the home directory and
// returns an absolute, cleaned path. Empty input stays empty.
func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, value[1:])
	}
	absolute, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	redacted := *c
	if redacted.Postgres.Password != "" {
		redacted.Postgres.Password = "********"
	}
	return toml.Marshal(redacted)
}
