package config

import (
	"errors"
	"fmt"

	"github.com/bdougie/phasekit/internal/partition"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Dataset.Root == "" {
		errs = append(errs, errors.New("dataset.root must be set"))
	}
	if c.Dataset.FeatureFolder == "" {
		errs = append(errs, errors.New("dataset.feature_folder must be set"))
	}
	if c.Dataset.GroundTruthFolder == "" {
		errs = append(errs, errors.New("dataset.ground_truth_folder must be set"))
	}
	if _, err := partition.ParseFilterType(c.Dataset.FilterType); err != nil {
		errs = append(errs, fmt.Errorf("dataset.filter_type: %w", err))
	}
	if _, err := c.Registry().Lookup(c.Dataset.Name); err != nil {
		errs = append(errs, fmt.Errorf("dataset.name: %w", err))
	}
	if c.Dataset.Workers < 0 {
		errs = append(errs, fmt.Errorf("dataset.workers must not be negative, got %d", c.Dataset.Workers))
	}
	for name, mapping := range c.Mappings {
		if len(mapping) == 0 {
			errs = append(errs, fmt.Errorf("mappings.%s is empty", name))
		}
		for phase, label := range mapping {
			if label < 0 {
				errs = append(errs, fmt.Errorf("mappings.%s.%s must not be negative", name, phase))
			}
		}
	}

	t := c.Transform
	if t.ResizeWidth < 0 || t.ResizeHeight < 0 || t.CropWidth < 0 || t.CropHeight < 0 {
		errs = append(errs, errors.New("transform dimensions must not be negative"))
	}
	if (t.CropWidth == 0) != (t.CropHeight == 0) {
		errs = append(errs, errors.New("transform.crop_width and transform.crop_height must be set together"))
	}
	if c.Extract.FPS <= 0 {
		errs = append(errs, fmt.Errorf("extract.fps must be positive, got %v", c.Extract.FPS))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}

	if c.Postgres.Enabled && (c.Postgres.Host == "" || c.Postgres.DBName == "") {
		errs = append(errs, errors.New("postgres.host and postgres.dbname are required when postgres is enabled"))
	}

	return errors.Join(errs...)
}
