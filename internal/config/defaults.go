package config

import "github.com/bdougie/phasekit/internal/phases"

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Dataset: Dataset{
			Root:              ".",
			Name:              phases.Cholec80,
			FeatureFolder:     "frames",
			GroundTruthFolder: "phase_annotations",
			FilterType:        "all",
			Workers:           4,
		},
		Export: Export{
			OutputDir: "phasekit_export",
		},
		Extract: Extract{
			FPS:    1,
			FFmpeg: "ffmpeg",
		},
		Postgres: Postgres{
			Host:   "localhost",
			Port:   "5432",
			User:   "postgres",
			DBName: "phasekit",
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
