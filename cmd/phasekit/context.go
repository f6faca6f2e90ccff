package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/bdougie/phasekit/internal/config"
	"github.com/bdougie/phasekit/internal/dataset"
	"github.com/bdougie/phasekit/internal/logging"
	"github.com/bdougie/phasekit/internal/partition"
)

// overrideFlags are persistent flags that take precedence over the config file.
type overrideFlags struct {
	root     string
	dataset  string
	filter   string
	special  []string
	workers  int
	logLevel string
}

type commandContext struct {
	configFlag *string
	flags      *overrideFlags

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(configFlag *string, flags *overrideFlags) *commandContext {
	return &commandContext{configFlag: configFlag, flags: flags}
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
			Format: cfg.Logging.Format,
			Level:  cfg.Logging.Level,
		})
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	f := c.flags
	if f == nil {
		return nil
	}
	if strings.TrimSpace(f.root) != "" {
		root, err := config.ExpandPath(strings.TrimSpace(f.root))
		if err != nil {
			return err
		}
		cfg.Dataset.Root = root
	}
	if strings.TrimSpace(f.dataset) != "" {
		cfg.Dataset.Name = strings.TrimSpace(f.dataset)
	}
	if strings.TrimSpace(f.filter) != "" {
		cfg.Dataset.FilterType = strings.ToLower(strings.TrimSpace(f.filter))
	}
	if len(f.special) > 0 {
		cfg.Dataset.SpecialList = f.special
	}
	if f.workers > 0 {
		cfg.Dataset.Workers = f.workers
	}
	if strings.TrimSpace(f.logLevel) != "" {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(f.logLevel))
	}
	return cfg.Validate()
}

func (c *commandContext) datasetOptions() (dataset.Options, error) {
	cfg := c.config
	if cfg == nil {
		return dataset.Options{}, fmt.Errorf("configuration not loaded")
	}
	filter, err := partition.ParseFilterType(cfg.Dataset.FilterType)
	if err != nil {
		return dataset.Options{}, err
	}
	mapping, err := cfg.Registry().Lookup(cfg.Dataset.Name)
	if err != nil {
		return dataset.Options{}, err
	}
	return dataset.Options{
		Root:              cfg.Dataset.Root,
		Dataset:           cfg.Dataset.Name,
		Mapping:           mapping,
		SpecialList:       cfg.Dataset.SpecialList,
		FilterType:        filter,
		FeatureFolder:     cfg.Dataset.FeatureFolder,
		GroundTruthFolder: cfg.Dataset.GroundTruthFolder,
		Workers:           cfg.Dataset.Workers,
		Logger:            c.logger,
	}, nil
}

func (c *commandContext) itemOptions() dataset.ItemOptions {
	t := c.config.Transform
	var steps []dataset.Transform
	if t.ResizeWidth > 0 || t.ResizeHeight > 0 {
		steps = append(steps, dataset.Resize(t.ResizeWidth, t.ResizeHeight))
	}
	if t.CropWidth > 0 && t.CropHeight > 0 {
		steps = append(steps, dataset.CenterCrop(t.CropWidth, t.CropHeight))
	}
	items := dataset.ItemOptions{Loader: dataset.ImageLoader{}}
	if len(steps) > 0 {
		items.Transform = dataset.Chain(steps...)
	}
	return items
}
