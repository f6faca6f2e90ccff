package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Dataset.Root, err = expandPath(strings.TrimSpace(c.Dataset.Root)); err != nil {
		return err
	}
	if c.Export.OutputDir, err = expandPath(strings.TrimSpace(c.Export.OutputDir)); err != nil {
		return err
	}
	c.Dataset.Name = strings.TrimSpace(c.Dataset.Name)
	c.Dataset.FeatureFolder = strings.TrimSpace(c.Dataset.FeatureFolder)
	c.Dataset.GroundTruthFolder = strings.TrimSpace(c.Dataset.GroundTruthFolder)
	c.Dataset.FilterType = strings.ToLower(strings.TrimSpace(c.Dataset.FilterType))

	special := c.Dataset.SpecialList[:0]
	for _, name := range c.Dataset.SpecialList {
		if name = strings.TrimSpace(name); name != "" {
			special = append(special, name)
		}
	}
	c.Dataset.SpecialList = special

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Extract.FFmpeg = strings.TrimSpace(c.Extract.FFmpeg); c.Extract.FFmpeg == "" {
		c.Extract.FFmpeg = "ffmpeg"
	}
	return nil
}
