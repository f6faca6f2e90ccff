package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bdougie/phasekit/internal/extractor"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var fps float64

	cmd := &cobra.Command{
		Use:   "extract VIDEO...",
		Short: "Extract frames of raw videos into the feature folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			if !cmd.Flags().Changed("fps") {
				fps = cfg.Extract.FPS
			}

			ex := extractor.New(ctx.logger)
			ex.FFmpeg = cfg.Extract.FFmpeg
			featureDir := filepath.Join(cfg.Dataset.Root, cfg.Dataset.FeatureFolder)

			for _, video := range args {
				dir, err := ex.ExtractFrames(cmd.Context(), video, featureDir, fps)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames in %s\n",
					extractor.VideoName(video), extractor.CountFrames(dir), dir)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&fps, "fps", 1, "Frames sampled per second of video")
	return cmd
}
