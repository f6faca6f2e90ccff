package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bdougie/phasekit/internal/dataset"
	"github.com/bdougie/phasekit/internal/embeddings"
	"github.com/bdougie/phasekit/internal/models"
	"github.com/bdougie/phasekit/internal/partition"
	"github.com/bdougie/phasekit/internal/storage"
)

func newSimilarCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		toPostgres bool
	)

	cmd := &cobra.Command{
		Use:   "similar VIDEO",
		Short: "Rank videos by similarity of their phase distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			opts, err := ctx.datasetOptions()
			if err != nil {
				return err
			}
			numClasses := opts.Mapping.NumClasses()
			name := args[0]

			var results []models.VideoSearchResult
			if toPostgres || cfg.Postgres.Enabled {
				pg, err := storage.NewPostgresStorage(cmd.Context(), postgresConfig(cfg), cfg.Dataset.Name, numClasses)
				if err != nil {
					return err
				}
				defer pg.Close()
				profile, err := pg.Profile(cmd.Context(), name)
				if err != nil {
					return err
				}
				if results, err = pg.SearchSimilarVideos(cmd.Context(), profile, limit+1); err != nil {
					return err
				}
			} else {
				videos, err := localVideos(ctx, cmd, opts)
				if err != nil {
					return err
				}
				var query []float32
				for _, v := range videos {
					if v.Name == name {
						query = embeddings.PhaseProfile(v.Labels(), numClasses)
					}
				}
				if query == nil {
					return fmt.Errorf("video %s not found", name)
				}
				results = embeddings.Rank(query, videos, numClasses, limit+1)
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				if r.Name == name {
					continue
				}
				if len(rows) == limit {
					break
				}
				rows = append(rows, []string{r.Name, strconv.Itoa(r.FrameCount), fmt.Sprintf("%.4f", r.Similarity)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
				{title: "Video"},
				{title: "Frames", numeric: true},
				{title: "Similarity", numeric: true},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Number of videos to list")
	cmd.Flags().BoolVar(&toPostgres, "postgres", false, "Search profiles stored in PostgreSQL")
	return cmd
}

// localVideos reads the exported manifest when present and otherwise scans
// the dataset. Manifest videos are narrowed to the selected partition.
func localVideos(ctx *commandContext, cmd *cobra.Command, opts dataset.Options) ([]models.Video, error) {
	manifestPath := filepath.Join(ctx.config.Export.OutputDir, storage.ManifestName)
	manifest, err := storage.ReadManifest(manifestPath)
	switch {
	case err == nil && manifest.Dataset == opts.Dataset:
		filter := partition.NewFilter(opts.SpecialList, opts.FilterType)
		videos := make([]models.Video, 0, len(manifest.Videos))
		for _, v := range manifest.Videos {
			if filter.Keep(v.Name) {
				videos = append(videos, v)
			}
		}
		ctx.logger.Debug("using exported manifest",
			"path", manifestPath,
			"filter", filter.Type(),
			"videos", len(videos))
		return videos, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	idx, err := dataset.NewVideoIndex(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	return idx.Videos(), nil
}
