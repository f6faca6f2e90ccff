package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bdougie/phasekit/internal/config"
	"github.com/bdougie/phasekit/internal/dataset"
	"github.com/bdougie/phasekit/internal/storage"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		outputDir  string
		toPostgres bool
		initSchema bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the per-video index to a JSON manifest or PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			opts, err := ctx.datasetOptions()
			if err != nil {
				return err
			}

			idx, err := dataset.NewVideoIndex(cmd.Context(), opts)
			if err != nil {
				return err
			}

			var store storage.Storage
			var where string
			if toPostgres || cfg.Postgres.Enabled {
				pgConfig := postgresConfig(cfg)
				if initSchema {
					if err := storage.InitSchema(cmd.Context(), pgConfig); err != nil {
						return err
					}
				}
				pg, err := storage.NewPostgresStorage(cmd.Context(), pgConfig, idx.Dataset(), opts.Mapping.NumClasses())
				if err != nil {
					return err
				}
				defer pg.Close()
				store = pg
				where = fmt.Sprintf("postgres %s/%s", pgConfig.Host, pgConfig.DBName)
			} else {
				dir := cfg.Export.OutputDir
				if strings.TrimSpace(outputDir) != "" {
					if dir, err = config.ExpandPath(outputDir); err != nil {
						return err
					}
				}
				fileStore := storage.NewStorage(dir, idx.Dataset())
				store = fileStore
				where = fileStore.Path()
			}

			for _, video := range idx.Videos() {
				if err := store.AddVideo(cmd.Context(), video); err != nil {
					return err
				}
				ctx.logger.Debug("video exported", "video", video.Name, "frames", len(video.Frames))
			}
			if err := store.Flush(); err != nil {
				return fmt.Errorf("failed to flush export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d videos to %s\n", idx.Len(), where)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Manifest output directory (defaults to export.output_dir)")
	cmd.Flags().BoolVar(&toPostgres, "postgres", false, "Export to PostgreSQL instead of a manifest")
	cmd.Flags().BoolVar(&initSchema, "init-schema", false, "Create the PostgreSQL schema before exporting")
	return cmd
}

func postgresConfig(cfg *config.Config) storage.PostgresConfig {
	return storage.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
	}
}
