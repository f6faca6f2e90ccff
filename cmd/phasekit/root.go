package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &overrideFlags{}
	var configFlag string

	ctx := newCommandContext(&configFlag, flags)

	rootCmd := &cobra.Command{
		Use:           "phasekit",
		Short:         "Index labeled surgical video frames for phase classification",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.root, "root", "", "Dataset root directory")
	pf.StringVar(&flags.dataset, "dataset", "", "Dataset label mapping name")
	pf.StringVar(&flags.filter, "filter", "", "Filter type applied to the special list (in, not_in, all)")
	pf.StringSliceVar(&flags.special, "special", nil, "Video names the filter applies to")
	pf.IntVar(&flags.workers, "workers", 0, "Concurrent video scans")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newIndexCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newSimilarCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfig"] == "true" {
			return true
		}
	}
	return false
}
