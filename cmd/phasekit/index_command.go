package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bdougie/phasekit/internal/dataset"
	"github.com/bdougie/phasekit/internal/phases"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var (
		mode   string
		start  int
		end    int
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan the dataset and summarize the selected partition",
		Long: `Scan the feature and ground-truth folders and report frame counts.

--mode videos builds the ordered per-video index; --start/--end select a
range of videos that is merged into a single dataset. --mode frames builds
the flat frame dataset. --verify decodes every selected frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := ctx.datasetOptions()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch mode {
			case "videos":
				idx, err := dataset.NewVideoIndex(cmd.Context(), opts)
				if err != nil {
					return err
				}
				printVideoStats(out, dataset.ComputeStats(idx.Videos()), opts.Mapping)

				if !cmd.Flags().Changed("start") && !cmd.Flags().Changed("end") && !verify {
					return nil
				}
				if !cmd.Flags().Changed("end") {
					end = idx.Len()
				}
				paths, labels, names := idx.Slice(start, end)
				merged, err := dataset.NewVideoDataset(paths, labels, ctx.itemOptions(), ctx.logger)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Merged %d videos into %d frames\n", len(names), merged.Len())
				if verify {
					return verifyItems(out, merged.Len(), merged.Item)
				}
				return nil

			case "frames":
				ds, err := dataset.NewFrameDataset(cmd.Context(), opts, ctx.itemOptions())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Frame dataset holds %d frames\n", ds.Len())
				printLabelCounts(out, ds.Labels(), opts.Mapping)
				if verify {
					return verifyItems(out, ds.Len(), ds.Item)
				}
				return nil
			}
			return fmt.Errorf("unknown mode %q (want videos or frames)", mode)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "videos", "Dataset view: videos or frames")
	cmd.Flags().IntVar(&start, "start", 0, "First video of the merged range")
	cmd.Flags().IntVar(&end, "end", 0, "End (exclusive) of the merged range")
	cmd.Flags().BoolVar(&verify, "verify", false, "Decode every selected frame")
	return cmd
}

func printVideoStats(out io.Writer, stats dataset.Stats, mapping phases.Mapping) {
	rows := make([][]string, 0, len(stats.Videos))
	for _, v := range stats.Videos {
		rows = append(rows, []string{v.Name, strconv.Itoa(v.Frames)})
	}
	fmt.Fprintln(out, renderTable([]column{{title: "Video"}, {title: "Frames", numeric: true}}, rows))
	fmt.Fprintf(out, "%d videos, %d frames\n", len(stats.Videos), stats.Total)
	printPerLabel(out, stats, mapping)
}

func printLabelCounts(out io.Writer, labels []int, mapping phases.Mapping) {
	stats := dataset.Stats{PerLabel: map[int]int{}, Total: len(labels)}
	for _, l := range labels {
		stats.PerLabel[l]++
	}
	printPerLabel(out, stats, mapping)
}

func printPerLabel(out io.Writer, stats dataset.Stats, mapping phases.Mapping) {
	names := labelNames(mapping)
	rows := make([][]string, 0, len(stats.PerLabel))
	for _, label := range stats.Labels() {
		share := 0.0
		if stats.Total > 0 {
			share = 100 * float64(stats.PerLabel[label]) / float64(stats.Total)
		}
		rows = append(rows, []string{
			strconv.Itoa(label),
			names[label],
			strconv.Itoa(stats.PerLabel[label]),
			fmt.Sprintf("%.1f%%", share),
		})
	}
	fmt.Fprintln(out, renderTable([]column{
		{title: "Label", numeric: true},
		{title: "Phase"},
		{title: "Frames", numeric: true},
		{title: "Share", numeric: true},
	}, rows))
}

func verifyItems(out io.Writer, n int, item func(int) (dataset.Sample, error)) error {
	for i := 0; i < n; i++ {
		if _, err := item(i); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	fmt.Fprintf(out, "Decoded %d frames\n", n)
	return nil
}

// labelNames maps each class id to its first phase name in id order, so ids
// shared by several phases always print the same name.
func labelNames(mapping phases.Mapping) map[int]string {
	names := make(map[int]string, len(mapping))
	for _, name := range mapping.Names() {
		label := mapping[name]
		if _, ok := names[label]; !ok {
			names[label] = name
		}
	}
	return names
}
