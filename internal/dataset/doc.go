// Package dataset exposes labeled surgical video frames to a training loop.
//
// Three views are provided over a feature folder of per-video frame
// directories and a ground-truth folder of per-video phase files:
//
//   - FrameDataset: every annotated frame of the selected videos as one flat
//     list, in directory order.
//   - VideoIndex: one entry per selected video with its frames sorted by
//     numeric frame index.
//   - VideoDataset: a flat dataset built by concatenating a slice of a
//     VideoIndex, keeping per-video temporal order.
package dataset
