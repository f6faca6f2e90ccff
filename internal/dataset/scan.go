package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bdougie/phasekit/internal/annotation"
	"github.com/bdougie/phasekit/internal/partition"
	"github.com/bdougie/phasekit/internal/phases"
)

// entry is an annotated frame file found during a scan.
type entry struct {
	path  string
	key   string
	phase string
	label int
}

type scannedVideo struct {
	name    string
	entries []entry
}

type scanWork struct {
	slot  int
	video string
}

// scan lists the selected videos and their annotated frames. The result is
// ordered by video name; entries follow directory order within a video.
func scan(ctx context.Context, opts Options) ([]scannedVideo, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	mapping, err := opts.mapping()
	if err != nil {
		return nil, err
	}

	featureDir := opts.featureDir()
	dirEntries, err := os.ReadDir(featureDir)
	if err != nil {
		return nil, fmt.Errorf("read feature folder '%s': %w", featureDir, err)
	}

	filter := partition.NewFilter(opts.SpecialList, opts.FilterType)
	var videos []string
	for _, de := range dirEntries {
		// Hidden directories hold in-progress frame extractions
		if !de.IsDir() || strings.HasPrefix(de.Name(), ".") || !filter.Keep(de.Name()) {
			continue
		}
		videos = append(videos, de.Name())
	}
	opts.logger().Debug("videos selected",
		"filter", filter.Type(),
		"special", len(opts.SpecialList),
		"videos", len(videos))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]scannedVideo, len(videos))
	workChan := make(chan scanWork)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := 0; i < opts.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workChan {
				entries, err := scanVideo(opts, mapping, work.video)
				if err != nil {
					fail(fmt.Errorf("video %s: %w", work.video, err))
					continue
				}
				results[work.slot] = scannedVideo{name: work.video, entries: entries}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i, video := range videos {
			select {
			case workChan <- scanWork{slot: i, video: video}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanVideo(opts Options, mapping phases.Mapping, video string) ([]entry, error) {
	ann, err := annotation.Load(opts.groundTruthPath(video))
	if err != nil {
		return nil, err
	}

	videoDir := filepath.Join(opts.featureDir(), video)
	files, err := os.ReadDir(videoDir)
	if err != nil {
		return nil, fmt.Errorf("read frames directory '%s': %w", videoDir, err)
	}

	entries := make([]entry, 0, len(files))
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		key := frameKey(file.Name())
		phase, ok := ann[key]
		if !ok {
			continue
		}
		label, err := mapping.Label(phase)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", file.Name(), err)
		}
		entries = append(entries, entry{
			path:  filepath.Join(videoDir, file.Name()),
			key:   key,
			phase: phase,
			label: label,
		})
	}
	return entries, nil
}

// frameKey is the file name up to its first dot: "12.jpg" -> "12".
func frameKey(name string) string {
	key, _, _ := strings.Cut(name, ".")
	return key
}
