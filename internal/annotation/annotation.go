// Package annotation reads ground-truth phase files, one per video, that map
// frame indices to phase names.
package annotation

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Annotation maps a frame index, as written in the file, to a phase name.
type Annotation map[string]string

// Load opens and parses the ground-truth file at path.
func Load(path string) (Annotation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ground truth: %w", err)
	}
	defer file.Close()

	ann, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse ground truth %q: %w", path, err)
	}
	return ann, nil
}

// Parse reads whitespace separated "<frame> <phase>" lines. A leading line
// whose first field is not an integer is treated as a header.
func Parse(r io.Reader) (Annotation, error) {
	ann := Annotation{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	seenContent := false
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if !seenContent {
			seenContent = true
			if _, err := strconv.Atoi(fields[0]); err != nil {
				continue
			}
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected frame and phase, got %q", lineNo, scanner.Text())
		}
		ann[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ann, nil
}
