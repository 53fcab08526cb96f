package motion

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

type replaySource struct {
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// NewReplaySource opens a recorded motion file and replays it one
// reading per Next call. The file holds one JSON reading per line;
// empty lines and lines starting with '#' are skipped. Next returns
// io.EOF once the file is exhausted.
func NewReplaySource(path string) (Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay file: %w", err)
	}
	return &replaySource{file: file, scanner: bufio.NewScanner(file)}, nil
}

func (r *replaySource) Next() (Reading, error) {
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var reading Reading
		if err := json.Unmarshal([]byte(line), &reading); err != nil {
			return Reading{}, fmt.Errorf("replay line %d: %w", r.line, err)
		}
		return reading, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Reading{}, fmt.Errorf("error reading replay file: %w", err)
	}

	r.file.Close()
	return Reading{}, io.EOF
}
