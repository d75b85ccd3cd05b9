package crawler

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Sink is an append-only JSONL stream. There is exactly one writer per
// file, so records never interleave.
type Sink struct {
	path string
	file *os.File
}

func OpenSink(path string) (*Sink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open sink: %w", err)
	}
	return &Sink{path: path, file: file}, nil
}

// Write appends one record as a single JSON line. The whole line goes
// out in one unbuffered write call, so a crash leaves at most one
// partial line at the tail, which the startup scan skips over.
func (s *Sink) Write(record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	data = append(data, '\n')
	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("append %s: %w", s.path, err)
	}
	return nil
}

func (s *Sink) Close() error {
	return s.file.Close()
}

// ScanIDs reads the ids back out of a JSONL stream. The output files
// are the authority on what has been scraped; the ledger only caches.
// A missing file means nothing was emitted yet. Unreadable lines are
// skipped with a warning so their items get scraped again.
func ScanIDs(path string) (map[string]bool, error) {
	ids := map[string]bool{}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return ids, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	// fight records with full per-round tables overflow the default
	// token size
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		var record struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(text, &record); err != nil {
			slog.Warn("skipping unreadable output line", "path", path, "line", line, "err", err)
			continue
		}
		if record.ID != "" {
			ids[record.ID] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return ids, nil
}
