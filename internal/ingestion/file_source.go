package ingestion

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"dexpath/internal/observability"
)

// FileSource delivers payloads from fixture files or stdin. Each file is
// either one JSON document or NDJSON with one document per line. Used by the
// one-shot scorer and fixture-driven report runs.
type FileSource struct {
	paths  []string
	reader io.Reader
}

// NewFileSource creates a source reading the given fixture files in order.
func NewFileSource(paths ...string) *FileSource {
	return &FileSource{paths: paths}
}

// NewReaderSource creates a source reading a single stream, e.g. stdin.
func NewReaderSource(r io.Reader) *FileSource {
	return &FileSource{reader: r}
}

var _ PayloadSource = (*FileSource)(nil)

// Name identifies the source in logs and metrics.
func (s *FileSource) Name() string { return "file" }

// Run delivers every document and returns. Unlike the WebSocket source, a
// file source is finite; Run returning nil means the input is exhausted.
func (s *FileSource) Run(ctx context.Context, out chan<- RawPayload) error {
	if s.reader != nil {
		return s.deliver(ctx, s.reader, out)
	}

	for _, path := range s.paths {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open fixture %s: %w", path, err)
		}
		err = s.deliver(ctx, f, out)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// deliver splits a stream into documents and pushes them to out.
func (s *FileSource) deliver(ctx context.Context, r io.Reader, out chan<- RawPayload) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read payload stream: %w", err)
	}

	for _, doc := range splitDocuments(data) {
		payload := RawPayload{
			Source:       s.Name(),
			Data:         doc,
			ReceivedAtMs: time.Now().UnixMilli(),
		}
		select {
		case out <- payload:
			observability.RecordPayloadReceived(s.Name())
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// splitDocuments treats input with multiple non-empty lines as NDJSON,
// otherwise as a single document.
func splitDocuments(data []byte) [][]byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	var lines [][]byte
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		lines = append(lines, append([]byte(nil), line...))
	}
	if err := scanner.Err(); err != nil || len(lines) <= 1 {
		return [][]byte{trimmed}
	}

	// A pretty-printed single document also spans lines; only treat the
	// input as NDJSON when every line stands alone as JSON.
	for _, line := range lines {
		if line[0] != '{' && line[0] != '[' {
			return [][]byte{trimmed}
		}
	}
	return lines
}
