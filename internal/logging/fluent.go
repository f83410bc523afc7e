package logging

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Poster is the subset of *fluent.Fluent used by FluentWriter.
type Poster interface {
	Post(tag string, message interface{}) error
}

// FluentWriter forwards JSON log lines to a Fluent Bit collector. Each
// record is tagged with its lower-cased level, so with the "homelist" tag
// prefix an error record lands under homelist.error.
type FluentWriter struct {
	client Poster
}

func NewFluentWriter(client Poster) *FluentWriter {
	return &FluentWriter{client: client}
}

// Write expects one complete JSON record per call, which is how
// slog.JSONHandler writes.
func (w *FluentWriter) Write(p []byte) (int, error) {
	var record map[string]any
	if err := json.Unmarshal(p, &record); err != nil {
		return 0, fmt.Errorf("failed to decode log record: %w", err)
	}

	tag := "info"
	if lvl, ok := record["level"].(string); ok && lvl != "" {
		tag = strings.ToLower(lvl)
	}

	if err := w.client.Post(tag, record); err != nil {
		return 0, fmt.Errorf("failed to post log record: %w", err)
	}
	return len(p), nil
}
