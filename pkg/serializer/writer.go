package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/k8sinv/kinvctl/pkg/inventory"

	"gopkg.in/yaml.v3"
)

// Format identifies an output encoding.
type Format string

const (
	// FormatCSV writes one comma-separated file per category into a directory.
	FormatCSV Format = "csv"
	// FormatJSON writes the whole snapshot as a single JSON document.
	FormatJSON Format = "json"
	// FormatYAML writes the whole snapshot as a single YAML document.
	FormatYAML Format = "yaml"
)

// IsUnknown reports whether the format is not one of the supported encodings.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatCSV, FormatJSON, FormatYAML:
		return false
	}
	return true
}

// Exporter receives an assembled snapshot and writes it somewhere.
type Exporter interface {
	Export(ctx context.Context, snap *inventory.Snapshot) error
}

// Writer serializes a whole snapshot to a stream in JSON or YAML.
// For per-category tabular files use CSVDirWriter instead.
type Writer struct {
	format Format
	out    io.Writer
	closer io.Closer
}

// NewWriter creates a writer targeting the given stream.
func NewWriter(format Format, out io.Writer) *Writer {
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a writer targeting stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a writer targeting the given file path, or
// stdout when the path is empty or "-". Parent directories are created.
func NewFileWriterOrStdout(format Format, path string) (*Writer, error) {
	if path == "" || path == "-" {
		return NewStdoutWriter(format), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Export implements Exporter.
func (w *Writer) Export(ctx context.Context, snap *inventory.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to finish yaml stream: %w", err)
		}
	default:
		return fmt.Errorf("unsupported stream format: %q", w.format)
	}

	return w.close()
}

func (w *Writer) close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// FormatFromString parses a format flag value.
func FormatFromString(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		return FormatCSV, nil
	}
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: csv, json, yaml", raw)
	}
	return f, nil
}
