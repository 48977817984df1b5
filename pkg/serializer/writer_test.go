package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/k8sinv/kinvctl/pkg/inventory"
	"gopkg.in/yaml.v3"
)

func TestFormat_IsUnknown(t *testing.T) {
	for _, f := range []Format{FormatCSV, FormatJSON, FormatYAML} {
		if f.IsUnknown() {
			t.Errorf("%q should be known", f)
		}
	}
	if !Format("xml").IsUnknown() {
		t.Error("xml should be unknown")
	}
}

func TestFormatFromString(t *testing.T) {
	f, err := FormatFromString("")
	if err != nil || f != FormatCSV {
		t.Errorf("empty format should default to csv, got %q, %v", f, err)
	}
	f, err = FormatFromString(" YAML ")
	if err != nil || f != FormatYAML {
		t.Errorf("expected yaml, got %q, %v", f, err)
	}
	if _, err := FormatFromString("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriter_ExportJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	set := &inventory.RecordSet{Category: "nodes"}
	set.Append(inventory.NewRecord().
		Set("name", inventory.Str("n1")).
		Set("labels", inventory.StrList([]string{"a", "b"})))

	if err := w.Export(context.Background(), testSnapshot(set)); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded struct {
		Metadata  map[string]string           `json:"metadata"`
		Inventory map[string][]map[string]any `json:"inventory"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Metadata["tool-version"] != "test" {
		t.Errorf("unexpected metadata: %v", decoded.Metadata)
	}
	records := decoded.Inventory["nodes"]
	if len(records) != 1 || records[0]["name"] != "n1" {
		t.Errorf("unexpected records: %v", records)
	}

	// Field order inside a record must be preserved by the encoder.
	if strings.Index(buf.String(), `"name"`) > strings.Index(buf.String(), `"labels"`) {
		t.Errorf("field order not preserved: %s", buf.String())
	}
}

func TestWriter_ExportYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	set := &inventory.RecordSet{Category: "pods"}
	set.Append(inventory.NewRecord().
		Set("name", inventory.Str("p1")).
		Set("node_name", inventory.Absent()))

	if err := w.Export(context.Background(), testSnapshot(set)); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded struct {
		Inventory map[string][]map[string]any `yaml:"inventory"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	records := decoded.Inventory["pods"]
	if len(records) != 1 || records[0]["name"] != "p1" {
		t.Errorf("unexpected records: %v", records)
	}
	if records[0]["node_name"] != nil {
		t.Errorf("absent value should decode as null, got %v", records[0]["node_name"])
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	w, err := NewFileWriterOrStdout(FormatJSON, "")
	if err != nil {
		t.Fatalf("empty path should target stdout: %v", err)
	}
	if w == nil {
		t.Fatal("writer is nil")
	}

	path := filepath.Join(t.TempDir(), "sub", "snap.json")
	w, err = NewFileWriterOrStdout(FormatJSON, path)
	if err != nil {
		t.Fatalf("file writer failed: %v", err)
	}
	if err := w.Export(context.Background(), testSnapshot()); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatCSV, &buf)
	if err := w.Export(context.Background(), testSnapshot()); err == nil {
		t.Error("csv is not a stream format, expected error")
	}
}
