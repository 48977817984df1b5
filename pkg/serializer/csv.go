package serializer

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/k8sinv/kinvctl/pkg/inventory"
)

// CSVDirWriter exports a snapshot as one CSV file per non-empty category,
// named <dir>/<category>.csv.
//
// Column headers come from the first record of each set, in that record's
// field order; header inference is deliberately not a union over all
// records, since record sets are homogeneous by contract. List-valued
// fields are flattened with a newline join, absent values render empty.
type CSVDirWriter struct {
	Dir string
}

// Export implements Exporter. Creating the destination directory is
// idempotent; empty record sets produce no file at all.
func (w *CSVDirWriter) Export(ctx context.Context, snap *inventory.Snapshot) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", w.Dir, err)
	}

	for _, set := range snap.Sets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if set.Len() == 0 {
			continue
		}
		path := filepath.Join(w.Dir, set.Category+".csv")
		if err := writeCategory(path, set); err != nil {
			return err
		}
		slog.Info("exported category",
			slog.String("category", set.Category),
			slog.Int("records", set.Len()),
			slog.String("path", path))
	}
	return nil
}

func writeCategory(path string, set *inventory.RecordSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := writeRecords(csv.NewWriter(f), set); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeRecords(cw *csv.Writer, set *inventory.RecordSet) error {
	headers := set.Records[0].Keys()
	if err := cw.Write(headers); err != nil {
		return err
	}

	row := make([]string, set.Records[0].Len())
	for _, rec := range set.Records {
		for i, key := range headers {
			value, _ := rec.Get(key)
			row[i] = value.ExportString()
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
