package report

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/errors"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// WriteCSV writes the table to path as RFC 4180 CSV, creating parent
// directories as needed. Absent cells render as empty fields.
func WriteCSV(path string, t *tables.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapFile(path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapFile(path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return errors.WrapFile(path, err)
	}
	record := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			record[i] = r.Get(c).String()
		}
		if err := w.Write(record); err != nil {
			return errors.WrapFile(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapFile(path, err)
	}
	return f.Close()
}
