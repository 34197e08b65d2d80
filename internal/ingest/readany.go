// Package ingest reads heterogeneous spreadsheet and CSV exports into
// the pipeline's table form. It owns file-format detection, CSV
// delimiter sniffing, Excel sheet selection, per-folder concatenation,
// and the ISSN unpivot that normalizes wide multi-identifier tables.
package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/errors"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// sniffSampleSize is how much of a CSV file the delimiter sniffer reads.
const sniffSampleSize = 2048

// ReadAny reads a single file into a table. CSV and .txt files go
// through the delimiter sniffer; .xlsx workbooks read the named sheet,
// or the first sheet when sheet is empty. Any other extension is a hard
// error for that file.
func ReadAny(path, sheet string) (*tables.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return readCSV(path)
	case ".xlsx":
		return readExcel(path, sheet)
	case ".xls":
		// Legacy binary workbooks are not supported by the xlsx reader;
		// surface a file error so folder concatenation skips them.
		return nil, errors.NewFileError(path, "legacy .xls workbook", errors.ErrUnsupportedFile)
	default:
		return nil, errors.WrapFile(path, errors.ErrUnsupportedFile)
	}
}

func readCSV(path string) (*tables.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapFile(path, err)
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	sample, _ := br.Peek(sniffSampleSize)
	sep := sniffDelimiter(string(sample))

	r := csv.NewReader(br)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.WrapFile(path, errors.ErrEmptyFile)
	}
	if err != nil {
		return nil, errors.WrapFile(path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	out := tables.New(header...)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapFile(path, err)
		}
		out.AddRow(rowFromRecord(header, record))
	}
	return out, nil
}

func readExcel(path, sheet string) (*tables.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapFile(path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, errors.WrapFile(path, errors.ErrEmptyFile)
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewFileError(path, "sheet "+sheet, errors.ErrSheetNotFound)
	}
	if len(rows) == 0 {
		return nil, errors.WrapFile(path, errors.ErrEmptyFile)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	out := tables.New(header...)
	for _, record := range rows[1:] {
		out.AddRow(rowFromRecord(header, record))
	}
	return out, nil
}

// rowFromRecord maps one record onto the header. Cells beyond the
// header width are dropped; blank cells become absent.
func rowFromRecord(header, record []string) tables.Row {
	row := make(tables.Row, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		if i >= len(record) {
			continue
		}
		if strings.TrimSpace(record[i]) == "" {
			continue
		}
		row[name] = tables.Str(record[i])
	}
	return row
}

// sniffDelimiter picks the delimiter that splits the first sample line
// most often outside quoted sections, defaulting to a comma.
func sniffDelimiter(sample string) rune {
	line := sample
	if i := strings.IndexAny(sample, "\r\n"); i >= 0 {
		line = sample[:i]
	}

	counts := make(map[rune]int)
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case !inQuotes:
			switch r {
			case ',', ';', '\t', '|':
				counts[r]++
			}
		}
	}

	best := ','
	bestCount := 0
	for _, candidate := range []rune{',', ';', '\t', '|'} {
		if counts[candidate] > bestCount {
			best = candidate
			bestCount = counts[candidate]
		}
	}
	return best
}
