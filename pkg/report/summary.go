package report

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/errors"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// Summary aggregates run-level statistics over the final output table.
// Counts whose backing column is missing from the output are reported
// as unavailable rather than zero.
type Summary struct {
	TotalJournals    int
	UniquePublishers int
	MissingJIF       int
	MissingCiteScore int

	HasPublishers bool
	HasJIF        bool
	HasCiteScore  bool
}

// Summarize computes the run summary from the final table. A metric
// cell counts as missing when it is absent, blank, or the sentinel.
func Summarize(t *tables.Table, years Years) Summary {
	s := Summary{TotalJournals: t.Len()}

	if t.HasColumn("Publisher Name") {
		s.HasPublishers = true
		distinct := make(map[string]struct{})
		for _, r := range t.Rows {
			if v := r.Get("Publisher Name"); !v.IsAbsent() {
				distinct[v.String()] = struct{}{}
			}
		}
		s.UniquePublishers = len(distinct)
	}

	if col := JIFLabel(years); t.HasColumn(col) {
		s.HasJIF = true
		s.MissingJIF = countMissing(t, col)
	}
	if col := CiteScoreLabel(years); t.HasColumn(col) {
		s.HasCiteScore = true
		s.MissingCiteScore = countMissing(t, col)
	}
	return s
}

func countMissing(t *tables.Table, column string) int {
	n := 0
	for _, r := range t.Rows {
		v := r.Get(column)
		if v.IsBlank() || v.String() == constants.Sentinel {
			n++
		}
	}
	return n
}

// rows returns the summary as ordered label/value pairs.
func (s Summary) rows() [][2]string {
	orNA := func(n int, ok bool) string {
		if !ok {
			return constants.Sentinel
		}
		return strconv.Itoa(n)
	}
	return [][2]string{
		{"Total Journals", strconv.Itoa(s.TotalJournals)},
		{"Unique Publishers", orNA(s.UniquePublishers, s.HasPublishers)},
		{"Missing Impact Factor", orNA(s.MissingJIF, s.HasJIF)},
		{"Missing CiteScore", orNA(s.MissingCiteScore, s.HasCiteScore)},
	}
}

// WriteMarkdown writes the summary report next to the output file.
func (s Summary) WriteMarkdown(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapFile(path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapFile(path, err)
	}
	defer func() { _ = f.Close() }()

	items := make([]string, 0, 4)
	for _, kv := range s.rows() {
		items = append(items, md.Bold(kv[0])+": "+kv[1])
	}
	if err := md.NewMarkdown(f).
		H1("R&P Pipeline Summary Report").
		H2("Summary Statistics").
		BulletList(items...).
		Build(); err != nil {
		return errors.WrapFile(path, err)
	}
	return f.Close()
}

// Render prints the summary as a console table.
func (s Summary) Render(w io.Writer) error {
	table := tablewriter.NewTable(w)
	table.Header("Metric", "Value")
	for _, kv := range s.rows() {
		if err := table.Append(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return table.Render()
}
