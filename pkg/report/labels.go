// Package report shapes the reconciled table into the public output
// schema — year-stamped metric labels, the website fallback, agreement
// enrichment, final deduplication and column order — and writes the CSV
// and summary artifacts. Formatting rules live here so they can change
// without touching the reconciliation engine.
package report

import (
	"fmt"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
)

// Years holds the reporting year of each source. The years are labels
// embedded in output column names; they never affect join or filter
// logic.
type Years struct {
	JournalList int
	SCImago     int
	JCR         int
	CiteScore   int
	CapLink     int
}

// metricLabels maps internal field names to their year-stamped public
// labels.
func metricLabels(y Years) map[string]string {
	return map[string]string{
		"5-year Impact Factor": fmt.Sprintf("5-Year JIF (JCR, %d)", y.JCR),
		"Impact Factor":        fmt.Sprintf("JIF (JCR, %d)", y.JCR),
		"CiteScore":            fmt.Sprintf("CiteScore (Scopus, %d)", y.CiteScore),
		"SNIP":                 fmt.Sprintf("SNIP (Scopus, %d)", y.CiteScore),
		"SJR":                  fmt.Sprintf("SJR (SCImago, %d)", y.SCImago),
		"SJR Best Quartile":    fmt.Sprintf("Best SJR Quartile (SCImago, %d)", y.SCImago),
		"H index":              fmt.Sprintf("H-Index (SCImago, %d)", y.SCImago),
		"Categories":           fmt.Sprintf("Categories (SCImago, %d)", y.SCImago),
		"Field of Research":    "Field of Research (CAUL)",
	}
}

// JIFLabel returns the public label of the impact factor column.
func JIFLabel(y Years) string {
	return fmt.Sprintf("JIF (JCR, %d)", y.JCR)
}

// CiteScoreLabel returns the public label of the CiteScore column.
func CiteScoreLabel(y Years) string {
	return fmt.Sprintf("CiteScore (Scopus, %d)", y.CiteScore)
}

// categoriesLabel returns the public label of the categories column.
func categoriesLabel(y Years) string {
	return fmt.Sprintf("Categories (SCImago, %d)", y.SCImago)
}

// IdentifierListLabel is the public name of the per-journal identifier
// list column.
const IdentifierListLabel = "ISSN/s"

// AgreementLinkLabel is the public name of the agreement link column.
const AgreementLinkLabel = "Agreement link"

// capLinkFields are the agreement-metadata fields carried into the
// output, keyed by the normalized agreement key.
var capLinkFields = []string{
	"Agreement type",
	"Link",
	"Publisher data",
	"Capped agreement approval statistics",
}

// FinalColumns is the fixed output column order; columns the run did not
// produce are simply omitted.
func FinalColumns(y Years) []string {
	return []string{
		constants.JournalNameColumn,
		"Journal Website",
		IdentifierListLabel,
		"Publisher Name",
		AgreementLinkLabel,
		"Agreement type",
		"Field of Research (CAUL)",
		fmt.Sprintf("JIF (JCR, %d)", y.JCR),
		fmt.Sprintf("5-Year JIF (JCR, %d)", y.JCR),
		fmt.Sprintf("CiteScore (Scopus, %d)", y.CiteScore),
		fmt.Sprintf("SNIP (Scopus, %d)", y.CiteScore),
		fmt.Sprintf("SJR (SCImago, %d)", y.SCImago),
		fmt.Sprintf("Best SJR Quartile (SCImago, %d)", y.SCImago),
		fmt.Sprintf("H-Index (SCImago, %d)", y.SCImago),
		fmt.Sprintf("Categories (SCImago, %d)", y.SCImago),
	}
}
