// Package constants provides shared constants used throughout the
// pipeline: the canonical column names sources are normalized into, the
// fixed input folder names, and the output sentinel.
package constants

// Canonical column names shared across loaders and the merge engine.
const (
	// IdentifierColumn is the single normalized identifier column every
	// unpivoted table carries.
	IdentifierColumn = "ISSN/EISSN"

	// SourceColumn tags each row with the base name of its originating file.
	SourceColumn = "Source"

	// JournalNameColumn is the display name of a journal.
	JournalNameColumn = "Journal Name"

	// CleanNameColumn is the derived grouping key for journal identity.
	CleanNameColumn = "JName clean"

	// AgreementColumn is the raw publisher agreement name.
	AgreementColumn = "Agreement"

	// AgreementKeyColumn is the normalized agreement join key.
	AgreementKeyColumn = "Agreement Key"

	// IdentifierListColumn is the per-journal concatenation of all
	// identifiers sharing one clean journal name.
	IdentifierListColumn = "ISSNs by JName clean"
)

// Input folder names, fixed by source role.
const (
	JournalListFolder = "Journal List (CAUL)"
	SCImagoFolder     = "SCImago (Scopus)"
	JCRFolder         = "Journal Citation Reports (JCR)"
	CiteScoreFolder   = "CiteScore (Elsevier)"
	CapLinkFolder     = "Cap and Link (CAUL)"
)

// Sentinel is the explicit placeholder for "resolved but no value
// found", distinct from an absent cell.
const Sentinel = "N/A"

// EligibilityColumn is the journal-list flag that gates inclusion; rows
// are kept only when it normalizes to EligibilityYes.
const (
	EligibilityColumn = "La Trobe University"
	EligibilityYes    = "Y"
)
