package ingest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/constants"
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/pkg/tables"
)

// recognizedExtensions are the file types a source folder may contain.
var recognizedExtensions = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xlsx": true,
	".xls":  true,
}

// ConcatFolder reads every recognized file in folder (non-recursive, in
// lexicographic name order so the merge order is reproducible) and
// concatenates them into one table, tagging each row with the
// originating file's base name in the Source column. A missing or empty
// folder yields an empty table; a file that fails to read is logged and
// skipped.
func ConcatFolder(folder, sheet string, log *zerolog.Logger) *tables.Table {
	entries, err := os.ReadDir(folder)
	if err != nil {
		log.Info().Str("folder", folder).Msg("No valid files found in folder")
		return tables.New()
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if recognizedExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	bar := progressbar.NewOptions(len(names),
		progressbar.OptionSetDescription("Reading files from "+filepath.Base(folder)),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	out := tables.New()
	loaded := 0
	for _, name := range names {
		path := filepath.Join(folder, name)
		part, err := ReadAny(path, sheet)
		_ = bar.Add(1)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Skipping file")
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		part.SetColumn(constants.SourceColumn, tables.Str(stem))
		out.Append(part)
		loaded++
	}
	_ = bar.Finish()

	if loaded == 0 {
		log.Info().Str("folder", folder).Msg("No valid files found in folder")
		return tables.New()
	}
	log.Info().Int("files", loaded).Str("folder", filepath.Base(folder)).Msg("Loaded folder")
	return out
}
