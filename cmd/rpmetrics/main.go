// Package main provides the entry point for the rpmetrics CLI tool.
package main

import (
	"github.com/La-Trobe-University-Library/open-access-publishing-metrics-pipeline/cmd/rpmetrics/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
