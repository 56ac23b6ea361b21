// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunSummary describes one completed pipeline run. It is persisted to
// the run ledger and mirrored into the YAML sidecar.
type RunSummary struct {
	// ID is a random UUID assigned at the start of the run.
	ID string `json:"id" yaml:"id"`

	// DateLabel is the DD/MM/YYYY label stamped into the output rows.
	DateLabel string `json:"date_label" yaml:"date_label"`

	// Operator is the uppercased name of the person running the batch.
	Operator string `json:"operator" yaml:"operator"`

	// Scanned, Matched, and Unmatched count the manifests found, the
	// manifests paired with a schedule entry, and the rest.
	Scanned   int `json:"scanned" yaml:"scanned"`
	Matched   int `json:"matched" yaml:"matched"`
	Unmatched int `json:"unmatched" yaml:"unmatched"`

	// CSVPath and ExcelPath are the root output files actually written,
	// after any locked-file fallback.
	CSVPath   string `json:"csv_path" yaml:"csv_path"`
	ExcelPath string `json:"excel_path" yaml:"excel_path"`

	// CreatedAt is when the run finished.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
