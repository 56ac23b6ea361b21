// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runfile reads and writes the run summary sidecar. The sidecar
// mirrors the last run's ledger entry as YAML so the operator (or a
// follow-up script) can inspect the outcome without opening SQLite.
package runfile

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manifest-engine/pkg/types"
)

// fileName is the sidecar written into the ledger directory.
const fileName = "last-run.yaml"

// Write saves the run summary to ledgerDir/last-run.yaml.
func Write(ledgerDir string, run types.RunSummary) error {
	if err := os.MkdirAll(ledgerDir, 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	data, err := yaml.Marshal(&run)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	return os.WriteFile(filepath.Join(ledgerDir, fileName), data, 0o644)
}

// Read loads the last run summary from ledgerDir.
func Read(ledgerDir string) (*types.RunSummary, error) {
	data, err := os.ReadFile(filepath.Join(ledgerDir, fileName))
	if err != nil {
		return nil, fmt.Errorf("reading run summary: %w", err)
	}
	var run types.RunSummary
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing run summary: %w", err)
	}
	return &run, nil
}
