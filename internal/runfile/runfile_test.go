// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manifest-engine/pkg/types"
)

func TestWriteAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ledger")

	want := types.RunSummary{
		ID:        "7e6b8e8a-0000-0000-0000-000000000001",
		DateLabel: "15/08/2026",
		Operator:  "CARLA",
		Scanned:   7,
		Matched:   6,
		Unmatched: 1,
		CSVPath:   "/work/PLANILHA MDFS 15-08-2026.csv",
		ExcelPath: "/work/PLANILHA MDFS 15-08-2026.xlsx",
		CreatedAt: time.Date(2026, 8, 15, 23, 45, 0, 0, time.UTC),
	}

	require.NoError(t, Write(dir, want))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	// The sidecar is plain YAML with readable keys.
	data, err := os.ReadFile(filepath.Join(dir, "last-run.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "operator: CARLA")
	assert.Contains(t, string(data), "date_label: 15/08/2026")
}

func TestReadMissing(t *testing.T) {
	_, err := Read(t.TempDir())
	require.Error(t, err)
}
