// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/manifest-engine/internal/assemble"
	"github.com/pdiddy/manifest-engine/pkg/types"
)

var testColumns = []string{"DATA", "MOTORISTA", "DT", "OBSERVACOES (P2)"}

func testRows(t *testing.T) []assemble.Row {
	t.Helper()
	r1 := assemble.NewRow(testColumns)
	r1.Set("DATA", "15/08/2026")
	r1.Set("MOTORISTA", "SILVA")
	r1.Set("DT", "882245")

	r2 := assemble.NewRow(testColumns)
	r2.Set("DATA", "15/08/2026")
	r2.Set("MOTORISTA", "ARAUJO")
	return []assemble.Row{r1, r2}
}

func testConfig(t *testing.T) (types.PathsConfig, types.OutputConfig) {
	t.Helper()
	cfg := types.Defaults(t.TempDir())
	return cfg.Paths, cfg.Output
}

func TestWrite(t *testing.T) {
	paths, cfg := testConfig(t)
	var log bytes.Buffer

	csvPath, excelPath, err := Write(testRows(t), testColumns, paths, cfg, "15-08-2026", &log)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(paths.BaseDir, "PLANILHA MDFS 15-08-2026.csv"), csvPath)
	assert.Equal(t, filepath.Join(paths.BaseDir, "PLANILHA MDFS 15-08-2026.xlsx"), excelPath)

	// CSV: header plus two rows, with blanks preserved.
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "DATA,MOTORISTA,DT,OBSERVACOES (P2)", lines[0])
	assert.Equal(t, "15/08/2026,SILVA,882245,", lines[1])
	assert.Equal(t, "15/08/2026,ARAUJO,,", lines[2])

	// History copies exist.
	assert.FileExists(t, filepath.Join(paths.BaseDir, "CSV", "PLANILHA MDFS 15-08-2026.csv"))
	assert.FileExists(t, filepath.Join(paths.BaseDir, "EXCEL", "PLANILHA MDFS 15-08-2026.xlsx"))

	// Excel round-trip: sheet "Dados" with aligned cells.
	book, err := excelize.OpenFile(excelPath)
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("Dados")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, testColumns, rows[0])
	assert.Equal(t, "SILVA", rows[1][1])
	assert.Equal(t, "882245", rows[1][2])
}

func TestWriteLatin1Encoding(t *testing.T) {
	paths, cfg := testConfig(t)

	row := assemble.NewRow(testColumns)
	row.Set("MOTORISTA", "JOSÉ") // É is 0xC9 in Latin-1

	var log bytes.Buffer
	csvPath, _, err := Write([]assemble.Row{row}, testColumns, paths, cfg, "15-08-2026", &log)
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), string([]byte{'J', 'O', 'S', 0xC9}))
}

func TestWriteLockedFileFallback(t *testing.T) {
	paths, cfg := testConfig(t)

	// A directory squatting on the CSV name makes os.Create fail the
	// way a locked file does.
	blocked := filepath.Join(paths.BaseDir, "PLANILHA MDFS 15-08-2026.csv")
	require.NoError(t, os.MkdirAll(blocked, 0o755))

	var log bytes.Buffer
	csvPath, _, err := Write(testRows(t), testColumns, paths, cfg, "15-08-2026", &log)
	require.NoError(t, err, "a blocked primary file must not fail the run")

	assert.Equal(t, filepath.Join(paths.BaseDir, "PLANILHA MDFS 15-08-2026 (novo).csv"), csvPath)
	assert.FileExists(t, csvPath)
}

func TestArchivePrior(t *testing.T) {
	paths, cfg := testConfig(t)

	old := filepath.Join(paths.BaseDir, "PLANILHA MDFS 14-08-2026.csv")
	require.NoError(t, os.WriteFile(old, []byte("old run"), 0o644))
	oldX := filepath.Join(paths.BaseDir, "PLANILHA MDFS 14-08-2026.xlsx")
	require.NoError(t, os.WriteFile(oldX, []byte("old xlsx"), 0o644))
	unrelated := filepath.Join(paths.BaseDir, "notes.csv")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep"), 0o644))

	var log bytes.Buffer
	ArchivePrior(paths, cfg, &log)

	assert.NoFileExists(t, old)
	assert.NoFileExists(t, oldX)
	assert.FileExists(t, filepath.Join(paths.BaseDir, "CSV", "PLANILHA MDFS 14-08-2026.csv"))
	assert.FileExists(t, filepath.Join(paths.BaseDir, "EXCEL", "PLANILHA MDFS 14-08-2026.xlsx"))
	assert.FileExists(t, unrelated, "non-output files stay put")
}

func TestArchivePriorOverwritesSameName(t *testing.T) {
	paths, cfg := testConfig(t)

	histDir := filepath.Join(paths.BaseDir, "CSV")
	require.NoError(t, os.MkdirAll(histDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(histDir, "PLANILHA MDFS 15-08-2026.csv"), []byte("first run"), 0o644))

	src := filepath.Join(paths.BaseDir, "PLANILHA MDFS 15-08-2026.csv")
	require.NoError(t, os.WriteFile(src, []byte("second run"), 0o644))

	var log bytes.Buffer
	ArchivePrior(paths, cfg, &log)

	data, err := os.ReadFile(filepath.Join(histDir, "PLANILHA MDFS 15-08-2026.csv"))
	require.NoError(t, err)
	assert.Equal(t, "second run", string(data))
}
