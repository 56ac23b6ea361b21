// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/manifest-engine/pkg/types"
)

func setupFolder(t *testing.T) types.PathsConfig {
	t.Helper()
	paths := types.Defaults(t.TempDir()).Paths

	require.NoError(t, os.WriteFile(
		filepath.Join(paths.BaseDir, paths.TemplateFile),
		[]byte("DATA,MOTORISTA,DT\n"), 0o644))

	book := excelize.NewFile()
	sw, err := book.NewStreamWriter("Sheet1")
	require.NoError(t, err)
	require.NoError(t, sw.SetRow("A1", []any{"MOTORISTA", "ESCALA"}))
	require.NoError(t, sw.SetRow("A2", []any{"SILVA", "08:00"}))
	require.NoError(t, sw.Flush())
	require.NoError(t, book.SaveAs(filepath.Join(paths.BaseDir, "ESCALA AGOSTO.xlsx")))
	require.NoError(t, book.Close())

	for _, origin := range paths.OriginFolders {
		dir := filepath.Join(paths.BaseDir, paths.PDFDir, origin)
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(paths.BaseDir, paths.PDFDir, "ITU", "SILVA.pdf"),
		[]byte("%PDF-1.4"), 0o644))

	return paths
}

func TestRunPasses(t *testing.T) {
	paths := setupFolder(t)

	report := Run(paths)
	assert.True(t, report.Passed(), "checks: %+v", report.Checks)

	// One check per prerequisite: template, schedule, PDF root, and one
	// per origin folder.
	assert.Len(t, report.Checks, 3+len(paths.OriginFolders))
}

func TestRunMissingTemplate(t *testing.T) {
	paths := setupFolder(t)
	require.NoError(t, os.Remove(filepath.Join(paths.BaseDir, paths.TemplateFile)))

	report := Run(paths)
	assert.False(t, report.Passed())
	assert.False(t, report.Checks[0].OK)
}

func TestRunMissingOriginFolder(t *testing.T) {
	paths := setupFolder(t)
	require.NoError(t, os.RemoveAll(filepath.Join(paths.BaseDir, paths.PDFDir, "SOROCABA")))

	report := Run(paths)
	assert.False(t, report.Passed())

	var failed []string
	for _, c := range report.Checks {
		if !c.OK {
			failed = append(failed, c.Name)
		}
	}
	assert.Equal(t, []string{"origin SOROCABA"}, failed)
}

func TestRunEmptyFolder(t *testing.T) {
	report := Run(types.Defaults(t.TempDir()).Paths)
	assert.False(t, report.Passed())
	for _, c := range report.Checks {
		assert.False(t, c.OK, "check %s should fail in an empty folder", c.Name)
	}
}
