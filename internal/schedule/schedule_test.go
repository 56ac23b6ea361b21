// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/manifest-engine/pkg/types"
)

var header = []interface{}{"MOTORISTA", "NOME", "NOME COMPLETO", "ESCALA", "FROTA", "GPID", "CPF"}

// writeWorkbook builds an xlsx with one sheet per entry of sheets, in
// order. Each value is a row set starting below the header.
func writeWorkbook(t *testing.T, dir string, name string, sheets map[string][][]interface{}, order []string, hidden ...string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
		for r, row := range sheets[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cell, &row))
		}
	}
	// excelize silently refuses to hide the selected tab, so select a
	// sheet that stays visible before hiding the rest.
	for _, sheet := range order {
		if !slices.Contains(hidden, sheet) {
			idx, err := f.GetSheetIndex(sheet)
			require.NoError(t, err)
			f.SetActiveSheet(idx)
			break
		}
	}
	for _, h := range hidden {
		require.NoError(t, f.SetSheetVisible(h, false))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLocate(t *testing.T) {
	t.Run("prefix match is case-insensitive", func(t *testing.T) {
		dir := t.TempDir()
		want := filepath.Join(dir, "escala semana 34.xlsx")
		require.NoError(t, os.WriteFile(want, []byte("x"), 0o644))

		paths := types.Defaults(dir).Paths
		got, err := Locate(paths)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("fallback filename", func(t *testing.T) {
		dir := t.TempDir()
		want := filepath.Join(dir, "ESCALA MOTORISTAS 2025.xlsx")
		require.NoError(t, os.WriteFile(want, []byte("x"), 0o644))

		paths := types.Defaults(dir).Paths
		paths.SchedulePrefix = "PLANTAO" // no file matches the prefix
		got, err := Locate(paths)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing workbook names the prefix", func(t *testing.T) {
		paths := types.Defaults(t.TempDir()).Paths
		_, err := Locate(paths)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ESCALA")
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "ESCALA TESTE.xlsx", map[string][][]interface{}{
		"DIA ATUAL": {
			{"SILVA", "SILVA", "JOAO DA SILVA", "08:00", "F-101", "G1", "111"},
			{"ARAUJO (FOLGA)", "ZE ARAUJO", "JOSE ARAUJO", "09:00", "F-102", "G2", "222"},
		},
		"DIA ANTERIOR": {
			{"SILVA", "SILVA", "JOAO DA SILVA", "22:00", "F-999", "G1", "111"},
			{"PEREIRA", "PEREIRA", "ANA PEREIRA", "10:00", "F-103", "G3", "333"},
		},
	}, []string{"DIA ATUAL", "DIA ANTERIOR"})

	var log bytes.Buffer
	roster, err := Load(path, types.ScheduleConfig{MaxVisibleSheets: 2, EmptyRowCutoff: 50}, &log)
	require.NoError(t, err)

	// SILVA appears on both sheets; the sheet-1 entry wins.
	require.Len(t, roster.Drivers, 3)
	silva := roster.Drivers[0]
	assert.Equal(t, "SILVA", silva.Name)
	assert.Equal(t, "08:00", silva.ScheduleHour)
	assert.Equal(t, "F-101", silva.Fleet)
	assert.Equal(t, 1, silva.SheetIndex)

	// Parenthetical suffixes are stripped from the primary name.
	araujo := roster.Drivers[1]
	assert.Equal(t, "ARAUJO", araujo.Name)
	assert.Equal(t, "JOSE ARAUJO", araujo.FullName)

	pereira := roster.Drivers[2]
	assert.Equal(t, "PEREIRA", pereira.Name)
	assert.Equal(t, 2, pereira.SheetIndex)

	// The NOME column spelled ARAUJO differently, so it is an alias.
	idx, ok := roster.Aliases["ZE ARAUJO"]
	require.True(t, ok)
	assert.Equal(t, "ARAUJO", roster.Drivers[idx].Name)
}

func TestLoadSkipsHiddenSheets(t *testing.T) {
	dir := t.TempDir()
	path := writeWorkbook(t, dir, "ESCALA TESTE.xlsx", map[string][][]interface{}{
		"OCULTA": {
			{"FANTASMA", "", "", "", "", "", ""},
		},
		"DIA ATUAL": {
			{"SILVA", "", "JOAO DA SILVA", "08:00", "F-101", "G1", "111"},
		},
	}, []string{"OCULTA", "DIA ATUAL"}, "OCULTA")

	var log bytes.Buffer
	roster, err := Load(path, types.ScheduleConfig{MaxVisibleSheets: 2, EmptyRowCutoff: 50}, &log)
	require.NoError(t, err)

	require.Len(t, roster.Drivers, 1)
	assert.Equal(t, "SILVA", roster.Drivers[0].Name)
	// The visible sheet is index 1 even though it is second in the file.
	assert.Equal(t, 1, roster.Drivers[0].SheetIndex)
}

func TestLoadEmptyRowCutoff(t *testing.T) {
	rows := [][]interface{}{
		{"SILVA", "", "JOAO DA SILVA", "08:00", "F-101", "G1", "111"},
	}
	// Three blank rows, then a driver that must not be read with a
	// cutoff of 3.
	for i := 0; i < 3; i++ {
		rows = append(rows, []interface{}{"", "", "", "", "", "", ""})
	}
	rows = append(rows, []interface{}{"TARDE", "", "DRIVER TARDE", "11:00", "F-200", "G9", "999"})

	dir := t.TempDir()
	path := writeWorkbook(t, dir, "ESCALA TESTE.xlsx",
		map[string][][]interface{}{"DIA ATUAL": rows}, []string{"DIA ATUAL"})

	var log bytes.Buffer
	roster, err := Load(path, types.ScheduleConfig{MaxVisibleSheets: 2, EmptyRowCutoff: 3}, &log)
	require.NoError(t, err)

	require.Len(t, roster.Drivers, 1)
	assert.Equal(t, "SILVA", roster.Drivers[0].Name)
}

func TestLoadMissingWorkbook(t *testing.T) {
	var log bytes.Buffer
	_, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"), types.ScheduleConfig{}, &log)
	require.Error(t, err)
}
