// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output persists the assembled batch as a dated CSV and a
// dated Excel workbook, mirrors both into the history folders, and
// archives the previous run's files out of the project root.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/pdiddy/manifest-engine/internal/assemble"
	"github.com/pdiddy/manifest-engine/pkg/types"
)

// excelSheet is the single sheet name in the generated workbook.
const excelSheet = "Dados"

// Names returns the dated CSV and Excel filenames for a run.
func Names(cfg types.OutputConfig, fileLabel string) (csvName, excelName string) {
	base := cfg.FilePrefix + " " + fileLabel
	return base + ".csv", base + ".xlsx"
}

// Write persists the batch to the project root and the history folders
// and returns the root paths actually written. A root file that cannot
// be created (open in Excel, typically) is retried once under the
// locked-suffix name; history copies are best-effort and only warn.
func Write(rows []assemble.Row, columns []string, paths types.PathsConfig, cfg types.OutputConfig, fileLabel string, w io.Writer) (csvPath, excelPath string, err error) {
	csvName, excelName := Names(cfg, fileLabel)

	csvPath, err = withFallback(filepath.Join(paths.BaseDir, csvName), cfg.LockedSuffix, func(p string) error {
		return writeCSV(p, columns, rows)
	})
	if err != nil {
		return "", "", fmt.Errorf("writing CSV: %w", err)
	}
	fmt.Fprintf(w, "  CSV written: %s\n", filepath.Base(csvPath))

	histCSV := filepath.Join(paths.BaseDir, paths.CSVHistoryDir, csvName)
	if err := writeHistoryCopy(histCSV, func(p string) error { return writeCSV(p, columns, rows) }); err != nil {
		fmt.Fprintf(w, "  warning: CSV history copy: %v\n", err)
	} else {
		fmt.Fprintf(w, "  CSV archived: %s/%s\n", paths.CSVHistoryDir, csvName)
	}

	book, err := buildWorkbook(columns, rows)
	if err != nil {
		return csvPath, "", fmt.Errorf("building workbook: %w", err)
	}
	defer book.Close()

	excelPath, err = withFallback(filepath.Join(paths.BaseDir, excelName), cfg.LockedSuffix, func(p string) error { return book.SaveAs(p) })
	if err != nil {
		return csvPath, "", fmt.Errorf("writing Excel: %w", err)
	}
	fmt.Fprintf(w, "  Excel written: %s\n", filepath.Base(excelPath))

	histExcel := filepath.Join(paths.BaseDir, paths.ExcelHistoryDir, excelName)
	if err := writeHistoryCopy(histExcel, func(p string) error { return book.SaveAs(p) }); err != nil {
		fmt.Fprintf(w, "  warning: Excel history copy: %v\n", err)
	} else {
		fmt.Fprintf(w, "  Excel archived: %s/%s\n", paths.ExcelHistoryDir, excelName)
	}

	return csvPath, excelPath, nil
}

// withFallback runs write against path, and on failure once more
// against the suffixed alternate so a locked file never loses the run.
func withFallback(path, suffix string, write func(string) error) (string, error) {
	if err := write(path); err == nil {
		return path, nil
	} else if suffix == "" {
		return "", err
	}

	ext := filepath.Ext(path)
	alt := strings.TrimSuffix(path, ext) + suffix + ext
	if err := write(alt); err != nil {
		return "", fmt.Errorf("both %s and fallback failed: %w", filepath.Base(path), err)
	}
	return alt, nil
}

func writeHistoryCopy(path string, write func(string) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return write(path)
}

// writeCSV emits the rows in Latin-1, the encoding the downstream
// spreadsheet import expects. Runes outside the charset degrade to the
// substitution byte instead of failing the write.
func writeCSV(path string, columns []string, rows []assemble.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := transform.NewWriter(f, encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()))
	cw := csv.NewWriter(enc)

	if err := cw.Write(columns); err != nil {
		f.Close()
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			f.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// buildWorkbook renders the batch into a single-sheet workbook.
func buildWorkbook(columns []string, rows []assemble.Row) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(excelSheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := row.Values()
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		if err := f.SetSheetRow(excelSheet, cell, &cells); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
