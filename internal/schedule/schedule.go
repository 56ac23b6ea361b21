// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule loads the driver roster from the schedule workbook
// (the "Escala"). Up to two visible sheets are read in workbook order:
// the first holds the current day's schedule, the second the previous
// day's. Every row remembers which sheet it came from so that matching
// can prefer the most recent revision.
package schedule

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/manifest-engine/internal/namenorm"
	"github.com/pdiddy/manifest-engine/pkg/types"
)

// Roster is the loaded schedule: drivers in sheet order plus an alias
// index. Read-only after Load.
type Roster struct {
	// Drivers preserves workbook order: all sheet-1 rows precede all
	// sheet-2 rows.
	Drivers []types.Driver

	// Aliases maps a digit-stripped normalized alias key to an index
	// into Drivers. Built from the NOME column when it differs from
	// MOTORISTA.
	Aliases map[string]int
}

// Locate finds the schedule workbook in baseDir: the first .xlsx whose
// name starts with the prefix (case-insensitive), else the fallback
// filename. A missing workbook is fatal and the error names the prefix
// the operator must provide.
func Locate(paths types.PathsConfig) (string, error) {
	entries, err := os.ReadDir(paths.BaseDir)
	if err != nil {
		return "", fmt.Errorf("reading base directory %s: %w", paths.BaseDir, err)
	}

	prefix := strings.ToLower(paths.SchedulePrefix)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".xlsx") {
			return filepath.Join(paths.BaseDir, entry.Name()), nil
		}
	}

	fallback := filepath.Join(paths.BaseDir, paths.ScheduleFallback)
	if _, err := os.Stat(fallback); err == nil {
		return fallback, nil
	}
	return "", fmt.Errorf("no schedule workbook found: place an .xlsx starting with %q in %s",
		paths.SchedulePrefix, paths.BaseDir)
}

// Load opens the workbook at path and builds the roster. Row reading on
// each sheet stops after cfg.EmptyRowCutoff consecutive empty rows.
// Duplicate driver names keep the first-seen entry, so a driver listed
// on both sheets keeps the sheet-1 (current day) record.
func Load(path string, cfg types.ScheduleConfig, w io.Writer) (*Roster, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule workbook %s: %w", path, err)
	}
	defer f.Close()

	maxSheets := cfg.MaxVisibleSheets
	if maxSheets <= 0 {
		maxSheets = 2
	}

	roster := &Roster{Aliases: make(map[string]int)}
	seen := make(map[string]bool)

	visible := 0
	for _, sheet := range f.GetSheetList() {
		if visible >= maxSheets {
			break
		}
		if ok, err := f.GetSheetVisible(sheet); err != nil || !ok {
			continue
		}
		visible++

		rows, err := f.GetRows(sheet)
		if err != nil {
			fmt.Fprintf(w, "warning: reading sheet %s: %v\n", sheet, err)
			continue
		}
		n := loadSheet(roster, seen, rows, visible, cfg.EmptyRowCutoff)
		fmt.Fprintf(w, "  sheet %d (%s): %d rows\n", visible, sheet, n)
	}

	fmt.Fprintf(w, "drivers loaded: %d\n", len(roster.Drivers))
	return roster, nil
}

// loadSheet appends one sheet's driver rows to the roster and returns
// how many data rows it consumed.
func loadSheet(roster *Roster, seen map[string]bool, rows [][]string, sheetIdx, emptyCutoff int) int {
	if len(rows) == 0 {
		return 0
	}
	if emptyCutoff <= 0 {
		emptyCutoff = 50
	}

	cols := headerIndex(rows[0])
	get := func(row []string, name string) string {
		idx, ok := cols[namenorm.Normalize(name)]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	count := 0
	consecutiveEmpty := 0
	for _, row := range rows[1:] {
		if rowEmpty(row) {
			consecutiveEmpty++
			if consecutiveEmpty >= emptyCutoff {
				break
			}
			continue
		}
		consecutiveEmpty = 0
		count++

		nameRaw := get(row, "MOTORISTA")
		if nameRaw == "" {
			nameRaw = get(row, "NOME")
		}
		name := namenorm.StripParens(nameRaw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		fullName := get(row, "NOME COMPLETO")
		if fullName == "" {
			fullName = get(row, "NOME")
		}

		roster.Drivers = append(roster.Drivers, types.Driver{
			Name:         name,
			FullName:     fullName,
			ScheduleHour: get(row, "ESCALA"),
			Fleet:        get(row, "FROTA"),
			GPID:         get(row, "GPID"),
			CPF:          get(row, "CPF"),
			SheetIndex:   sheetIdx,
		})

		// The NOME column can carry an alternate spelling; index it as
		// an alias when it differs from the primary name.
		alias := namenorm.StripParens(get(row, "NOME"))
		if alias != "" {
			aliasKey := namenorm.Normalize(namenorm.StripDigits(alias))
			nameKey := namenorm.Normalize(namenorm.StripDigits(name))
			if aliasKey != "" && aliasKey != nameKey {
				if _, exists := roster.Aliases[aliasKey]; !exists {
					roster.Aliases[aliasKey] = len(roster.Drivers) - 1
				}
			}
		}
	}
	return count
}

// headerIndex maps normalized column names to their positions.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := namenorm.Normalize(h)
		if key == "" {
			continue
		}
		if _, exists := cols[key]; !exists {
			cols[key] = i
		}
	}
	return cols
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
