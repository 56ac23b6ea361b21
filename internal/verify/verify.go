// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks that a working folder has everything a run
// needs before any run is attempted: the template CSV, the schedule
// workbook, and the manifest folder tree.
package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/manifest-engine/internal/schedule"
	"github.com/pdiddy/manifest-engine/internal/template"
	"github.com/pdiddy/manifest-engine/pkg/types"
)

// Check is one verification result.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Report holds all checks for one folder.
type Report struct {
	Checks []Check
}

// Passed reports whether every check succeeded.
func (r Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

func (r *Report) add(name string, ok bool, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, OK: ok, Detail: fmt.Sprintf(format, args...)})
}

// Run inspects the configured folder layout and returns one check per
// prerequisite. It never modifies anything.
func Run(paths types.PathsConfig) Report {
	var r Report

	r.checkTemplate(paths)
	r.checkSchedule(paths)
	r.checkManifestTree(paths)
	return r
}

func (r *Report) checkTemplate(paths types.PathsConfig) {
	path := filepath.Join(paths.BaseDir, paths.TemplateFile)
	columns, encoding, err := template.Header(path)
	if err != nil {
		r.add("template", false, "%s: %v", paths.TemplateFile, err)
		return
	}
	r.add("template", true, "%s: %d columns (%s)", paths.TemplateFile, len(columns), encoding)
}

func (r *Report) checkSchedule(paths types.PathsConfig) {
	path, err := schedule.Locate(paths)
	if err != nil {
		r.add("schedule", false, "%v", err)
		return
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		r.add("schedule", false, "%s: %v", filepath.Base(path), err)
		return
	}
	defer book.Close()

	visible := 0
	for _, name := range book.GetSheetList() {
		if ok, _ := book.GetSheetVisible(name); ok {
			visible++
		}
	}
	if visible == 0 {
		r.add("schedule", false, "%s: no visible sheets", filepath.Base(path))
		return
	}
	r.add("schedule", true, "%s: %d visible sheet(s)", filepath.Base(path), visible)
}

func (r *Report) checkManifestTree(paths types.PathsConfig) {
	root := filepath.Join(paths.BaseDir, paths.PDFDir)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		r.add("MDF folder", false, "%s not found", paths.PDFDir)
		return
	}
	r.add("MDF folder", true, "%s", paths.PDFDir)

	for _, origin := range paths.OriginFolders {
		dir := filepath.Join(root, origin)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			r.add("origin "+origin, false, "subfolder missing")
			continue
		}
		r.add("origin "+origin, true, "%d PDF(s)", countPDFs(dir))
	}
}

func countPDFs(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			n++
		}
	}
	return n
}
