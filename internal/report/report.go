// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the operator-facing terminal output for a run:
// the banner, per-stage progress lines, and the final summary table.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/manifest-engine/internal/assemble"
	"github.com/pdiddy/manifest-engine/pkg/types"
)

// tableCap limits how many rows the summary table prints. Large batches
// still show their totals in the closing summary.
const tableCap = 40

// Printer writes styled progress output to one destination. With color
// disabled every style renders as plain text.
type Printer struct {
	w io.Writer

	banner  lipgloss.Style
	step    lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	divider lipgloss.Style
}

// New builds a Printer writing to w. When color is false all styling is
// stripped, which is also the right mode for piped output.
func New(w io.Writer, color bool) *Printer {
	p := &Printer{w: w}
	if !color {
		plain := lipgloss.NewStyle()
		p.banner = plain
		p.step = plain
		p.ok = plain
		p.warn = plain
		p.fail = plain
		p.muted = plain
		p.header = plain
		p.divider = plain
		return p
	}

	p.banner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	p.step = lipgloss.NewStyle().Bold(true)
	p.ok = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	p.warn = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	p.fail = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
	p.muted = lipgloss.NewStyle().Faint(true)
	p.header = lipgloss.NewStyle().Bold(true).Underline(true)
	p.divider = lipgloss.NewStyle().Faint(true)
	return p
}

// Writer exposes the underlying destination so stages can stream their
// own progress lines between styled sections.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Banner prints the opening program banner.
func (p *Printer) Banner(version, operator string) {
	fmt.Fprintln(p.w, p.banner.Render("manifest-engine "+version))
	if operator != "" {
		fmt.Fprintln(p.w, p.muted.Render("operator: "+operator))
	}
	fmt.Fprintln(p.w)
}

// Step prints a numbered stage header.
func (p *Printer) Step(n int, format string, args ...any) {
	fmt.Fprintln(p.w, p.step.Render(fmt.Sprintf("[%d] %s", n, fmt.Sprintf(format, args...))))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.w, p.warn.Render("  warning: "+fmt.Sprintf(format, args...)))
}

// Fail prints an error line.
func (p *Printer) Fail(format string, args ...any) {
	fmt.Fprintln(p.w, p.fail.Render("error: "+fmt.Sprintf(format, args...)))
}

// DayLabel names a schedule sheet position for display. Sheet 1 holds
// the current day and sheet 2 the previous day.
func DayLabel(sheet int) string {
	switch sheet {
	case 1:
		return "DIA ATUAL"
	case 2:
		return "DIA ANTERIOR"
	default:
		return fmt.Sprintf("ABA %d", sheet)
	}
}

// Table prints the matched manifests of a run.
func (p *Printer) Table(entries []assemble.Entry) {
	if len(entries) == 0 {
		return
	}

	headers := []string{"MOTORISTA", "ESCALA", "ORIGEM", "FROTA", "DT", "CARRETA"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if len(rows) == tableCap {
			break
		}
		rows = append(rows, []string{
			e.Driver, DayLabel(e.SheetIndex), e.Origin, e.Fleet, e.DT, e.Trailer,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(pad(h, widths[i]))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	fmt.Fprintln(p.w, p.header.Render(b.String()))

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(headers) - 1)
	fmt.Fprintln(p.w, p.divider.Render(strings.Repeat("-", total)))

	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			line.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 {
				line.WriteString("  ")
			}
		}
		fmt.Fprintln(p.w, line.String())
	}
	if len(entries) > tableCap {
		fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf("... and %d more", len(entries)-tableCap)))
	}
	fmt.Fprintln(p.w)
}

// Summary prints the closing counters and output locations.
func (p *Printer) Summary(run types.RunSummary) {
	fmt.Fprintln(p.w, p.step.Render("Summary"))
	fmt.Fprintf(p.w, "  date:         %s\n", run.DateLabel)
	fmt.Fprintf(p.w, "  MDFs scanned: %d\n", run.Scanned)
	fmt.Fprintln(p.w, p.ok.Render(fmt.Sprintf("  matched:      %d", run.Matched)))
	if run.Unmatched > 0 {
		fmt.Fprintln(p.w, p.warn.Render(fmt.Sprintf("  unscheduled:  %d", run.Unmatched)))
	}
	if run.CSVPath != "" {
		fmt.Fprintf(p.w, "  CSV:          %s\n", run.CSVPath)
	}
	if run.ExcelPath != "" {
		fmt.Fprintf(p.w, "  Excel:        %s\n", run.ExcelPath)
	}
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
