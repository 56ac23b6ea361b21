// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/manifest-engine/internal/assemble"
	"github.com/pdiddy/manifest-engine/internal/ledger"
	"github.com/pdiddy/manifest-engine/internal/manifest"
	"github.com/pdiddy/manifest-engine/internal/output"
	"github.com/pdiddy/manifest-engine/internal/report"
	"github.com/pdiddy/manifest-engine/internal/runfile"
	"github.com/pdiddy/manifest-engine/internal/schedule"
	"github.com/pdiddy/manifest-engine/internal/template"
	"github.com/pdiddy/manifest-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate [operator]",
	Short: "Run the full batch: scan manifests, match drivers, write the spreadsheet",
	Long: `Generate runs the whole pipeline for the current shift. It archives the
previous outputs, reads the template header and the schedule workbook,
scans the manifest PDF folders, extracts the document fields from each
PDF, matches each manifest to a scheduled driver, and writes the result
as CSV and Excel. The run is recorded in the local ledger.

The operator name goes into the EMITO POR and RESPONSAVEL columns. Pass
it as the argument or type it at the prompt.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("pdf-dir", "", "manifest PDF folder under the base directory")
	generateCmd.Flags().String("template", "", "template CSV filename")
	generateCmd.Flags().String("schedule", "", "schedule workbook filename prefix")
	generateCmd.Flags().String("ledger-dir", "", "run ledger directory under the base directory")
	generateCmd.Flags().Bool("verbose", false, "print the fields extracted from each PDF")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("pdf-dir"); v != "" {
		cfg.Paths.PDFDir = v
	}
	if v, _ := cmd.Flags().GetString("template"); v != "" {
		cfg.Paths.TemplateFile = v
	}
	if v, _ := cmd.Flags().GetString("schedule"); v != "" {
		cfg.Paths.SchedulePrefix = v
	}
	if v, _ := cmd.Flags().GetString("ledger-dir"); v != "" {
		cfg.Paths.LedgerDir = v
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	operator := ""
	if len(args) > 0 {
		operator = args[0]
	}
	operator, err = resolveOperator(operator)
	if err != nil {
		return err
	}

	p := report.New(os.Stdout, useColor())
	p.Banner(version, operator)

	now := time.Now()
	dateLabel := assemble.DateLabel(now, cfg.Output.RolloverHour)
	fileLabel := assemble.FileLabel(dateLabel)

	p.Step(1, "archiving previous outputs")
	output.ArchivePrior(cfg.Paths, cfg.Output, p.Writer())

	p.Step(2, "reading template %s", cfg.Paths.TemplateFile)
	columns, enc, err := template.Header(filepath.Join(cfg.Paths.BaseDir, cfg.Paths.TemplateFile))
	if err != nil {
		return err
	}
	fmt.Fprintf(p.Writer(), "  %d columns (%s)\n", len(columns), enc)

	p.Step(3, "loading schedule")
	schedulePath, err := schedule.Locate(cfg.Paths)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.Writer(), "  %s\n", filepath.Base(schedulePath))
	roster, err := schedule.Load(schedulePath, cfg.Schedule, p.Writer())
	if err != nil {
		return err
	}
	if len(roster.Drivers) == 0 {
		return fmt.Errorf("schedule workbook %s has no driver rows", filepath.Base(schedulePath))
	}

	p.Step(4, "scanning for MDFs in %s", cfg.Paths.PDFDir)
	manifests, err := manifest.Scan(cfg.Paths, p.Writer())
	if err != nil {
		return err
	}
	if len(manifests) == 0 {
		return fmt.Errorf("no manifest PDFs found under %s", filepath.Join(cfg.Paths.BaseDir, cfg.Paths.PDFDir))
	}

	p.Step(5, "extracting PDF fields")
	batch := manifest.ExtractBatch(manifest.PDFText{}, manifests, p.Writer())
	if batch.Failed > 0 {
		p.Warn("%d PDF(s) with no readable text", batch.Failed)
	}
	if verbose {
		for _, m := range manifests {
			fmt.Fprintf(p.Writer(), "  %s [%s] DT=%s CTE=%s MDFe=%s %s plates=%s/%s NF=%s\n",
				m.Key, m.Origin, m.Fields.DT, m.Fields.CTE, m.Fields.MDFe,
				m.Fields.MDFeTime, m.Fields.Trailer, m.Fields.Tractor, m.Fields.Invoices)
		}
	}

	p.Step(6, "assembling spreadsheet for %s", dateLabel)
	result := assemble.Build(assemble.Input{
		Manifests: manifests,
		Roster:    roster,
		Columns:   columns,
		DateLabel: dateLabel,
		Operator:  operator,
	}, p.Writer())

	if result.Matched == 0 {
		return zeroMatchedErr(schedulePath, cfg)
	}

	p.Step(7, "writing output files")
	csvPath, excelPath, err := output.Write(result.Rows, columns, cfg.Paths, cfg.Output, fileLabel, p.Writer())
	if err != nil {
		return err
	}

	run := types.RunSummary{
		ID:        uuid.NewString(),
		DateLabel: dateLabel,
		Operator:  operator,
		Scanned:   len(manifests),
		Matched:   result.Matched,
		Unmatched: result.Unmatched,
		CSVPath:   csvPath,
		ExcelPath: excelPath,
		CreatedAt: now,
	}
	recordRun(cfg.Paths, run, result.Entries, p)

	p.Table(result.Entries)
	p.Summary(run)
	return nil
}

// recordRun persists the run to the ledger and the YAML sidecar. Both
// are advisory: the spreadsheets are already on disk, so failures here
// only warn.
func recordRun(paths types.PathsConfig, run types.RunSummary, entries []assemble.Entry, p *report.Printer) {
	ledgerDir := filepath.Join(paths.BaseDir, paths.LedgerDir)

	store, err := ledger.Open(ledgerDir)
	if err != nil {
		p.Warn("opening run ledger: %v", err)
	} else {
		defer store.Close()
		rows := make([]ledger.RowRecord, len(entries))
		for i, e := range entries {
			rows[i] = ledger.RowRecord{
				Driver:     e.Driver,
				Origin:     e.Origin,
				SheetIndex: e.SheetIndex,
				Fleet:      e.Fleet,
				DT:         e.DT,
				Trailer:    e.Trailer,
			}
		}
		if err := store.Record(context.Background(), run, rows); err != nil {
			p.Warn("recording run: %v", err)
		}
	}

	if err := runfile.Write(ledgerDir, run); err != nil {
		p.Warn("writing run summary: %v", err)
	}
}

// resolveOperator validates the operator name, prompting when none was
// given. Only letters and spaces are accepted; the name is uppercased.
func resolveOperator(operator string) (string, error) {
	if operator == "" {
		fmt.Print("Operator name: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading operator name: %w", err)
		}
		operator = line
	}

	operator = strings.ToUpper(strings.TrimSpace(operator))
	if operator == "" {
		return "", fmt.Errorf("operator name is required")
	}
	for _, r := range operator {
		if !unicode.IsLetter(r) && r != ' ' {
			return "", fmt.Errorf("operator name %q: only letters and spaces allowed", operator)
		}
	}
	return operator, nil
}

// zeroMatchedErr explains why a run with manifests but no matches was
// aborted. A wrong workbook is far more likely than every single driver
// being off schedule.
func zeroMatchedErr(schedulePath string, cfg types.PipelineConfig) error {
	return fmt.Errorf(`no manifest matched a scheduled driver; nothing was written

Check:
  - is %s the right schedule workbook for today?
  - is the current day's schedule on the first visible sheet?
  - do the PDF filenames carry the drivers' schedule names?
  - are the PDFs in the right origin subfolders under %s?`,
		filepath.Base(schedulePath), cfg.Paths.PDFDir)
}
