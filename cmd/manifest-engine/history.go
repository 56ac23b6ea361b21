// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manifest-engine/internal/ledger"
	"github.com/pdiddy/manifest-engine/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recent runs from the local ledger",
	Long: `History lists the most recent pipeline runs recorded in the local
ledger, newest first. With a run ID it lists that run's matched rows
instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum runs to list")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	store, err := ledger.Open(filepath.Join(cfg.Paths.BaseDir, cfg.Paths.LedgerDir))
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		return historyRows(store, args[0], jsonOutput)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-10s  %-12s  %5s  %5s  %5s\n",
		"ID", "DATE", "OPERATOR", "MDFS", "OK", "MISS")
	for _, run := range runs {
		fmt.Printf("%-36s  %-10s  %-12s  %5d  %5d  %5d\n",
			run.ID, run.DateLabel, run.Operator, run.Scanned, run.Matched, run.Unmatched)
	}
	return nil
}

func historyRows(store *ledger.Store, runID string, jsonOutput bool) error {
	rows, err := store.Rows(context.Background(), runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no rows recorded for run %s", runID)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Printf("%-25s  %-12s  %-10s  %-8s  %-8s  %s\n",
		"MOTORISTA", "ESCALA", "ORIGEM", "FROTA", "DT", "CARRETA")
	for _, r := range rows {
		fmt.Printf("%-25s  %-12s  %-10s  %-8s  %-8s  %s\n",
			r.Driver, report.DayLabel(r.SheetIndex), r.Origin, r.Fleet, r.DT, r.Trailer)
	}
	return nil
}
