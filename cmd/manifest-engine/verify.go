// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/manifest-engine/internal/report"
	"github.com/pdiddy/manifest-engine/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the working folder is ready for a run",
	Long: `Verify inspects the working folder without changing anything: the
template CSV, the schedule workbook and its visible sheets, and the
manifest folder tree with its origin subfolders. The exit status is
non-zero when any prerequisite is missing.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	p := report.New(os.Stdout, useColor())
	p.Banner(version, "")

	rep := verify.Run(cfg.Paths)
	for _, c := range rep.Checks {
		if c.OK {
			fmt.Fprintf(p.Writer(), "  ok    %-20s %s\n", c.Name, c.Detail)
		} else {
			fmt.Fprintf(p.Writer(), "  FAIL  %-20s %s\n", c.Name, c.Detail)
		}
	}

	if !rep.Passed() {
		return fmt.Errorf("working folder %s is not ready", cfg.Paths.BaseDir)
	}
	fmt.Fprintln(p.Writer(), "\nworking folder is ready")
	return nil
}
