// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the manifest-engine CLI.
//
// manifest-engine consolidates freight manifest PDFs (MDFs) and the
// daily driver schedule workbook into the shift-handoff spreadsheet.
// Each operation is a subcommand: generate runs the full batch, verify
// checks the working folder, history lists past runs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/manifest-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the manifest-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "manifest-engine",
	Short: "Consolidate freight manifests and the driver schedule into one spreadsheet",
	Long: `manifest-engine reads the manifest PDFs issued during a shift, pairs each
one with the driver's row in the schedule workbook, and writes a single
CSV plus Excel spreadsheet for the handoff. Prior outputs are archived
into the CSV/ and EXCEL/ history folders.

Run "manifest-engine verify" first to confirm the working folder has the
template, the schedule workbook, and the manifest subfolders in place.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./manifest-engine.yaml or ~/.config/manifest-engine/config.yaml)")
	rootCmd.PersistentFlags().String("base-dir", "", "working folder (default: current directory)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable styled terminal output")

	viper.BindPFlag("base_dir", rootCmd.PersistentFlags().Lookup("base-dir"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("manifest-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "manifest-engine"))
		}
	}

	viper.SetEnvPrefix("MANIFEST_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig builds the run configuration: stock defaults rooted at
// the configured base directory, with any values from the config file
// or environment layered on top.
func pipelineConfig() (types.PipelineConfig, error) {
	base := viper.GetString("base_dir")
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return types.PipelineConfig{}, fmt.Errorf("resolving working directory: %w", err)
		}
		base = wd
	}

	cfg := types.Defaults(base)

	if v := viper.GetString("paths.pdf_dir"); v != "" {
		cfg.Paths.PDFDir = v
	}
	if v := viper.GetStringSlice("paths.origin_folders"); len(v) > 0 {
		cfg.Paths.OriginFolders = v
	}
	if v := viper.GetString("paths.template_file"); v != "" {
		cfg.Paths.TemplateFile = v
	}
	if v := viper.GetString("paths.schedule_prefix"); v != "" {
		cfg.Paths.SchedulePrefix = v
	}
	if v := viper.GetString("paths.schedule_fallback"); v != "" {
		cfg.Paths.ScheduleFallback = v
	}
	if v := viper.GetInt("schedule.max_visible_sheets"); v > 0 {
		cfg.Schedule.MaxVisibleSheets = v
	}
	if v := viper.GetString("output.file_prefix"); v != "" {
		cfg.Output.FilePrefix = v
	}
	if viper.IsSet("output.rollover_hour") {
		cfg.Output.RolloverHour = viper.GetInt("output.rollover_hour")
	}
	return cfg, nil
}

// useColor reports whether styled output is wanted.
func useColor() bool {
	if viper.GetBool("no_color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
