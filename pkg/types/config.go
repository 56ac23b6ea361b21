// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PathsConfig holds every filesystem location the pipeline touches. It is
// built once in the command layer and passed explicitly into loaders and
// writers; nothing derives paths from the process working directory on
// its own.
type PathsConfig struct {
	// BaseDir is the project root: template CSV, schedule workbook, and
	// generated outputs all live here.
	BaseDir string `json:"base_dir" yaml:"base_dir"`

	// PDFDir is the folder under BaseDir that contains the origin
	// subfolders with manifest PDFs (default "MDFs geradas").
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir"`

	// OriginFolders lists the subfolders of PDFDir scanned for PDFs. The
	// folder name doubles as the manifest's origin tag.
	OriginFolders []string `json:"origin_folders" yaml:"origin_folders"`

	// TemplateFile is the CSV whose header defines the output columns
	// (default "BASE.csv").
	TemplateFile string `json:"template_file" yaml:"template_file"`

	// SchedulePrefix selects the schedule workbook: the first .xlsx in
	// BaseDir whose name starts with this prefix, case-insensitive.
	SchedulePrefix string `json:"schedule_prefix" yaml:"schedule_prefix"`

	// ScheduleFallback is the workbook filename tried when no file
	// matches SchedulePrefix.
	ScheduleFallback string `json:"schedule_fallback" yaml:"schedule_fallback"`

	// CSVHistoryDir and ExcelHistoryDir are the subfolders of BaseDir
	// that archive prior runs' outputs.
	CSVHistoryDir   string `json:"csv_history_dir" yaml:"csv_history_dir"`
	ExcelHistoryDir string `json:"excel_history_dir" yaml:"excel_history_dir"`

	// LedgerDir holds the run ledger database and the run summary
	// sidecar (default ".ledger").
	LedgerDir string `json:"ledger_dir" yaml:"ledger_dir"`
}

// ScheduleConfig holds settings for reading the schedule workbook.
type ScheduleConfig struct {
	// MaxVisibleSheets caps how many visible sheets are read, in
	// workbook order. Sheet 1 is the current day, sheet 2 the previous
	// day (default 2).
	MaxVisibleSheets int `json:"max_visible_sheets" yaml:"max_visible_sheets"`

	// EmptyRowCutoff stops row reading after this many consecutive
	// empty rows (default 50).
	EmptyRowCutoff int `json:"empty_row_cutoff" yaml:"empty_row_cutoff"`
}

// OutputConfig holds settings for the generated spreadsheet files.
type OutputConfig struct {
	// FilePrefix is the leading part of output filenames
	// (default "PLANILHA MDFS").
	FilePrefix string `json:"file_prefix" yaml:"file_prefix"`

	// RolloverHour is the local hour at or after which the output is
	// dated for the next day (default 22).
	RolloverHour int `json:"rollover_hour" yaml:"rollover_hour"`

	// LockedSuffix is appended before the extension when the primary
	// output file cannot be written (default " (novo)").
	LockedSuffix string `json:"locked_suffix" yaml:"locked_suffix"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Paths    PathsConfig    `json:"paths" yaml:"paths"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule"`
	Output   OutputConfig   `json:"output" yaml:"output"`
}

// Defaults returns a PipelineConfig with the stock folder layout rooted
// at baseDir.
func Defaults(baseDir string) PipelineConfig {
	return PipelineConfig{
		Paths: PathsConfig{
			BaseDir:          baseDir,
			PDFDir:           "MDFs geradas",
			OriginFolders:    []string{"SOROCABA", "ITU", "OUTRAS ORI-DES"},
			TemplateFile:     "BASE.csv",
			SchedulePrefix:   "ESCALA",
			ScheduleFallback: "ESCALA MOTORISTAS 2025.xlsx",
			CSVHistoryDir:    "CSV",
			ExcelHistoryDir:  "EXCEL",
			LedgerDir:        ".ledger",
		},
		Schedule: ScheduleConfig{
			MaxVisibleSheets: 2,
			EmptyRowCutoff:   50,
		},
		Output: OutputConfig{
			FilePrefix:   "PLANILHA MDFS",
			RolloverHour: 22,
			LockedSuffix: " (novo)",
		},
	}
}
