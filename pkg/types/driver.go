// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Driver is one schedule entry: a driver and the assignments printed on
// the schedule workbook. Loaded once per run and read-only afterward.
type Driver struct {
	// Name is the short name from the MOTORISTA column, parenthetical
	// suffixes stripped. It is the key manifests are matched against.
	Name string `json:"name" yaml:"name"`

	// FullName is the NOME COMPLETO column (falls back to NOME).
	FullName string `json:"full_name" yaml:"full_name"`

	// ScheduleHour is the assigned hour from the ESCALA column.
	ScheduleHour string `json:"schedule_hour" yaml:"schedule_hour"`

	// Fleet is the assigned vehicle tag from the FROTA column.
	Fleet string `json:"fleet" yaml:"fleet"`

	// GPID and CPF are the driver's corporate and national identifiers.
	GPID string `json:"gpid" yaml:"gpid"`
	CPF  string `json:"cpf" yaml:"cpf"`

	// SheetIndex is the 1-based visible sheet the entry came from:
	// 1 is the current day, 2 the previous day.
	SheetIndex int `json:"sheet_index" yaml:"sheet_index"`
}
