// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble turns matched manifests into output rows aligned to
// the template header and applies the per-origin business rules.
package assemble

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/manifest-engine/internal/match"
	"github.com/pdiddy/manifest-engine/internal/schedule"
	"github.com/pdiddy/manifest-engine/pkg/types"
)

// Template column names, as printed in the template CSV header.
const (
	ColDate          = "DATA"
	ColWindow        = "HORARIO (P2)"
	ColDT            = "DT"
	ColStatus        = "STATUS (P2)"
	ColDriver        = "MOTORISTA"
	ColFullName      = "NOME COMPLETO"
	ColGPID          = "GPID"
	ColCPF           = "CPF"
	ColScheduleHour  = "HORA ESCALA (P2)"
	ColArrivalHour   = "HORA APRESENTACAO (P2)"
	ColDelayReason   = "MOTIVO ATRASO (P2)"
	ColCTE           = "CTE (P2)"
	ColMDFe          = "N MDFE (P2)"
	ColMDFeTime      = "HORA MDFE (P2)"
	ColIssuedBy      = "EMITO POR (P2)"
	ColOrigin        = "ORIGEM (ESCALA)"
	ColDestination   = "DESTINO (ESCALA)"
	ColFleet         = "FROTA (P2)"
	ColTractor       = "CAVALO (P2)"
	ColTrailer       = "CARRETA (P2)"
	ColInvoices      = "NF (P2)"
	ColResponsible   = "RESPONSAVEL P2"
	ColDepartureTime = "DATA/ HORA SAIDA"
)

// Business-rule constants.
const (
	statusBilled = "FATURADO"

	// carrierCode is forced into the destination column for manifests
	// from the ITU and SOROCABA depots.
	carrierCode = "DHL"

	originSorocaba = "SOROCABA"
	originItu      = "ITU"

	// sorocabaDelayReason: the SOROCABA depot vetoes anticipated MDF
	// issuing, so its rows always state the reason and drop the hour.
	sorocabaDelayReason = "VETADO ANTECIPACAO DE MDF"
)

// Input carries everything row assembly needs for one run.
type Input struct {
	Manifests []types.Manifest
	Roster    *schedule.Roster
	Columns   []string
	DateLabel string
	Operator  string
}

// Entry is one matched manifest, kept for the run summary table.
type Entry struct {
	Driver     string
	SheetIndex int
	Origin     string
	Fleet      string
	DT         string
	Trailer    string
}

// Result is the assembled batch.
type Result struct {
	Rows      []Row
	Matched   int
	Unmatched int
	Entries   []Entry
}

// Build assembles one row per manifest. Matched rows carry the driver's
// schedule data; unmatched rows keep the PDF-derived fields and the
// name as printed on the file, with every schedule-derived column
// blank. Unmatched manifests are reported to w.
func Build(in Input, w io.Writer) Result {
	var result Result

	for _, m := range in.Manifests {
		row := NewRow(in.Columns)

		row.Set(ColDate, in.DateLabel)
		row.Set(ColStatus, statusBilled)
		row.Set(ColIssuedBy, in.Operator)
		row.Set(ColResponsible, in.Operator)

		row.Set(ColDT, m.Fields.DT)
		row.Set(ColCTE, m.Fields.CTE)
		row.Set(ColMDFe, m.Fields.MDFe)
		row.Set(ColMDFeTime, m.Fields.MDFeTime)
		row.Set(ColTractor, m.Fields.Tractor)
		row.Set(ColTrailer, m.Fields.Trailer)
		row.Set(ColInvoices, m.Fields.Invoices)

		driver := match.Driver(m, in.Roster)
		if driver != nil {
			row.Set(ColDriver, driver.Name)
			row.Set(ColFullName, driver.FullName)
			row.Set(ColGPID, driver.GPID)
			row.Set(ColCPF, driver.CPF)
			row.Set(ColScheduleHour, driver.ScheduleHour)
			row.Set(ColFleet, driver.Fleet)
		} else {
			// Keep the name as printed on the file so the operator can
			// reconcile the row by hand.
			row.Set(ColDriver, m.Key)
			fmt.Fprintf(w, "  X %s not found in schedule\n", m.Key)
		}

		applyOriginRules(row, m.Origin)

		result.Rows = append(result.Rows, row)
		if driver == nil {
			result.Unmatched++
			continue
		}
		result.Matched++
		result.Entries = append(result.Entries, Entry{
			Driver:     driver.Name,
			SheetIndex: driver.SheetIndex,
			Origin:     m.Origin,
			Fleet:      driver.Fleet,
			DT:         m.Fields.DT,
			Trailer:    m.Fields.Trailer,
		})
	}

	fmt.Fprintf(w, "matching: %d matched, %d not found\n", result.Matched, result.Unmatched)
	return result
}

// applyOriginRules encodes the depot-specific overrides. ITU and
// SOROCABA freight always goes to the carrier, and SOROCABA rows state
// the veto reason instead of a schedule hour.
func applyOriginRules(row Row, origin string) {
	if origin == originItu || origin == originSorocaba {
		row.Set(ColOrigin, origin)
		row.Set(ColDestination, carrierCode)
	}
	if origin == originSorocaba {
		row.Set(ColDelayReason, sorocabaDelayReason)
		row.Set(ColScheduleHour, "")
	}
}

// DateLabel returns the DD/MM/YYYY label for a run started at now. At
// or after rolloverHour the batch belongs to the next day: the night
// shift issues manifests for tomorrow's schedule.
func DateLabel(now time.Time, rolloverHour int) string {
	if rolloverHour > 0 && now.Hour() >= rolloverHour {
		now = now.AddDate(0, 0, 1)
	}
	return now.Format("02/01/2006")
}

// FileLabel converts a date label into its filename-safe form.
func FileLabel(dateLabel string) string {
	return strings.ReplaceAll(dateLabel, "/", "-")
}
