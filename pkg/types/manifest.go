// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ManifestFields holds the values extracted from a manifest PDF's text.
// Every field is optional: a pattern that does not match leaves the
// field blank, and blank fields render as empty output cells.
type ManifestFields struct {
	// DT is the transport document number from the "DT:" label.
	DT string `json:"dt" yaml:"dt"`

	// CTE is the freight bill number from the "CTE:" label.
	CTE string `json:"cte" yaml:"cte"`

	// MDFe is the six-digit manifest number.
	MDFe string `json:"mdfe" yaml:"mdfe"`

	// MDFeTime is the issue time next to the first full timestamp.
	MDFeTime string `json:"mdfe_time" yaml:"mdfe_time"`

	// Trailer and Tractor are the plates below the "Placa ... RNTRC"
	// header line, in that order.
	Trailer string `json:"trailer" yaml:"trailer"`
	Tractor string `json:"tractor" yaml:"tractor"`

	// Invoices is the slash-separated invoice list from the "NF:" label.
	Invoices string `json:"invoices" yaml:"invoices"`
}

// Manifest is one scanned PDF: where it was found and what was read out
// of it. Discarded after its output row is assembled.
type Manifest struct {
	// Name is the file base name without the .pdf extension.
	Name string `json:"name" yaml:"name"`

	// Key is Name uppercased with parenthetical suffixes stripped; it
	// identifies the manifest throughout the pipeline.
	Key string `json:"key" yaml:"key"`

	// Origin is the subfolder the PDF was found in. It doubles as the
	// business-rule key for row assembly.
	Origin string `json:"origin" yaml:"origin"`

	// Path is the absolute path to the PDF.
	Path string `json:"path" yaml:"path"`

	// PageCount is the page count probed before extraction; zero when
	// the file could not be read as a PDF.
	PageCount int `json:"page_count" yaml:"page_count"`

	// Fields holds the extracted values.
	Fields ManifestFields `json:"fields" yaml:"fields"`
}
