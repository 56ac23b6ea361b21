// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/manifest-engine/pkg/types"
)

// TextExtractor produces the linearized text of a PDF. The production
// implementation is PDFText; tests substitute fakes.
type TextExtractor interface {
	// Text reads the PDF at path and returns its pages as plain text,
	// one physical text row per line.
	Text(path string) (string, error)
}

// Field patterns as printed on MDF manifests. Values are always the
// first match in document order.
var (
	dtRe       = regexp.MustCompile(`(?i)DT:\s*["']?(\d+)["']?`)
	cteRe      = regexp.MustCompile(`(?i)CTE:\s*["']?(\d+)["']?`)
	mdfeHdrRe  = regexp.MustCompile(`(?is)Modelo\s+Série\s+Número.*?\n.*?(\d{6})`)
	mdfeNumRe  = regexp.MustCompile(`(?i)Número[:\s]+(\d{6})`)
	mdfeTimeRe = regexp.MustCompile(`\d{2}/\d{2}/\d{4}\s+(\d{2}:\d{2}:\d{2})`)
	nfRe       = regexp.MustCompile(`(?i)NF:\s*(\d+(?:/\d+)*)`)
)

// ExtractFields pulls the labeled values out of linearized manifest
// text. It is total: patterns that do not match leave their field blank.
func ExtractFields(text string) types.ManifestFields {
	var f types.ManifestFields
	f.DT = firstGroup(dtRe, text)
	f.CTE = firstGroup(cteRe, text)
	f.MDFe = firstGroup(mdfeHdrRe, text)
	if f.MDFe == "" {
		f.MDFe = firstGroup(mdfeNumRe, text)
	}
	f.MDFeTime = firstGroup(mdfeTimeRe, text)
	f.Trailer, f.Tractor = extractPlates(text)
	f.Invoices = firstGroup(nfRe, text)
	return f
}

// extractPlates finds the vehicle table: the line carrying both "Placa"
// and "RNTRC" heads it, the next line starts with the trailer plate and
// the line after with the tractor plate.
func extractPlates(text string) (trailer, tractor string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, "Placa") || !strings.Contains(line, "RNTRC") {
			continue
		}
		if i+1 < len(lines) {
			trailer = firstToken(lines[i+1])
		}
		if i+2 < len(lines) {
			tractor = firstToken(lines[i+2])
		}
		return trailer, tractor
	}
	return "", ""
}

func firstGroup(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func firstToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// BatchResult holds the outcome of an extraction run.
type BatchResult struct {
	Extracted int
	Empty     int
	Failed    int
}

// Total returns the number of manifests processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Empty + r.Failed
}

// ExtractBatch runs the extractor over every manifest, filling each
// Fields struct in place. A failed read leaves the fields blank and is
// reported to w; it never aborts the batch.
func ExtractBatch(x TextExtractor, manifests []types.Manifest, w io.Writer) BatchResult {
	var result BatchResult
	for i := range manifests {
		m := &manifests[i]
		text, err := x.Text(m.Path)
		if err != nil {
			fmt.Fprintf(w, "  warning: reading %s: %v\n", m.Name, err)
			result.Failed++
			continue
		}
		m.Fields = ExtractFields(text)
		if m.Fields == (types.ManifestFields{}) {
			result.Empty++
			continue
		}
		result.Extracted++
	}
	fmt.Fprintf(w, "extraction: %d with fields, %d empty, %d failed (total: %d)\n",
		result.Extracted, result.Empty, result.Failed, result.Total())
	return result
}
