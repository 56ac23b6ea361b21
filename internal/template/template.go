// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package template reads the header row of the template CSV. The header
// defines the output columns: every assembled row carries exactly these
// columns, in this order.
package template

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// utf8BOM is stripped from the first column when the template was saved
// by a spreadsheet tool that prepends one.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Header reads the column names from the first line of the template CSV
// at path. The file may be UTF-8, Windows-1252, or ISO 8859-1; the
// decoded encoding name is returned alongside the columns. A missing or
// unreadable template is an error: the pipeline cannot shape its output
// without it.
func Header(path string) ([]string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading template %s: %w", path, err)
	}

	line := firstLine(data)
	if len(line) == 0 {
		return nil, "", fmt.Errorf("template %s: empty header line", path)
	}

	decoded, encName := decodeHeader(line)

	r := csv.NewReader(strings.NewReader(decoded))
	cols, err := r.Read()
	if err != nil {
		return nil, "", fmt.Errorf("parsing template header in %s: %w", path, err)
	}
	for i, c := range cols {
		cols[i] = strings.TrimSpace(c)
	}
	return cols, encName, nil
}

// decodeHeader picks the first encoding that cleanly decodes the line.
// UTF-8 is verified; the single-byte charmaps accept any input, so they
// act as ordered fallbacks.
func decodeHeader(line []byte) (string, string) {
	line = bytes.TrimPrefix(line, utf8BOM)
	if utf8.Valid(line) {
		return string(line), "utf-8"
	}
	if s, err := charmap.Windows1252.NewDecoder().Bytes(line); err == nil {
		return string(s), "windows-1252"
	}
	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(line)
	return string(s), "iso-8859-1"
}

func firstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	return bytes.TrimSuffix(data, []byte{'\r'})
}
