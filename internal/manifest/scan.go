// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest scans the origin folders for manifest PDFs and
// extracts the labeled fields from their text. Extraction is tolerant
// by contract: a missing field stays blank and an unreadable file only
// degrades its own row, never the batch.
package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/manifest-engine/internal/namenorm"
	"github.com/pdiddy/manifest-engine/pkg/types"
)

// Scan walks each configured origin subfolder and returns one Manifest
// per PDF found, in folder order. The page count probe doubles as a
// validity check: files pdfcpu cannot read are reported and carry a
// zero page count, but still flow through the pipeline.
func Scan(paths types.PathsConfig, w io.Writer) ([]types.Manifest, error) {
	base := filepath.Join(paths.BaseDir, paths.PDFDir)

	var manifests []types.Manifest
	for _, origin := range paths.OriginFolders {
		dir := filepath.Join(base, origin)
		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Fprintf(w, "  [%s] folder not found\n", origin)
			continue
		}

		count := 0
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
				continue
			}
			count++

			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			path := filepath.Join(dir, entry.Name())

			pages, err := api.PageCountFile(path)
			if err != nil {
				fmt.Fprintf(w, "  warning: %s is not a readable PDF: %v\n", entry.Name(), err)
				pages = 0
			}

			manifests = append(manifests, types.Manifest{
				Name:      name,
				Key:       strings.ToUpper(namenorm.StripParens(name)),
				Origin:    origin,
				Path:      path,
				PageCount: pages,
			})
		}
		fmt.Fprintf(w, "  [%s] %d file(s)\n", origin, count)
	}

	fmt.Fprintf(w, "total: %d PDFs\n", len(manifests))
	return manifests, nil
}
