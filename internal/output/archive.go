// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/manifest-engine/pkg/types"
)

// ArchivePrior clears the previous run's outputs from the project root
// before a new run writes. Each file matching the output pattern is
// moved into its history folder, replacing any same-named archive;
// files that cannot be moved are deleted so the root never shows two
// runs at once. Failures are reported, not fatal.
func ArchivePrior(paths types.PathsConfig, cfg types.OutputConfig, w io.Writer) {
	moves := []struct {
		pattern string
		histDir string
	}{
		{cfg.FilePrefix + " *.csv", paths.CSVHistoryDir},
		{cfg.FilePrefix + " *.xlsx", paths.ExcelHistoryDir},
	}

	for _, mv := range moves {
		matches, err := filepath.Glob(filepath.Join(paths.BaseDir, mv.pattern))
		if err != nil {
			continue
		}
		for _, src := range matches {
			name := filepath.Base(src)
			destDir := filepath.Join(paths.BaseDir, mv.histDir)
			if err := os.MkdirAll(destDir, 0o755); err != nil {
				fmt.Fprintf(w, "  warning: creating %s: %v\n", mv.histDir, err)
				continue
			}
			dest := filepath.Join(destDir, name)

			// Replace an identically named archive from a rerun of the
			// same day.
			os.Remove(dest)

			if err := os.Rename(src, dest); err == nil {
				fmt.Fprintf(w, "  archived: %s -> %s/\n", name, mv.histDir)
				continue
			}
			if err := os.Remove(src); err != nil {
				fmt.Fprintf(w, "  warning: could not archive or remove %s: %v\n", name, err)
				continue
			}
			fmt.Fprintf(w, "  removed stale: %s\n", name)
		}
	}
}
