package fsutil

import (
	"errors"
	"path/filepath"
	"strings"
)

// OutputExtension is appended to converted files written under an output root.
const OutputExtension = ".json"

// OutputPath maps a source file to its request body location under outDir,
// mirroring the source's position relative to root:
//
//	OutputPath("out", "docs", "docs/guide/intro.md") == "out/guide/intro.json"
//
// Sources outside root are placed directly under outDir by base name.
func OutputPath(outDir, root, source string) (string, error) {
	if outDir == "" {
		return "", errors.New("output directory is empty")
	}

	rel, err := filepath.Rel(root, source)
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		rel = filepath.Base(source)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + OutputExtension
	return filepath.Join(outDir, rel), nil
}
