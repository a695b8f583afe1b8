package session

import (
	"path/filepath"
	"strings"
)

// OutputPath derives the report file name from the input file name:
// the first "input" substring becomes "output"; otherwise the extension is
// swapped for ".out".
func OutputPath(inputPath string) string {
	if strings.Contains(inputPath, "input") {
		return strings.Replace(inputPath, "input", "output", 1)
	}
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".out"
}
