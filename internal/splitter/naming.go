package splitter

import (
	"fmt"
	"path/filepath"
	"strings"
)

const outputExt = ".tiff"

// BaseName is the file name of path up to its first dot, so
// "scan.page.tiff" becomes "scan" and ".hidden.tiff" becomes "".
func BaseName(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// PageFileName is the output name for the 1-based page of source.
func PageFileName(source string, page int) string {
	return fmt.Sprintf("%s_%d%s", BaseName(source), page, outputExt)
}
