package models

import "path/filepath"

type DocumentKind int

const (
	KindUnknown DocumentKind = iota
	KindTIFF
	KindPDF
)

func (k DocumentKind) String() string {
	switch k {
	case KindTIFF:
		return "tiff"
	case KindPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// SplitPage records one page written by a splitter. Page is 1-based.
type SplitPage struct {
	SourcePath string `json:"source_path"`
	OutputPath string `json:"output_path"`
	Page       int    `json:"page"`
}

func (p SplitPage) OutputName() string {
	return filepath.Base(p.OutputPath)
}

type DocumentInfo struct {
	AbsolutePath string
	RelativePath string
	Kind         DocumentKind
}

// RelativeDir is the directory of the document relative to the scan root,
// empty for documents at the root.
func (d DocumentInfo) RelativeDir() string {
	dir := filepath.Dir(d.RelativePath)
	if dir == "." {
		return ""
	}
	return dir
}
