package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kpauljoseph/pagesplit/pkg/logger"
	"github.com/kpauljoseph/pagesplit/pkg/models"
)

var DefaultExtensions = []string{".tif", ".tiff", ".pdf"}

type DirectoryScanner struct {
	extensions map[string]bool
	logger     *logger.Logger
}

// New matches file extensions case-insensitively. With no extensions the
// defaults are used.
func New(logger *logger.Logger, extensions ...string) *DirectoryScanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = true
	}

	return &DirectoryScanner{
		extensions: set,
		logger:     logger,
	}
}

func KindOf(path string) models.DocumentKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return models.KindPDF
	case ".tif", ".tiff":
		return models.KindTIFF
	default:
		return models.KindUnknown
	}
}

func (s *DirectoryScanner) FindDocuments(ctx context.Context, dir string) ([]models.DocumentInfo, error) {
	var docs []models.DocumentInfo

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	err = filepath.Walk(absDir, func(path string, info os.FileInfo, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			s.logger.Trace("Scanning directory: %s", path)
			return nil
		}

		if !s.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		relPath, err := filepath.Rel(absDir, path)
		if err != nil {
			relPath = filepath.Base(path)
		}

		docs = append(docs, models.DocumentInfo{
			AbsolutePath: path,
			RelativePath: relPath,
			Kind:         KindOf(path),
		})
		s.logger.Debug("Found document (%d): %s", len(docs), relPath)

		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in %s or its subdirectories", dir)
	}

	return docs, nil
}
