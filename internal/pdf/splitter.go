package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/kpauljoseph/pagesplit/internal/config"
	"github.com/kpauljoseph/pagesplit/pkg/logger"
	"github.com/kpauljoseph/pagesplit/pkg/models"
)

type Splitter struct {
	conf   *model.Configuration
	logger *logger.Logger
}

func NewSplitter(validation string, logger *logger.Logger) (*Splitter, error) {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()

	switch validation {
	case "", config.ValidationRelaxed:
		conf.ValidationMode = model.ValidationRelaxed
	case config.ValidationStrict:
		conf.ValidationMode = model.ValidationStrict
	default:
		return nil, fmt.Errorf("unsupported pdf validation mode %q", validation)
	}

	return &Splitter{
		conf:   conf,
		logger: logger,
	}, nil
}

// PageFileName strips a trailing .pdf (any case) and appends the 1-based page.
func PageFileName(source string, page int) string {
	name := filepath.Base(source)
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		name = name[:len(name)-len(".pdf")]
	}
	return fmt.Sprintf("%s_%d.pdf", name, page)
}

// Split writes every page of the PDF at sourcePath into outputDir as a
// standalone single-page document.
func (s *Splitter) Split(sourcePath, outputDir string) ([]models.SplitPage, error) {
	s.logger.Debug("Splitting PDF: %s", sourcePath)

	f, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, s.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to validate PDF: %w", err)
	}
	if err := api.OptimizeContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to optimize PDF: %w", err)
	}

	pageCount := ctx.PageCount
	s.logger.Debug("Found %d pages in %s", pageCount, sourcePath)

	pages := make([]models.SplitPage, 0, pageCount)
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		r, err := api.ExtractPage(ctx, pageNum)
		if err != nil {
			return pages, fmt.Errorf("failed to extract page %d: %w", pageNum, err)
		}

		outputPath := filepath.Join(outputDir, PageFileName(sourcePath, pageNum))
		if err := writePage(outputPath, r); err != nil {
			return pages, fmt.Errorf("failed to save page %d: %w", pageNum, err)
		}
		s.logger.Trace("Saved: %s", outputPath)

		pages = append(pages, models.SplitPage{
			SourcePath: sourcePath,
			OutputPath: outputPath,
			Page:       pageNum,
		})
	}

	return pages, nil
}

func writePage(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
