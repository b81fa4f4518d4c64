package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kpauljoseph/pagesplit/internal/pdf"
	"github.com/kpauljoseph/pagesplit/internal/scanner"
	"github.com/kpauljoseph/pagesplit/internal/splitter"
	"github.com/kpauljoseph/pagesplit/pkg/logger"
	"github.com/kpauljoseph/pagesplit/pkg/models"
)

type TIFFSplitter interface {
	Split(sourcePath, outputDir string) (splitter.Result, error)
}

// Runner splits every document under an input tree into a mirrored output
// tree, one document at a time.
type Runner struct {
	scanner *scanner.DirectoryScanner
	tiff    TIFFSplitter
	pdf     pdf.PageSplitter
	logger  *logger.Logger
}

func NewRunner(s *scanner.DirectoryScanner, tiff TIFFSplitter, pdfSplitter pdf.PageSplitter, logger *logger.Logger) *Runner {
	return &Runner{
		scanner: s,
		tiff:    tiff,
		pdf:     pdfSplitter,
		logger:  logger,
	}
}

// Run returns an error only when scanning fails, the output root cannot be
// created, or ctx is cancelled. Per-document failures are recorded in the
// report and the run moves on.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (*Report, error) {
	report := &Report{StartTime: time.Now()}
	defer func() { report.EndTime = time.Now() }()

	r.logger.Info("Scanning directory: %s", inputDir)
	docs, err := r.scanner.FindDocuments(ctx, inputDir)
	if err != nil {
		return report, err
	}
	report.Documents = len(docs)
	r.logger.Info("Found %d documents to split", len(docs))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, doc := range docs {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		r.splitDocument(doc, outputDir, report)
	}

	return report, nil
}

func (r *Runner) splitDocument(doc models.DocumentInfo, outputRoot string, report *Report) {
	targetDir := filepath.Join(outputRoot, doc.RelativeDir())
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		r.fail(report, doc, fmt.Errorf("failed to create %s: %w", targetDir, err))
		return
	}

	r.logger.Debug("Splitting %s %s", doc.Kind, doc.RelativePath)

	if doc.Kind == models.KindPDF {
		pages, err := r.pdf.Split(doc.AbsolutePath, targetDir)
		r.record(report, doc, pages)
		if err != nil {
			r.fail(report, doc, err)
			return
		}
		report.Split++
		r.logger.Info("Split %s into %d pages", doc.RelativePath, len(pages))
		return
	}

	result, err := r.tiff.Split(doc.AbsolutePath, targetDir)
	r.record(report, doc, result.Pages)
	if err != nil {
		r.fail(report, doc, err)
		return
	}
	if result.Outcome == splitter.OutcomeNotEligible {
		report.Skipped++
		r.logger.Warn("Skipping %s: not a multi-page TIFF", doc.RelativePath)
		return
	}
	report.Split++
	r.logger.Info("Split %s into %d pages", doc.RelativePath, result.PageCount)
}

// record adds pages to the report and warns about output paths that an
// earlier document of this run already wrote.
func (r *Runner) record(report *Report, doc models.DocumentInfo, pages []models.SplitPage) {
	for _, page := range pages {
		if prev, ok := report.addPage(page); ok {
			r.logger.Warn("%s overwrote %s written from %s", doc.RelativePath, page.OutputPath, prev)
		}
	}
}

func (r *Runner) fail(report *Report, doc models.DocumentInfo, err error) {
	r.logger.Error("Error splitting %s: %v", doc.RelativePath, err)
	report.Failures = append(report.Failures, Failure{RelativePath: doc.RelativePath, Err: err})
}
