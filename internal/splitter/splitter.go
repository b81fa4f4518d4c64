package splitter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"

	"github.com/kpauljoseph/pagesplit/internal/config"
	"github.com/kpauljoseph/pagesplit/internal/imagefile"
	"github.com/kpauljoseph/pagesplit/pkg/logger"
	"github.com/kpauljoseph/pagesplit/pkg/models"
	"github.com/kpauljoseph/pagesplit/pkg/utils"
)

var (
	ErrDecode = imagefile.ErrDecode
	ErrSeek   = imagefile.ErrSeek
	ErrEncode = errors.New("encode error")
	ErrWrite  = errors.New("write error")
	ErrVerify = errors.New("verification error")
)

type Outcome int

const (
	OutcomeNotEligible Outcome = iota
	OutcomeSplit
)

func (o Outcome) String() string {
	if o == OutcomeSplit {
		return "split"
	}
	return "not eligible"
}

type Result struct {
	Outcome   Outcome
	PageCount int
	Pages     []models.SplitPage
}

type Options struct {
	Compression string
	Predictor   bool
	Verify      bool
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Compression: cfg.Output.Compression,
		Predictor:   cfg.Output.Predictor,
		Verify:      cfg.Output.Verify,
	}
}

type Splitter struct {
	encodeOptions *tiff.Options
	verify        bool
	logger        *logger.Logger
}

func NewSplitter(opts Options, logger *logger.Logger) (*Splitter, error) {
	encodeOptions := &tiff.Options{Predictor: opts.Predictor}
	switch opts.Compression {
	case "", config.CompressionNone:
		encodeOptions.Compression = tiff.Uncompressed
	case config.CompressionDeflate:
		encodeOptions.Compression = tiff.Deflate
	default:
		return nil, fmt.Errorf("unsupported output compression %q", opts.Compression)
	}

	return &Splitter{
		encodeOptions: encodeOptions,
		verify:        opts.Verify,
		logger:        logger,
	}, nil
}

// Split writes every page of the TIFF at sourcePath into outputDir as
// {base}_{page}.tiff, replacing existing files. outputDir must exist. Files
// that decode as some other image format are reported as not eligible and
// leave outputDir untouched. The first failure aborts the run and pages
// already written stay on disk.
func (s *Splitter) Split(sourcePath, outputDir string) (Result, error) {
	s.logger.Debug("Opening source: %s", sourcePath)

	container, err := imagefile.Open(sourcePath)
	if err != nil {
		return Result{}, err
	}

	if !container.Format().MultiPage() {
		s.logger.Debug("%s decoded as %s, not splitting", sourcePath, container.Format())
		return Result{Outcome: OutcomeNotEligible}, nil
	}

	pageCount := container.FrameCount()
	s.logger.Debug("Found %d pages in %s", pageCount, sourcePath)

	result := Result{
		Outcome: OutcomeSplit,
		Pages:   make([]models.SplitPage, 0, pageCount),
	}

	for i := 0; i < pageCount; i++ {
		if err := container.Seek(i); err != nil {
			return result, err
		}

		frame, err := container.Frame()
		if err != nil {
			return result, err
		}

		data, err := s.encode(container, frame)
		if err != nil {
			return result, fmt.Errorf("%w: page %d of %s: %w", ErrEncode, i+1, sourcePath, err)
		}

		outputPath := filepath.Join(outputDir, PageFileName(sourcePath, i+1))
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return result, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		s.logger.Trace("Wrote page %d (%dx%d, %d bytes) to %s",
			i+1, frame.Bounds().Dx(), frame.Bounds().Dy(), len(data), outputPath)

		if s.verify {
			if err := verifyPage(frame, outputPath); err != nil {
				return result, fmt.Errorf("%w: %s: %w", ErrVerify, outputPath, err)
			}
		}

		result.PageCount++
		result.Pages = append(result.Pages, models.SplitPage{
			SourcePath: sourcePath,
			OutputPath: outputPath,
			Page:       i + 1,
		})
	}

	s.logger.Debug("Split %s into %d pages", sourcePath, result.PageCount)
	return result, nil
}

// encode writes frame as a single-page TIFF carrying the resolution tags of
// the active source page. Pages without resolution tags keep the encoder's
// 72 dpi.
func (s *Splitter) encode(container *imagefile.Container, frame image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, frame, s.encodeOptions); err != nil {
		return nil, err
	}

	data := buf.Bytes()
	if res, ok := container.Resolution(); ok {
		if err := imagefile.SetResolution(data, res); err != nil {
			return nil, fmt.Errorf("copying resolution: %w", err)
		}
		s.logger.Trace("Page %d resolution %s x %s per %s", container.Cursor()+1, res.X, res.Y, res.Unit)
	}
	return data, nil
}

// verifyPage re-reads the written page and compares its pixels with frame.
func verifyPage(frame image.Image, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	decoded, err := tiff.Decode(f)
	if err != nil {
		return fmt.Errorf("re-decoding output: %w", err)
	}

	want, err := utils.GenerateImageHash(frame)
	if err != nil {
		return err
	}
	got, err := utils.GenerateImageHash(decoded)
	if err != nil {
		return err
	}
	if want != got {
		return fmt.Errorf("pixel hash mismatch: source %s, output %s", want[:8], got[:8])
	}
	return nil
}
