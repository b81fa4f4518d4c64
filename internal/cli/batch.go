package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/kpauljoseph/pagesplit/internal/batch"
	"github.com/kpauljoseph/pagesplit/internal/pdf"
	"github.com/kpauljoseph/pagesplit/internal/scanner"
	"github.com/kpauljoseph/pagesplit/internal/splitter"
	"github.com/kpauljoseph/pagesplit/pkg/version"
)

const batchTool = "splitbatch"

// RunBatch implements splitbatch: split every TIFF and PDF under a directory
// tree into a mirrored output tree. It exits non-zero when the run could not
// complete or any document failed.
func RunBatch(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(batchTool, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to an optional YAML config file")
	inputDir := fs.String("input", "", "directory to scan for documents (overrides config)")
	outputDir := fs.String("output", "", "directory to write split pages to (overrides config)")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	debug := fs.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	if *showVersion {
		fmt.Fprint(stdout, version.GetDetailedVersionInfo(batchTool))
		return ExitOK
	}

	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "%s: unexpected arguments: %v\n", batchTool, fs.Args())
		fs.Usage()
		return ExitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: error loading config: %v\n", batchTool, err)
		return ExitError
	}
	if *inputDir != "" {
		cfg.Batch.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.Batch.OutputDir = *outputDir
	}

	log := newLogger(stderr, batchTool, *verbose || cfg.Logging.Verbose, *debug || cfg.Logging.Debug)

	tiffSplitter, err := splitter.NewSplitter(splitter.OptionsFromConfig(cfg), log)
	if err != nil {
		log.Error("Error initializing TIFF splitter: %v", err)
		return ExitError
	}
	pdfSplitter, err := pdf.NewSplitter(cfg.PDF.Validation, log)
	if err != nil {
		log.Error("Error initializing PDF splitter: %v", err)
		return ExitError
	}

	runner := batch.NewRunner(scanner.New(log, cfg.Batch.Extensions...), tiffSplitter, pdfSplitter, log)

	report, err := runner.Run(ctx, cfg.Batch.InputDir, cfg.Batch.OutputDir)
	if err != nil {
		log.Error("Batch split failed: %v", err)
		return ExitError
	}

	report.Print(log)
	fmt.Fprintf(stdout, "Split %d documents into %d pages.\n", report.Split, report.TotalPages())

	if report.Failed() > 0 {
		return ExitError
	}
	return ExitOK
}
