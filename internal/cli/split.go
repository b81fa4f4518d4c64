package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/kpauljoseph/pagesplit/internal/splitter"
	"github.com/kpauljoseph/pagesplit/pkg/version"
)

const (
	splitTool = "tiffsplit"

	msgSplit       = "Split %d pages successfully."
	msgNotEligible = "Not a multi-page TIFF."
)

// RunSplit implements tiffsplit: split one TIFF into single-page files and
// print a single result line on stdout.
func RunSplit(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(splitTool, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to an optional YAML config file")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	debug := fs.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <source.tiff> <output-dir>\n", splitTool)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	if *showVersion {
		fmt.Fprint(stdout, version.GetDetailedVersionInfo(splitTool))
		return ExitOK
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return ExitUsage
	}
	sourcePath, outputDir := fs.Arg(0), fs.Arg(1)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: error loading config: %v\n", splitTool, err)
		return ExitError
	}

	log := newLogger(stderr, splitTool, *verbose || cfg.Logging.Verbose, *debug || cfg.Logging.Debug)
	log.Debug("Source: %s, output directory: %s", sourcePath, outputDir)

	s, err := splitter.NewSplitter(splitter.OptionsFromConfig(cfg), log)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", splitTool, err)
		return ExitError
	}

	result, err := s.Split(sourcePath, outputDir)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", splitTool, err)
		return ExitError
	}

	switch result.Outcome {
	case splitter.OutcomeSplit:
		fmt.Fprintf(stdout, msgSplit+"\n", result.PageCount)
	default:
		fmt.Fprintln(stdout, msgNotEligible)
	}
	return ExitOK
}
