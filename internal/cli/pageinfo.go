package cli

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/kpauljoseph/pagesplit/internal/imagefile"
)

const pageInfoTool = "pageinfo"

// RunPageInfo prints the format, page count and per-page dimensions of an
// image file.
func RunPageInfo(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(pageInfoTool, flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("file", "", "path to the image file")

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if *path == "" && fs.NArg() == 1 {
		*path = fs.Arg(0)
	}
	if *path == "" {
		fmt.Fprintln(stderr, "Please provide an image file path using -file flag")
		return ExitUsage
	}

	fmt.Fprintf(stdout, "Analyzing image: %s\n", *path)

	c, err := imagefile.Open(*path)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening image: %v\n", err)
		return ExitError
	}

	fmt.Fprintf(stdout, "Format: %s\n", c.Format())
	fmt.Fprintf(stdout, "Pages: %d\n", c.FrameCount())

	for i := 0; i < c.FrameCount(); i++ {
		if err := c.Seek(i); err != nil {
			fmt.Fprintf(stderr, "Error selecting page %d: %v\n", i+1, err)
			return ExitError
		}

		cfg, err := c.FrameConfig()
		if err != nil {
			fmt.Fprintf(stderr, "Error reading page %d: %v\n", i+1, err)
			return ExitError
		}

		fmt.Fprintf(stdout, "\nPage %d:\n", i+1)
		fmt.Fprintf(stdout, "Dimensions (Width x Height): %d x %d pixels\n", cfg.Width, cfg.Height)
		fmt.Fprintf(stdout, "Color model: %s\n", colorModelName(cfg))
		if res, ok := c.Resolution(); ok {
			fmt.Fprintf(stdout, "Resolution: %s x %s per %s\n", res.X, res.Y, res.Unit)
		}
	}

	return ExitOK
}

func colorModelName(cfg image.Config) string {
	if p, ok := cfg.ColorModel.(color.Palette); ok {
		return fmt.Sprintf("paletted (%d colors)", len(p))
	}

	switch cfg.ColorModel {
	case color.GrayModel:
		return "gray"
	case color.Gray16Model:
		return "gray16"
	case color.RGBAModel:
		return "rgba"
	case color.RGBA64Model:
		return "rgba64"
	case color.NRGBAModel:
		return "nrgba"
	case color.NRGBA64Model:
		return "nrgba64"
	case color.CMYKModel:
		return "cmyk"
	case color.YCbCrModel:
		return "ycbcr"
	default:
		return "other"
	}
}
