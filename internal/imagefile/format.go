package imagefile

import (
	// Decoders consulted when identifying a file.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format identifies the container family a file was decoded as.
type Format int

const (
	FormatUnknown Format = iota
	FormatTIFF
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatWEBP
)

var formatNames = map[Format]string{
	FormatUnknown: "unknown",
	FormatTIFF:    "tiff",
	FormatPNG:     "png",
	FormatJPEG:    "jpeg",
	FormatGIF:     "gif",
	FormatBMP:     "bmp",
	FormatWEBP:    "webp",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return formatNames[FormatUnknown]
}

// MultiPage reports whether the family can hold several independently
// addressable pages.
func (f Format) MultiPage() bool {
	return f == FormatTIFF
}

// parseFormat maps the name registered with the image package to a Format.
func parseFormat(name string) Format {
	for f, n := range formatNames {
		if n == name && f != FormatUnknown {
			return f
		}
	}
	return FormatUnknown
}
