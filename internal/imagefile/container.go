package imagefile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"
)

var (
	ErrDecode = errors.New("decode error")
	ErrSeek   = errors.New("seek error")
)

// Container is a decoded image file with an active-frame cursor. Only the
// active frame is held in memory; moving the cursor drops it.
type Container struct {
	name   string
	data   []byte
	format Format

	order binary.ByteOrder
	ifds  []uint32

	cursor int
	frame  image.Image
}

func Open(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return OpenBytes(filepath.Base(path), data)
}

// OpenBytes identifies data with the registered image decoders. name is only
// used in error messages.
func OpenBytes(name string, data []byte) (*Container, error) {
	_, formatName, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s: unrecognized image format", ErrDecode, name)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
	}

	c := &Container{
		name:   name,
		data:   data,
		format: parseFormat(formatName),
	}

	if c.format == FormatTIFF {
		c.order, c.ifds, err = readIFDChain(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecode, name, err)
		}
	}

	return c, nil
}

func (c *Container) Name() string {
	return c.name
}

func (c *Container) Format() Format {
	return c.format
}

// FrameCount is the number of pages in a TIFF file and 1 for every format
// that does not expose pages.
func (c *Container) FrameCount() int {
	if c.format == FormatTIFF {
		return len(c.ifds)
	}
	return 1
}

func (c *Container) Cursor() int {
	return c.cursor
}

func (c *Container) Seek(index int) error {
	if index < 0 || index >= c.FrameCount() {
		return fmt.Errorf("%w: frame %d out of range [0, %d)", ErrSeek, index, c.FrameCount())
	}
	if index != c.cursor {
		c.cursor = index
		c.frame = nil
	}
	return nil
}

// Frame decodes the active frame, reusing the previous result while the
// cursor has not moved.
func (c *Container) Frame() (image.Image, error) {
	if c.frame != nil {
		return c.frame, nil
	}

	var (
		img image.Image
		err error
	)
	if c.format == FormatTIFF {
		img, err = tiff.Decode(c.activeView())
	} else {
		img, _, err = image.Decode(bytes.NewReader(c.data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s frame %d: %w", ErrDecode, c.name, c.cursor, err)
	}

	c.frame = img
	return img, nil
}

// FrameConfig reads only the header of the active frame.
func (c *Container) FrameConfig() (image.Config, error) {
	var (
		cfg image.Config
		err error
	)
	if c.format == FormatTIFF {
		cfg, err = tiff.DecodeConfig(c.activeView())
	} else {
		cfg, _, err = image.DecodeConfig(bytes.NewReader(c.data))
	}
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %s frame %d: %w", ErrDecode, c.name, c.cursor, err)
	}
	return cfg, nil
}

func (c *Container) activeView() *frameView {
	return newFrameView(c.data, c.order, c.ifds[c.cursor])
}
