// Package imagefiletest writes small uncompressed multi-page TIFF files for
// tests.
package imagefiletest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/kpauljoseph/pagesplit/internal/imagefile"
)

const (
	tImageWidth                = 256
	tImageLength               = 257
	tBitsPerSample             = 258
	tCompression               = 259
	tPhotometricInterpretation = 262
	tStripOffsets              = 273
	tSamplesPerPixel           = 277
	tRowsPerStrip              = 278
	tStripByteCounts           = 279
	tXResolution               = 282
	tYResolution               = 283
	tResolutionUnit            = 296

	dtShort    = 3
	dtLong     = 4
	dtRational = 5

	pBlackIsZero = 1
	pRGB         = 2
)

type entry struct {
	tag      uint16
	datatype uint16
	count    uint32
	value    []byte
}

// Encode writes frames as one baseline TIFF with one IFD per frame. Only
// *image.Gray and *image.RGBA are supported; RGBA frames are stored as RGB so
// their alpha must be opaque.
func Encode(order binary.ByteOrder, frames ...image.Image) ([]byte, error) {
	return encode(order, nil, frames)
}

// EncodeWithResolution is Encode with res written into every IFD.
func EncodeWithResolution(order binary.ByteOrder, res imagefile.Resolution, frames ...image.Image) ([]byte, error) {
	return encode(order, &res, frames)
}

func encode(order binary.ByteOrder, res *imagefile.Resolution, frames []image.Image) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames")
	}

	var buf bytes.Buffer
	if order == binary.BigEndian {
		buf.WriteString("MM\x00\x2A")
	} else {
		buf.WriteString("II\x2A\x00")
	}
	// First IFD offset, patched below.
	buf.Write([]byte{0, 0, 0, 0})
	nextField := 4

	for i, frame := range frames {
		pixels, samples, photometric, err := rawPixels(frame)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		bounds := frame.Bounds()

		pad(&buf)
		stripOffset := buf.Len()
		buf.Write(pixels)

		bitsValue := short(order, 8)
		if samples > 1 {
			pad(&buf)
			bitsOffset := buf.Len()
			for s := 0; s < samples; s++ {
				buf.Write(short(order, 8)[:2])
			}
			bitsValue = long(order, uint32(bitsOffset))
		}

		entries := []entry{
			{tImageWidth, dtLong, 1, long(order, uint32(bounds.Dx()))},
			{tImageLength, dtLong, 1, long(order, uint32(bounds.Dy()))},
			{tBitsPerSample, dtShort, uint32(samples), bitsValue},
			{tCompression, dtShort, 1, short(order, 1)},
			{tPhotometricInterpretation, dtShort, 1, short(order, photometric)},
			{tStripOffsets, dtLong, 1, long(order, uint32(stripOffset))},
			{tSamplesPerPixel, dtShort, 1, short(order, uint16(samples))},
			{tRowsPerStrip, dtLong, 1, long(order, uint32(bounds.Dy()))},
			{tStripByteCounts, dtLong, 1, long(order, uint32(len(pixels)))},
		}

		if res != nil {
			pad(&buf)
			rationalOffset := buf.Len()
			for _, r := range []imagefile.Rational{res.X, res.Y} {
				buf.Write(long(order, r.Num))
				buf.Write(long(order, r.Denom))
			}
			entries = append(entries,
				entry{tXResolution, dtRational, 1, long(order, uint32(rationalOffset))},
				entry{tYResolution, dtRational, 1, long(order, uint32(rationalOffset+8))},
				entry{tResolutionUnit, dtShort, 1, short(order, uint16(res.Unit))},
			)
		}

		pad(&buf)
		ifdOffset := buf.Len()
		patch(buf.Bytes(), order, nextField, uint32(ifdOffset))

		var count [2]byte
		order.PutUint16(count[:], uint16(len(entries)))
		buf.Write(count[:])
		for _, e := range entries {
			var raw [12]byte
			order.PutUint16(raw[0:2], e.tag)
			order.PutUint16(raw[2:4], e.datatype)
			order.PutUint32(raw[4:8], e.count)
			copy(raw[8:12], e.value)
			buf.Write(raw[:])
		}
		nextField = buf.Len()
		buf.Write([]byte{0, 0, 0, 0})
	}

	return buf.Bytes(), nil
}

func WriteFile(path string, order binary.ByteOrder, frames ...image.Image) error {
	data, err := Encode(order, frames...)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GrayFrame returns a gradient that differs for every seed.
func GrayFrame(width, height, seed int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x*7 + y*13 + seed*31)})
		}
	}
	return img
}

// RGBFrame returns an opaque pattern that differs for every seed.
func RGBFrame(width, height, seed int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x*11 + seed*17),
				G: uint8(y*5 + seed*3),
				B: uint8((x + y) * seed),
				A: 0xff,
			})
		}
	}
	return img
}

func rawPixels(frame image.Image) ([]byte, int, uint16, error) {
	bounds := frame.Bounds()
	switch img := frame.(type) {
	case *image.Gray:
		out := make([]byte, 0, bounds.Dx()*bounds.Dy())
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			start := img.PixOffset(bounds.Min.X, y)
			out = append(out, img.Pix[start:start+bounds.Dx()]...)
		}
		return out, 1, pBlackIsZero, nil
	case *image.RGBA:
		out := make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				i := img.PixOffset(x, y)
				out = append(out, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			}
		}
		return out, 3, pRGB, nil
	default:
		return nil, 0, 0, fmt.Errorf("unsupported image type %T", frame)
	}
}

func pad(buf *bytes.Buffer) {
	if buf.Len()%2 != 0 {
		buf.WriteByte(0)
	}
}

func patch(data []byte, order binary.ByteOrder, at int, v uint32) {
	order.PutUint32(data[at:at+4], v)
}

func short(order binary.ByteOrder, v uint16) []byte {
	b := make([]byte, 4)
	order.PutUint16(b, v)
	return b
}

func long(order binary.ByteOrder, v uint32) []byte {
	b := make([]byte, 4)
	order.PutUint32(b, v)
	return b
}

// GrayFrames returns count distinct gray frames of the same size.
func GrayFrames(width, height, count int) []image.Image {
	frames := make([]image.Image, count)
	for i := range frames {
		frames[i] = GrayFrame(width, height, i+1)
	}
	return frames
}

// SetShortTag overwrites the value of a single SHORT entry in the first IFD
// of data, which must be a classic TIFF.
func SetShortTag(data []byte, tag uint16, value uint16) error {
	var order binary.ByteOrder
	switch string(data[:4]) {
	case "II\x2A\x00":
		order = binary.LittleEndian
	case "MM\x00\x2A":
		order = binary.BigEndian
	default:
		return fmt.Errorf("not a classic TIFF header")
	}

	ifd := int(order.Uint32(data[4:8]))
	count := int(order.Uint16(data[ifd:]))
	for i := 0; i < count; i++ {
		at := ifd + 2 + i*12
		if order.Uint16(data[at:]) != tag {
			continue
		}
		if order.Uint16(data[at+2:]) != dtShort {
			return fmt.Errorf("tag %d is not a SHORT", tag)
		}
		order.PutUint16(data[at+8:], value)
		return nil
	}
	return fmt.Errorf("tag %d not found", tag)
}
