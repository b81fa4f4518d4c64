package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image"
)

// GenerateImageHash hashes the dimensions and the 16-bit premultiplied RGBA
// value of every pixel, so two images that decode to the same pixels hash
// equal regardless of how they were stored.
func GenerateImageHash(img image.Image) (string, error) {
	hasher := sha256.New()
	bounds := img.Bounds()

	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(bounds.Dx()))
	binary.BigEndian.PutUint32(buf[4:8], uint32(bounds.Dy()))
	hasher.Write(buf[:])

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			binary.BigEndian.PutUint16(buf[0:2], uint16(r))
			binary.BigEndian.PutUint16(buf[2:4], uint16(g))
			binary.BigEndian.PutUint16(buf[4:6], uint16(b))
			binary.BigEndian.PutUint16(buf[6:8], uint16(a))
			hasher.Write(buf[:])
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
