package imagefile

import (
	"encoding/binary"
	"errors"
	"io"
)

// frameView presents the file with its header rewritten to point at one IFD.
// TIFF offsets are absolute, so everything past the header is shared with the
// original buffer.
type frameView struct {
	data   []byte
	header [headerLen]byte
	pos    int64
}

func newFrameView(data []byte, order binary.ByteOrder, ifd uint32) *frameView {
	v := &frameView{data: data}
	copy(v.header[:4], data[:4])
	order.PutUint32(v.header[4:], ifd)
	return v
}

func (v *frameView) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.New("imagefile: negative offset")
	}
	if off >= int64(len(v.data)) {
		return 0, io.EOF
	}

	n := copy(p, v.data[off:])
	if off < headerLen {
		copy(p[:n], v.header[off:])
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (v *frameView) Read(p []byte) (int, error) {
	n, err := v.ReadAt(p, v.pos)
	v.pos += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}
