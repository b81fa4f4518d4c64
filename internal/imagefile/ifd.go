package imagefile

import (
	"encoding/binary"
	"fmt"
)

const (
	leHeader = "II\x2A\x00"
	beHeader = "MM\x00\x2A"

	headerLen   = 8
	ifdEntryLen = 12
)

// readIFDChain returns the byte order of a classic TIFF file and the offset of
// every image file directory in chain order. A broken link after the first
// directory ends the chain; a broken first directory is an error.
func readIFDChain(data []byte) (binary.ByteOrder, []uint32, error) {
	if len(data) < headerLen {
		return nil, nil, fmt.Errorf("file too short for a TIFF header (%d bytes)", len(data))
	}

	var order binary.ByteOrder
	switch string(data[0:4]) {
	case leHeader:
		order = binary.LittleEndian
	case beHeader:
		order = binary.BigEndian
	default:
		return nil, nil, fmt.Errorf("missing TIFF byte order mark")
	}

	offset := order.Uint32(data[4:8])
	size := uint64(len(data))
	seen := make(map[uint32]bool)
	var ifds []uint32

	for offset != 0 {
		if seen[offset] {
			break
		}
		seen[offset] = true

		start := uint64(offset)
		if start < headerLen || start+2 > size {
			if len(ifds) == 0 {
				return nil, nil, fmt.Errorf("first IFD offset %d outside file of %d bytes", offset, size)
			}
			break
		}

		entries := uint64(order.Uint16(data[start:]))
		nextField := start + 2 + entries*ifdEntryLen
		if nextField+4 > size {
			if len(ifds) == 0 {
				return nil, nil, fmt.Errorf("IFD at %d with %d entries overruns file", offset, entries)
			}
			break
		}

		ifds = append(ifds, offset)
		offset = order.Uint32(data[nextField:])
	}

	if len(ifds) == 0 {
		return nil, nil, fmt.Errorf("no image file directory")
	}
	return order, ifds, nil
}

type ifdEntry struct {
	datatype uint16
	count    uint32
	// field is the position of the entry's 4-byte value or offset.
	field uint64
}

// lookupEntry finds tag in the directory at ifd. The directory must have
// passed readIFDChain, so its entries lie inside data.
func lookupEntry(data []byte, order binary.ByteOrder, ifd uint32, tag uint16) (ifdEntry, bool) {
	start := uint64(ifd)
	entries := uint64(order.Uint16(data[start:]))
	for i := uint64(0); i < entries; i++ {
		at := start + 2 + i*ifdEntryLen
		if order.Uint16(data[at:]) != tag {
			continue
		}
		return ifdEntry{
			datatype: order.Uint16(data[at+2:]),
			count:    order.Uint32(data[at+4:]),
			field:    at + 8,
		}, true
	}
	return ifdEntry{}, false
}

// rationalAt returns where the first rational value of e is stored.
// Rationals never fit in the value field, so it always holds an offset.
func (e ifdEntry) rationalAt(data []byte, order binary.ByteOrder) (uint64, bool) {
	if e.datatype != typeRational || e.count < 1 {
		return 0, false
	}
	at := uint64(order.Uint32(data[e.field:]))
	if at+8 > uint64(len(data)) {
		return 0, false
	}
	return at, true
}
