package imagefile

import (
	"encoding/binary"
	"fmt"
)

const (
	tagXResolution    = 282
	tagYResolution    = 283
	tagResolutionUnit = 296

	typeShort    = 3
	typeLong     = 4
	typeRational = 5
)

type ResolutionUnit uint16

const (
	UnitNone       ResolutionUnit = 1
	UnitInch       ResolutionUnit = 2
	UnitCentimeter ResolutionUnit = 3
)

func (u ResolutionUnit) String() string {
	switch u {
	case UnitNone:
		return "none"
	case UnitInch:
		return "inch"
	case UnitCentimeter:
		return "cm"
	default:
		return fmt.Sprintf("unit(%d)", uint16(u))
	}
}

type Rational struct {
	Num   uint32
	Denom uint32
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Denom)
}

// Resolution holds the XResolution, YResolution and ResolutionUnit tags of
// one page.
type Resolution struct {
	X    Rational
	Y    Rational
	Unit ResolutionUnit
}

// Resolution reports the resolution tags of the active frame. ok is false for
// non-TIFF files and for pages without both resolution tags.
func (c *Container) Resolution() (res Resolution, ok bool) {
	if c.format != FormatTIFF {
		return Resolution{}, false
	}
	return readResolution(c.data, c.order, c.ifds[c.cursor])
}

func readResolution(data []byte, order binary.ByteOrder, ifd uint32) (Resolution, bool) {
	x, ok := readRational(data, order, ifd, tagXResolution)
	if !ok {
		return Resolution{}, false
	}
	y, ok := readRational(data, order, ifd, tagYResolution)
	if !ok {
		return Resolution{}, false
	}

	res := Resolution{X: x, Y: y, Unit: UnitInch}
	if e, found := lookupEntry(data, order, ifd, tagResolutionUnit); found {
		switch e.datatype {
		case typeShort:
			res.Unit = ResolutionUnit(order.Uint16(data[e.field:]))
		case typeLong:
			res.Unit = ResolutionUnit(order.Uint32(data[e.field:]))
		}
	}
	return res, true
}

func readRational(data []byte, order binary.ByteOrder, ifd uint32, tag uint16) (Rational, bool) {
	e, found := lookupEntry(data, order, ifd, tag)
	if !found {
		return Rational{}, false
	}
	at, ok := e.rationalAt(data, order)
	if !ok {
		return Rational{}, false
	}
	r := Rational{Num: order.Uint32(data[at:]), Denom: order.Uint32(data[at+4:])}
	if r.Denom == 0 {
		return Rational{}, false
	}
	return r, true
}

// SetResolution overwrites the resolution tags of the first directory of an
// encoded TIFF in place. The three tags must already be present, which is
// always the case for output of golang.org/x/image/tiff.
func SetResolution(data []byte, res Resolution) error {
	order, ifds, err := readIFDChain(data)
	if err != nil {
		return err
	}
	ifd := ifds[0]

	for _, field := range []struct {
		tag   uint16
		value Rational
	}{
		{tagXResolution, res.X},
		{tagYResolution, res.Y},
	} {
		e, found := lookupEntry(data, order, ifd, field.tag)
		if !found {
			return fmt.Errorf("no tag %d in IFD at %d", field.tag, ifd)
		}
		at, ok := e.rationalAt(data, order)
		if !ok {
			return fmt.Errorf("tag %d is not a single rational", field.tag)
		}
		order.PutUint32(data[at:], field.value.Num)
		order.PutUint32(data[at+4:], field.value.Denom)
	}

	e, found := lookupEntry(data, order, ifd, tagResolutionUnit)
	if !found || e.datatype != typeShort {
		return fmt.Errorf("no short ResolutionUnit tag in IFD at %d", ifd)
	}
	order.PutUint16(data[e.field:], uint16(res.Unit))
	return nil
}
