package vector

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"
)

// GeoPackage binary geometry header, see OGC 12-128r18 §2.1.3.
//
//	magic "GP" | version | flags | srs_id int32 | envelope | WKB
//
// flags: bit 0 byte order of the header (1 little endian), bits 1-3
// envelope contents indicator, bit 4 empty geometry, bit 5 extended type.
const (
	gpkgMagic0     = 'G'
	gpkgMagic1     = 'P'
	gpkgHeaderSize = 8

	flagLittleEndian = 1 << 0
	flagEmpty        = 1 << 4
	flagExtended     = 1 << 5
)

var errNotGPKGGeometry = errors.New("not a GeoPackage geometry blob")

// envelopeSize returns the size in bytes of the envelope for indicator e.
func envelopeSize(e byte) (int, error) {
	switch e {
	case 0:
		return 0, nil
	case 1:
		return 32, nil
	case 2, 3:
		return 48, nil
	case 4:
		return 64, nil
	}
	return 0, fmt.Errorf("invalid envelope indicator %d", e)
}

// decodeGPKGGeometry parses a GeoPackage geometry blob.
func decodeGPKGGeometry(blob []byte) (geom.Geometry, int32, error) {
	if len(blob) < gpkgHeaderSize || blob[0] != gpkgMagic0 || blob[1] != gpkgMagic1 {
		return geom.Geometry{}, 0, errNotGPKGGeometry
	}
	if blob[2] != 0 {
		return geom.Geometry{}, 0, fmt.Errorf("unsupported GeoPackage geometry version %d", blob[2])
	}

	flags := blob[3]
	if flags&flagExtended != 0 {
		return geom.Geometry{}, 0, errors.New("extended GeoPackage geometry types are not supported")
	}

	var order binary.ByteOrder = binary.BigEndian
	if flags&flagLittleEndian != 0 {
		order = binary.LittleEndian
	}
	srsID := int32(order.Uint32(blob[4:8])) //nolint:gosec // G115: srs_id is a signed int32 on disk

	envSize, err := envelopeSize((flags >> 1) & 0x07)
	if err != nil {
		return geom.Geometry{}, 0, err
	}
	start := gpkgHeaderSize + envSize
	if len(blob) < start {
		return geom.Geometry{}, 0, errors.New("truncated GeoPackage geometry header")
	}

	g, err := geom.UnmarshalWKB(blob[start:], geom.NoValidate{})
	if err != nil {
		return geom.Geometry{}, 0, fmt.Errorf("invalid WKB: %w", err)
	}
	return g, srsID, nil
}

// encodeGPKGGeometry builds a little-endian GeoPackage geometry blob without
// an envelope.
func encodeGPKGGeometry(g geom.Geometry, srsID int32) []byte {
	wkb := g.AsBinary()
	blob := make([]byte, gpkgHeaderSize, gpkgHeaderSize+len(wkb))
	blob[0], blob[1] = gpkgMagic0, gpkgMagic1
	blob[2] = 0

	flags := byte(flagLittleEndian)
	if g.IsEmpty() {
		flags |= flagEmpty
	}
	blob[3] = flags
	binary.LittleEndian.PutUint32(blob[4:8], uint32(srsID)) //nolint:gosec // G115: round trip of a signed srs_id
	return append(blob, wkb...)
}
