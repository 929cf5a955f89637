package linemod

import (
	"encoding/binary"
	"fmt"
	"os"
)

const depthHeaderSize = 8

// ReadDepth reads a packed .dpt frame: int32 rows, int32 cols (little-endian)
// followed by rows*cols little-endian uint16 samples in millimetres.
func ReadDepth(path string) (*Depth, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("linemod: read %s: %w", path, err)
	}
	return DecodeDepth(path, raw)
}

// DecodeDepth parses an in-memory .dpt buffer. name is only used in errors.
func DecodeDepth(name string, raw []byte) (*Depth, error) {
	if len(raw) < depthHeaderSize {
		return nil, formatErr(name, "truncated header (%d bytes)", len(raw))
	}

	rows := int(int32(binary.LittleEndian.Uint32(raw[0:4])))
	cols := int(int32(binary.LittleEndian.Uint32(raw[4:8])))
	if rows < 0 || cols < 0 {
		return nil, formatErr(name, "bad size %dx%d", rows, cols)
	}

	body := raw[depthHeaderSize:]
	if len(body) != rows*cols*2 {
		return nil, formatErr(name, "%dx%d frame needs %d bytes, have %d", rows, cols, rows*cols*2, len(body))
	}

	d := &Depth{Rows: rows, Cols: cols, Data: make([]uint16, rows*cols)}
	for i := range d.Data {
		d.Data[i] = binary.LittleEndian.Uint16(body[i*2:])
	}
	return d, nil
}
