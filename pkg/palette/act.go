// Package palette loads display palettes from Adobe Color Table (.act)
// files. An .act file is a sequence of 3-byte RGB triples; the full-size
// 772-byte variant carries a trailing big-endian color count and a
// transparency index after the 768-byte color table.
package palette

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"os"
)

const (
	// tableSize is the size of a full 256-color table.
	tableSize = 256 * 3
	// fullFileSize is tableSize plus the trailing count and
	// transparency fields.
	fullFileSize = tableSize + 4
)

// Palette is an ordered set of opaque RGB colors used as quantization
// targets. It is never empty and holds at most 256 entries.
type Palette color.Palette

// Colors returns the palette as a color.Palette for use with the
// standard image packages.
func (p Palette) Colors() color.Palette {
	return color.Palette(p)
}

// Len returns the number of colors in the palette.
func (p Palette) Len() int {
	return len(p)
}

// LoadACT reads and parses an .act palette file.
func LoadACT(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}

	pal, err := ParseACT(data)
	if err != nil {
		return nil, fmt.Errorf("invalid palette file %s: %w", path, err)
	}

	return pal, nil
}

// ParseACT parses raw .act palette data. A 772-byte table honors its
// trailing color count; a 768-byte table uses all 256 entries; shorter
// data is accepted as a bare triple sequence.
func ParseACT(data []byte) (Palette, error) {
	count := 0

	switch {
	case len(data) == fullFileSize:
		count = int(binary.BigEndian.Uint16(data[tableSize : tableSize+2]))
		if count == 0 || count > 256 {
			return nil, fmt.Errorf("color count %d out of range", count)
		}
	case len(data) == tableSize:
		count = 256
	case len(data) > 0 && len(data) < tableSize && len(data)%3 == 0:
		count = len(data) / 3
	case len(data) == 0:
		return nil, fmt.Errorf("empty palette data")
	default:
		return nil, fmt.Errorf("unexpected palette size %d bytes", len(data))
	}

	pal := make(Palette, count)
	for i := 0; i < count; i++ {
		pal[i] = color.RGBA{
			R: data[i*3],
			G: data[i*3+1],
			B: data[i*3+2],
			A: 255,
		}
	}

	return pal, nil
}
