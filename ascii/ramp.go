package ascii

import (
	"errors"
	"math"
)

// DefaultAlphabet is the built-in glyph ramp, ordered darkest to
// brightest: a cell with brightness 0 renders as '#', 255 as '.'.
// That convention assumes dark glyphs printed on a light background;
// pass a reversed alphabet for light-on-dark terminals.
const DefaultAlphabet = "#@8&o*:,."

// Ramp is an ordered glyph set, darkest first. Index 0 represents
// brightness 0 and the last index brightness 255.
type Ramp []byte

// NewRamp validates the alphabet and returns it as a ramp. A ramp
// with fewer than two distinct glyphs cannot express brightness at
// all, so it is rejected.
func NewRamp(alphabet string) (Ramp, error) {
	if len(alphabet) < 2 {
		return nil, errors.New("ramp needs at least two glyphs")
	}
	distinct := false
	for i := 1; i < len(alphabet); i++ {
		if alphabet[i] != alphabet[0] {
			distinct = true
			break
		}
	}
	if !distinct {
		return nil, errors.New("ramp needs at least two distinct glyphs")
	}
	return Ramp(alphabet), nil
}

// Glyph maps a brightness value to a ramp entry. The mapping is
// monotonic: higher brightness never selects an earlier glyph.
func (r Ramp) Glyph(b uint8) byte {
	i := int(b) * len(r) / 256
	if i >= len(r) {
		i = len(r) - 1
	}
	return r[i]
}

// Mapper turns a sampled grid into glyph rows using a ramp and an
// optional gamma correction applied to brightness before lookup.
type Mapper struct {
	Ramp  Ramp
	Gamma float64
}

// TextFrame is one rendered frame: Rows slices of Cols glyph bytes.
type TextFrame [][]byte

// Map converts every cell of the grid to a glyph. The output always
// has exactly the grid's dimensions.
func (m Mapper) Map(g Grid) TextFrame {
	tf := make(TextFrame, g.Rows)
	for row := 0; row < g.Rows; row++ {
		line := make([]byte, g.Cols)
		for col := 0; col < g.Cols; col++ {
			b := g.Cells[row*g.Cols+col]
			if m.Gamma > 0 && m.Gamma != 1.0 {
				b = uint8(math.Pow(float64(b)/255.0, m.Gamma) * 255.0)
			}
			line[col] = m.Ramp.Glyph(b)
		}
		tf[row] = line
	}
	return tf
}
