package ascii

import (
	"bytes"
	"testing"
)

func TestNewRampRejectsDegenerateAlphabets(t *testing.T) {
	for _, alphabet := range []string{"", "#", "###"} {
		if _, err := NewRamp(alphabet); err == nil {
			t.Errorf("NewRamp(%q) accepted a degenerate ramp", alphabet)
		}
	}
	if _, err := NewRamp(".#"); err != nil {
		t.Errorf("NewRamp(\".#\") failed: %v", err)
	}
}

func TestGlyphEndpoints(t *testing.T) {
	ramp, err := NewRamp(DefaultAlphabet)
	if err != nil {
		t.Fatal(err)
	}
	if got := ramp.Glyph(0); got != DefaultAlphabet[0] {
		t.Errorf("brightness 0 mapped to %q, want darkest glyph %q", got, DefaultAlphabet[0])
	}
	last := DefaultAlphabet[len(DefaultAlphabet)-1]
	if got := ramp.Glyph(255); got != last {
		t.Errorf("brightness 255 mapped to %q, want brightest glyph %q", got, last)
	}
}

func TestGlyphMonotonicAndInRange(t *testing.T) {
	ramp, err := NewRamp(DefaultAlphabet)
	if err != nil {
		t.Fatal(err)
	}
	prev := -1
	for b := 0; b <= 255; b++ {
		idx := bytes.IndexByte(ramp, ramp.Glyph(uint8(b)))
		if idx < 0 || idx >= len(ramp) {
			t.Fatalf("brightness %d mapped outside the ramp", b)
		}
		if idx < prev {
			t.Fatalf("mapping not monotonic: brightness %d gave index %d after %d", b, idx, prev)
		}
		prev = idx
	}
}

func TestMapDimensionsMatchGrid(t *testing.T) {
	ramp, _ := NewRamp(DefaultAlphabet)
	g := Grid{Rows: 3, Cols: 7, Cells: make([]uint8, 21)}
	tf := Mapper{Ramp: ramp, Gamma: 1.0}.Map(g)
	if len(tf) != 3 {
		t.Fatalf("got %d rows, want 3", len(tf))
	}
	for _, line := range tf {
		if len(line) != 7 {
			t.Fatalf("got %d cols, want 7", len(line))
		}
	}
}

func TestMapExtremes(t *testing.T) {
	ramp, _ := NewRamp(DefaultAlphabet)
	m := Mapper{Ramp: ramp, Gamma: 1.0}

	dark := Grid{Rows: 2, Cols: 2, Cells: []uint8{0, 0, 0, 0}}
	for _, line := range m.Map(dark) {
		for _, glyph := range line {
			if glyph != DefaultAlphabet[0] {
				t.Fatalf("dark cell rendered %q, want %q", glyph, DefaultAlphabet[0])
			}
		}
	}

	bright := Grid{Rows: 2, Cols: 2, Cells: []uint8{255, 255, 255, 255}}
	want := DefaultAlphabet[len(DefaultAlphabet)-1]
	for _, line := range m.Map(bright) {
		for _, glyph := range line {
			if glyph != want {
				t.Fatalf("bright cell rendered %q, want %q", glyph, want)
			}
		}
	}
}

func TestMapGammaIdentity(t *testing.T) {
	ramp, _ := NewRamp(DefaultAlphabet)
	g := Grid{Rows: 1, Cols: 4, Cells: []uint8{0, 85, 170, 255}}
	plain := Mapper{Ramp: ramp, Gamma: 1.0}.Map(g)
	unset := Mapper{Ramp: ramp}.Map(g)
	for col := range plain[0] {
		if plain[0][col] != unset[0][col] {
			t.Fatalf("gamma 1.0 and unset gamma disagree at col %d", col)
		}
	}
}

func TestMapGammaDarkens(t *testing.T) {
	ramp, _ := NewRamp(DefaultAlphabet)
	g := Grid{Rows: 1, Cols: 1, Cells: []uint8{128}}
	plain := Mapper{Ramp: ramp, Gamma: 1.0}.Map(g)
	crushed := Mapper{Ramp: ramp, Gamma: 3.0}.Map(g)
	plainIdx := bytes.IndexByte(ramp, plain[0][0])
	crushedIdx := bytes.IndexByte(ramp, crushed[0][0])
	if crushedIdx >= plainIdx {
		t.Errorf("gamma 3.0 index %d not darker than gamma 1.0 index %d", crushedIdx, plainIdx)
	}
}
