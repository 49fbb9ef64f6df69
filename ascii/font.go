package ascii

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"sort"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
)

// glyphWeight pairs a glyph with its measured ink coverage.
type glyphWeight struct {
	glyph byte
	abs   int // dark pixels in the rendered sample
	norm  int // coverage normalized to 0-255
}

const glyphSample = 18 // rendered sample is glyphSample x glyphSample pixels

// RampFromFont derives a ramp from a monospaced TTF font: each
// alphabet glyph is rendered and its dark-pixel coverage counted, then
// glyphs are ordered densest first so heavy glyphs stand for dark
// cells, matching DefaultAlphabet's convention. Glyphs whose
// normalized coverage collides are dropped to keep the ramp monotonic.
func RampFromFont(ttfPath, alphabet string) (Ramp, error) {
	data, err := os.ReadFile(ttfPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	font, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	weights := make([]glyphWeight, 0, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		sample, err := renderGlyph(alphabet[i], font)
		if err != nil {
			return nil, err
		}
		ink := countDarkPixels(sample)
		weights = append(weights, glyphWeight{glyph: alphabet[i], abs: ink, norm: ink})
	}
	normalizeWeights(weights)
	sort.SliceStable(weights, func(i, j int) bool { return weights[i].abs > weights[j].abs })
	ramp := make(Ramp, 0, len(weights))
	for i, w := range weights {
		if i > 0 && w.norm == weights[i-1].norm {
			continue
		}
		ramp = append(ramp, w.glyph)
	}
	if len(ramp) < 2 {
		return nil, fmt.Errorf("font %s yields a degenerate ramp", ttfPath)
	}
	return ramp, nil
}

// renderGlyph rasterizes one glyph black-on-white.
func renderGlyph(glyph byte, font *truetype.Font) (*image.RGBA, error) {
	rgba := image.NewRGBA(image.Rect(0, 0, glyphSample, glyphSample))
	draw.Draw(rgba, rgba.Bounds(), image.White, image.Point{}, draw.Src)
	c := freetype.NewContext()
	c.SetDPI(150)
	c.SetFont(font)
	c.SetFontSize(14)
	c.SetClip(rgba.Bounds())
	c.SetDst(rgba)
	c.SetSrc(image.Black)
	if _, err := c.DrawString(string(glyph), freetype.Pt(0, glyphSample)); err != nil {
		return nil, fmt.Errorf("render glyph %q: %w", glyph, err)
	}
	return rgba, nil
}

func countDarkPixels(rgba *image.RGBA) int {
	n := 0
	for y := rgba.Bounds().Min.Y; y < rgba.Bounds().Max.Y; y++ {
		for x := rgba.Bounds().Min.X; x < rgba.Bounds().Max.X; x++ {
			r, g, b, _ := rgba.At(x, y).RGBA()
			if r+g+b < 3*0x8000 {
				n++
			}
		}
	}
	return n
}

// normalizeWeights rescales coverage to 0-255 so duplicate shades can
// be detected independently of font size.
func normalizeWeights(weights []glyphWeight) {
	min, max := -1, -1
	for _, w := range weights {
		if max < 0 || w.abs > max {
			max = w.abs
		}
		if min < 0 || w.abs < min {
			min = w.abs
		}
	}
	if max == min {
		return
	}
	for i := range weights {
		weights[i].norm = 255 * (weights[i].abs - min) / (max - min)
	}
}
