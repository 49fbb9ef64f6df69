package ascii

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDownsampleDimensions(t *testing.T) {
	cases := []struct {
		srcW, srcH, rows, cols int
	}{
		{640, 480, 24, 80},
		{1920, 1080, 45, 160},
		{3, 2, 4, 4},   // source smaller than grid
		{1, 1, 10, 20}, // pathological single pixel
		{100, 100, 1, 1},
	}
	for _, tc := range cases {
		g := Downsample(solidImage(tc.srcW, tc.srcH, color.Gray{Y: 100}), tc.rows, tc.cols)
		if g.Rows != tc.rows || g.Cols != tc.cols {
			t.Errorf("source %dx%d: got %dx%d grid, want %dx%d",
				tc.srcW, tc.srcH, g.Rows, g.Cols, tc.rows, tc.cols)
		}
		if len(g.Cells) != tc.rows*tc.cols {
			t.Errorf("source %dx%d: %d cells, want %d", tc.srcW, tc.srcH, len(g.Cells), tc.rows*tc.cols)
		}
	}
}

func TestDownsampleSolidExtremes(t *testing.T) {
	white := Downsample(solidImage(64, 48, color.White), 6, 8)
	for i, cell := range white.Cells {
		if cell < 250 {
			t.Fatalf("white frame cell %d sampled as %d", i, cell)
		}
	}
	black := Downsample(solidImage(64, 48, color.Black), 6, 8)
	for i, cell := range black.Cells {
		if cell > 5 {
			t.Fatalf("black frame cell %d sampled as %d", i, cell)
		}
	}
}

func TestDownsampleBoxFilterAverages(t *testing.T) {
	// Left half black, right half white; two columns must land on
	// opposite ends of the brightness range.
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	g := Downsample(img, 1, 2)
	if g.Cells[0] > 5 {
		t.Errorf("left cell sampled as %d, want near 0", g.Cells[0])
	}
	if g.Cells[1] < 250 {
		t.Errorf("right cell sampled as %d, want near 255", g.Cells[1])
	}
}

func TestDownsampleUpsamplesSmallSources(t *testing.T) {
	// 2x2 checker smaller than the target grid: output must still
	// carry the contrast after bilinear upsampling.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.Black)
	img.Set(1, 0, color.White)
	img.Set(0, 1, color.White)
	img.Set(1, 1, color.Black)
	g := Downsample(img, 8, 8)
	if g.Rows != 8 || g.Cols != 8 {
		t.Fatalf("got %dx%d grid, want 8x8", g.Rows, g.Cols)
	}
	if g.Cells[0] >= g.Cells[7] {
		t.Errorf("top row lost contrast: corner %d vs %d", g.Cells[0], g.Cells[7])
	}
}

func TestResolveGrid(t *testing.T) {
	cases := []struct {
		name               string
		rows, cols         int
		srcW, srcH         int
		wantRows, wantCols int
	}{
		{"both given pass through", 30, 100, 1920, 1080, 30, 100},
		{"rows derived with aspect", 0, 80, 160, 90, 23, 80},
		{"cols derived with aspect", 20, 0, 160, 90, 20, 71},
		{"never below one", 0, 1, 10000, 1, 1, 1},
	}
	for _, tc := range cases {
		rows, cols := ResolveGrid(tc.rows, tc.cols, tc.srcW, tc.srcH, DefaultCellAspect)
		if rows != tc.wantRows || cols != tc.wantCols {
			t.Errorf("%s: got %dx%d, want %dx%d", tc.name, rows, cols, tc.wantRows, tc.wantCols)
		}
	}
}
