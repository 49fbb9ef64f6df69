package ascii

import (
	"image"
	"math"
	"sync"

	"github.com/nfnt/resize"
)

// Grid holds one frame's sampled brightness values, row-major,
// in the range 0-255.
type Grid struct {
	Rows, Cols int
	Cells      []uint8
}

// DefaultCellAspect compensates for terminal cells being roughly
// twice as tall as they are wide.
const DefaultCellAspect = 0.5

// ResolveGrid fills in a missing grid dimension from the source frame
// aspect ratio, compressing rows by cellAspect. Both dimensions given
// are returned unchanged; the result is held fixed for the stream.
func ResolveGrid(rows, cols, srcW, srcH int, cellAspect float64) (int, int) {
	if cellAspect <= 0 {
		cellAspect = DefaultCellAspect
	}
	if cols <= 0 && rows <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = int(math.Round(float64(cols) * float64(srcH) / float64(srcW) * cellAspect))
	} else if cols <= 0 {
		cols = int(math.Round(float64(rows) * float64(srcW) / float64(srcH) / cellAspect))
	}
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// Downsample reduces img to a rows x cols brightness grid. Each cell
// averages the luminance of its source pixel footprint (box filter);
// a footprint of a single pixel degenerates to nearest-sample. A
// source smaller than the grid is first upsampled bilinearly so the
// output dimensions hold for any input resolution.
func Downsample(img image.Image, rows, cols int) Grid {
	bounds := img.Bounds()
	if bounds.Dx() < cols || bounds.Dy() < rows {
		img = resize.Resize(uint(cols), uint(rows), img, resize.Bilinear)
		bounds = img.Bounds()
	}
	boxW := float64(bounds.Dx()) / float64(cols)
	boxH := float64(bounds.Dy()) / float64(rows)
	g := Grid{Rows: rows, Cols: cols, Cells: make([]uint8, rows*cols)}
	var wait sync.WaitGroup
	for row := 0; row < rows; row++ {
		wait.Add(1)
		go func(row int) {
			defer wait.Done()
			y0 := bounds.Min.Y + int(float64(row)*boxH)
			y1 := bounds.Min.Y + int(float64(row+1)*boxH)
			if y1 <= y0 {
				y1 = y0 + 1
			}
			if y1 > bounds.Max.Y {
				y1 = bounds.Max.Y
			}
			for col := 0; col < cols; col++ {
				x0 := bounds.Min.X + int(float64(col)*boxW)
				x1 := bounds.Min.X + int(float64(col+1)*boxW)
				if x1 <= x0 {
					x1 = x0 + 1
				}
				if x1 > bounds.Max.X {
					x1 = bounds.Max.X
				}
				sum := 0.0
				for y := y0; y < y1; y++ {
					for x := x0; x < x1; x++ {
						sum += luminance(img.At(x, y).RGBA())
					}
				}
				g.Cells[row*cols+col] = uint8(sum / float64((y1-y0)*(x1-x0)))
			}
		}(row)
	}
	wait.Wait()
	return g
}

// luminance converts 16-bit premultiplied RGBA channels to a single
// 0-255 brightness using BT.709 weights.
func luminance(r, g, b, _ uint32) float64 {
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 257.0
}
