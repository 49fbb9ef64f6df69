// Package config holds the playback configuration parsed from
// command-line flags, with grid defaults derived from the terminal.
package config

import (
	"errors"
	"flag"
	"os"

	"golang.org/x/term"

	"github.com/termov/termov/ascii"
)

// Config is the application's entire configuration. The frame rate is
// always read from the source, never configured.
type Config struct {
	FilePath string
	Cols     int // 0 = use terminal width
	Rows     int // 0 = derive from source aspect, capped to terminal
	Alphabet string
	FontFile string
	Gamma    float64
	Stats    bool
	Debug    bool
}

// ParseFlags parses command-line flags and returns a Config.
func ParseFlags() (*Config, error) {
	file := flag.String("file", "", "path to the video file to play")
	width := flag.Int("width", 0, "grid width in characters, 0 to use the terminal width")
	height := flag.Int("height", 0, "grid height in characters, 0 to derive from the video aspect ratio")
	alphabet := flag.String("alphabet", ascii.DefaultAlphabet, "glyph ramp ordered darkest to brightest")
	fontfile := flag.String("fontfile", "", "ttf font to derive the glyph ramp from, preferably monospaced")
	gamma := flag.Float64("gamma", 1.0, "gamma correction applied to brightness before glyph lookup")
	stats := flag.Bool("stats", false, "show a playback stats line below the frame")
	debug := flag.Bool("debug", false, "log timing data after playback")
	flag.Parse()

	if *file == "" {
		return nil, errors.New("no input: -file is required")
	}
	return &Config{
		FilePath: *file,
		Cols:     *width,
		Rows:     *height,
		Alphabet: *alphabet,
		FontFile: *fontfile,
		Gamma:    *gamma,
		Stats:    *stats,
		Debug:    *debug,
	}, nil
}

// Grid resolves the character grid for a source of the given pixel
// dimensions. Unset dimensions fall back to the terminal size, with
// rows compressed for cell aspect and capped so the frame plus the
// stats line fit the screen. The result is fixed for the stream.
func (c *Config) Grid(srcW, srcH int) (rows, cols int) {
	termCols, termRows := terminalSize()
	cols = c.Cols
	if cols <= 0 {
		cols = termCols
	}
	rows = c.Rows
	reserved := 1 // keep the cursor row off the frame
	if c.Stats {
		reserved = 2
	}
	derived := rows <= 0
	rows, cols = ascii.ResolveGrid(rows, cols, srcW, srcH, ascii.DefaultCellAspect)
	if derived && rows > termRows-reserved && termRows > reserved {
		rows = termRows - reserved
	}
	return rows, cols
}

func terminalSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return 80, 24
	}
	return cols, rows
}
