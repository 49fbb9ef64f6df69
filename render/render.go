// Package render owns the terminal display surface. A single Renderer
// repaints the whole frame from a fixed origin so successive frames
// replace each other without scrolling.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/termov/termov/ascii"
)

// ErrTarget marks a failed write to the display surface. The playback
// loop treats it as fatal; writes are never retried.
var ErrTarget = errors.New("render target write failed")

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetColor  = "\x1b[0m"
)

var (
	statsLabelStyle = lipgloss.NewStyle().Faint(true)
	statsValueStyle = lipgloss.NewStyle().Bold(true)
)

// Renderer writes text frames to a display surface. Single writer; no
// concurrent Draw calls.
type Renderer struct {
	out *bufio.Writer

	// stats line bookkeeping
	showStats   bool
	framesDrawn int
	fps         int
	fpsWindow   int
	firstDraw   time.Time
	windowStart time.Time
}

// New wraps the display surface. With showStats set, a one-line
// playback summary is painted below each frame.
func New(w io.Writer, showStats bool) *Renderer {
	return &Renderer{out: bufio.NewWriter(w), showStats: showStats}
}

// Init clears the screen and hides the cursor.
func (r *Renderer) Init() error {
	if _, err := r.out.WriteString(clearScreen + cursorHome + hideCursor); err != nil {
		return fmt.Errorf("%w: %v", ErrTarget, err)
	}
	return r.flush()
}

// Restore re-shows the cursor and resets terminal attributes.
func (r *Renderer) Restore() error {
	if _, err := r.out.WriteString(resetColor + showCursor + "\n"); err != nil {
		return fmt.Errorf("%w: %v", ErrTarget, err)
	}
	return r.flush()
}

// Draw repaints the display with one text frame, replacing the
// previous frame in place.
func (r *Renderer) Draw(tf ascii.TextFrame) error {
	now := time.Now()
	if r.framesDrawn == 0 {
		r.firstDraw = now
		r.windowStart = now
	}
	if _, err := r.out.WriteString(cursorHome); err != nil {
		return fmt.Errorf("%w: %v", ErrTarget, err)
	}
	for _, line := range tf {
		if _, err := r.out.Write(line); err != nil {
			return fmt.Errorf("%w: %v", ErrTarget, err)
		}
		if err := r.out.WriteByte('\n'); err != nil {
			return fmt.Errorf("%w: %v", ErrTarget, err)
		}
	}
	r.framesDrawn++
	r.fpsWindow++
	if now.Sub(r.windowStart) >= time.Second {
		r.fps = r.fpsWindow
		r.fpsWindow = 0
		r.windowStart = now
	}
	if r.showStats {
		if _, err := r.out.WriteString(r.statsLine(now)); err != nil {
			return fmt.Errorf("%w: %v", ErrTarget, err)
		}
	}
	return r.flush()
}

// FramesDrawn reports how many frames have been painted.
func (r *Renderer) FramesDrawn() int { return r.framesDrawn }

func (r *Renderer) statsLine(now time.Time) string {
	elapsed := now.Sub(r.firstDraw).Round(time.Second)
	return fmt.Sprintf("%s %s  %s %s  %s %s\x1b[K",
		statsLabelStyle.Render("frame"),
		statsValueStyle.Render(fmt.Sprintf("%d", r.framesDrawn)),
		statsLabelStyle.Render("elapsed"),
		statsValueStyle.Render(elapsed.String()),
		statsLabelStyle.Render("fps"),
		statsValueStyle.Render(fmt.Sprintf("%d", r.fps)))
}

func (r *Renderer) flush() error {
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrTarget, err)
	}
	return nil
}
