// Package player drives the playback pipeline: it pulls decoded
// frames in order, converts them to glyphs, and paces rendering to
// the source's nominal frame rate.
package player

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/termov/termov/ascii"
	"github.com/termov/termov/source"
)

// frameBufferSize bounds decode-ahead. The pump may run ahead of the
// renderer by this many frames; consumption order is strict either way.
const frameBufferSize = 1024

// Source is the frame sequence the player consumes. It isolates the
// pipeline from the concrete decoder.
type Source interface {
	Next() (*source.Frame, bool, error)
	FrameInterval() time.Duration
	Close() error
}

// Display receives rendered text frames, one at a time.
type Display interface {
	Draw(ascii.TextFrame) error
}

// State is the pacing controller's lifecycle state.
type State int32

const (
	// Idle is the state before the first frame.
	Idle State = iota
	// Running means frames are being paced and rendered.
	Running
	// Draining means the source is exhausted and already-decoded
	// frames are being flushed to the display.
	Draining
	// Stopped is terminal; no further frames are accepted.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// clock tracks playback timing. Frame k's target presentation time is
// start + k*interval, so targets never decrease and late frames do
// not push later targets back (drift is absorbed, not compounded).
type clock struct {
	start    time.Time
	interval time.Duration
	frame    int
}

// wait blocks until the next frame's target time. The first call
// records the stream start. A frame already past its target returns
// immediately: the player renders late frames rather than drop them.
func (c *clock) wait(ctx context.Context) error {
	if c.frame == 0 {
		c.start = time.Now()
	}
	target := c.start.Add(time.Duration(c.frame) * c.interval)
	c.frame++
	delay := time.Until(target)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Player owns one playback run over a single source.
type Player struct {
	src        Source
	display    Display
	mapper     ascii.Mapper
	rows, cols int
	state      atomic.Int32
}

// New builds a player for one run. The grid dimensions are fixed for
// the life of the stream.
func New(src Source, display Display, mapper ascii.Mapper, rows, cols int) *Player {
	return &Player{src: src, display: display, mapper: mapper, rows: rows, cols: cols}
}

// State reports the pacing controller's current state.
func (p *Player) State() State { return State(p.state.Load()) }

func (p *Player) setState(s State) { p.state.Store(int32(s)) }

// Play runs the pipeline until the source is exhausted, a decode or
// render error occurs, or ctx is canceled. Every successfully decoded
// frame before a failure is rendered, in decode order; cancellation
// abandons in-flight frames immediately.
func (p *Player) Play(ctx context.Context) error {
	frames := make(chan *source.Frame, frameBufferSize)
	decodeErr := make(chan error, 1)
	decodeDone := make(chan struct{})
	go p.pump(ctx, frames, decodeErr, decodeDone)
	defer p.setState(Stopped)

	clk := clock{interval: p.src.FrameInterval()}
	for {
		// Cancellation wins over any pending frame.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		select {
		case <-decodeDone:
			if p.State() == Running {
				p.setState(Draining)
			}
		default:
		}

		var frame *source.Frame
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case frame, ok = <-frames:
		}
		if !ok {
			select {
			case err := <-decodeErr:
				return err
			default:
			}
			return nil
		}
		if p.State() == Idle {
			p.setState(Running)
		}
		if err := clk.wait(ctx); err != nil {
			return err
		}
		grid := ascii.Downsample(frame.Image, p.rows, p.cols)
		if err := p.display.Draw(p.mapper.Map(grid)); err != nil {
			return err
		}
	}
}

// pump decodes ahead of the renderer, preserving decode order. It
// stops on source end, decode error, or cancellation, then closes the
// frame channel so the consumer can flush what was already decoded.
func (p *Player) pump(ctx context.Context, frames chan<- *source.Frame, decodeErr chan<- error, decodeDone chan<- struct{}) {
	defer close(frames)
	defer close(decodeDone)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		frame, ok, err := p.src.Next()
		if err != nil {
			decodeErr <- err
			return
		}
		if !ok {
			return
		}
		select {
		case <-ctx.Done():
			return
		case frames <- frame:
		}
	}
}
