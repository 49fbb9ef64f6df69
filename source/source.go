// Package source wraps the reisen video decoder behind a small frame
// stream: open a file, pull decoded frames in order until the stream
// ends. A stream is not restartable; replaying requires a fresh Open.
package source

import (
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/zergon321/reisen"
)

var (
	// ErrNotFound marks an unreadable or missing input path.
	ErrNotFound = errors.New("video source not found")
	// ErrDecode marks a corrupt or unsupported stream. It terminates
	// the frame sequence; decoding is never retried.
	ErrDecode = errors.New("video decode failed")
)

// fallbackInterval is used when the container declares no usable
// frame rate.
const fallbackInterval = time.Second / 30

// Frame is one decoded video frame. Immutable once returned by Next;
// Index counts frames from zero in decode order.
type Frame struct {
	Image *image.RGBA
	Index int
}

// Stream is an opened video file's frame sequence.
type Stream struct {
	media    *reisen.Media
	video    *reisen.VideoStream
	interval time.Duration
	index    int
	closed   bool
}

// Open validates the path, opens the container and the first video
// stream, and reads the declared frame rate. The frame interval is
// available before the first frame is decoded.
func Open(path string) (*Stream, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	media, err := reisen.NewMedia(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	interval := fallbackInterval
	for _, stream := range media.Streams() {
		if stream.Type() == reisen.StreamVideo {
			num, den := stream.FrameRate()
			if num > 0 && den > 0 {
				interval = time.Duration(float64(time.Second) * float64(den) / float64(num))
			}
			break
		}
	}
	if err := media.OpenDecode(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	videoStreams := media.VideoStreams()
	if len(videoStreams) == 0 {
		media.CloseDecode()
		return nil, fmt.Errorf("%w: no video stream in %s", ErrDecode, path)
	}
	video := videoStreams[0]
	if err := video.Open(); err != nil {
		media.CloseDecode()
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &Stream{media: media, video: video, interval: interval}, nil
}

// FrameInterval is the nominal time between frames, derived from the
// container's declared frame rate.
func (s *Stream) FrameInterval() time.Duration { return s.interval }

// Width is the source frame width in pixels.
func (s *Stream) Width() int { return s.video.Width() }

// Height is the source frame height in pixels.
func (s *Stream) Height() int { return s.video.Height() }

// Next returns the next decoded frame in order. It reports false with
// a nil error when the stream is exhausted, and false with an
// ErrDecode-wrapped error when the decoder hits corrupt data.
func (s *Stream) Next() (*Frame, bool, error) {
	for {
		packet, ok, err := s.media.ReadPacket()
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if !ok {
			return nil, false, nil
		}
		if packet.Type() != reisen.StreamVideo {
			continue
		}
		stream, isVideo := s.media.Streams()[packet.StreamIndex()].(*reisen.VideoStream)
		if !isVideo || stream != s.video {
			continue
		}
		videoFrame, got, err := s.video.ReadVideoFrame()
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if !got || videoFrame == nil {
			continue
		}
		frame := &Frame{Image: videoFrame.Image(), Index: s.index}
		s.index++
		return frame, true, nil
	}
}

// Close tears down the decoder. Safe to call more than once.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.video.Close()
	s.media.CloseDecode()
	return nil
}
