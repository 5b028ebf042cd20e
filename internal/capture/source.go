package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// FrameSource grabs one frame per tick. A (nil, nil) return means "no
// usable frame this tick" and must be tolerated indefinitely.
type FrameSource interface {
	Capture() (image.Image, error)
	Resolution() (width, height int, err error)
	Close() error
}

// DisplaySource captures a physical display.
type DisplaySource struct {
	display int
}

// NewDisplaySource validates the display index and returns a source for it.
func NewDisplaySource(display int) (*DisplaySource, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays found")
	}
	if display < 0 || display >= n {
		return nil, fmt.Errorf("display %d out of range (found %d)", display, n)
	}
	return &DisplaySource{display: display}, nil
}

func (d *DisplaySource) Capture() (image.Image, error) {
	img, err := screenshot.CaptureDisplay(d.display)
	if err != nil {
		return nil, fmt.Errorf("capture display %d: %w", d.display, err)
	}
	return img, nil
}

func (d *DisplaySource) Resolution() (int, int, error) {
	b := screenshot.GetDisplayBounds(d.display)
	return b.Dx(), b.Dy(), nil
}

func (d *DisplaySource) Close() error { return nil }

// MockSource replays a fixed sequence of frames, then reports no frame.
// Used in tests and for development without a game window.
type MockSource struct {
	Frames []image.Image
	Width  int
	Height int
	next   int
}

func (m *MockSource) Capture() (image.Image, error) {
	if m.next >= len(m.Frames) {
		return nil, nil
	}
	f := m.Frames[m.next]
	m.next++
	return f, nil
}

func (m *MockSource) Resolution() (int, int, error) {
	return m.Width, m.Height, nil
}

func (m *MockSource) Close() error { return nil }
