// Package ocr recognizes text inside named regions of a captured frame.
package ocr

import (
	"fmt"
	"image"

	"MarketTracker/internal/model"
)

// Result is the outcome of recognizing one region. Err is set when the
// region could not be read (out of bounds, recognition failure); the
// entry is then treated as absent, never as fatal.
type Result struct {
	Text string
	Err  error
}

// Engine converts rectangular sub-images into text, one entry per named
// region. Implementations must bounds-check every region themselves.
type Engine interface {
	Recognize(frame image.Image, rois map[string]model.Rect) map[string]Result
	Close() error
}

// ScaleROIs rescales a region map from the reference resolution to the
// actual frame size, linearly per axis.
func ScaleROIs(rois map[string]model.Rect, refW, refH, actualW, actualH int) map[string]model.Rect {
	if refW == actualW && refH == actualH {
		return rois
	}
	out := make(map[string]model.Rect, len(rois))
	for name, r := range rois {
		out[name] = r.Scale(refW, refH, actualW, actualH)
	}
	return out
}

// CropRegion extracts one region's sub-image after bounds checking.
func CropRegion(frame image.Image, r model.Rect) (image.Rectangle, error) {
	b := frame.Bounds()
	crop := image.Rect(b.Min.X+r.X, b.Min.Y+r.Y, b.Min.X+r.X+r.W, b.Min.Y+r.Y+r.H)
	if r.W <= 0 || r.H <= 0 || !crop.In(b) {
		return image.Rectangle{}, fmt.Errorf("region (%d,%d,%dx%d) out of frame bounds %dx%d",
			r.X, r.Y, r.W, r.H, b.Dx(), b.Dy())
	}
	return crop, nil
}
