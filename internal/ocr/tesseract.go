package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"MarketTracker/internal/model"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Text shorter than this is hard for Tesseract; small regions are
// upscaled to this height before recognition.
const minRegionHeight = 40

// TesseractEngine recognizes regions with a shared Tesseract client.
// Not safe for concurrent use; the capture loop is its only caller.
type TesseractEngine struct {
	client *gosseract.Client
}

// NewTesseractEngine creates an engine for the given language ("eng").
func NewTesseractEngine(lang string) (*TesseractEngine, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language %q: %w", lang, err)
	}
	// Game text is names and numbers, not prose; dictionary correction
	// turns prices into words.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	return &TesseractEngine{client: client}, nil
}

// Recognize runs OCR over every region independently. A failed region
// yields an errored Result for that key only.
func (e *TesseractEngine) Recognize(frame image.Image, rois map[string]model.Rect) map[string]Result {
	results := make(map[string]Result, len(rois))
	for name, r := range rois {
		crop, err := CropRegion(frame, r)
		if err != nil {
			results[name] = Result{Err: err}
			continue
		}
		text, err := e.recognizeOne(imaging.Crop(frame, crop))
		results[name] = Result{Text: text, Err: err}
	}
	return results
}

func (e *TesseractEngine) recognizeOne(region image.Image) (string, error) {
	prepared := preprocess(region)

	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		return "", fmt.Errorf("encode region: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set region image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize region: %w", err)
	}
	return text, nil
}

// preprocess improves contrast for the game's light-on-dark text and
// upscales small regions.
func preprocess(img image.Image) image.Image {
	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, 20)
	if h := out.Bounds().Dy(); h > 0 && h < minRegionHeight {
		out = imaging.Resize(out, 0, minRegionHeight, imaging.Lanczos)
	}
	return out
}

// Close releases the Tesseract client.
func (e *TesseractEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
