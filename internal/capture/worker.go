package capture

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"MarketTracker/internal/extractor"
	"MarketTracker/internal/model"
	"MarketTracker/internal/notifier"
	"MarketTracker/internal/ocr"
	"MarketTracker/internal/store"
)

// Consecutive persistence failures tolerated before the loop halts.
const maxPersistFailures = 3

// diagInterval rate-limits per-tick transient diagnostics.
const diagInterval = 5 * time.Second

// Options configures a capture worker.
type Options struct {
	FPS                 int
	ReferenceWidth      int
	ReferenceHeight     int
	ResolutionTolerance float64 // fraction, e.g. 0.1 for +-10%
	ROIs                map[string]model.Rect
	SessionRegion       model.Region
}

// Worker polls the frame source at a fixed tick rate and drives the
// state machine. All mutable capture state lives inside Run's
// goroutine; results leave only through the store and the notifier.
type Worker struct {
	source  FrameSource
	engine  ocr.Engine
	extr    *extractor.Extractor
	machine *Machine
	store   store.Store
	notif   notifier.Notifier
	opts    Options

	scaledROIs   map[string]model.Rect
	lastFrameW   int
	lastFrameH   int
	lastDiagAt   time.Time
	captureCount int
}

// NewWorker wires a capture worker.
func NewWorker(src FrameSource, engine ocr.Engine, extr *extractor.Extractor,
	st store.Store, notif notifier.Notifier, opts Options) *Worker {
	if opts.FPS <= 0 {
		opts.FPS = 10
	}
	if opts.ResolutionTolerance <= 0 {
		opts.ResolutionTolerance = 0.1
	}
	return &Worker{
		source:  src,
		engine:  engine,
		extr:    extr,
		machine: NewMachine(),
		store:   st,
		notif:   notif,
		opts:    opts,
	}
}

// Run executes the capture loop until ctx is canceled or an
// unrecoverable error occurs. The current tick always completes before
// Run returns.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.checkResolution(); err != nil {
		w.notif.Error(err.Error())
		return err
	}

	session, err := w.store.StartSession(w.opts.SessionRegion)
	if err != nil {
		err = fmt.Errorf("start capture session: %w", err)
		w.notif.Error(err.Error())
		return err
	}
	w.notif.Status("Ready - click through your goods in-game")

	var runErr error
	defer func() {
		status := model.SessionCompleted
		errMsg := ""
		if runErr != nil {
			status = model.SessionError
			errMsg = runErr.Error()
		}
		if err := w.store.EndSession(session.ID, status, errMsg); err != nil {
			log.Printf("[ERROR] end session: %v", err)
		}
		w.notif.Status("Capture session ended")
	}()

	interval := time.Second / time.Duration(w.opts.FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	persistFailures := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		now := time.Now()
		obs := w.observe(now)
		res := w.machine.ProcessTick(obs, now)

		if res.TimedOut != "" {
			w.notif.Status(fmt.Sprintf("Timed out waiting for a friend price for %s", res.TimedOut))
		}
		if res.Status != "" {
			w.notif.Status(res.Status)
		}
		if res.Reading == nil {
			continue
		}

		res.Reading.SessionID = session.ID
		if _, err := w.store.SaveReading(res.Reading); err != nil {
			persistFailures++
			log.Printf("[WARN] save reading (%d/%d): %v", persistFailures, maxPersistFailures, err)
			if persistFailures >= maxPersistFailures {
				runErr = fmt.Errorf("persistence failing repeatedly, stopping capture: %w", err)
				w.notif.Error(runErr.Error())
				return runErr
			}
			continue
		}
		persistFailures = 0
		w.captureCount++
		w.notif.CaptureCount(w.captureCount)
		w.notif.ReadingCaptured(res.Reading)
	}
}

// observe grabs one frame and turns it into a classified observation.
// Any transient failure degrades to an unclassified observation; a bad
// frame must never kill the loop.
func (w *Worker) observe(now time.Time) model.Observation {
	none := model.Observation{Kind: model.Unclassified}

	frame, err := w.source.Capture()
	if err != nil {
		w.diag(now, "capture frame: %v", err)
		return none
	}
	if frame == nil {
		return none
	}

	b := frame.Bounds()
	if b.Dx() != w.lastFrameW || b.Dy() != w.lastFrameH {
		w.scaledROIs = ocr.ScaleROIs(w.opts.ROIs,
			w.opts.ReferenceWidth, w.opts.ReferenceHeight, b.Dx(), b.Dy())
		w.lastFrameW, w.lastFrameH = b.Dx(), b.Dy()
	}

	results := w.engine.Recognize(frame, w.scaledROIs)
	raw := make(map[string]string, len(results))
	for name, r := range results {
		if r.Err != nil {
			w.diag(now, "region %s: %v", name, r.Err)
			continue
		}
		raw[name] = r.Text
	}

	return w.extr.Classify(w.extr.FromOCR(raw))
}

// checkResolution verifies the source against the reference resolution
// so misconfigured windows fail loudly instead of producing garbage.
func (w *Worker) checkResolution() error {
	actualW, actualH, err := w.source.Resolution()
	if err != nil {
		return fmt.Errorf("query capture resolution: %w", err)
	}
	refW, refH := w.opts.ReferenceWidth, w.opts.ReferenceHeight
	if refW <= 0 || refH <= 0 {
		return nil
	}
	dw := math.Abs(float64(actualW-refW)) / float64(refW)
	dh := math.Abs(float64(actualH-refH)) / float64(refH)
	if dw > w.opts.ResolutionTolerance || dh > w.opts.ResolutionTolerance {
		return fmt.Errorf("screen resolution is %dx%d, expected %dx%d (+-%.0f%%); set the game to the reference resolution or recalibrate the regions",
			actualW, actualH, refW, refH, w.opts.ResolutionTolerance*100)
	}
	return nil
}

func (w *Worker) diag(now time.Time, format string, args ...interface{}) {
	if now.Sub(w.lastDiagAt) < diagInterval {
		return
	}
	w.lastDiagAt = now
	log.Printf("[WARN] "+format, args...)
}
