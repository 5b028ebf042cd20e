package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketTracker/internal/capture"
	"MarketTracker/internal/config"
	"MarketTracker/internal/extractor"
	"MarketTracker/internal/model"
	"MarketTracker/internal/notifier"
	"MarketTracker/internal/ocr"
	"MarketTracker/internal/scheduler"
	"MarketTracker/internal/store"
)

// shutdownGrace bounds how long we wait for the capture loop to finish
// its current tick after a stop signal.
const shutdownGrace = 3 * time.Second

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] MarketTracker starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Init OCR engine
	engine, err := ocr.NewTesseractEngine(cfg.OCR.Language)
	if err != nil {
		log.Fatalf("[FATAL] init OCR engine: %v", err)
	}
	defer engine.Close()

	// Init frame source
	source, err := capture.NewDisplaySource(cfg.Capture.Display)
	if err != nil {
		log.Fatalf("[FATAL] init frame source: %v", err)
	}
	defer source.Close()

	// Notifications go to the log and to any attached UI consumer.
	events := notifier.NewChannelNotifier(64)
	notif := notifier.Tee{notifier.NewLogNotifier(), events}

	// Init capture worker
	worker := capture.NewWorker(source, engine, extractor.New(), st, notif, capture.Options{
		FPS:                 cfg.Capture.FPS,
		ReferenceWidth:      cfg.Capture.ReferenceWidth,
		ReferenceHeight:     cfg.Capture.ReferenceHeight,
		ResolutionTolerance: cfg.Capture.ResolutionTolerance,
		ROIs:                cfg.ROIs,
		SessionRegion:       model.Region(cfg.Session.Region),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(st, notif)
	if err := sched.Register(cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Run capture loop
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	if os.Getenv("RUN_DIGEST_ON_START") == "true" {
		go sched.RunDigestNow()
	}

	log.Println("[INFO] MarketTracker is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal or worker failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
		select {
		case <-done:
		case <-time.After(shutdownGrace):
			log.Println("[WARN] capture loop did not stop within grace period")
		}
	case err := <-done:
		if err != nil {
			log.Printf("[ERROR] capture loop stopped: %v", err)
		}
	}

	log.Println("[INFO] MarketTracker stopped")
}
