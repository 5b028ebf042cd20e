// Package scheduler runs periodic analysis tasks over the stored
// readings, independent of the capture loop.
package scheduler

import (
	"fmt"
	"log"

	"MarketTracker/internal/analyzer"
	"MarketTracker/internal/notifier"
	"MarketTracker/internal/store"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Store    store.Store
	Notifier notifier.Notifier
}

// NewScheduler creates a new Scheduler.
func NewScheduler(st store.Store, n notifier.Notifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Store:    st,
		Notifier: n,
	}
}

// Register registers the daily digest task.
func (s *Scheduler) Register(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the digest task immediately (manual trigger).
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running daily digest")
	readings, err := s.Store.LatestReadingsToday()
	if err != nil {
		log.Printf("[ERROR] digest query: %v", err)
		s.Notifier.Error(fmt.Sprintf("Daily digest failed: %v", err))
		return
	}

	opps := analyzer.RankOpportunities(readings)
	summary := analyzer.Summarize(opps)
	s.Notifier.Status(notifier.FormatDigest(opps, summary))

	highs, err := s.Store.AllTimeHighs()
	if err != nil {
		log.Printf("[ERROR] all-time highs query: %v", err)
		return
	}
	s.Notifier.Status(notifier.FormatAllTimeHighs(highs))
}
