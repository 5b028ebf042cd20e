// Package store persists products, price readings and capture sessions.
package store

import (
	"time"

	"MarketTracker/internal/model"
)

// Store is the persistence boundary of the capture pipeline. The
// capture loop is the sole writer of readings; ranking and analysis
// queries may run concurrently from other goroutines.
type Store interface {
	// SaveReading persists a reading, creating its product on first
	// sight, computing absolute_difference when both prices are
	// present, updating the product's all-time high, and bumping the
	// session's goods counter. Returns the new reading ID.
	SaveReading(r *model.PriceReading) (int64, error)

	StartSession(region model.Region) (*model.CaptureSession, error)
	EndSession(sessionID int64, status, errorMsg string) error

	// LatestReadingsToday returns the newest reading per product since
	// midnight UTC, ordered by absolute difference descending.
	LatestReadingsToday() ([]model.PriceReading, error)
	// History returns a product's readings since the given time, in
	// chronological order.
	History(productName string, since time.Time) ([]model.PriceReading, error)

	PriceStats(productName string) (*model.PriceStats, error)
	AllTimeHighs() ([]model.Product, error)

	Close() error
}
