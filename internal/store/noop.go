package store

import (
	"time"

	"MarketTracker/internal/model"
)

// NoopStore is used when no database is configured; captures are
// processed but nothing is persisted.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveReading(r *model.PriceReading) (int64, error) {
	if r.FriendPrice > 0 && r.LocalPrice > 0 {
		r.AbsoluteDifference = r.FriendPrice - r.LocalPrice
	}
	return 0, nil
}

func (n *NoopStore) StartSession(region model.Region) (*model.CaptureSession, error) {
	return &model.CaptureSession{StartTime: time.Now(), Region: region, Status: model.SessionActive}, nil
}

func (n *NoopStore) EndSession(int64, string, string) error { return nil }

func (n *NoopStore) LatestReadingsToday() ([]model.PriceReading, error) { return nil, nil }

func (n *NoopStore) History(string, time.Time) ([]model.PriceReading, error) { return nil, nil }

func (n *NoopStore) PriceStats(string) (*model.PriceStats, error) {
	return &model.PriceStats{}, nil
}

func (n *NoopStore) AllTimeHighs() ([]model.Product, error) { return nil, nil }

func (n *NoopStore) Close() error { return nil }
