package store

import (
	"path/filepath"
	"testing"
	"time"

	"MarketTracker/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveReading_ComputesDifferenceAndTracksHigh(t *testing.T) {
	s := openTestStore(t)

	r := &model.PriceReading{
		ProductName:   "Musbeast Scrimshaw Dangles",
		Region:        model.RegionWuling,
		LocalPrice:    1446,
		FriendPrice:   3680,
		AverageCost:   1067,
		QuantityOwned: 138,
		Timestamp:     time.Now().Add(-time.Minute),
	}
	id, err := s.SaveReading(r)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == 0 || r.ID != id {
		t.Errorf("id = %d, reading.ID = %d", id, r.ID)
	}
	if r.AbsoluteDifference != 2234 {
		t.Errorf("difference = %d, want 2234", r.AbsoluteDifference)
	}

	highs, err := s.AllTimeHighs()
	if err != nil {
		t.Fatalf("highs: %v", err)
	}
	if len(highs) != 1 || highs[0].HighestDifferenceEver != 2234 {
		t.Fatalf("all-time highs = %+v", highs)
	}

	// A smaller difference must not move the high.
	if _, err := s.SaveReading(&model.PriceReading{
		ProductName: "Musbeast Scrimshaw Dangles",
		Region:      model.RegionWuling,
		LocalPrice:  1500,
		FriendPrice: 2000,
		Timestamp:   time.Now(),
	}); err != nil {
		t.Fatalf("save second: %v", err)
	}
	highs, _ = s.AllTimeHighs()
	if highs[0].HighestDifferenceEver != 2234 {
		t.Errorf("high moved to %d, want 2234 kept", highs[0].HighestDifferenceEver)
	}

	// A larger one must replace it.
	if _, err := s.SaveReading(&model.PriceReading{
		ProductName: "Musbeast Scrimshaw Dangles",
		Region:      model.RegionWuling,
		LocalPrice:  1000,
		FriendPrice: 4000,
		Timestamp:   time.Now(),
	}); err != nil {
		t.Fatalf("save third: %v", err)
	}
	highs, _ = s.AllTimeHighs()
	if highs[0].HighestDifferenceEver != 3000 {
		t.Errorf("high = %d, want 3000", highs[0].HighestDifferenceEver)
	}
}

func TestSaveReading_PartialPricesLeaveDifferenceUnset(t *testing.T) {
	s := openTestStore(t)

	r := &model.PriceReading{
		ProductName: "Wuxia Movies",
		Region:      model.RegionWuling,
		LocalPrice:  500,
		Timestamp:   time.Now(),
	}
	if _, err := s.SaveReading(r); err != nil {
		t.Fatalf("save: %v", err)
	}
	if r.AbsoluteDifference != 0 {
		t.Errorf("difference = %d, want unset without a friend price", r.AbsoluteDifference)
	}

	highs, err := s.AllTimeHighs()
	if err != nil {
		t.Fatal(err)
	}
	if len(highs) != 0 {
		t.Errorf("expected no all-time highs, got %+v", highs)
	}
}

func TestLatestReadingsToday(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	save := func(name string, local, friend int, ts time.Time) {
		t.Helper()
		if _, err := s.SaveReading(&model.PriceReading{
			ProductName: name,
			Region:      model.RegionWuling,
			LocalPrice:  local,
			FriendPrice: friend,
			Timestamp:   ts,
		}); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	save("Sargon Spice", 800, 1500, now.Add(-3*time.Minute)) // stale, superseded
	save("Sargon Spice", 800, 2000, now.Add(-2*time.Minute)) // diff 1200
	save("Ursus Timber", 300, 3000, now.Add(-2*time.Minute)) // diff 2700
	save("Yanese Silks", 400, 900, now.Add(-time.Minute))    // diff 500

	got, err := s.LatestReadingsToday()
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d readings, want one per product", len(got))
	}
	if got[0].ProductName != "Ursus Timber" {
		t.Errorf("first = %s, want largest difference first", got[0].ProductName)
	}
	for _, r := range got {
		if r.ProductName == "Sargon Spice" && r.FriendPrice != 2000 {
			t.Errorf("Sargon Spice friend = %d, want the newest reading", r.FriendPrice)
		}
	}
}

func TestHistoryIsChronological(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	for i, friend := range []int{2000, 2200, 1800} {
		if _, err := s.SaveReading(&model.PriceReading{
			ProductName: "Higashi Tea Set",
			Region:      model.RegionWuling,
			LocalPrice:  1000,
			FriendPrice: friend,
			Timestamp:   now.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	hist, err := s.History("Higashi Tea Set", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 3 {
		t.Fatalf("got %d readings", len(hist))
	}
	for i, want := range []int{2000, 2200, 1800} {
		if hist[i].FriendPrice != want {
			t.Errorf("hist[%d].FriendPrice = %d, want %d", i, hist[i].FriendPrice, want)
		}
	}

	// The since bound excludes older rows.
	recent, err := s.History("Higashi Tea Set", now.Add(90*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].FriendPrice != 1800 {
		t.Errorf("bounded history = %+v", recent)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := openTestStore(t)

	sess, err := s.StartSession(model.RegionWuling)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if sess.ID == 0 || sess.PublicID == "" || sess.Status != model.SessionActive {
		t.Fatalf("session = %+v", sess)
	}

	r := &model.PriceReading{
		ProductName: "Sami Herbal Mix",
		Region:      model.RegionWuling,
		LocalPrice:  600,
		FriendPrice: 1100,
		SessionID:   sess.ID,
		Timestamp:   time.Now(),
	}
	if _, err := s.SaveReading(r); err != nil {
		t.Fatalf("save: %v", err)
	}

	var goods int
	if err := s.db.QueryRow(`SELECT goods_captured FROM capture_sessions WHERE id=?`, sess.ID).Scan(&goods); err != nil {
		t.Fatalf("query session: %v", err)
	}
	if goods != 1 {
		t.Errorf("goods_captured = %d, want 1", goods)
	}

	if err := s.EndSession(sess.ID, model.SessionCompleted, ""); err != nil {
		t.Fatalf("end: %v", err)
	}
	var status string
	var endTime int64
	if err := s.db.QueryRow(`SELECT status, COALESCE(end_time, 0) FROM capture_sessions WHERE id=?`, sess.ID).Scan(&status, &endTime); err != nil {
		t.Fatalf("query session: %v", err)
	}
	if status != model.SessionCompleted || endTime == 0 {
		t.Errorf("session after end: status=%s end_time=%d", status, endTime)
	}
}

func TestPriceStats(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	for i, pair := range [][2]int{{1000, 2000}, {1200, 2600}, {800, 0}} {
		if _, err := s.SaveReading(&model.PriceReading{
			ProductName: "Victoria Crown",
			Region:      model.RegionValley,
			LocalPrice:  pair[0],
			FriendPrice: pair[1],
			Timestamp:   now.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	stats, err := s.PriceStats("Victoria Crown")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalReadings != 3 {
		t.Errorf("total = %d", stats.TotalReadings)
	}
	if stats.AvgLocalPrice != 1000 {
		t.Errorf("avg local = %f", stats.AvgLocalPrice)
	}
	if stats.AvgFriendPrice != 2300 {
		t.Errorf("avg friend = %f, want partial readings excluded", stats.AvgFriendPrice)
	}
	if stats.AvgDifference != 1200 || stats.MaxDifference != 1400 || stats.MinDifference != 1000 {
		t.Errorf("diff stats = %+v", stats)
	}

	empty, err := s.PriceStats("Never Seen")
	if err != nil {
		t.Fatal(err)
	}
	if empty.TotalReadings != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}
