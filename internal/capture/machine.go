// Package capture runs the screen polling loop and the two-screen
// stitching state machine that turns classified observations into
// complete price readings.
package capture

import (
	"fmt"
	"time"

	"MarketTracker/internal/model"
)

// PendingTTL bounds how long a main-screen candidate waits for its
// friend price before it is abandoned.
const PendingTTL = 15 * time.Second

// DedupWindow suppresses re-saving the same (product, local price)
// while OCR keeps re-reading an unchanged screen.
const DedupWindow = 2 * time.Second

// TickResult is everything a single state-machine step can produce.
type TickResult struct {
	Reading   *model.PriceReading // complete stitched reading to persist, or nil
	Status    string              // user-visible status notice, empty if none
	TimedOut  string              // product name whose pending memory expired, empty if none
	Duplicate bool                // a stitch happened but was suppressed by the dedup gate
}

// Machine is the capture state machine. It holds at most one pending
// main-screen candidate and is only ever touched from the capture
// loop's goroutine; all communication out is via TickResult values.
type Machine struct {
	pending   *model.Candidate
	expiry    time.Time
	lastSaved map[string]time.Time
}

// NewMachine creates a machine in the idle state.
func NewMachine() *Machine {
	return &Machine{lastSaved: make(map[string]time.Time)}
}

// Pending returns the product currently awaiting a friend price, or "".
func (m *Machine) Pending() string {
	if m.pending == nil {
		return ""
	}
	return m.pending.Name
}

// Reset clears the pending slot and the dedup table.
func (m *Machine) Reset() {
	m.pending = nil
	m.lastSaved = make(map[string]time.Time)
}

// ProcessTick advances the machine by one observation. Expiry is always
// swept first, so a friend price arriving after the TTL finds an idle
// machine and is dropped.
func (m *Machine) ProcessTick(obs model.Observation, now time.Time) TickResult {
	var res TickResult

	if m.pending != nil && !now.Before(m.expiry) {
		res.TimedOut = m.pending.Name
		m.pending = nil
	}

	switch obs.Kind {
	case model.MainScreen:
		c := obs.Candidate
		if m.pending != nil && m.pending.Name != c.Name {
			res.Status = fmt.Sprintf("Scanned %s @ %d %s (replaced pending %s) - open a friend's price",
				c.Name, c.LocalPrice, c.Region.Currency(), m.pending.Name)
		} else {
			res.Status = fmt.Sprintf("Scanned %s @ %d %s - open a friend's price",
				c.Name, c.LocalPrice, c.Region.Currency())
		}
		m.pending = &c
		m.expiry = now.Add(PendingTTL)

	case model.FriendScreen:
		if m.pending == nil {
			// Nothing to attach the friend price to; not actionable.
			return res
		}
		reading := m.stitch(obs.Candidate, now)
		m.pending = nil

		key := dedupKey(reading.ProductName, reading.LocalPrice)
		if last, ok := m.lastSaved[key]; ok && now.Sub(last) < DedupWindow {
			res.Duplicate = true
			return res
		}
		m.pruneDedup(now)
		m.lastSaved[key] = now
		res.Reading = reading
	}

	return res
}

// stitch copies the friend price (and the friend screen's comparison
// percentages, when present) onto the pending main-screen candidate.
func (m *Machine) stitch(friend model.Candidate, now time.Time) *model.PriceReading {
	p := m.pending
	r := &model.PriceReading{
		ProductName:   p.Name,
		Region:        p.Region,
		LocalPrice:    p.LocalPrice,
		FriendPrice:   friend.FriendPrice,
		AverageCost:   p.AverageCost,
		QuantityOwned: p.QuantityOwned,
		VsLocalPct:    p.VsLocalPct,
		VsOwnedPct:    p.VsOwnedPct,
		Timestamp:     now,
	}
	if friend.VsLocalPct != nil {
		r.VsLocalPct = friend.VsLocalPct
	}
	if friend.VsOwnedPct != nil {
		r.VsOwnedPct = friend.VsOwnedPct
	}
	return r
}

func (m *Machine) pruneDedup(now time.Time) {
	for k, t := range m.lastSaved {
		if now.Sub(t) >= DedupWindow {
			delete(m.lastSaved, k)
		}
	}
}

func dedupKey(name string, localPrice int) string {
	return fmt.Sprintf("%s_%d", name, localPrice)
}
