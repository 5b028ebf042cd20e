package model

import "time"

// Region identifies the in-game market a product belongs to.
type Region string

const (
	RegionWuling Region = "wuling"
	RegionValley Region = "valley"
)

// Currency returns the currency symbol the game shows for this region.
func (r Region) Currency() string {
	if r == RegionValley {
		return "◆"
	}
	return "HZ"
}

// Rect is a named OCR region within a captured frame, in pixels.
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Scale rescales the rect from a reference resolution to an actual one,
// linearly per axis.
func (r Rect) Scale(refW, refH, actualW, actualH int) Rect {
	if refW <= 0 || refH <= 0 {
		return r
	}
	sx := float64(actualW) / float64(refW)
	sy := float64(actualH) / float64(refH)
	return Rect{
		X: int(float64(r.X) * sx),
		Y: int(float64(r.Y) * sy),
		W: int(float64(r.W) * sx),
		H: int(float64(r.H) * sy),
	}
}

// Candidate holds the normalized fields extracted from one frame.
// Price fields use 0 for "absent"; valid prices are always >= 10.
type Candidate struct {
	Name          string
	Region        Region
	LocalPrice    int
	FriendPrice   int
	AverageCost   int
	QuantityOwned int
	VsLocalPct    *float64
	VsOwnedPct    *float64
}

// ObservationKind classifies which game screen a candidate came from.
type ObservationKind int

const (
	// Unclassified means the candidate matched neither screen shape.
	Unclassified ObservationKind = iota
	// MainScreen shows a product's name, local price, cost and quantity.
	MainScreen
	// FriendScreen shows a friend's offered price for the selected product.
	FriendScreen
)

func (k ObservationKind) String() string {
	switch k {
	case MainScreen:
		return "main"
	case FriendScreen:
		return "friend"
	default:
		return "unclassified"
	}
}

// Observation is a classified candidate, the state machine's input.
type Observation struct {
	Kind      ObservationKind
	Candidate Candidate
}

// PriceReading is a persisted price capture event. FriendPrice 0 means
// no friend price was seen; AbsoluteDifference is only meaningful when
// both prices are present.
type PriceReading struct {
	ID                 int64
	ProductName        string
	Region             Region
	LocalPrice         int
	FriendPrice        int
	AverageCost        int
	QuantityOwned      int
	VsLocalPct         *float64
	VsOwnedPct         *float64
	AbsoluteDifference int
	Timestamp          time.Time
	SessionID          int64
}

// ProfitPotential returns friend price minus local price, or false when
// either price is missing.
func (r *PriceReading) ProfitPotential() (int, bool) {
	if r.FriendPrice <= 0 || r.LocalPrice <= 0 {
		return 0, false
	}
	return r.FriendPrice - r.LocalPrice, true
}

// Product is a tradeable good, created lazily on first reading.
type Product struct {
	ID                    int64
	Name                  string
	Region                Region
	FirstSeen             time.Time
	HighestDifferenceEver int
	HighestDifferenceDate time.Time
}

// Capture session statuses.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionError     = "error"
)

// CaptureSession tracks one run of the capture loop.
type CaptureSession struct {
	ID            int64
	PublicID      string
	StartTime     time.Time
	EndTime       time.Time
	Region        Region
	GoodsCaptured int
	Status        string
	ErrorMessage  string
}

// DurationSeconds returns the session length, or false while still active.
func (s *CaptureSession) DurationSeconds() (float64, bool) {
	if s.EndTime.IsZero() {
		return 0, false
	}
	return s.EndTime.Sub(s.StartTime).Seconds(), true
}

// PriceStats summarizes all readings for one product.
type PriceStats struct {
	TotalReadings  int
	AvgLocalPrice  float64
	AvgFriendPrice float64
	MaxDifference  int
	MinDifference  int
	AvgDifference  float64
}
