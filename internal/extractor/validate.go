package extractor

import "MarketTracker/internal/model"

// Plausibility windows for OCR-read prices. Out-of-range values are
// cleared to absent rather than failing the whole candidate, so partial
// data survives a single garbled region.
const (
	localPriceMin  = 10
	localPriceMax  = 9500
	friendPriceMin = 10
	friendPriceMax = 9000

	// Friend-screen shape uses a narrower exclusive band to reject UI
	// chrome (percentages, IDs) that OCR can mistake for a price.
	friendScreenFloor = 100
	friendScreenCeil  = 10000
)

// Sanitize clears implausible numeric fields on a copy of the candidate.
func Sanitize(c model.Candidate) model.Candidate {
	if c.LocalPrice != 0 && (c.LocalPrice < localPriceMin || c.LocalPrice > localPriceMax) {
		c.LocalPrice = 0
	}
	if c.FriendPrice != 0 && (c.FriendPrice < friendPriceMin || c.FriendPrice > friendPriceMax) {
		c.FriendPrice = 0
	}
	return c
}

// Classify sanitizes the candidate and decides which screen it came
// from. Main screen requires a recognized product name with a local
// price; friend screen requires a friend price inside the exclusive
// (100, 10000) band. Anything else is unclassified and the state
// machine will ignore it.
func (e *Extractor) Classify(c model.Candidate) model.Observation {
	s := Sanitize(c)

	if s.Name != "" && e.IsKnown(s.Name) && s.LocalPrice > 0 {
		return model.Observation{Kind: model.MainScreen, Candidate: s}
	}
	if s.FriendPrice > friendScreenFloor && s.FriendPrice < friendScreenCeil {
		return model.Observation{Kind: model.FriendScreen, Candidate: s}
	}
	return model.Observation{Kind: model.Unclassified, Candidate: s}
}
