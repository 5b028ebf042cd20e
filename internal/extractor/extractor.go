// Package extractor turns raw per-region OCR text into typed candidate
// readings and classifies them by screen shape.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"MarketTracker/internal/model"

	"github.com/pmezard/go-difflib/difflib"
)

// ROI names shared with the OCR engine and config.
const (
	ROIProductName   = "product_name"
	ROILocalPrice    = "local_price"
	ROIAverageCost   = "average_cost"
	ROIQuantityOwned = "quantity_owned"
	ROIFriendPrice   = "friend_price"
	ROIVsLocal       = "vs_local"
	ROIVsOwned       = "vs_owned"
)

// Fuzzy name matching thresholds. A catalog name is accepted when its
// matching-blocks ratio against the cleaned text reaches matchCutoff;
// the winner is then re-scored against the uncleaned text and must
// clear weakMatchFloor, otherwise the raw text is kept to avoid false
// corrections.
const (
	matchCutoff    = 0.6
	weakMatchFloor = 0.5
)

var (
	quantityLabelRe = regexp.MustCompile(`(?i)owned\s*(\d+)`)
	firstNumberRe   = regexp.MustCompile(`\d+`)
	percentRe       = regexp.MustCompile(`([+-]?\d+\.?\d*)%`)
)

// Extractor normalizes OCR text against a product catalog.
type Extractor struct {
	known   []string
	knownSet map[string]struct{}
	regions map[string]model.Region
}

// New creates an Extractor over the default product catalog.
func New() *Extractor {
	return NewWithCatalog(KnownProducts, ProductRegions)
}

// NewWithCatalog creates an Extractor over a custom catalog.
func NewWithCatalog(products []string, regions map[string]model.Region) *Extractor {
	set := make(map[string]struct{}, len(products))
	for _, p := range products {
		set[p] = struct{}{}
	}
	return &Extractor{known: products, knownSet: set, regions: regions}
}

// IsKnown reports whether name is in the product catalog.
func (e *Extractor) IsKnown(name string) bool {
	_, ok := e.knownSet[name]
	return ok
}

// RegionFor looks up a product's market; unknown names default to wuling.
func (e *Extractor) RegionFor(name string) model.Region {
	if r, ok := e.regions[name]; ok {
		return r
	}
	lower := strings.ToLower(name)
	if strings.Contains(lower, "valley") {
		return model.RegionValley
	}
	return model.RegionWuling
}

// ParsePrice strips everything but digits and parses the remainder.
// Returns false when no digits survive.
func ParsePrice(text string) (int, bool) {
	digits := onlyDigits(text)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseQuantity finds a labeled "Owned N" count, falling back to the
// first number anywhere in the text. Absent means 0.
func ParseQuantity(text string) int {
	if m := quantityLabelRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	if m := firstNumberRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n
		}
	}
	return 0
}

// ParsePercentage matches values like "+40.5%" or "-15.2%", sign preserved.
func ParsePercentage(text string) (float64, bool) {
	m := percentRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// MatchProductName resolves raw OCR text to a catalog name. Purely
// numeric text is rejected outright (the price region bled into the
// name region). An exact match wins; otherwise the closest catalog name
// is used when similar enough, and unknown-but-plausible text passes
// through so new products can still be tracked.
func (e *Extractor) MatchProductName(raw string) string {
	cleaned := cleanName(raw)
	if cleaned == "" {
		return ""
	}
	if onlyDigits(cleaned) != "" && isNumericOnly(cleaned) {
		return ""
	}
	if e.IsKnown(cleaned) {
		return cleaned
	}

	target := splitChars(strings.ToLower(cleaned))
	bestName := ""
	bestScore := 0.0
	for _, known := range e.known {
		m := difflib.NewMatcher(target, splitChars(strings.ToLower(known)))
		if m.QuickRatio() < matchCutoff {
			continue
		}
		if r := m.Ratio(); r >= matchCutoff && r > bestScore {
			bestScore = r
			bestName = known
		}
	}
	if bestName != "" && similarity(raw, bestName) >= weakMatchFloor {
		return bestName
	}

	if len([]rune(cleaned)) > 3 {
		return cleaned
	}
	return ""
}

// FromOCR builds a candidate from raw per-region text. Missing or
// unreadable regions simply leave their fields absent.
func (e *Extractor) FromOCR(raw map[string]string) model.Candidate {
	c := model.Candidate{}

	c.Name = e.MatchProductName(raw[ROIProductName])
	if c.Name != "" {
		c.Region = e.RegionFor(c.Name)
	}
	if v, ok := ParsePrice(raw[ROILocalPrice]); ok {
		c.LocalPrice = v
	}
	if v, ok := ParsePrice(raw[ROIFriendPrice]); ok {
		c.FriendPrice = v
	}
	if v, ok := ParsePrice(raw[ROIAverageCost]); ok {
		c.AverageCost = v
	}
	c.QuantityOwned = ParseQuantity(raw[ROIQuantityOwned])
	if v, ok := ParsePercentage(raw[ROIVsLocal]); ok {
		c.VsLocalPct = &v
	}
	if v, ok := ParsePercentage(raw[ROIVsOwned]); ok {
		c.VsOwnedPct = &v
	}
	return c
}

// similarity is the matching-blocks ratio of two strings, lowercased.
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(splitChars(strings.ToLower(a)), splitChars(strings.ToLower(b)))
	return m.Ratio()
}

func cleanName(raw string) string {
	s := strings.ReplaceAll(raw, "[pkg]", "")
	return strings.Join(strings.Fields(s), " ")
}

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// isNumericOnly reports whether the text is a number plus separators,
// with no letters at all.
func isNumericOnly(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == ',' || r == '.' || r == ' ' || r == '+' || r == '-':
		default:
			return false
		}
	}
	return true
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
