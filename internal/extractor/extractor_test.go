package extractor

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1,234 HZ", 1234, true},
		{"Price: 9,999", 9999, true},
		{"3680", 3680, true},
		{"1446", 1446, true},
		{"", 0, false},
		{"no digits here", 0, false},
		{"◆ 2,050", 2050, true},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParsePrice(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParsePercentage(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"+40.5%", 40.5, true},
		{"-15.2%", -15.2, true},
		{"80.9%", 80.9, true},
		{"12%", 12, true},
		{"40.5", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePercentage(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParsePercentage(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Owned 138", 138},
		{"owned 42", 42},
		{"Owned: 7", 7},
		{"x12 in stock", 12},
		{"no numbers", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParseQuantity(tt.in); got != tt.want {
			t.Errorf("ParseQuantity(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMatchProductName_ExactIsIdempotent(t *testing.T) {
	e := New()
	for _, name := range KnownProducts {
		if got := e.MatchProductName(name); got != name {
			t.Errorf("MatchProductName(%q) = %q, want same string back", name, got)
		}
	}
}

func TestMatchProductName_RejectsNumeric(t *testing.T) {
	e := New()
	for _, in := range []string{"1446", "1,446", "9 999", "+40.5"} {
		if got := e.MatchProductName(in); got != "" {
			t.Errorf("MatchProductName(%q) = %q, want empty (numeric reject)", in, got)
		}
	}
}

func TestMatchProductName_FuzzyCorrection(t *testing.T) {
	e := New()
	tests := []struct {
		in   string
		want string
	}{
		{"Wuling Frozen Pear5", "Wuling Frozen Pears"},
		{"Musbeast Scrimshaw Dangle", "Musbeast Scrimshaw Dangles"},
		{"wuxia movies", "Wuxia Movies"},
		{"Lungmen  Freshwater", "Lungmen Freshwater"},
	}
	for _, tt := range tests {
		if got := e.MatchProductName(tt.in); got != tt.want {
			t.Errorf("MatchProductName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchProductName_UnknownPassesThrough(t *testing.T) {
	e := New()
	if got := e.MatchProductName("  Mysterious Glowing Orb  "); got != "Mysterious Glowing Orb" {
		t.Errorf("unknown product should pass through cleaned, got %q", got)
	}
	// Too short to be a plausible new product.
	if got := e.MatchProductName("ab"); got != "" {
		t.Errorf("short garbage should be rejected, got %q", got)
	}
}

func TestRegionFor(t *testing.T) {
	e := New()
	if r := e.RegionFor("Wuling Frozen Pears"); r != "wuling" {
		t.Errorf("expected wuling, got %s", r)
	}
	if r := e.RegionFor("Valley Specialty"); r != "valley" {
		t.Errorf("expected valley, got %s", r)
	}
	// Unknown names default to wuling.
	if r := e.RegionFor("Mysterious Glowing Orb"); r != "wuling" {
		t.Errorf("expected default wuling, got %s", r)
	}
}
