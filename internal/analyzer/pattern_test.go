package analyzer

import (
	"math"
	"testing"

	"MarketTracker/internal/model"
)

func localOnly(name string, prices ...int) []model.PriceReading {
	out := make([]model.PriceReading, 0, len(prices))
	for _, p := range prices {
		out = append(out, model.PriceReading{ProductName: name, LocalPrice: p})
	}
	return out
}

func TestAnalyzePriceHistory_Trend(t *testing.T) {
	tests := []struct {
		name   string
		prices []int
		want   string
	}{
		{"rising", []int{100, 100, 100, 150, 150, 150}, model.TrendRising},
		{"falling", []int{150, 150, 150, 100, 100, 100}, model.TrendFalling},
		{"stable", []int{100, 102, 98, 101, 99, 100}, model.TrendStable},
		{"just under rising cutoff", []int{100, 100, 100, 110, 110, 110}, model.TrendStable},
		{"too short", []int{100, 150}, model.TrendInsufficient},
	}
	for _, tt := range tests {
		p, err := AnalyzePriceHistory(localOnly("X", tt.prices...))
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if p.Trend != tt.want {
			t.Errorf("%s: trend = %s, want %s", tt.name, p.Trend, tt.want)
		}
	}
}

func TestAnalyzePriceHistory_Stats(t *testing.T) {
	p, err := AnalyzePriceHistory(localOnly("X", 100, 200, 300))
	if err != nil {
		t.Fatal(err)
	}
	if p.AvgPrice != 200 {
		t.Errorf("avg = %f", p.AvgPrice)
	}
	if math.Abs(p.Volatility-100) > 1e-9 {
		t.Errorf("volatility = %f, want 100 (sample stdev)", p.Volatility)
	}
	if p.ProductName != "X" {
		t.Errorf("product = %q", p.ProductName)
	}
}

func TestAnalyzePriceHistory_SinglePointHasZeroVolatility(t *testing.T) {
	p, err := AnalyzePriceHistory(localOnly("X", 500))
	if err != nil {
		t.Fatal(err)
	}
	if p.Volatility != 0 {
		t.Errorf("volatility = %f, want 0 for a single point", p.Volatility)
	}
	if p.Trend != model.TrendInsufficient {
		t.Errorf("trend = %s", p.Trend)
	}
}

func TestAnalyzePriceHistory_SpikeFrequency(t *testing.T) {
	// mean of {100,100,100,100,600} is 200; only 600 exceeds 1.5x.
	p, err := AnalyzePriceHistory(localOnly("X", 100, 100, 100, 100, 600))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.SpikeFrequency-0.2) > 1e-9 {
		t.Errorf("spike frequency = %f, want 0.2", p.SpikeFrequency)
	}

	flat, err := AnalyzePriceHistory(localOnly("X", 100, 100, 100))
	if err != nil {
		t.Fatal(err)
	}
	if flat.SpikeFrequency != 0 {
		t.Errorf("flat series spike frequency = %f", flat.SpikeFrequency)
	}
}

func TestAnalyzePriceHistory_SkipsMissingLocalPrices(t *testing.T) {
	readings := localOnly("X", 100, 0, 300)
	p, err := AnalyzePriceHistory(readings)
	if err != nil {
		t.Fatal(err)
	}
	if p.AvgPrice != 200 {
		t.Errorf("avg = %f, want zero prices excluded", p.AvgPrice)
	}
}

func TestAnalyzePriceHistory_Errors(t *testing.T) {
	if _, err := AnalyzePriceHistory(nil); err == nil {
		t.Error("expected an error on empty input")
	}
	if _, err := AnalyzePriceHistory(localOnly("X", 0, 0)); err == nil {
		t.Error("expected an error when no reading has a local price")
	}
}
