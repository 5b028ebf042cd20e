package analyzer

import (
	"errors"
	"math"

	"MarketTracker/internal/model"
)

// spikeThreshold marks a local price as a spike when it exceeds this
// multiple of the overall mean.
const spikeThreshold = 1.5

// AnalyzePriceHistory detects patterns over a chronological list of one
// product's readings.
func AnalyzePriceHistory(readings []model.PriceReading) (*model.PricePattern, error) {
	if len(readings) == 0 {
		return nil, errors.New("no readings provided")
	}

	var prices []float64
	for _, r := range readings {
		if r.LocalPrice > 0 {
			prices = append(prices, float64(r.LocalPrice))
		}
	}
	if len(prices) == 0 {
		return nil, errors.New("no local prices in readings")
	}

	avg := mean(prices)

	spikes := 0
	for _, p := range prices {
		if p > avg*spikeThreshold {
			spikes++
		}
	}

	return &model.PricePattern{
		ProductName:    readings[0].ProductName,
		AvgPrice:       avg,
		Volatility:     sampleStdev(prices),
		Trend:          trend(prices),
		SpikeFrequency: float64(spikes) / float64(len(prices)),
	}, nil
}

// trend compares the mean of the last three prices to the mean of the
// first three; a move beyond 10% either way counts as a trend.
func trend(prices []float64) string {
	if len(prices) < 3 {
		return model.TrendInsufficient
	}
	older := mean(prices[:3])
	recent := mean(prices[len(prices)-3:])
	switch {
	case recent > older*1.1:
		return model.TrendRising
	case recent < older*0.9:
		return model.TrendFalling
	default:
		return model.TrendStable
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sampleStdev returns the sample standard deviation, 0 when fewer than
// two points.
func sampleStdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
