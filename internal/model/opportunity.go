package model

// TradeOpportunity is a ranked trade, recomputed on demand and never
// persisted.
type TradeOpportunity struct {
	ProductName          string
	Region               Region
	LocalPrice           int
	FriendPrice          int
	AbsoluteProfit       int
	QuantityOwned        int
	PotentialTotalProfit int
	Rank                 int
	Recommendation       string
}

// OpportunitySummary aggregates one ranking run.
type OpportunitySummary struct {
	TotalOpportunities     int
	BestProfit             int
	AverageProfit          float64
	TotalPotentialProfit   int
	ExcellentOpportunities int // profit > 2000
	GoodOpportunities      int // 1000 < profit <= 2000
}

// Trend labels for a product's local price history.
const (
	TrendRising       = "rising"
	TrendFalling      = "falling"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient_data"
)

// PricePattern describes the detected behavior of one product's prices.
type PricePattern struct {
	ProductName    string
	AvgPrice       float64
	Volatility     float64 // sample standard deviation
	Trend          string
	SpikeFrequency float64 // fraction of readings above 1.5x the mean
}

// Hold/sell decisions.
const (
	DecisionSell    = "sell"
	DecisionHold    = "hold"
	DecisionNeutral = "neutral"
	DecisionUnknown = "unknown"
)

// HoldAdvice is the outcome of comparing a current reading against a
// product's history.
type HoldAdvice struct {
	Decision   string
	Reason     string
	Confidence string // "high", "medium", "low", empty when unknown
}
