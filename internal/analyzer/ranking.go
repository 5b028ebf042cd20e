// Package analyzer ranks trade opportunities and detects price patterns
// from stored readings.
package analyzer

import (
	"fmt"
	"sort"

	"MarketTracker/internal/model"
)

// Recommendation profit tiers, in currency units. Strict inequalities:
// a profit of exactly 2000 lands in the good tier, not the exceptional
// one.
const (
	tierExceptional = 2000
	tierGood        = 1000
	tierModerate    = 500
)

// RankOpportunities turns readings (typically the latest per product
// today) into ranked opportunities. Readings missing either price are
// excluded. Sort is stable descending by absolute profit, so ties keep
// input order.
func RankOpportunities(readings []model.PriceReading) []model.TradeOpportunity {
	opps := make([]model.TradeOpportunity, 0, len(readings))
	for _, r := range readings {
		profit, ok := r.ProfitPotential()
		if !ok {
			continue
		}
		total := profit
		if r.QuantityOwned > 0 {
			total = profit * r.QuantityOwned
		}
		opps = append(opps, model.TradeOpportunity{
			ProductName:          r.ProductName,
			Region:               r.Region,
			LocalPrice:           r.LocalPrice,
			FriendPrice:          r.FriendPrice,
			AbsoluteProfit:       profit,
			QuantityOwned:        r.QuantityOwned,
			PotentialTotalProfit: total,
			Recommendation:       recommendation(profit, r.QuantityOwned),
		})
	}

	sort.SliceStable(opps, func(i, j int) bool {
		return opps[i].AbsoluteProfit > opps[j].AbsoluteProfit
	})
	for i := range opps {
		opps[i].Rank = i + 1
	}
	return opps
}

// recommendation words the tier by whether the user holds stock (sell
// framing) or not (buy framing).
func recommendation(profit, quantityOwned int) string {
	if profit <= 0 {
		return "Avoid - No profit opportunity"
	}
	switch {
	case profit > tierExceptional:
		if quantityOwned > 0 {
			return "SELL NOW - Excellent opportunity!"
		}
		return "BUY - Exceptional profit potential"
	case profit > tierGood:
		if quantityOwned > 0 {
			return "Sell - Good opportunity"
		}
		return "Buy - Good profit potential"
	case profit > tierModerate:
		return "Consider - Moderate opportunity"
	default:
		return "Low priority - Small margin"
	}
}

// ShouldHoldOrSell compares the current reading's profit against the
// product's historical differences.
func ShouldHoldOrSell(current model.PriceReading, history []model.PriceReading) model.HoldAdvice {
	currentProfit, ok := current.ProfitPotential()
	if !ok {
		return model.HoldAdvice{Decision: model.DecisionUnknown, Reason: "Insufficient data"}
	}

	var diffs []float64
	for _, r := range history {
		if d, ok := r.ProfitPotential(); ok {
			diffs = append(diffs, float64(d))
		}
	}
	if len(diffs) == 0 {
		return model.HoldAdvice{Decision: model.DecisionUnknown, Reason: "No historical price data"}
	}

	avgDiff := mean(diffs)
	maxDiff := diffs[0]
	for _, d := range diffs[1:] {
		if d > maxDiff {
			maxDiff = d
		}
	}

	p := float64(currentProfit)
	switch {
	case p >= maxDiff*0.9:
		return model.HoldAdvice{
			Decision:   model.DecisionSell,
			Reason:     fmt.Sprintf("Near all-time high (%+d). Rare opportunity!", currentProfit),
			Confidence: "high",
		}
	case p > avgDiff*2:
		return model.HoldAdvice{
			Decision:   model.DecisionSell,
			Reason:     fmt.Sprintf("Well above average (%+d vs avg %+.0f)", currentProfit, avgDiff),
			Confidence: "medium",
		}
	case p < avgDiff*0.5:
		return model.HoldAdvice{
			Decision:   model.DecisionHold,
			Reason:     fmt.Sprintf("Below average (%+d vs avg %+.0f). Wait for a better price.", currentProfit, avgDiff),
			Confidence: "medium",
		}
	default:
		return model.HoldAdvice{
			Decision:   model.DecisionNeutral,
			Reason:     fmt.Sprintf("Average opportunity (%+d close to avg %+.0f)", currentProfit, avgDiff),
			Confidence: "low",
		}
	}
}

// Summarize aggregates a ranking run.
func Summarize(opps []model.TradeOpportunity) model.OpportunitySummary {
	s := model.OpportunitySummary{TotalOpportunities: len(opps)}
	if len(opps) == 0 {
		return s
	}
	var profitSum float64
	for _, o := range opps {
		if o.AbsoluteProfit > s.BestProfit {
			s.BestProfit = o.AbsoluteProfit
		}
		profitSum += float64(o.AbsoluteProfit)
		s.TotalPotentialProfit += o.PotentialTotalProfit
		if o.AbsoluteProfit > tierExceptional {
			s.ExcellentOpportunities++
		} else if o.AbsoluteProfit > tierGood {
			s.GoodOpportunities++
		}
	}
	s.AverageProfit = profitSum / float64(len(opps))
	return s
}
