package notifier

import (
	"fmt"
	"strings"

	"MarketTracker/internal/model"
)

// FormatReading renders a completed reading as one status line.
func FormatReading(r *model.PriceReading) string {
	if r.FriendPrice > 0 {
		return fmt.Sprintf("Captured %s [%s]: local %d, friend %d, diff %+d (owned %d)",
			r.ProductName, r.Region, r.LocalPrice, r.FriendPrice, r.AbsoluteDifference, r.QuantityOwned)
	}
	return fmt.Sprintf("Captured %s [%s]: local %d (owned %d)",
		r.ProductName, r.Region, r.LocalPrice, r.QuantityOwned)
}

// FormatDigest renders the daily opportunity report.
func FormatDigest(opps []model.TradeOpportunity, summary model.OpportunitySummary) string {
	var b strings.Builder
	b.WriteString("=== Daily trade digest ===\n")
	if len(opps) == 0 {
		b.WriteString("No complete readings today.\n")
		return b.String()
	}
	for _, o := range opps {
		fmt.Fprintf(&b, "#%d %s [%s]: local %d, friend %d, profit %+d",
			o.Rank, o.ProductName, o.Region, o.LocalPrice, o.FriendPrice, o.AbsoluteProfit)
		if o.QuantityOwned > 0 {
			fmt.Fprintf(&b, " (x%d owned, total %+d)", o.QuantityOwned, o.PotentialTotalProfit)
		}
		fmt.Fprintf(&b, " - %s\n", o.Recommendation)
	}
	fmt.Fprintf(&b, "---\n%d opportunities | best %+d | avg %+.0f | total potential %+d | excellent %d | good %d\n",
		summary.TotalOpportunities, summary.BestProfit, summary.AverageProfit,
		summary.TotalPotentialProfit, summary.ExcellentOpportunities, summary.GoodOpportunities)
	return b.String()
}

// FormatAllTimeHighs renders the product record board.
func FormatAllTimeHighs(products []model.Product) string {
	if len(products) == 0 {
		return "No all-time highs recorded yet."
	}
	var b strings.Builder
	b.WriteString("=== All-time high differences ===\n")
	for _, p := range products {
		fmt.Fprintf(&b, "%s [%s]: %+d on %s\n",
			p.Name, p.Region, p.HighestDifferenceEver, p.HighestDifferenceDate.Format("2006-01-02"))
	}
	return b.String()
}
