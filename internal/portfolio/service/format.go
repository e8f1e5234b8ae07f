package service

import (
	"github.com/shopspring/decimal"
	portfoliodomain "github.com/smallbiznis/planshift/internal/portfolio/domain"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Lines renders a summary as human-readable lines with money in major
// units and two decimals.
func Lines(s portfoliodomain.Summary) []string {
	p := message.NewPrinter(language.English)

	lines := []string{
		p.Sprintf("Customers evaluated: %d (%d with current spend)", s.Customers, s.PayingCustomers),
		p.Sprintf("Total current ARR: %s", Money(p, s.TotalCurrentCents)),
		p.Sprintf("Total least-cost ARR: %s", Money(p, s.TotalLeastCostCents)),
		p.Sprintf("Total ARR change: %s", Money(p, s.TotalDeltaCents)),
		p.Sprintf("ARR change per paying customer: %s", StatText(p, s.DeltaCents, true)),
		p.Sprintf("Spend-matched customers: %d", s.MatchedCustomers),
		p.Sprintf("Spend-matched leftover credits: %s", StatText(p, s.MatchLeftoverCredits, false)),
	}

	lines = append(lines, "Least-cost plan distribution:")
	for _, pc := range s.LeastCostPlans {
		lines = append(lines, p.Sprintf("  %s: %d", pc.Plan, pc.Customers))
	}
	lines = append(lines, "Spend-matched plan distribution:")
	for _, pc := range s.MatchPlans {
		lines = append(lines, p.Sprintf("  %s: %d", pc.Plan, pc.Customers))
	}
	lines = append(lines, "By segment:")
	for _, seg := range s.Segments {
		lines = append(lines, p.Sprintf("  %s: %d customers, current %s, least-cost %s, change %s",
			seg.Segment,
			seg.Customers,
			Money(p, seg.CurrentCents),
			Money(p, seg.LeastCostCents),
			StatText(p, seg.DeltaCents, true),
		))
	}
	return lines
}

// Money formats cents as dollars with two decimals.
func Money(p *message.Printer, cents decimal.Decimal) string {
	return p.Sprintf("$%.2f", scenariodomain.Major(cents))
}

// StatText formats a mean/median pair, or "no data" when empty.
func StatText(p *message.Printer, s portfoliodomain.Stat, cents bool) string {
	if !s.HasData() {
		return "no data"
	}
	if cents {
		return p.Sprintf("mean %s, median %s (n=%d)", Money(p, s.Mean), Money(p, s.Median), s.Count)
	}
	return p.Sprintf("mean %.2f, median %.2f (n=%d)", scenariodomain.Credits(s.Mean), scenariodomain.Credits(s.Median), s.Count)
}
