// Package domain contains portfolio-level aggregates of scenario results.
package domain

import "github.com/shopspring/decimal"

// NoPlan labels customers without a spend-matched plan in distributions.
const NoPlan = "(none)"

// Stat is a mean/median pair over Count observations.
// A zero Count means there was no data; Mean and Median are then zero.
type Stat struct {
	Count  int
	Mean   decimal.Decimal
	Median decimal.Decimal
}

func (s Stat) HasData() bool {
	return s.Count > 0
}

// PlanCount is the number of customers assigned to one plan.
type PlanCount struct {
	Plan      string
	Customers int
}

// SegmentSummary is the revenue delta breakdown for one customer segment.
type SegmentSummary struct {
	Segment        string
	Customers      int
	CurrentCents   decimal.Decimal
	LeastCostCents decimal.Decimal
	DeltaCents     Stat
}

// Summary aggregates a run. Money is in cents.
type Summary struct {
	Customers       int
	PayingCustomers int

	// DeltaCents is least-cost annual cost minus current annual spend,
	// over customers with a positive current spend.
	DeltaCents Stat

	TotalCurrentCents   decimal.Decimal
	TotalLeastCostCents decimal.Decimal
	TotalDeltaCents     decimal.Decimal

	MatchedCustomers     int
	MatchLeftoverCredits Stat

	LeastCostPlans []PlanCount
	MatchPlans     []PlanCount
	Segments       []SegmentSummary
}
