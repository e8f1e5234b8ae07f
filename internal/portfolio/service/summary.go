// Package service reduces scenario results into portfolio statistics.
package service

import (
	"sort"

	"github.com/shopspring/decimal"
	portfoliodomain "github.com/smallbiznis/planshift/internal/portfolio/domain"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
)

var two = decimal.NewFromInt(2)

// Summarize aggregates results without mutating them. An empty input yields
// a zero summary whose stats report no data.
func Summarize(results []scenariodomain.Result) portfoliodomain.Summary {
	summary := portfoliodomain.Summary{
		Customers:           len(results),
		TotalCurrentCents:   decimal.Zero,
		TotalLeastCostCents: decimal.Zero,
		TotalDeltaCents:     decimal.Zero,
	}

	var (
		deltas    []decimal.Decimal
		leftovers []decimal.Decimal
		leastCost = map[string]int{}
		matched   = map[string]int{}
		segments  = map[string]*segmentAcc{}
	)

	for _, r := range results {
		current := r.CurrentAnnualCents()
		summary.TotalCurrentCents = summary.TotalCurrentCents.Add(current)
		summary.TotalLeastCostCents = summary.TotalLeastCostCents.Add(r.LeastCost.AnnualCostCents)

		seg := segments[string(r.Segment)]
		if seg == nil {
			seg = &segmentAcc{current: decimal.Zero, leastCost: decimal.Zero}
			segments[string(r.Segment)] = seg
		}
		seg.customers++
		seg.current = seg.current.Add(current)
		seg.leastCost = seg.leastCost.Add(r.LeastCost.AnnualCostCents)

		if current.IsPositive() {
			summary.PayingCustomers++
			delta := r.LeastCostDeltaCents()
			deltas = append(deltas, delta)
			seg.deltas = append(seg.deltas, delta)
		}

		leastCost[r.LeastCost.PlanName]++
		if r.MatchSpend.Present {
			summary.MatchedCustomers++
			matched[r.MatchSpend.PlanName]++
			leftovers = append(leftovers, r.MatchSpend.LeftoverCredits)
		} else {
			matched[portfoliodomain.NoPlan]++
		}
	}

	summary.TotalDeltaCents = summary.TotalLeastCostCents.Sub(summary.TotalCurrentCents)
	summary.DeltaCents = NewStat(deltas)
	summary.MatchLeftoverCredits = NewStat(leftovers)
	summary.LeastCostPlans = distribution(leastCost)
	summary.MatchPlans = distribution(matched)
	summary.Segments = segmentSummaries(segments)
	return summary
}

// NewStat computes mean and median. The input slice is not modified.
func NewStat(values []decimal.Decimal) portfoliodomain.Stat {
	stat := portfoliodomain.Stat{Count: len(values), Mean: decimal.Zero, Median: decimal.Zero}
	if len(values) == 0 {
		return stat
	}

	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	stat.Mean = decimal.Sum(sorted[0], sorted[1:]...).Div(decimal.NewFromInt(int64(len(sorted))))
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		stat.Median = sorted[mid]
	} else {
		stat.Median = sorted[mid-1].Add(sorted[mid]).Div(two)
	}
	return stat
}

type segmentAcc struct {
	customers int
	current   decimal.Decimal
	leastCost decimal.Decimal
	deltas    []decimal.Decimal
}

// distribution orders plans by customer count, then by name.
func distribution(counts map[string]int) []portfoliodomain.PlanCount {
	out := make([]portfoliodomain.PlanCount, 0, len(counts))
	for plan, n := range counts {
		out = append(out, portfoliodomain.PlanCount{Plan: plan, Customers: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Customers != out[j].Customers {
			return out[i].Customers > out[j].Customers
		}
		return out[i].Plan < out[j].Plan
	})
	return out
}

// segmentSummaries lists known segments first, in catalog order, then any others by name.
func segmentSummaries(accs map[string]*segmentAcc) []portfoliodomain.SegmentSummary {
	order := []string{string(pricingdomain.SegmentInHouse), string(pricingdomain.SegmentAgency)}
	var extra []string
	for name := range accs {
		if name != order[0] && name != order[1] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	out := make([]portfoliodomain.SegmentSummary, 0, len(accs))
	for _, name := range order {
		acc, ok := accs[name]
		if !ok {
			continue
		}
		out = append(out, portfoliodomain.SegmentSummary{
			Segment:        name,
			Customers:      acc.customers,
			CurrentCents:   acc.current,
			LeastCostCents: acc.leastCost,
			DeltaCents:     NewStat(acc.deltas),
		})
	}
	return out
}
