package service

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	billingdomain "github.com/smallbiznis/planshift/internal/billing/domain"
	portfoliodomain "github.com/smallbiznis/planshift/internal/portfolio/domain"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func result(segment pricingdomain.Segment, currentCents, leastCostCents int64, leastPlan, matchPlan string, matchLeftover int64) scenariodomain.Result {
	r := scenariodomain.Result{
		CustomerID: leastPlan + matchPlan,
		Segment:    segment,
		Spend:      billingdomain.Spend{AnnualCents: d(currentCents)},
		LeastCost: scenariodomain.Assignment{
			PlanName:        leastPlan,
			Present:         true,
			AnnualCostCents: d(leastCostCents),
		},
		MatchSpend: scenariodomain.Absent(),
	}
	if matchPlan != "" {
		r.MatchSpend = scenariodomain.Assignment{
			PlanName:        matchPlan,
			Present:         true,
			AnnualCostCents: d(currentCents),
			LeftoverCredits: d(matchLeftover),
		}
	}
	return r
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.Customers)
	assert.False(t, s.DeltaCents.HasData())
	assert.False(t, s.MatchLeftoverCredits.HasData())
	assert.True(t, s.TotalDeltaCents.IsZero())
	assert.Empty(t, s.LeastCostPlans)
	assert.Empty(t, s.Segments)

	lines := Lines(s)
	assert.Contains(t, lines, "ARR change per paying customer: no data")
	assert.Contains(t, lines, "Total current ARR: $0.00")
}

func TestSummarize(t *testing.T) {
	results := []scenariodomain.Result{
		result(pricingdomain.SegmentInHouse, 288000, 298800, "pro", "starter", 100),
		result(pricingdomain.SegmentInHouse, 0, 106800, "starter", "", 0),
		result(pricingdomain.SegmentAgency, 360000, 358800, "intro", "intro", 300),
		result(pricingdomain.SegmentAgency, 720000, 598800, "growth", "scale", 600),
	}
	before := results[0].LeastCost.AnnualCostCents

	s := Summarize(results)

	assert.Equal(t, 4, s.Customers)
	assert.Equal(t, 3, s.PayingCustomers)
	assert.True(t, s.TotalCurrentCents.Equal(d(1368000)))
	assert.True(t, s.TotalLeastCostCents.Equal(d(1363200)))
	assert.True(t, s.TotalDeltaCents.Equal(d(-4800)))

	// deltas: 10,800, -1,200, -121,200
	assert.Equal(t, 3, s.DeltaCents.Count)
	assert.True(t, s.DeltaCents.Mean.Equal(d(-37200)), s.DeltaCents.Mean.String())
	assert.True(t, s.DeltaCents.Median.Equal(d(-1200)))

	assert.Equal(t, 3, s.MatchedCustomers)
	assert.True(t, s.MatchLeftoverCredits.Mean.Equal(d(1000).Div(d(3))))
	assert.True(t, s.MatchLeftoverCredits.Median.Equal(d(300)))

	assert.Equal(t, []portfoliodomain.PlanCount{
		{Plan: "growth", Customers: 1},
		{Plan: "intro", Customers: 1},
		{Plan: "pro", Customers: 1},
		{Plan: "starter", Customers: 1},
	}, s.LeastCostPlans)
	assert.Equal(t, []portfoliodomain.PlanCount{
		{Plan: portfoliodomain.NoPlan, Customers: 1},
		{Plan: "intro", Customers: 1},
		{Plan: "scale", Customers: 1},
		{Plan: "starter", Customers: 1},
	}, s.MatchPlans)

	require.Len(t, s.Segments, 2)
	assert.Equal(t, "IN_HOUSE", s.Segments[0].Segment)
	assert.Equal(t, 2, s.Segments[0].Customers)
	assert.Equal(t, 1, s.Segments[0].DeltaCents.Count)
	assert.True(t, s.Segments[0].DeltaCents.Mean.Equal(d(10800)))
	assert.Equal(t, "AGENCY", s.Segments[1].Segment)
	assert.True(t, s.Segments[1].DeltaCents.Median.Equal(d(-61200)))

	assert.True(t, results[0].LeastCost.AnnualCostCents.Equal(before))
}

func TestSummarizeOrdersDistributionByCount(t *testing.T) {
	s := Summarize([]scenariodomain.Result{
		result(pricingdomain.SegmentInHouse, 100, 106800, "starter", "", 0),
		result(pricingdomain.SegmentInHouse, 100, 298800, "pro", "", 0),
		result(pricingdomain.SegmentInHouse, 100, 298800, "pro", "", 0),
	})
	require.Len(t, s.LeastCostPlans, 2)
	assert.Equal(t, "pro", s.LeastCostPlans[0].Plan)
	assert.Equal(t, 2, s.LeastCostPlans[0].Customers)
	assert.Equal(t, []portfoliodomain.PlanCount{{Plan: portfoliodomain.NoPlan, Customers: 3}}, s.MatchPlans)
	assert.Zero(t, s.MatchedCustomers)
}

func TestNewStat(t *testing.T) {
	values := []decimal.Decimal{d(5), d(1), d(3)}
	s := NewStat(values)
	assert.Equal(t, 3, s.Count)
	assert.True(t, s.Mean.Equal(d(3)))
	assert.True(t, s.Median.Equal(d(3)))
	assert.True(t, values[0].Equal(d(5)))

	even := NewStat([]decimal.Decimal{d(4), d(1), d(2), d(10)})
	assert.True(t, even.Median.Equal(d(3)))
	assert.True(t, even.Mean.Equal(decimal.RequireFromString("4.25")))

	empty := NewStat(nil)
	assert.False(t, empty.HasData())
	assert.True(t, empty.Mean.IsZero())
}

func TestLines(t *testing.T) {
	s := Summarize([]scenariodomain.Result{
		result(pricingdomain.SegmentAgency, 360000, 358800, "intro", "intro", 170000),
	})
	text := strings.Join(Lines(s), "\n")

	assert.Contains(t, text, "Customers evaluated: 1 (1 with current spend)")
	assert.Contains(t, text, "Total current ARR: $3,600.00")
	assert.Contains(t, text, "Total least-cost ARR: $3,588.00")
	assert.Contains(t, text, "ARR change per paying customer: mean $-12.00, median $-12.00 (n=1)")
	assert.Contains(t, text, "Spend-matched leftover credits: mean 170,000.00, median 170,000.00 (n=1)")
	assert.Contains(t, text, "  intro: 1")
	assert.Contains(t, text, "  AGENCY: 1 customers, current $3,600.00, least-cost $3,588.00")
}
