package domain

import (
	"github.com/shopspring/decimal"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
)

var (
	centsPerUnit = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(pricingdomain.MonthsPerYear)
)

// Row is the flat, serialized form of a Result. Money is in major units
// (dollars) rounded to two decimals; conversion from cents happens only here.
type Row struct {
	CustomerID        string  `json:"customer_id"`
	CustomerName      string  `json:"customer_name"`
	CustomerDomain    *string `json:"customer_domain"`
	Segment           string  `json:"segment"`
	BillingCustomerID string  `json:"billing_customer_id"`

	CurrentMRR float64 `json:"current_mrr"`
	CurrentARR float64 `json:"current_arr"`
	Discount   int64   `json:"discount"`
	Discounts  string  `json:"discounts"`
	Interval   string  `json:"interval"`

	Workspaces              int     `json:"workspaces"`
	HighFrequencyWorkspaces int     `json:"workspaces_high_frequency"`
	TotalUsage              int64   `json:"total_usage"`
	TotalUsageCapacity      int64   `json:"total_usage_capacity"`
	RequiredCredits         float64 `json:"required_credits"`
	CreditsCapacity         float64 `json:"credits_capacity"`

	LeastCostPlanName        string  `json:"least_cost_plan_name"`
	LeastCostARR             float64 `json:"least_cost_arr"`
	LeastCostMRR             float64 `json:"least_cost_mrr"`
	LeastCostARRChange       float64 `json:"least_cost_arr_change"`
	LeastCostMRRChange       float64 `json:"least_cost_mrr_change"`
	LeastCostExtraCredits    float64 `json:"least_cost_extra_credits_purchased"`
	LeastCostLeftoverCredits float64 `json:"least_cost_surplus_credits"`

	MatchARRPlanName        *string `json:"match_arr_plan_name"`
	MatchARR                float64 `json:"match_arr_arr"`
	MatchARRExtraCredits    float64 `json:"match_arr_extra_credits_purchased"`
	MatchARRLeftoverCredits float64 `json:"match_arr_surplus_credits"`
}

// Row flattens the result for output.
func (r Result) Row() Row {
	row := Row{
		CustomerID:        r.CustomerID,
		CustomerName:      r.CustomerName,
		Segment:           string(r.Segment),
		BillingCustomerID: r.BillingCustomerID,

		CurrentMRR: Major(r.Spend.MonthlyCents),
		CurrentARR: Major(r.Spend.AnnualCents),
		Discount:   r.Spend.DiscountPercent,
		Discounts:  r.Spend.DiscountLabel(),
		Interval:   r.Spend.Interval,

		Workspaces:              r.Footprint.Workspaces,
		HighFrequencyWorkspaces: r.Footprint.HighFrequencyWorkspaces,
		TotalUsage:              r.Footprint.UsageCount,
		TotalUsageCapacity:      r.Footprint.UsageLimit,
		RequiredCredits:         Credits(r.Footprint.CreditsRequired),
		CreditsCapacity:         Credits(r.Footprint.CreditsCapacity),

		LeastCostPlanName:        r.LeastCost.PlanName,
		LeastCostARR:             Major(r.LeastCost.AnnualCostCents),
		LeastCostMRR:             Major(r.LeastCost.AnnualCostCents.Div(monthsInYear)),
		LeastCostARRChange:       Major(r.LeastCostDeltaCents()),
		LeastCostMRRChange:       Major(r.LeastCostDeltaCents().Div(monthsInYear)),
		LeastCostExtraCredits:    Credits(r.LeastCost.OverageCredits),
		LeastCostLeftoverCredits: Credits(r.LeastCost.LeftoverCredits),

		MatchARR:                Major(r.MatchSpend.AnnualCostCents),
		MatchARRExtraCredits:    Credits(r.MatchSpend.OverageCredits),
		MatchARRLeftoverCredits: Credits(r.MatchSpend.LeftoverCredits),
	}
	if r.CustomerDomain != "" {
		d := r.CustomerDomain
		row.CustomerDomain = &d
	}
	if r.MatchSpend.Present {
		name := r.MatchSpend.PlanName
		row.MatchARRPlanName = &name
	}
	return row
}

// Major converts cents to major currency units rounded to two decimals.
func Major(cents decimal.Decimal) float64 {
	return cents.Div(centsPerUnit).Round(2).InexactFloat64()
}

// Credits rounds a credit amount for display.
func Credits(credits decimal.Decimal) float64 {
	return credits.Round(2).InexactFloat64()
}
