// Package domain holds the per-customer output of the migration calculator.
package domain

import (
	"github.com/shopspring/decimal"
	billingdomain "github.com/smallbiznis/planshift/internal/billing/domain"
	customerdomain "github.com/smallbiznis/planshift/internal/customer/domain"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	usagedomain "github.com/smallbiznis/planshift/internal/usage/domain"
)

// Assignment is a plan chosen for a customer in one scenario. Money is in cents.
type Assignment struct {
	PlanName        string
	Present         bool
	OverageCredits  decimal.Decimal
	AnnualCostCents decimal.Decimal
	LeftoverCredits decimal.Decimal
}

// Absent is the assignment reported when no plan qualifies.
func Absent() Assignment {
	return Assignment{
		OverageCredits:  decimal.Zero,
		AnnualCostCents: decimal.Zero,
		LeftoverCredits: decimal.Zero,
	}
}

// Input is everything known about one customer at snapshot time.
type Input struct {
	Customer  customerdomain.Customer
	Usage     []usagedomain.Record
	LineItems []billingdomain.LineItem
}

// Result is the calculator output for one customer.
type Result struct {
	CustomerID        string
	CustomerName      string
	CustomerDomain    string
	Segment           pricingdomain.Segment
	BillingCustomerID string

	Spend     billingdomain.Spend
	Footprint usagedomain.Footprint

	LeastCost  Assignment
	MatchSpend Assignment
}

// CurrentAnnualCents is the customer's annualized spend today.
func (r Result) CurrentAnnualCents() decimal.Decimal {
	return r.Spend.AnnualCents
}

// CreditsRequired is the annual credit need the plans were sized against.
func (r Result) CreditsRequired() decimal.Decimal {
	return r.Footprint.CreditsRequired
}

// LeastCostDeltaCents is the change in annual revenue under the least-cost plan.
func (r Result) LeastCostDeltaCents() decimal.Decimal {
	return r.LeastCost.AnnualCostCents.Sub(r.Spend.AnnualCents)
}
