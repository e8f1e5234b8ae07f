package service

import (
	"github.com/shopspring/decimal"
	billingdomain "github.com/smallbiznis/planshift/internal/billing/domain"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	months  = decimal.NewFromInt(pricingdomain.MonthsPerYear)
)

// Spend annualizes the line items of one billing customer.
//
// Item-level coupons apply to their own item; subscription-level coupons are
// taken from the first item and apply once to every item. Only forever and
// repeating coupons reduce the amount, one-off coupons are only counted.
// No items means zero spend.
func Spend(items []billingdomain.LineItem) billingdomain.Spend {
	var spend billingdomain.Spend
	spend.BaseMonthlyCents = decimal.Zero
	spend.MonthlyCents = decimal.Zero
	spend.AnnualCents = decimal.Zero
	if len(items) == 0 {
		return spend
	}

	subMultiplier, subApplied, subTotal := Multiplier(items[0].SubscriptionDiscounts)
	spend.AppliedDiscounts += subApplied
	spend.TotalDiscounts += subTotal

	var main *billingdomain.LineItem
	mainBase := decimal.Zero
	for i := range items {
		item := &items[i]
		base := decimal.NewFromInt(item.MonthlyAmountCents).Mul(decimal.NewFromInt(item.Units()))

		itemMultiplier, applied, total := Multiplier(item.Discounts)
		spend.AppliedDiscounts += applied
		spend.TotalDiscounts += total

		spend.BaseMonthlyCents = spend.BaseMonthlyCents.Add(base)
		spend.MonthlyCents = spend.MonthlyCents.Add(base.Mul(itemMultiplier).Mul(subMultiplier))

		if main == nil || base.GreaterThan(mainBase) {
			main = item
			mainBase = base
		}
	}

	spend.AnnualCents = spend.MonthlyCents.Mul(months)
	if spend.BaseMonthlyCents.IsPositive() {
		ratio := spend.MonthlyCents.Div(spend.BaseMonthlyCents)
		spend.DiscountPercent = decimal.NewFromInt(1).Sub(ratio).Mul(hundred).Round(0).IntPart()
	}
	spend.Interval = main.IntervalLabel()
	return spend
}

// Multiplier folds coupons into a single price multiplier. It also reports
// how many coupons were applied and how many were attached in total.
func Multiplier(discounts []billingdomain.Discount) (decimal.Decimal, int, int) {
	multiplier := decimal.NewFromInt(1)
	applied := 0
	for _, d := range discounts {
		if !d.LongTerm() {
			continue
		}
		off := decimal.NewFromFloat(d.PercentOff)
		if off.IsNegative() {
			off = decimal.Zero
		}
		if off.GreaterThan(hundred) {
			off = hundred
		}
		multiplier = multiplier.Mul(hundred.Sub(off).Div(hundred))
		applied++
	}
	return multiplier, applied, len(discounts)
}
