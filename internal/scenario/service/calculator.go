package service

import (
	"github.com/shopspring/decimal"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
)

// TierCost prices a credit need on a single tier under least-cost rules:
// the annual base price plus overage beyond the annual allowance, billed at
// the tier's monthly price per credit.
func TierCost(creditsRequired decimal.Decimal, tier pricingdomain.PlanTier) scenariodomain.Assignment {
	included := tier.AnnualCredits()

	overage := creditsRequired.Sub(included)
	if overage.IsNegative() {
		overage = decimal.Zero
	}
	if tier.MinTopUpCredits > 0 && overage.IsPositive() {
		if minimum := decimal.NewFromInt(tier.MinTopUpCredits); overage.LessThan(minimum) {
			overage = minimum
		}
	}

	return scenariodomain.Assignment{
		PlanName:        tier.Name,
		Present:         true,
		OverageCredits:  overage,
		AnnualCostCents: tier.AnnualPriceCents().Add(tier.CreditsCost(overage)),
		LeftoverCredits: included.Add(overage).Sub(creditsRequired),
	}
}

// LeastCost picks the tier with the lowest annual cost for the credit need.
// Only a strictly lower cost replaces the current pick, so ties keep the
// tier declared first.
func LeastCost(creditsRequired decimal.Decimal, catalog pricingdomain.Catalog) (scenariodomain.Assignment, error) {
	if len(catalog.Tiers) == 0 {
		return scenariodomain.Absent(), pricingdomain.ErrEmptyCatalog
	}

	best := TierCost(creditsRequired, catalog.Tiers[0])
	for _, tier := range catalog.Tiers[1:] {
		option := TierCost(creditsRequired, tier)
		if option.AnnualCostCents.LessThan(best.AnnualCostCents) {
			best = option
		}
	}
	return best, nil
}

// MatchSpend picks the most expensive tier whose annual base price stays
// strictly below the current annual spend, then adds overage credits until
// the modeled cost reaches the spend. Credits are rounded up so the modeled
// cost never falls short; it overshoots by less than one credit's price.
//
// Both amounts are in cents. When no tier qualifies (zero spend, or spend
// below every base price) the assignment is absent.
func MatchSpend(creditsRequired, annualSpendCents decimal.Decimal, catalog pricingdomain.Catalog) (scenariodomain.Assignment, error) {
	if len(catalog.Tiers) == 0 {
		return scenariodomain.Absent(), pricingdomain.ErrEmptyCatalog
	}

	var (
		chosen pricingdomain.PlanTier
		found  bool
	)
	for _, tier := range catalog.Tiers {
		base := tier.AnnualPriceCents()
		if !base.LessThan(annualSpendCents) {
			continue
		}
		if !found || base.GreaterThan(chosen.AnnualPriceCents()) {
			chosen = tier
			found = true
		}
	}
	if !found {
		return scenariodomain.Absent(), nil
	}

	base := chosen.AnnualPriceCents()
	overage := chosen.CreditsForAmount(annualSpendCents.Sub(base))

	return scenariodomain.Assignment{
		PlanName:        chosen.Name,
		Present:         true,
		OverageCredits:  overage,
		AnnualCostCents: base.Add(chosen.CreditsCost(overage)),
		LeftoverCredits: chosen.AnnualCredits().Add(overage).Sub(creditsRequired),
	}, nil
}

// EligibleTiers drops tiers that cannot host the customer's workspaces.
// When none can, the tier with the largest workspace allowance is kept.
func EligibleTiers(catalog pricingdomain.Catalog, workspaces int) pricingdomain.Catalog {
	eligible := make([]pricingdomain.PlanTier, 0, len(catalog.Tiers))
	for _, tier := range catalog.Tiers {
		if tier.SupportsWorkspaces(workspaces) {
			eligible = append(eligible, tier)
		}
	}
	if len(eligible) == 0 && len(catalog.Tiers) > 0 {
		largest := catalog.Tiers[0]
		for _, tier := range catalog.Tiers[1:] {
			if tier.MaxWorkspaces > largest.MaxWorkspaces {
				largest = tier
			}
		}
		eligible = append(eligible, largest)
	}
	return pricingdomain.Catalog{Segment: catalog.Segment, Tiers: eligible}
}
