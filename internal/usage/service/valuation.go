package service

import (
	"github.com/shopspring/decimal"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	usagedomain "github.com/smallbiznis/planshift/internal/usage/domain"
)

// CreditsRequired values usage records in credits:
// Σ over records of (Σ weight of enabled capabilities) × usage count.
//
// Every capability must be present in prices; the snapshot validator
// guarantees this before a run starts.
func CreditsRequired(records []usagedomain.Record, prices pricingdomain.CapabilityPrices) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(weight(r.Capabilities, prices).Mul(decimal.NewFromInt(r.UsageCount)))
	}
	return total
}

// CreditsCapacity values the workspaces' configured limits instead of their usage.
func CreditsCapacity(records []usagedomain.Record, prices pricingdomain.CapabilityPrices) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(weight(r.Capabilities, prices).Mul(decimal.NewFromInt(r.UsageLimit)))
	}
	return total
}

// Summarize builds the footprint of one customer from its records.
func Summarize(records []usagedomain.Record, prices pricingdomain.CapabilityPrices) usagedomain.Footprint {
	fp := usagedomain.Footprint{
		CreditsRequired: CreditsRequired(records, prices),
		CreditsCapacity: CreditsCapacity(records, prices),
		Workspaces:      len(records),
	}
	for _, r := range records {
		fp.UsageCount += r.UsageCount
		fp.UsageLimit += r.UsageLimit
		if r.HighFrequency() {
			fp.HighFrequencyWorkspaces++
		}
	}
	return fp
}

// Validate checks the preconditions CreditsRequired relies on.
func Validate(r usagedomain.Record, prices pricingdomain.CapabilityPrices) error {
	if r.CustomerID == "" {
		return usagedomain.ErrMissingCustomer
	}
	if r.UsageCount < 0 || r.UsageLimit < 0 {
		return usagedomain.ErrNegativeUsage
	}
	for _, c := range r.Capabilities {
		if !prices.Has(c) {
			return usagedomain.ErrUnknownCapability
		}
	}
	return nil
}

func weight(capabilities []string, prices pricingdomain.CapabilityPrices) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range capabilities {
		sum = sum.Add(prices[c])
	}
	return sum
}
