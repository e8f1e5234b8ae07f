// Package domain holds the plan catalog: segments, tiers and capability prices.
package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// MonthsPerYear annualizes monthly prices and allowances.
const MonthsPerYear = 12

type Segment string

const (
	SegmentInHouse Segment = "IN_HOUSE"
	SegmentAgency  Segment = "AGENCY"
)

// ParseSegment normalizes a raw segment tag.
func ParseSegment(raw string) (Segment, error) {
	switch Segment(strings.ToUpper(strings.TrimSpace(raw))) {
	case SegmentInHouse:
		return SegmentInHouse, nil
	case SegmentAgency:
		return SegmentAgency, nil
	default:
		return "", ErrUnknownSegment
	}
}

func (s Segment) Valid() bool {
	return s == SegmentInHouse || s == SegmentAgency
}

// PlanTier is a named pricing package. Prices are in cents.
type PlanTier struct {
	Name              string `json:"name" mapstructure:"name"`
	MonthlyPriceCents int64  `json:"monthly_price_cents" mapstructure:"monthlyPriceCents"`
	MonthlyCredits    int64  `json:"monthly_credits" mapstructure:"monthlyCredits"`

	// MaxWorkspaces limits the number of workspaces a tier supports. Zero means unlimited.
	MaxWorkspaces int `json:"max_workspaces,omitempty" mapstructure:"maxWorkspaces"`
	// MinTopUpCredits is the smallest overage pack that can be bought. Zero disables it.
	MinTopUpCredits int64 `json:"min_top_up_credits,omitempty" mapstructure:"minTopUpCredits"`
}

func (t PlanTier) AnnualPriceCents() decimal.Decimal {
	return decimal.NewFromInt(t.MonthlyPriceCents * MonthsPerYear)
}

func (t PlanTier) AnnualCredits() decimal.Decimal {
	return decimal.NewFromInt(t.MonthlyCredits * MonthsPerYear)
}

// PricePerCredit is the monthly price divided by the monthly allowance, in cents.
// Overage is billed at this rate regardless of the annual scaling of the base price.
func (t PlanTier) PricePerCredit() decimal.Decimal {
	return decimal.NewFromInt(t.MonthlyPriceCents).Div(decimal.NewFromInt(t.MonthlyCredits))
}

// CreditsCost prices a number of overage credits. Multiplying before dividing
// keeps the result exact whenever the total is a whole number of cents.
func (t PlanTier) CreditsCost(credits decimal.Decimal) decimal.Decimal {
	if credits.IsZero() {
		return decimal.Zero
	}
	return credits.Mul(decimal.NewFromInt(t.MonthlyPriceCents)).Div(decimal.NewFromInt(t.MonthlyCredits))
}

// CreditsForAmount returns the whole number of credits needed so that their
// cost reaches amount. It rounds up, never down.
func (t PlanTier) CreditsForAmount(amountCents decimal.Decimal) decimal.Decimal {
	if !amountCents.IsPositive() {
		return decimal.Zero
	}
	return amountCents.Mul(decimal.NewFromInt(t.MonthlyCredits)).Div(decimal.NewFromInt(t.MonthlyPriceCents)).Ceil()
}

// SupportsWorkspaces reports whether the tier accepts n workspaces.
func (t PlanTier) SupportsWorkspaces(n int) bool {
	return t.MaxWorkspaces <= 0 || n <= t.MaxWorkspaces
}

// Catalog is the ordered list of tiers offered to one segment.
// Declaration order is significant: it breaks ties.
type Catalog struct {
	Segment Segment    `json:"segment"`
	Tiers   []PlanTier `json:"tiers"`
}

// Tier looks a tier up by name.
func (c Catalog) Tier(name string) (PlanTier, bool) {
	for _, t := range c.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return PlanTier{}, false
}

// CapabilityPrices maps capability identifiers to their credit weight.
type CapabilityPrices map[string]decimal.Decimal

func (p CapabilityPrices) Has(capability string) bool {
	_, ok := p[capability]
	return ok
}

// Names returns the capability identifiers in sorted order.
func (p CapabilityPrices) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalogs is the full, immutable pricing configuration for a run.
type Catalogs struct {
	Version      string
	bySegment    map[Segment]Catalog
	Capabilities CapabilityPrices
}

// NewCatalogs validates the supplied catalogs and freezes them.
func NewCatalogs(version string, catalogs []Catalog, capabilities CapabilityPrices) (*Catalogs, error) {
	bySegment := make(map[Segment]Catalog, len(catalogs))
	for _, c := range catalogs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := bySegment[c.Segment]; dup {
			return nil, ErrDuplicateSegment
		}
		tiers := make([]PlanTier, len(c.Tiers))
		copy(tiers, c.Tiers)
		bySegment[c.Segment] = Catalog{Segment: c.Segment, Tiers: tiers}
	}
	for _, s := range []Segment{SegmentInHouse, SegmentAgency} {
		if _, ok := bySegment[s]; !ok {
			return nil, ErrMissingSegment
		}
	}

	prices := make(CapabilityPrices, len(capabilities))
	for k, v := range capabilities {
		if strings.TrimSpace(k) == "" {
			return nil, ErrInvalidCapability
		}
		if v.IsNegative() {
			return nil, ErrNegativePrice
		}
		prices[k] = v
	}

	return &Catalogs{Version: version, bySegment: bySegment, Capabilities: prices}, nil
}

// For returns the catalog that applies to a segment.
func (c *Catalogs) For(segment Segment) (Catalog, error) {
	catalog, ok := c.bySegment[segment]
	if !ok {
		return Catalog{}, ErrUnknownSegment
	}
	return catalog, nil
}

// All returns the catalogs in a stable segment order.
func (c *Catalogs) All() []Catalog {
	out := make([]Catalog, 0, len(c.bySegment))
	for _, s := range []Segment{SegmentInHouse, SegmentAgency} {
		if catalog, ok := c.bySegment[s]; ok {
			out = append(out, catalog)
		}
	}
	return out
}
