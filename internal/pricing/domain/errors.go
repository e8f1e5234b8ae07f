package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCatalog      = errors.New("empty_catalog")
	ErrZeroCredits       = errors.New("zero_included_credits")
	ErrNegativePrice     = errors.New("negative_price")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrDuplicatePlan     = errors.New("duplicate_plan")
	ErrInvalidPlanName   = errors.New("invalid_plan_name")
	ErrUnknownSegment    = errors.New("unknown_segment")
	ErrDuplicateSegment  = errors.New("duplicate_segment")
	ErrMissingSegment    = errors.New("missing_segment")
	ErrInvalidCapability = errors.New("invalid_capability")
)

// Validate rejects catalogs that would make the calculator ill-defined.
func (c Catalog) Validate() error {
	if !c.Segment.Valid() {
		return fmt.Errorf("catalog %q: %w", c.Segment, ErrUnknownSegment)
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("catalog %s: %w", c.Segment, ErrEmptyCatalog)
	}
	seen := make(map[string]struct{}, len(c.Tiers))
	for _, t := range c.Tiers {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("catalog %s: %w", c.Segment, ErrInvalidPlanName)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("catalog %s plan %s: %w", c.Segment, name, ErrDuplicatePlan)
		}
		seen[name] = struct{}{}
		if t.MonthlyCredits <= 0 {
			return fmt.Errorf("catalog %s plan %s: %w", c.Segment, name, ErrZeroCredits)
		}
		if t.MonthlyPriceCents < 0 || t.MinTopUpCredits < 0 {
			return fmt.Errorf("catalog %s plan %s: %w", c.Segment, name, ErrNegativePrice)
		}
		if t.MonthlyPriceCents == 0 || t.MaxWorkspaces < 0 {
			return fmt.Errorf("catalog %s plan %s: %w", c.Segment, name, ErrInvalidPrice)
		}
	}
	return nil
}
