package snapshot

import (
	"errors"
	"fmt"
	"strings"

	customerdomain "github.com/smallbiznis/planshift/internal/customer/domain"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	usageservice "github.com/smallbiznis/planshift/internal/usage/service"
)

// Validate checks every precondition the calculator relies on and reports
// all violations at once. A snapshot that fails validation must not be run.
func Validate(snap Snapshot, prices pricingdomain.CapabilityPrices) error {
	var errs []error

	seen := make(map[string]struct{}, len(snap.Customers))
	for i, c := range snap.Customers {
		id := strings.TrimSpace(c.ExternalID)
		if id == "" {
			errs = append(errs, fmt.Errorf("customers[%d]: %w", i, customerdomain.ErrInvalidID))
			continue
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("customer %s: %w", id, customerdomain.ErrDuplicateID))
		}
		seen[id] = struct{}{}
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("customer %s: %w", id, customerdomain.ErrInvalidName))
		}
		if !c.Segment.Valid() {
			errs = append(errs, fmt.Errorf("customer %s segment %q: %w", id, c.Segment, customerdomain.ErrInvalidSegment))
		}
	}

	for i, r := range snap.Usage {
		if err := usageservice.Validate(r, prices); err != nil {
			errs = append(errs, fmt.Errorf("usage_records[%d] (%s): %w", i, r.ExternalID, err))
		}
	}

	return errors.Join(errs...)
}
