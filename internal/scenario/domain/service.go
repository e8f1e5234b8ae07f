package domain

import (
	"context"
	"errors"

	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
)

type Service interface {
	// Evaluate computes both scenarios for one customer.
	Evaluate(ctx context.Context, catalogs *pricingdomain.Catalogs, in Input) (Result, error)
	// EvaluateAll evaluates customers in order and stops at the first error.
	EvaluateAll(ctx context.Context, catalogs *pricingdomain.Catalogs, inputs []Input) ([]Result, error)
}

var (
	ErrMissingCatalogs = errors.New("missing_catalogs")
	ErrInvalidSegment  = errors.New("invalid_segment")
)
