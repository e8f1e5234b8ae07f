package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Footprint is the aggregated usage of one customer.
type Footprint struct {
	CreditsRequired         decimal.Decimal
	CreditsCapacity         decimal.Decimal
	UsageCount              int64
	UsageLimit              int64
	Workspaces              int
	HighFrequencyWorkspaces int
}

type Repository interface {
	BatchInsert(ctx context.Context, db *gorm.DB, records []Record) error
	ListBySnapshot(ctx context.Context, db *gorm.DB, snapshotID string) ([]Record, error)
}

var (
	ErrNegativeUsage     = errors.New("negative_usage")
	ErrUnknownCapability = errors.New("unknown_capability")
	ErrMissingCustomer   = errors.New("missing_customer")
)
