package domain

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Spend is a customer's current recurring spend. Amounts are in cents.
type Spend struct {
	BaseMonthlyCents decimal.Decimal
	MonthlyCents     decimal.Decimal
	AnnualCents      decimal.Decimal
	DiscountPercent  int64
	AppliedDiscounts int
	TotalDiscounts   int
	Interval         string
}

// DiscountLabel renders "applied (total)".
func (s Spend) DiscountLabel() string {
	return fmt.Sprintf("%d (%d)", s.AppliedDiscounts, s.TotalDiscounts)
}

type Repository interface {
	BatchInsert(ctx context.Context, db *gorm.DB, items []LineItem) error
	ListBySnapshot(ctx context.Context, db *gorm.DB, snapshotID string) ([]LineItem, error)
}
