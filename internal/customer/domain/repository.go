package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	BatchInsert(ctx context.Context, db *gorm.DB, customers []Customer) error
	ListBySnapshot(ctx context.Context, db *gorm.DB, snapshotID string) ([]Customer, error)
}
