package repository

import (
	"context"

	billingdomain "github.com/smallbiznis/planshift/internal/billing/domain"
	"github.com/smallbiznis/planshift/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() billingdomain.Repository {
	return &repo{}
}

func (r *repo) BatchInsert(ctx context.Context, db *gorm.DB, items []billingdomain.LineItem) error {
	return repository.ProvideStore[billingdomain.LineItem](db).BatchCreate(ctx, items)
}

func (r *repo) ListBySnapshot(ctx context.Context, db *gorm.DB, snapshotID string) ([]billingdomain.LineItem, error) {
	return repository.ProvideStore[billingdomain.LineItem](db).FindBy(ctx, "snapshot_id", snapshotID)
}
