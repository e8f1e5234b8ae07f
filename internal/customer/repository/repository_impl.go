package repository

import (
	"context"

	"github.com/smallbiznis/planshift/internal/customer/domain"
	"github.com/smallbiznis/planshift/pkg/db"
	"github.com/smallbiznis/planshift/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) BatchInsert(ctx context.Context, conn *gorm.DB, customers []domain.Customer) error {
	err := repository.ProvideStore[domain.Customer](conn).BatchCreate(ctx, customers)
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrDuplicateID
	}
	return err
}

func (r *repo) ListBySnapshot(ctx context.Context, conn *gorm.DB, snapshotID string) ([]domain.Customer, error) {
	return repository.ProvideStore[domain.Customer](conn).FindBy(ctx, "snapshot_id", snapshotID)
}
