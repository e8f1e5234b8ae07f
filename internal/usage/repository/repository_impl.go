package repository

import (
	"context"

	usagedomain "github.com/smallbiznis/planshift/internal/usage/domain"
	"github.com/smallbiznis/planshift/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() usagedomain.Repository {
	return &repo{}
}

func (r *repo) BatchInsert(ctx context.Context, db *gorm.DB, records []usagedomain.Record) error {
	return repository.ProvideStore[usagedomain.Record](db).BatchCreate(ctx, records)
}

func (r *repo) ListBySnapshot(ctx context.Context, db *gorm.DB, snapshotID string) ([]usagedomain.Record, error) {
	return repository.ProvideStore[usagedomain.Record](db).FindBy(ctx, "snapshot_id", snapshotID)
}
