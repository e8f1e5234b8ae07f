package repository

import (
	"context"

	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
	"github.com/smallbiznis/planshift/pkg/repository"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() scenariodomain.Repository {
	return &repo{}
}

func (r *repo) BatchInsert(ctx context.Context, db *gorm.DB, records []scenariodomain.ResultRecord) error {
	return repository.ProvideStore[scenariodomain.ResultRecord](db).BatchCreate(ctx, records)
}

// DeleteByRun removes earlier results of a run so re-persisting replaces instead of appending.
func (r *repo) DeleteByRun(ctx context.Context, db *gorm.DB, runID string) error {
	return repository.ProvideStore[scenariodomain.ResultRecord](db).DeleteBy(ctx, "run_id", runID)
}

func (r *repo) ListByRun(ctx context.Context, db *gorm.DB, runID string) ([]scenariodomain.ResultRecord, error) {
	return repository.ProvideStore[scenariodomain.ResultRecord](db).FindBy(ctx, "run_id", runID)
}
