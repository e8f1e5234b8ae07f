package repository

import (
	"context"

	"gorm.io/gorm"
)

const defaultBatchSize = 500

type store[T any] struct {
	db *gorm.DB
}

func ProvideStore[T any](db *gorm.DB) Repository[T] {
	return &store[T]{db: db}
}

func (r *store[T]) WithTrx(tx *gorm.DB) Repository[T] {
	return &store[T]{db: tx}
}

func (r *store[T]) BatchCreate(ctx context.Context, resources []T) error {
	if len(resources) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(resources, defaultBatchSize).Error
}

func (r *store[T]) FindBy(ctx context.Context, column string, value any) ([]T, error) {
	var result []T
	err := r.db.WithContext(ctx).
		Model(new(T)).
		Where(map[string]any{column: value}).
		Order("id asc").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *store[T]) DeleteBy(ctx context.Context, column string, value any) error {
	return r.db.WithContext(ctx).
		Where(map[string]any{column: value}).
		Delete(new(T)).Error
}
