// Package repository holds a generic gorm store for append-only tables
// keyed by a grouping column such as a snapshot or run id.
package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	// BatchCreate inserts rows in batches. An empty slice is a no-op.
	BatchCreate(ctx context.Context, resources []T) error
	// FindBy lists rows whose column equals value, in id order.
	FindBy(ctx context.Context, column string, value any) ([]T, error)
	DeleteBy(ctx context.Context, column string, value any) error
}
