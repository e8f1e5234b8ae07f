package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	billingdomain "github.com/smallbiznis/planshift/internal/billing/domain"
	customerdomain "github.com/smallbiznis/planshift/internal/customer/domain"
	usagedomain "github.com/smallbiznis/planshift/internal/usage/domain"
	"github.com/smallbiznis/planshift/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrSnapshotNotFound = errors.New("snapshot_not_found")

// Meta records an imported snapshot.
type Meta struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Source       string    `gorm:"type:text;not null"`
	Customers    int       `gorm:"not null"`
	UsageRecords int       `gorm:"not null"`
	LineItems    int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName sets the database table name.
func (Meta) TableName() string { return "snapshots" }

type StoreParams struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	CustomerRepo customerdomain.Repository
	UsageRepo    usagedomain.Repository
	BillingRepo  billingdomain.Repository
}

// Store persists snapshots so runs can be repeated against the same extract.
type Store struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	customerRepo customerdomain.Repository
	usageRepo    usagedomain.Repository
	billingRepo  billingdomain.Repository
}

func NewStore(p StoreParams) *Store {
	return &Store{
		db:           p.DB,
		log:          p.Log.Named("snapshot.store"),
		genID:        p.GenID,
		customerRepo: p.CustomerRepo,
		usageRepo:    p.UsageRepo,
		billingRepo:  p.BillingRepo,
	}
}

// Import writes a snapshot in one transaction and returns its id.
func (s *Store) Import(ctx context.Context, snap Snapshot) (string, error) {
	id := ulid.Make().String()
	now := time.Now().UTC()

	customers := make([]customerdomain.Customer, len(snap.Customers))
	for i, c := range snap.Customers {
		c.ID = s.genID.Generate()
		c.SnapshotID = id
		c.CreatedAt = now
		customers[i] = c
	}
	usage := make([]usagedomain.Record, len(snap.Usage))
	for i, r := range snap.Usage {
		r.ID = s.genID.Generate()
		r.SnapshotID = id
		r.CreatedAt = now
		usage[i] = r
	}
	items := make([]billingdomain.LineItem, len(snap.LineItems))
	for i, item := range snap.LineItems {
		item.ID = s.genID.Generate()
		item.SnapshotID = id
		item.CreatedAt = now
		items[i] = item
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meta := Meta{
			ID:           id,
			Source:       snap.Source,
			Customers:    len(customers),
			UsageRecords: len(usage),
			LineItems:    len(items),
			CreatedAt:    now,
		}
		if err := tx.Create(&meta).Error; err != nil {
			return err
		}
		if err := s.customerRepo.BatchInsert(ctx, tx, customers); err != nil {
			return fmt.Errorf("insert customers: %w", err)
		}
		if err := s.usageRepo.BatchInsert(ctx, tx, usage); err != nil {
			return fmt.Errorf("insert usage records: %w", err)
		}
		if err := s.billingRepo.BatchInsert(ctx, tx, items); err != nil {
			return fmt.Errorf("insert line items: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Info("snapshot imported",
		zap.String("snapshot_id", id),
		zap.String("source", snap.Source),
		zap.Int("customers", len(customers)),
		zap.Int("usage_records", len(usage)),
		zap.Int("line_items", len(items)),
	)
	return id, nil
}

// Load reads a stored snapshot. An empty id selects the most recent one.
func (s *Store) Load(ctx context.Context, id string) (Snapshot, error) {
	var meta Meta
	stmt := s.db.WithContext(ctx).Model(&Meta{})
	if id != "" {
		stmt = stmt.Where("id = ?", id)
	}
	err := stmt.Order("created_at desc").First(&meta).Error
	if err != nil {
		if db.IsNotFound(err) {
			return Snapshot{}, ErrSnapshotNotFound
		}
		return Snapshot{}, err
	}

	customers, err := s.customerRepo.ListBySnapshot(ctx, s.db, meta.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list customers: %w", err)
	}
	usage, err := s.usageRepo.ListBySnapshot(ctx, s.db, meta.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list usage records: %w", err)
	}
	items, err := s.billingRepo.ListBySnapshot(ctx, s.db, meta.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list line items: %w", err)
	}

	return Snapshot{
		ID:        meta.ID,
		Source:    meta.Source,
		Customers: customers,
		Usage:     usage,
		LineItems: items,
	}, nil
}
