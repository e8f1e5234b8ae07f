package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResultRecord is a persisted scenario result, keyed by run.
type ResultRecord struct {
	ID                      snowflake.ID    `gorm:"primaryKey"`
	RunID                   string          `gorm:"type:text;not null;index"`
	CustomerID              string          `gorm:"type:text;not null"`
	Segment                 string          `gorm:"type:text;not null"`
	CurrentAnnualCents      decimal.Decimal `gorm:"type:numeric;not null"`
	CreditsRequired         decimal.Decimal `gorm:"type:numeric;not null"`
	LeastCostPlan           string          `gorm:"type:text;not null"`
	LeastCostAnnualCents    decimal.Decimal `gorm:"type:numeric;not null"`
	LeastCostOverageCredits decimal.Decimal `gorm:"type:numeric;not null"`
	MatchPlan               *string         `gorm:"type:text"`
	MatchAnnualCents        decimal.Decimal `gorm:"type:numeric;not null"`
	MatchOverageCredits     decimal.Decimal `gorm:"type:numeric;not null"`
	Payload                 datatypes.JSON  `gorm:"type:json;not null"`
	CreatedAt               time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ResultRecord) TableName() string { return "scenario_results" }

type Repository interface {
	BatchInsert(ctx context.Context, db *gorm.DB, records []ResultRecord) error
	DeleteByRun(ctx context.Context, db *gorm.DB, runID string) error
	ListByRun(ctx context.Context, db *gorm.DB, runID string) ([]ResultRecord, error)
}

// Record converts a result into its persisted form.
func (r Result) Record(id snowflake.ID, runID string) (ResultRecord, error) {
	payload, err := json.Marshal(r.Row())
	if err != nil {
		return ResultRecord{}, err
	}

	record := ResultRecord{
		ID:                      id,
		RunID:                   runID,
		CustomerID:              r.CustomerID,
		Segment:                 string(r.Segment),
		CurrentAnnualCents:      r.Spend.AnnualCents,
		CreditsRequired:         r.Footprint.CreditsRequired,
		LeastCostPlan:           r.LeastCost.PlanName,
		LeastCostAnnualCents:    r.LeastCost.AnnualCostCents,
		LeastCostOverageCredits: r.LeastCost.OverageCredits,
		MatchAnnualCents:        r.MatchSpend.AnnualCostCents,
		MatchOverageCredits:     r.MatchSpend.OverageCredits,
		Payload:                 datatypes.JSON(payload),
	}
	if r.MatchSpend.Present {
		plan := r.MatchSpend.PlanName
		record.MatchPlan = &plan
	}
	return record, nil
}
