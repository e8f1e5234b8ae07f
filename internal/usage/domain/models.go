// Package domain contains usage records extracted per customer workspace.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Record is the usage footprint of one customer workspace.
type Record struct {
	ID               snowflake.ID                `json:"-" gorm:"primaryKey"`
	SnapshotID       string                      `json:"-" gorm:"type:text;not null;index"`
	ExternalID       string                      `json:"id" gorm:"type:text;not null"`
	CustomerID       string                      `json:"customerId" gorm:"type:text;not null;index"`
	Capabilities     datatypes.JSONSlice[string] `json:"capabilities" gorm:"type:json;not null"`
	UsageCount       int64                       `json:"usageCount" gorm:"not null"`
	UsageLimit       int64                       `json:"usageLimit" gorm:"not null;default:0"`
	RunIntervalHours float64                     `json:"runIntervalHours" gorm:"not null;default:0"`
	CreatedAt        time.Time                   `json:"-" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Record) TableName() string { return "usage_records" }

// HighFrequency reports whether the workspace runs more than once a day.
func (r Record) HighFrequency() bool {
	return r.RunIntervalHours > 0 && r.RunIntervalHours < 24
}
