// Package domain models the recurring charges a customer pays today.
package domain

import (
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	DurationForever   = "forever"
	DurationRepeating = "repeating"
	DurationOnce      = "once"
)

// Discount is a percent-off coupon attached to a line item or subscription.
type Discount struct {
	ID         string  `json:"id"`
	PercentOff float64 `json:"percentOff"`
	Duration   string  `json:"duration"`
}

// LongTerm reports whether the coupon keeps applying after the first invoice.
func (d Discount) LongTerm() bool {
	return d.Duration == DurationForever || d.Duration == DurationRepeating
}

// LineItem is one active recurring charge, normalized to a monthly amount in cents.
type LineItem struct {
	ID                    snowflake.ID                  `json:"-" gorm:"primaryKey"`
	SnapshotID            string                        `json:"-" gorm:"type:text;not null;index"`
	ExternalID            string                        `json:"id" gorm:"type:text;not null"`
	BillingCustomerID     string                        `json:"customerId" gorm:"type:text;not null;index"`
	SubscriptionID        string                        `json:"subscriptionId" gorm:"type:text"`
	MonthlyAmountCents    int64                         `json:"mrrCents" gorm:"not null"`
	Quantity              int64                         `json:"quantity" gorm:"not null;default:1"`
	Interval              string                        `json:"interval" gorm:"type:text"`
	IntervalCount         int                           `json:"intervalCount" gorm:"not null;default:1"`
	Discounts             datatypes.JSONSlice[Discount] `json:"discounts" gorm:"type:json"`
	SubscriptionDiscounts datatypes.JSONSlice[Discount] `json:"subscriptionDiscounts" gorm:"type:json"`
	CreatedAt             time.Time                     `json:"-" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (LineItem) TableName() string { return "billing_line_items" }

// Units is the billed quantity; an omitted quantity counts as one.
func (i LineItem) Units() int64 {
	if i.Quantity <= 0 {
		return 1
	}
	return i.Quantity
}

// IntervalLabel renders the billing interval, e.g. "month" or "year (2)".
func (i LineItem) IntervalLabel() string {
	if i.Interval == "" {
		return ""
	}
	if i.IntervalCount > 1 {
		return i.Interval + " (" + strconv.Itoa(i.IntervalCount) + ")"
	}
	return i.Interval
}
