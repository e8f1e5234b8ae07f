package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/smallbiznis/planshift/internal/pricing/domain"
	"gorm.io/datatypes"
)

const SubscriptionStatusActive = "active"

// Customer is an account as extracted from the document store.
type Customer struct {
	ID                 snowflake.ID          `gorm:"primaryKey" json:"-"`
	SnapshotID         string                `gorm:"type:text;not null;uniqueIndex:ux_customers_snapshot_external" json:"-"`
	ExternalID         string                `gorm:"type:text;not null;uniqueIndex:ux_customers_snapshot_external" json:"id"`
	Name               string                `gorm:"type:text;not null" json:"name"`
	Segment            pricingdomain.Segment `gorm:"type:text;not null" json:"type"`
	Domain             *string               `gorm:"type:text" json:"domain,omitempty"`
	BillingCustomerID  *string               `gorm:"type:text;index" json:"stripeCustomerId,omitempty"`
	SubscriptionID     *string               `gorm:"type:text" json:"stripeSubscriptionId,omitempty"`
	SubscriptionStatus string                `gorm:"type:text" json:"stripeSubscriptionStatus,omitempty"`
	Metadata           datatypes.JSONMap     `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt          time.Time             `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// BillingRef returns the external billing customer reference, if any.
func (c Customer) BillingRef() string {
	if c.BillingCustomerID == nil {
		return ""
	}
	return strings.TrimSpace(*c.BillingCustomerID)
}

// DomainName returns the customer's domain, if any.
func (c Customer) DomainName() string {
	if c.Domain == nil {
		return ""
	}
	return strings.TrimSpace(*c.Domain)
}

// Billable reports whether the customer has an active paid subscription.
func (c Customer) Billable() bool {
	if c.BillingRef() == "" || c.SubscriptionID == nil || strings.TrimSpace(*c.SubscriptionID) == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(c.SubscriptionStatus), SubscriptionStatusActive)
}
