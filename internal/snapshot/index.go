package snapshot

import (
	billingdomain "github.com/smallbiznis/planshift/internal/billing/domain"
	scenariodomain "github.com/smallbiznis/planshift/internal/scenario/domain"
	usagedomain "github.com/smallbiznis/planshift/internal/usage/domain"
)

// Index groups usage by customer id and line items by billing customer id.
// It is built once per run and only read afterwards.
type Index struct {
	usage     map[string][]usagedomain.Record
	lineItems map[string][]billingdomain.LineItem
}

func NewIndex(snap Snapshot) *Index {
	idx := &Index{
		usage:     make(map[string][]usagedomain.Record),
		lineItems: make(map[string][]billingdomain.LineItem),
	}
	for _, r := range snap.Usage {
		idx.usage[r.CustomerID] = append(idx.usage[r.CustomerID], r)
	}
	for _, item := range snap.LineItems {
		idx.lineItems[item.BillingCustomerID] = append(idx.lineItems[item.BillingCustomerID], item)
	}
	return idx
}

func (idx *Index) Usage(customerID string) []usagedomain.Record {
	return idx.usage[customerID]
}

func (idx *Index) LineItems(billingCustomerID string) []billingdomain.LineItem {
	if billingCustomerID == "" {
		return nil
	}
	return idx.lineItems[billingCustomerID]
}

// Inputs assembles calculator inputs in snapshot customer order.
func Inputs(snap Snapshot) []scenariodomain.Input {
	idx := NewIndex(snap)
	inputs := make([]scenariodomain.Input, 0, len(snap.Customers))
	for _, c := range snap.Customers {
		inputs = append(inputs, scenariodomain.Input{
			Customer:  c,
			Usage:     idx.Usage(c.ExternalID),
			LineItems: idx.LineItems(c.BillingRef()),
		})
	}
	return inputs
}
