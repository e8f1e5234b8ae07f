// Package snapshot loads, validates and indexes the extracted input records.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	billingdomain "github.com/smallbiznis/planshift/internal/billing/domain"
	customerdomain "github.com/smallbiznis/planshift/internal/customer/domain"
	usagedomain "github.com/smallbiznis/planshift/internal/usage/domain"
)

const (
	CustomersFile = "customers.json"
	UsageFile     = "usage_records.json"
	LineItemsFile = "line_items.json"
)

var (
	ErrMissingFile   = errors.New("missing_snapshot_file")
	ErrMalformedFile = errors.New("malformed_snapshot_file")
)

// Snapshot is one point-in-time extract of customers, usage and billing.
type Snapshot struct {
	ID        string
	Source    string
	Customers []customerdomain.Customer
	Usage     []usagedomain.Record
	LineItems []billingdomain.LineItem
}

// Load reads a snapshot directory. Customers without an active paid
// subscription are dropped, like the extractor's own filter.
func Load(dir string) (Snapshot, error) {
	var snap Snapshot
	snap.Source = dir

	if err := readJSON(filepath.Join(dir, CustomersFile), &snap.Customers); err != nil {
		return Snapshot{}, err
	}
	if err := readJSON(filepath.Join(dir, UsageFile), &snap.Usage); err != nil {
		return Snapshot{}, err
	}
	if err := readJSON(filepath.Join(dir, LineItemsFile), &snap.LineItems); err != nil {
		return Snapshot{}, err
	}

	snap.Customers = Billable(snap.Customers)
	return snap, nil
}

// Billable keeps customers with an active subscription and a billing reference.
func Billable(customers []customerdomain.Customer) []customerdomain.Customer {
	out := make([]customerdomain.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Billable() {
			out = append(out, c)
		}
	}
	return out
}

func readJSON(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrMissingFile)
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrMalformedFile, err)
	}
	return nil
}
