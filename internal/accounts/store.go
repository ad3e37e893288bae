// Package accounts provides lookup and creation of supplier, customer, and
// address records.
package accounts

import (
	"context"

	"github.com/doctrail/contact-cli/internal/model"
)

// LookupKey names a supplier column usable for contact lookup.
type LookupKey string

// Supported lookup keys.
const (
	LookupEmail LookupKey = "email"
	LookupPhone LookupKey = "phone"
)

// Store defines the persistence interface for contact resolution.
type Store interface {
	// FindSupplier looks up a supplier whose key column equals value,
	// case-insensitively. Returns nil when nothing matches.
	FindSupplier(ctx context.Context, key LookupKey, value string) (*model.Supplier, error)

	// GetCustomer fetches the customer's registered identity for the
	// self-conflict check. Returns nil when the customer does not exist.
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)

	// CreateAddress inserts an address record and returns its id.
	CreateAddress(ctx context.Context, addr model.Address) (int64, error)

	// CreateSupplier inserts a supplier record and returns its id.
	CreateSupplier(ctx context.Context, draft model.SupplierDraft) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
