// Package storage defines the minimal persistence contract the ledger service
// depends on. Backends map the BankAccounts table; the service stays
// backend-agnostic.
package storage

import (
	"context"

	"github.com/sbplanet/currencybank/internal/bank"
)

// Store is the persistence surface consumed by the ledger service. All
// methods must be safe for concurrent use; the service additionally
// serializes its own read-modify-write spans.
type Store interface {
	// InsertAccount adds a row (ID, AccountName, Balance). A duplicate ID or
	// duplicate name surfaces as an error.
	InsertAccount(ctx context.Context, a bank.Account) error
	// ListAccounts returns every row, used to hydrate the in-memory mirror.
	ListAccounts(ctx context.Context) ([]bank.Account, error)
	// UpdateBalance sets the balance of the row keyed by ID and reports how
	// many rows the update touched.
	UpdateBalance(ctx context.Context, id int, balance int64) (int64, error)
	// DeleteByName removes rows matching the exact name and reports how many
	// rows went away.
	DeleteByName(ctx context.Context, name string) (int64, error)
	// Count returns the number of account rows.
	Count(ctx context.Context) (int, error)
	// Ping verifies connectivity.
	Ping(ctx context.Context) error
	// Close releases the underlying connection or pool.
	Close() error
}
