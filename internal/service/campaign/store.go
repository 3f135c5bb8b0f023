package campaign

import (
	"context"

	"github.com/ignite/crowdfund/internal/domain"
)

// Store defines the durable key-value contract the ledger persists campaigns
// in. Implementations must be safe for concurrent use and must provide
// read-your-writes consistency for a single key.
//
// Implementations hand out defensive copies: mutating a campaign returned by
// Get must never change the stored record until it is written back with Put.
type Store interface {
	// Get returns the campaign stored under id. Returns ErrNotFound if it
	// doesn't exist.
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// Put persists the campaign under its ID, overwriting any previous
	// version of the record.
	Put(ctx context.Context, c *domain.Campaign) error

	// Delete removes and returns the campaign stored under id. Returns
	// ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) (*domain.Campaign, error)
}
