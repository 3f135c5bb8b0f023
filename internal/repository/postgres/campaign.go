// Package postgres implements campaign.Store against PostgreSQL.
//
// The ledger treats storage as a durable map, so campaigns live in a single
// key/document table rather than a normalized schema:
//
//	CREATE TABLE IF NOT EXISTS campaigns (
//	    id         TEXT PRIMARY KEY,
//	    record     JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ignite/crowdfund/internal/domain"
	"github.com/ignite/crowdfund/internal/service/campaign"
)

// CampaignStore implements campaign.Store against PostgreSQL.
type CampaignStore struct{ db *sql.DB }

// NewCampaignStore creates a Postgres-backed campaign store.
func NewCampaignStore(db *sql.DB) *CampaignStore { return &CampaignStore{db: db} }

// Get returns the campaign stored under id.
func (s *CampaignStore) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	var record []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT record FROM campaigns WHERE id = $1
	`, id).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return decode(id, record)
}

// Put upserts the campaign under its ID.
func (s *CampaignStore) Put(ctx context.Context, c *domain.Campaign) error {
	record, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode campaign %s: %w", c.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO campaigns (id, record, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record, updated_at = NOW()
	`, c.ID, record)
	if err != nil {
		return fmt.Errorf("put campaign: %w", err)
	}
	return nil
}

// Delete removes and returns the campaign stored under id. RETURNING makes
// the remove-and-read a single statement.
func (s *CampaignStore) Delete(ctx context.Context, id string) (*domain.Campaign, error) {
	var record []byte
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM campaigns WHERE id = $1 RETURNING record
	`, id).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete campaign: %w", err)
	}
	return decode(id, record)
}

func decode(id string, record []byte) (*domain.Campaign, error) {
	var c domain.Campaign
	if err := json.Unmarshal(record, &c); err != nil {
		return nil, fmt.Errorf("decode campaign %s: %w", id, err)
	}
	return &c, nil
}
