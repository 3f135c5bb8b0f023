// Package redis implements campaign.Store on top of a Redis instance.
//
// Campaigns are stored as JSON blobs under "campaign:<id>" keys with no TTL;
// deadline expiry is a ledger concern, not a storage concern, so ended
// campaigns stay readable until explicitly deleted.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ignite/crowdfund/internal/domain"
	"github.com/ignite/crowdfund/internal/service/campaign"
)

const keyPrefix = "campaign:"

// Store is a Redis-backed campaign store.
type Store struct {
	client *goredis.Client
}

// New creates a store on an existing Redis client.
func New(client *goredis.Client) *Store {
	return &Store{client: client}
}

// NewFromURL creates a store by connecting to Redis and verifying the
// connection with a ping.
func NewFromURL(redisURL string) (*Store, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	log.Printf("[repository.redis] Connected to Redis at %s", redisURL)
	return New(client), nil
}

// Get returns the campaign stored under id.
func (s *Store) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == goredis.Nil {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var c domain.Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode campaign %s: %w", id, err)
	}
	return &c, nil
}

// Put persists the campaign under its ID.
func (s *Store) Put(ctx context.Context, c *domain.Campaign) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode campaign %s: %w", c.ID, err)
	}
	if err := s.client.Set(ctx, keyPrefix+c.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes and returns the campaign stored under id. GETDEL keeps the
// read-and-remove atomic on the Redis side.
func (s *Store) Delete(ctx context.Context, id string) (*domain.Campaign, error) {
	data, err := s.client.GetDel(ctx, keyPrefix+id).Bytes()
	if err == goredis.Nil {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel: %w", err)
	}

	var c domain.Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode campaign %s: %w", id, err)
	}
	return &c, nil
}
