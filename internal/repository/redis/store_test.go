package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ignite/crowdfund/internal/domain"
	"github.com/ignite/crowdfund/internal/service/campaign"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client)
}

func testCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:          "7d4f5e6a-1b2c-4d3e-9f8a-0b1c2d3e4f5a",
		Proposer:    "alice",
		Title:       "Community Garden",
		Description: "Raised beds for the neighborhood lot",
		Goal:        100,
		Deadline:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Donors:      []domain.DonorRecord{},
		CreatedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStore_PutGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	c := testCampaign()
	c.Donors = append(c.Donors, domain.DonorRecord{ID: "bob", Amount: 40})
	c.TotalDonations = 40

	if err := store.Put(ctx, c); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := store.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Title != c.Title || got.TotalDonations != 40 || len(got.Donors) != 1 {
		t.Errorf("Get() = %+v, want %+v", got, c)
	}
	if !got.Deadline.Equal(c.Deadline) {
		t.Errorf("Deadline = %v, want %v", got.Deadline, c.Deadline)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := setupStore(t)
	_, err := store.Get(context.Background(), "no-such-id")
	if !errors.Is(err, campaign.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	c := testCampaign()
	if err := store.Put(ctx, c); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	c.Title = "Bigger Garden"
	if err := store.Put(ctx, c); err != nil {
		t.Fatalf("second Put() error: %v", err)
	}

	got, err := store.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Title != "Bigger Garden" {
		t.Errorf("Title = %q, want overwrite to stick", got.Title)
	}
}

func TestStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	c := testCampaign()
	if err := store.Put(ctx, c); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	removed, err := store.Delete(ctx, c.ID)
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if removed.ID != c.ID {
		t.Errorf("Delete() returned %q, want %q", removed.ID, c.ID)
	}

	if _, err := store.Get(ctx, c.ID); !errors.Is(err, campaign.ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
	if _, err := store.Delete(ctx, c.ID); !errors.Is(err, campaign.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
