package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ignite/crowdfund/internal/domain"
	"github.com/ignite/crowdfund/internal/service/campaign"
)

func testCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:       "7d4f5e6a-1b2c-4d3e-9f8a-0b1c2d3e4f5a",
		Proposer: "alice",
		Title:    "Community Garden",
		Goal:     100,
		Deadline: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Donors:   []domain.DonorRecord{},
	}
}

func TestStore_CopiesOnWriteAndRead(t *testing.T) {
	store := New()
	ctx := context.Background()

	c := testCampaign()
	if err := store.Put(ctx, c); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	// Mutating the caller's copy after Put must not leak into the store.
	c.Donors = append(c.Donors, domain.DonorRecord{ID: "bob", Amount: 40})
	c.TotalDonations = 40

	got, err := store.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.TotalDonations != 0 || len(got.Donors) != 0 {
		t.Errorf("caller mutation leaked into stored record: %+v", got)
	}

	// Mutating what Get handed out must not leak either.
	got.Title = "changed"
	again, _ := store.Get(ctx, c.ID)
	if again.Title != "Community Garden" {
		t.Errorf("Get() result aliases stored record")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := New()
	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, campaign.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := New()
	ctx := context.Background()

	c := testCampaign()
	store.Put(ctx, c)

	removed, err := store.Delete(ctx, c.ID)
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if removed.ID != c.ID {
		t.Errorf("Delete() returned %q, want %q", removed.ID, c.ID)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", store.Len())
	}
	if _, err := store.Delete(ctx, c.ID); !errors.Is(err, campaign.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_FailWith(t *testing.T) {
	store := New()
	ctx := context.Background()
	boom := errors.New("boom")

	store.FailWith(boom)
	if err := store.Put(ctx, testCampaign()); !errors.Is(err, boom) {
		t.Errorf("Put() error = %v, want injected failure", err)
	}
	if _, err := store.Get(ctx, "x"); !errors.Is(err, boom) {
		t.Errorf("Get() error = %v, want injected failure", err)
	}

	store.FailWith(nil)
	if err := store.Put(ctx, testCampaign()); err != nil {
		t.Errorf("Put() after clearing failure: %v", err)
	}
}
