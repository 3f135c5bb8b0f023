package campaign

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/crowdfund/internal/domain"
)

// maxIDAttempts bounds the regenerate-on-collision loop for new campaign ids.
// With 128-bit random ids a single retry is already astronomically unlikely;
// the bound exists so a misbehaving store cannot spin us forever.
const maxIDAttempts = 5

// Service implements the campaign ledger business logic. It holds no campaign
// state of its own: every operation is a single read-modify-write cycle
// against the injected Store, and the store is the sole source of truth.
// All public methods are safe for concurrent use if the underlying store is
// concurrency-safe.
type Service struct {
	store Store
	clock Clock
}

// NewService creates a campaign ledger backed by the given store and clock.
func NewService(store Store, clock Clock) *Service {
	return &Service{store: store, clock: clock}
}

// CreateInput holds the fields for registering a new campaign.
type CreateInput struct {
	Proposer     string `json:"proposer"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Goal         int64  `json:"goal"`
	DeadlineDays int64  `json:"deadline_days"`
}

// Create validates and persists a new campaign. The deadline is the creation
// time plus the requested day count; a zero day count produces a campaign
// that ends as soon as the clock advances past creation.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Campaign, error) {
	if strings.TrimSpace(input.Proposer) == "" {
		return nil, ErrInvalidProposer
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrMissingTitle
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, ErrMissingDescription
	}
	if input.Goal <= 0 {
		return nil, ErrInvalidGoal
	}
	if input.DeadlineDays < 0 {
		return nil, ErrInvalidDeadline
	}

	id, err := s.newID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	c := &domain.Campaign{
		ID:             id,
		Proposer:       input.Proposer,
		Title:          title,
		Description:    description,
		Goal:           input.Goal,
		TotalDonations: 0,
		Deadline:       now.Add(time.Duration(input.DeadlineDays) * 24 * time.Hour),
		Donors:         []domain.DonorRecord{},
		CreatedAt:      now,
	}

	if err := s.store.Put(ctx, c); err != nil {
		return nil, storageErr("create campaign", err)
	}
	log.Printf("[campaign.Service] Campaign %s created: goal=%d deadline=%s", c.ID, c.Goal, c.Deadline.Format(time.RFC3339))
	return c, nil
}

// UpdateMetadata overwrites a campaign's title and description. All other
// fields (goal, deadline, donors, totals, proposer) are untouched; no
// deadline or goal checks apply to metadata edits.
func (s *Service) UpdateMetadata(ctx context.Context, id, title, description string) (*domain.Campaign, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrMissingTitle
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrMissingDescription
	}

	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Title = title
	c.Description = description

	if err := s.store.Put(ctx, c); err != nil {
		return nil, storageErr("update campaign", err)
	}
	return c, nil
}

// Donate appends a donation to the campaign and bumps its running total.
// Validation is strictly ordered: amount, then deadline, then goal headroom.
// Only when all three pass is the record mutated and persisted, in one write,
// so any rejection leaves the stored record completely unchanged.
func (s *Service) Donate(ctx context.Context, id, donorID string, amount int64) (*domain.Campaign, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Ended(s.clock.Now()) {
		return nil, fmt.Errorf("%w: %s", ErrCampaignEnded, id)
	}
	if c.TotalDonations+amount > c.Goal {
		return nil, fmt.Errorf("%w: %s", ErrGoalExceeded, id)
	}

	c.Donors = append(c.Donors, domain.DonorRecord{ID: donorID, Amount: amount})
	c.TotalDonations += amount

	if err := s.store.Put(ctx, c); err != nil {
		return nil, storageErr("persist donation", err)
	}
	log.Printf("[campaign.Service] Campaign %s: donation %d from %q, total now %d/%d", id, amount, donorID, c.TotalDonations, c.Goal)
	return c, nil
}

// Get returns a single campaign. The id format is checked before the lookup
// so malformed ids fail fast with ErrInvalidID instead of a store round-trip.
func (s *Service) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

// Deadline returns only the deadline field of a campaign. Lookup semantics
// match Get.
func (s *Service) Deadline(ctx context.Context, id string) (time.Time, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	return c.Deadline, nil
}

// Donations returns the campaign's donor records in arrival order.
func (s *Service) Donations(ctx context.Context, id string) ([]domain.DonorRecord, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Donors, nil
}

// Delete removes and returns the campaign. Any caller may delete any
// campaign; proposer verification is a known gap left to the caller's
// deployment, not silently invented here.
func (s *Service) Delete(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, storageErr("delete campaign", err)
	}
	log.Printf("[campaign.Service] Campaign %s deleted", id)
	return c, nil
}

// Ended reports whether the campaign is past its deadline on the service's
// clock. Open/ended is derived state; it is never stored.
func (s *Service) Ended(c *domain.Campaign) bool {
	return c.Ended(s.clock.Now())
}

// load fetches a campaign and normalizes store failures into the service
// error taxonomy.
func (s *Service) load(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, storageErr("get campaign", err)
	}
	return c, nil
}

// newID draws a fresh identifier and verifies it is not already present in
// the store before use, regenerating on collision.
func (s *Service) newID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := uuid.New().String()
		_, err := s.store.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", storageErr("check id uniqueness", err)
		}
		log.Printf("[campaign.Service] id collision on %s, regenerating", id)
	}
	return "", storageErr("generate id", errors.New("exhausted id attempts"))
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
