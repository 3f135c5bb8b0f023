package domain

import (
	"time"
)

// DonorRecord is a single accepted contribution attached to a campaign.
// The same donor may appear multiple times; each donation is its own entry.
type DonorRecord struct {
	ID     string `json:"id" db:"id"`
	Amount int64  `json:"amount" db:"amount"`
}

// Campaign represents a fundraising campaign with its goal, deadline, and
// accumulated donations. Monetary fields are minor currency units (cents),
// which keeps the 0 <= TotalDonations <= Goal invariant exact.
type Campaign struct {
	ID             string        `json:"id" db:"id"`
	Proposer       string        `json:"proposer" db:"proposer"`
	Title          string        `json:"title" db:"title"`
	Description    string        `json:"description" db:"description"`
	Goal           int64         `json:"goal" db:"goal"`
	TotalDonations int64         `json:"total_donations" db:"total_donations"`
	Deadline       time.Time     `json:"deadline" db:"deadline"`
	Donors         []DonorRecord `json:"donors" db:"donors"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}

// Ended reports whether the campaign deadline has passed at the given time.
// The open/ended distinction is derived from the clock on every read; it is
// never stored as an explicit status field.
func (c *Campaign) Ended(now time.Time) bool {
	return now.After(c.Deadline)
}

// Remaining returns the goal headroom still open for donations.
func (c *Campaign) Remaining() int64 {
	return c.Goal - c.TotalDonations
}

// Clone returns a deep copy of the campaign. Stores hand out clones so that
// callers mutating a record in memory never alias the persisted state.
func (c *Campaign) Clone() *Campaign {
	cp := *c
	if c.Donors != nil {
		cp.Donors = make([]DonorRecord, len(c.Donors))
		copy(cp.Donors, c.Donors)
	}
	return &cp
}
