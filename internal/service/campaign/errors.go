package campaign

import "errors"

// Sentinel errors for the campaign ledger. All failures surface as values;
// nothing in this package panics across the operation boundary.
var (
	// Validation failures. Each message names the offending field so that
	// callers can surface an actionable error without extra context.
	ErrInvalidProposer    = errors.New("proposer is required")
	ErrMissingTitle       = errors.New("title must not be empty")
	ErrMissingDescription = errors.New("description must not be empty")
	ErrInvalidGoal        = errors.New("goal must be a positive amount")
	ErrInvalidDeadline    = errors.New("deadline days must not be negative")
	ErrInvalidAmount      = errors.New("donation amount must be positive")
	ErrInvalidID          = errors.New("malformed campaign id")

	// ErrNotFound is returned when no campaign exists under the given id.
	ErrNotFound = errors.New("campaign not found")

	// ErrCampaignEnded rejects donations arriving after the deadline.
	ErrCampaignEnded = errors.New("campaign has ended")

	// ErrGoalExceeded rejects donations that would push the running total
	// past the campaign goal.
	ErrGoalExceeded = errors.New("donation would exceed campaign goal")

	// ErrStorage wraps any failure from the underlying store. Raw store
	// errors never escape the service layer.
	ErrStorage = errors.New("storage failure")
)
