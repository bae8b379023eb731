// models/errors.go
package models

import "errors"

// Sentinel errors returned by the services layer. Handlers map them to HTTP
// statuses with errors.Is; anything not in this list is treated as a storage
// failure and surfaced as a generic 500.
var (
	// ErrMissingFields: a required submission field is absent or empty.
	ErrMissingFields = errors.New("required fields are missing (name, ticker, logo, groupType, members)")

	// ErrInvalidGroupType: groupType is outside the five-value enum.
	ErrInvalidGroupType = errors.New("invalid groupType")

	// ErrMissingRejectionReason: reject called without a reason.
	ErrMissingRejectionReason = errors.New("rejectionReason is required")

	// ErrTickerTaken: the ticker already belongs to a live team.
	ErrTickerTaken = errors.New("ticker already exists")

	// ErrTickerPending: the ticker is claimed by a submission awaiting review.
	ErrTickerPending = errors.New("ticker is already pending approval")

	// ErrPendingNotFound: no pending team with the given id.
	ErrPendingNotFound = errors.New("pending team not found")

	// ErrAlreadyReviewed: the pending team was already approved or rejected;
	// review decisions are terminal.
	ErrAlreadyReviewed = errors.New("pending team has already been reviewed")

	// ErrTeamNotFound: no live team with the given ticker.
	ErrTeamNotFound = errors.New("team not found")

	// ErrPartialSubmission: the pending team row was committed but its member
	// rows were not. The orphaned row is left in place for manual cleanup.
	ErrPartialSubmission = errors.New("failed to submit members")
)
