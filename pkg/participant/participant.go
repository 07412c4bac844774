// Package participant implements the invitee approval workflow: each
// invited member independently approves or rejects a schedule they were
// added to, and only that member may change their own row.
package participant

import "errors"

var (
	// ErrNotParticipant is returned when the acting user has no invitation
	// row on the schedule. The owner responding on behalf of an invitee
	// lands here too.
	ErrNotParticipant = errors.New("user is not a participant of this schedule")

	// ErrAlreadyDecided is returned when a participant who already
	// approved or rejected tries to flip to the opposite decision.
	ErrAlreadyDecided = errors.New("participant has already decided")

	// ErrInvalidDecision is returned for decisions other than APPROVED or
	// REJECTED.
	ErrInvalidDecision = errors.New("decision must be APPROVED or REJECTED")
)
