package grading

import (
	"time"

	"github.com/waaed/assessment-api/internal/models"
)

// Availability is the gate verdict for starting or resuming an attempt.
type Availability string

const (
	AvailabilityOpen         Availability = "open"
	AvailabilityNotYetOpen   Availability = "not_yet_open"
	AvailabilityClosed       Availability = "closed"
	AvailabilityUnpublished  Availability = "unpublished"
	AvailabilityAccessDenied Availability = "access_denied"
)

// Preconditions carries the opaque caller-verified checks the gate does not
// re-implement: access-code entry and lockdown browser presence.
type Preconditions struct {
	AccessCodeVerified bool
	LockdownVerified   bool
}

// EvaluateGate decides whether the quiz accepts attempts at the given
// instant. Pure; no side effects.
func EvaluateGate(quiz models.Quiz, now time.Time, pre Preconditions) Availability {
	if !quiz.Published {
		return AvailabilityUnpublished
	}
	if quiz.AvailableFrom != nil && now.Before(*quiz.AvailableFrom) {
		return AvailabilityNotYetOpen
	}
	if quiz.AvailableUntil != nil && now.After(*quiz.AvailableUntil) {
		return AvailabilityClosed
	}
	if quiz.AccessCode != "" && !pre.AccessCodeVerified {
		return AvailabilityAccessDenied
	}
	if quiz.RequireLockdownBrowser && !pre.LockdownVerified {
		return AvailabilityAccessDenied
	}
	return AvailabilityOpen
}
