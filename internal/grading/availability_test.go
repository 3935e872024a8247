package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/waaed/assessment-api/internal/models"
)

func TestEvaluateGateWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	from := now.Add(-time.Hour)
	until := now.Add(time.Hour)
	quiz := models.Quiz{Published: true, AvailableFrom: &from, AvailableUntil: &until}

	require.Equal(t, AvailabilityOpen, EvaluateGate(quiz, now, Preconditions{}))
	require.Equal(t, AvailabilityNotYetOpen, EvaluateGate(quiz, from.Add(-time.Minute), Preconditions{}))
	require.Equal(t, AvailabilityClosed, EvaluateGate(quiz, until.Add(time.Minute), Preconditions{}))
}

func TestEvaluateGateOpenEndedWindow(t *testing.T) {
	quiz := models.Quiz{Published: true}
	require.Equal(t, AvailabilityOpen, EvaluateGate(quiz, time.Now(), Preconditions{}))
}

func TestEvaluateGateUnpublished(t *testing.T) {
	quiz := models.Quiz{Published: false}
	require.Equal(t, AvailabilityUnpublished, EvaluateGate(quiz, time.Now(), Preconditions{}))
}

func TestEvaluateGatePreconditions(t *testing.T) {
	quiz := models.Quiz{Published: true, AccessCode: "s3cret"}
	require.Equal(t, AvailabilityAccessDenied, EvaluateGate(quiz, time.Now(), Preconditions{}))
	require.Equal(t, AvailabilityOpen, EvaluateGate(quiz, time.Now(), Preconditions{AccessCodeVerified: true}))

	lockdown := models.Quiz{Published: true, RequireLockdownBrowser: true}
	require.Equal(t, AvailabilityAccessDenied, EvaluateGate(lockdown, time.Now(), Preconditions{}))
	require.Equal(t, AvailabilityOpen, EvaluateGate(lockdown, time.Now(), Preconditions{LockdownVerified: true}))
}
