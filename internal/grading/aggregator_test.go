package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/waaed/assessment-api/internal/models"
)

func gradedAttempt(score float64, submittedAt time.Time) models.Attempt {
	return models.Attempt{
		State:       models.AttemptStateGraded,
		FinalScore:  &score,
		SubmittedAt: &submittedAt,
	}
}

func TestAggregateHighest(t *testing.T) {
	now := time.Now()
	attempts := []models.Attempt{
		gradedAttempt(60, now.Add(-2*time.Hour)),
		gradedAttempt(85, now.Add(-time.Hour)),
	}

	grade := Aggregate(models.ScoringPolicyHighest, attempts)
	require.NotNil(t, grade)
	require.Equal(t, 85.0, *grade)
}

func TestAggregateAverage(t *testing.T) {
	now := time.Now()
	attempts := []models.Attempt{
		gradedAttempt(70, now.Add(-2*time.Hour)),
		gradedAttempt(90, now.Add(-time.Hour)),
	}

	grade := Aggregate(models.ScoringPolicyAverage, attempts)
	require.NotNil(t, grade)
	require.Equal(t, 80.0, *grade)
}

func TestAggregateLatestAndFirst(t *testing.T) {
	now := time.Now()
	attempts := []models.Attempt{
		gradedAttempt(50, now.Add(-3*time.Hour)),
		gradedAttempt(75, now.Add(-time.Hour)),
		gradedAttempt(65, now.Add(-2*time.Hour)),
	}

	latest := Aggregate(models.ScoringPolicyLatest, attempts)
	require.NotNil(t, latest)
	require.Equal(t, 75.0, *latest)

	first := Aggregate(models.ScoringPolicyFirst, attempts)
	require.NotNil(t, first)
	require.Equal(t, 50.0, *first)
}

func TestAggregateIgnoresUngradedAttempts(t *testing.T) {
	now := time.Now()
	score := 40.0
	attempts := []models.Attempt{
		{State: models.AttemptStateInProgress},
		{State: models.AttemptStateSubmitted, FinalScore: &score, SubmittedAt: &now},
		{State: models.AttemptStateExpired},
	}

	require.Nil(t, Aggregate(models.ScoringPolicyHighest, attempts))
}

func TestAggregateNoAttemptsIsUndefinedNotZero(t *testing.T) {
	require.Nil(t, Aggregate(models.ScoringPolicyAverage, nil))
}
