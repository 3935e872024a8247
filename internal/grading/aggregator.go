package grading

import (
	"github.com/waaed/assessment-api/internal/models"
)

// Aggregate collapses a student's attempts on one quiz into a single grade
// according to the scoring policy. Only fully graded attempts participate;
// when none exist the grade is undefined and nil is returned, not zero.
func Aggregate(policy models.ScoringPolicy, attempts []models.Attempt) *float64 {
	graded := make([]models.Attempt, 0, len(attempts))
	for _, attempt := range attempts {
		if attempt.State == models.AttemptStateGraded && attempt.FinalScore != nil {
			graded = append(graded, attempt)
		}
	}
	if len(graded) == 0 {
		return nil
	}

	var score float64
	switch policy {
	case models.ScoringPolicyAverage:
		total := 0.0
		for _, attempt := range graded {
			total += *attempt.FinalScore
		}
		score = total / float64(len(graded))
	case models.ScoringPolicyLatest:
		latest := graded[0]
		for _, attempt := range graded[1:] {
			if submittedAfter(attempt, latest) {
				latest = attempt
			}
		}
		score = *latest.FinalScore
	case models.ScoringPolicyFirst:
		first := graded[0]
		for _, attempt := range graded[1:] {
			if submittedAfter(first, attempt) {
				first = attempt
			}
		}
		score = *first.FinalScore
	default: // highest
		score = *graded[0].FinalScore
		for _, attempt := range graded[1:] {
			if *attempt.FinalScore > score {
				score = *attempt.FinalScore
			}
		}
	}

	return &score
}

func submittedAfter(a, b models.Attempt) bool {
	if a.SubmittedAt == nil || b.SubmittedAt == nil {
		return a.SubmittedAt != nil
	}
	return a.SubmittedAt.After(*b.SubmittedAt)
}
