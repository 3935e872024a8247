package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/waaed/assessment-api/internal/models"
)

// GradeResponse is the aggregated quiz grade for one student. Score is null
// while no attempt has reached the graded state.
type GradeResponse struct {
	QuizID    uuid.UUID            `json:"quiz_id"`
	StudentID string               `json:"student_id"`
	Score     *float64             `json:"score"`
	Policy    models.ScoringPolicy `json:"policy"`
	UpdatedAt *time.Time           `json:"updated_at"`
}

// NewGradeResponse maps a stored quiz grade to its API shape.
func NewGradeResponse(grade models.QuizGrade) GradeResponse {
	score := grade.Score
	updatedAt := grade.UpdatedAt
	return GradeResponse{
		QuizID:    grade.QuizID,
		StudentID: grade.StudentID,
		Score:     &score,
		Policy:    grade.Policy,
		UpdatedAt: &updatedAt,
	}
}

// NewUndefinedGradeResponse represents the absence of a grade without
// collapsing it to zero.
func NewUndefinedGradeResponse(quizID uuid.UUID, studentID string, policy models.ScoringPolicy) GradeResponse {
	return GradeResponse{
		QuizID:    quizID,
		StudentID: studentID,
		Policy:    policy,
	}
}
