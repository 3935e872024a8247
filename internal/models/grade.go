package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizGrade is the reported grade for one student on one quiz. It is always
// recomputed from the student's graded attempts and the quiz scoring policy,
// never mutated independently.
type QuizGrade struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	QuizID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_grade_quiz_student" json:"quiz_id"`
	StudentID string        `gorm:"size:64;not null;uniqueIndex:idx_grade_quiz_student" json:"student_id"`
	Score     float64       `gorm:"not null" json:"score"`
	Policy    ScoringPolicy `gorm:"size:16;not null" json:"policy"`
	UpdatedAt time.Time     `json:"updated_at"`
}
