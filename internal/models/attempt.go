package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AttemptState tracks the attempt lifecycle. The zero ("not started") state is
// virtual; no record exists until the attempt starts.
type AttemptState string

const (
	AttemptStateInProgress AttemptState = "in_progress"
	AttemptStateSubmitted  AttemptState = "submitted"
	AttemptStateExpired    AttemptState = "expired"
	AttemptStateGraded     AttemptState = "graded"
)

// Attempt is one student's instance of taking a quiz.
type Attempt struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_attempts_quiz_student" json:"quiz_id"`
	StudentID     string          `gorm:"size:64;not null;index:idx_attempts_quiz_student" json:"student_id"`
	AttemptNumber int             `gorm:"not null" json:"attempt_number"`
	State         AttemptState    `gorm:"size:16;not null;index" json:"state"`
	StartedAt     time.Time       `gorm:"not null" json:"started_at"`
	ExpiresAt     *time.Time      `json:"expires_at"`
	SubmittedAt   *time.Time      `json:"submitted_at"`
	TimeSpent     int             `json:"time_spent"`
	AutoScore     float64         `json:"auto_score"`
	PendingManual bool            `gorm:"not null;default:false" json:"pending_manual"`
	FinalScore    *float64        `json:"final_score"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Answers       []AttemptAnswer `gorm:"constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// Active reports whether the attempt still accepts answers.
func (a Attempt) Active() bool {
	return a.State == AttemptStateInProgress
}

// TimedOut reports whether the attempt deadline has passed. The expires-at
// instant is fixed at start time and never recomputed.
func (a Attempt) TimedOut(now time.Time) bool {
	return a.ExpiresAt != nil && now.After(*a.ExpiresAt)
}

// CountsTowardLimit reports whether the attempt consumes one of the quiz's
// allowed attempts. Expired attempts do not count.
func (a Attempt) CountsTowardLimit() bool {
	return a.State != AttemptStateExpired
}

// AttemptAnswer stores the raw answer values a student recorded for one
// question. Correctness and awarded points are filled in at submit time for
// auto-gradable types, or by manual grading.
type AttemptAnswer struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	AttemptID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question" json:"attempt_id"`
	QuestionID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question" json:"question_id"`
	Position      int            `gorm:"not null" json:"position"`
	Values        datatypes.JSON `gorm:"type:json" json:"values"`
	IsCorrect     *bool          `json:"is_correct"`
	PointsAwarded *float64       `json:"points_awarded"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ValueList decodes the recorded answer values, preserving order.
func (a AttemptAnswer) ValueList() []string {
	return decodeStringList(a.Values)
}

// SetValues serializes the answer values into the JSON column.
func (a *AttemptAnswer) SetValues(values []string) error {
	data, err := encodeStringList(values)
	if err != nil {
		return err
	}
	a.Values = data
	return nil
}

// ManualGrade records one grading pass over a manually-graded question within
// an attempt. Re-grading the same attempt/question pair overwrites the row.
type ManualGrade struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AttemptID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_manual_attempt_question" json:"attempt_id"`
	QuestionID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_manual_attempt_question" json:"question_id"`
	Selections datatypes.JSON `gorm:"type:json" json:"selections"`
	Points     float64        `gorm:"not null" json:"points"`
	GraderID   string         `gorm:"size:64;not null" json:"grader_id"`
	GradedAt   time.Time      `gorm:"not null" json:"graded_at"`
}

// SelectionMap decodes the criterion-to-level selections of the grading pass.
func (m ManualGrade) SelectionMap() map[string]string {
	if len(m.Selections) == 0 {
		return nil
	}
	var selections map[string]string
	if err := json.Unmarshal(m.Selections, &selections); err != nil {
		return nil
	}
	return selections
}

// SetSelections serializes the criterion-to-level selections.
func (m *ManualGrade) SetSelections(selections map[string]string) error {
	if selections == nil {
		selections = map[string]string{}
	}
	data, err := json.Marshal(selections)
	if err != nil {
		return err
	}
	m.Selections = datatypes.JSON(data)
	return nil
}
