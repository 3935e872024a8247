package models

import (
	"time"

	"github.com/google/uuid"
)

// QuizType distinguishes graded assessments from ungraded ones.
type QuizType string

const (
	// QuizTypeGraded counts toward the student's reported grade.
	QuizTypeGraded QuizType = "graded"
	// QuizTypePractice is scored for feedback but never produces a grade record.
	QuizTypePractice QuizType = "practice"
	// QuizTypeSurvey collects responses without scoring intent.
	QuizTypeSurvey QuizType = "survey"
)

// ScoringPolicy selects how multiple graded attempts collapse into one grade.
type ScoringPolicy string

const (
	ScoringPolicyHighest ScoringPolicy = "highest"
	ScoringPolicyAverage ScoringPolicy = "average"
	ScoringPolicyLatest  ScoringPolicy = "latest"
	ScoringPolicyFirst   ScoringPolicy = "first"
)

// Quiz is the read-only assessment definition consumed by the attempt engine.
// The engine never mutates quizzes; they are owned by the course management
// surface upstream.
type Quiz struct {
	ID                     uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID               uuid.UUID     `gorm:"type:uuid;not null;index" json:"course_id"`
	Title                  string        `gorm:"size:255;not null" json:"title"`
	Description            string        `gorm:"type:text" json:"description"`
	Instructions           string        `gorm:"type:text" json:"instructions"`
	Type                   QuizType      `gorm:"size:16;not null;default:graded" json:"type"`
	Points                 float64       `gorm:"not null" json:"points"`
	TimeLimitMinutes       *int          `json:"time_limit"`
	AllowedAttempts        int           `gorm:"not null;default:1" json:"allowed_attempts"`
	ScoringPolicy          ScoringPolicy `gorm:"size:16;not null;default:highest" json:"scoring_policy"`
	AvailableFrom          *time.Time    `json:"available_from"`
	AvailableUntil         *time.Time    `json:"available_until"`
	DueDate                *time.Time    `json:"due_date"`
	ShuffleQuestions       bool          `json:"shuffle_questions"`
	ShuffleAnswers         bool          `json:"shuffle_answers"`
	ShowCorrectAnswers     bool          `json:"show_correct_answers"`
	ShowCorrectAnswersAt   *time.Time    `json:"show_correct_answers_at"`
	OneQuestionAtATime     bool          `json:"one_question_at_a_time"`
	CantGoBack             bool          `json:"cant_go_back"`
	AccessCode             string        `gorm:"size:128" json:"-"`
	RequireLockdownBrowser bool          `json:"require_lockdown_browser"`
	Published              bool          `gorm:"not null;default:false" json:"published"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
	Questions              []Question    `gorm:"constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// UnlimitedAttempts reports whether the quiz places no cap on attempts.
// An allowed-attempts value of zero (or below) means unlimited.
func (q Quiz) UnlimitedAttempts() bool {
	return q.AllowedAttempts <= 0
}

// TimeLimit returns the attempt duration, or zero when the quiz is untimed.
func (q Quiz) TimeLimit() time.Duration {
	if q.TimeLimitMinutes == nil || *q.TimeLimitMinutes <= 0 {
		return 0
	}
	return time.Duration(*q.TimeLimitMinutes) * time.Minute
}

// ProducesGrade reports whether finished attempts feed the quiz grade.
func (q Quiz) ProducesGrade() bool {
	return q.Type == QuizTypeGraded
}

// CorrectAnswersVisible reports whether graded responses may reveal
// correctness and feedback to the student at the given instant.
func (q Quiz) CorrectAnswersVisible(now time.Time) bool {
	if !q.ShowCorrectAnswers {
		return false
	}
	if q.ShowCorrectAnswersAt != nil && now.Before(*q.ShowCorrectAnswersAt) {
		return false
	}
	return true
}
