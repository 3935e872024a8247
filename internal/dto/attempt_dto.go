package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/waaed/assessment-api/internal/models"
)

// StartAttemptRequest carries the caller-verified preconditions for starting
// an attempt. Access-code and lockdown checks happen upstream; the engine
// only consumes their verdicts.
type StartAttemptRequest struct {
	AccessCodeVerified bool `json:"access_code_verified"`
	LockdownVerified   bool `json:"lockdown_verified"`
}

// RecordAnswerRequest carries the raw answer values for one question.
// Choice-based and short-answer types send a single value; multiple_select
// sends the selected set; fill_in_blank sends one value per blank.
type RecordAnswerRequest struct {
	Values []string `json:"values" validate:"required"`
}

// ManualGradeRequest applies one rubric grading pass to a question. The
// selections map criterion IDs to the chosen level IDs. DirectPoints is the
// fallback for manual questions without a linked rubric.
type ManualGradeRequest struct {
	Selections   map[string]string `json:"selections" validate:"omitempty,min=1"`
	DirectPoints *float64          `json:"direct_points" validate:"omitempty,gte=0"`
}

// AttemptAnswerResponse serializes one recorded answer. Correctness and
// awarded points are withheld until the quiz permits revealing them.
type AttemptAnswerResponse struct {
	QuestionID    uuid.UUID `json:"question_id"`
	Position      int       `json:"position"`
	Values        []string  `json:"values"`
	IsCorrect     *bool     `json:"is_correct,omitempty"`
	PointsAwarded *float64  `json:"points_awarded,omitempty"`
	Feedback      string    `json:"feedback,omitempty"`
}

// AttemptResponse serializes an attempt for API clients.
type AttemptResponse struct {
	ID               uuid.UUID               `json:"id"`
	QuizID           uuid.UUID               `json:"quiz_id"`
	StudentID        string                  `json:"student_id"`
	AttemptNumber    int                     `json:"attempt_number"`
	State            models.AttemptState     `json:"state"`
	StartedAt        time.Time               `json:"started_at"`
	ExpiresAt        *time.Time              `json:"expires_at"`
	SubmittedAt      *time.Time              `json:"submitted_at"`
	TimeSpent        int                     `json:"time_spent"`
	RemainingSeconds *int                    `json:"remaining_seconds,omitempty"`
	AutoScore        float64                 `json:"auto_score"`
	PendingManual    bool                    `json:"pending_manual"`
	FinalScore       *float64                `json:"final_score"`
	Answers          []AttemptAnswerResponse `json:"answers"`
}

// NewAttemptResponse maps an attempt to its API shape. Per-question
// correctness and feedback are included only when revealAnswers is set;
// question metadata comes from the quiz definition.
func NewAttemptResponse(attempt models.Attempt, quiz models.Quiz, now time.Time, revealAnswers bool) AttemptResponse {
	feedbackByQuestion := make(map[uuid.UUID]string, len(quiz.Questions))
	for _, question := range quiz.Questions {
		feedbackByQuestion[question.ID] = question.Feedback
	}

	answers := make([]AttemptAnswerResponse, 0, len(attempt.Answers))
	for _, answer := range attempt.Answers {
		entry := AttemptAnswerResponse{
			QuestionID: answer.QuestionID,
			Position:   answer.Position,
			Values:     answer.ValueList(),
		}
		if revealAnswers {
			entry.IsCorrect = answer.IsCorrect
			entry.PointsAwarded = answer.PointsAwarded
			entry.Feedback = feedbackByQuestion[answer.QuestionID]
		}
		answers = append(answers, entry)
	}

	response := AttemptResponse{
		ID:            attempt.ID,
		QuizID:        attempt.QuizID,
		StudentID:     attempt.StudentID,
		AttemptNumber: attempt.AttemptNumber,
		State:         attempt.State,
		StartedAt:     attempt.StartedAt,
		ExpiresAt:     attempt.ExpiresAt,
		SubmittedAt:   attempt.SubmittedAt,
		TimeSpent:     attempt.TimeSpent,
		AutoScore:     attempt.AutoScore,
		PendingManual: attempt.PendingManual,
		FinalScore:    attempt.FinalScore,
		Answers:       answers,
	}

	if attempt.Active() && attempt.ExpiresAt != nil {
		remaining := int(attempt.ExpiresAt.Sub(now).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		response.RemainingSeconds = &remaining
	}

	return response
}

// NewAttemptListResponse maps a student's attempt history.
func NewAttemptListResponse(attempts []models.Attempt, quiz models.Quiz, now time.Time, revealAnswers bool) []AttemptResponse {
	responses := make([]AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		responses = append(responses, NewAttemptResponse(attempt, quiz, now, revealAnswers))
	}
	return responses
}
