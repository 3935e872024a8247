package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuestionType enumerates the closed set of supported question kinds.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeMultipleSelect QuestionType = "multiple_select"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
	QuestionTypeEssay          QuestionType = "essay"
	QuestionTypeFillInBlank    QuestionType = "fill_in_blank"
)

// Question is an immutable quiz question definition. Choice and correct-answer
// sets are stored as ordered JSON string lists.
type Question struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Text              string         `gorm:"type:text;not null" json:"text"`
	Type              QuestionType   `gorm:"size:32;not null" json:"type"`
	Points            float64        `gorm:"not null" json:"points"`
	Position          int            `gorm:"not null" json:"position"`
	CorrectAnswers    datatypes.JSON `gorm:"type:json" json:"-"`
	AnswerChoices     datatypes.JSON `gorm:"type:json" json:"answer_choices"`
	Feedback          string         `gorm:"type:text" json:"feedback"`
	RubricID          *uuid.UUID     `gorm:"type:uuid" json:"rubric_id"`
	LearningOutcomeID *uuid.UUID     `gorm:"type:uuid" json:"learning_outcome_id"`
	CreatedAt         time.Time      `json:"created_at"`
}

// CorrectAnswerList decodes the stored correct-answer set, preserving order.
func (q Question) CorrectAnswerList() []string {
	return decodeStringList(q.CorrectAnswers)
}

// SetCorrectAnswers serializes the correct-answer set into the JSON column.
func (q *Question) SetCorrectAnswers(answers []string) error {
	data, err := encodeStringList(answers)
	if err != nil {
		return err
	}
	q.CorrectAnswers = data
	return nil
}

// ChoiceList decodes the stored answer choices, preserving order.
func (q Question) ChoiceList() []string {
	return decodeStringList(q.AnswerChoices)
}

// SetChoices serializes the answer choices into the JSON column.
func (q *Question) SetChoices(choices []string) error {
	data, err := encodeStringList(choices)
	if err != nil {
		return err
	}
	q.AnswerChoices = data
	return nil
}

// AutoGradable reports whether the question can be scored without human
// judgment. A question with an empty correct-answer set always requires a
// manual override, whatever its declared type.
func (q Question) AutoGradable() bool {
	switch q.Type {
	case QuestionTypeMultipleChoice, QuestionTypeMultipleSelect,
		QuestionTypeTrueFalse, QuestionTypeShortAnswer, QuestionTypeFillInBlank:
		return len(q.CorrectAnswerList()) > 0
	default:
		return false
	}
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}

func encodeStringList(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
