package grading

import (
	"errors"
	"fmt"
	"strings"

	"github.com/waaed/assessment-api/internal/models"
)

// ErrUnsupportedQuestionType indicates the question declares a type outside
// the closed strategy set. Such questions are routed to manual grading.
var ErrUnsupportedQuestionType = errors.New("unsupported question type")

// ErrInvalidAnswerShape indicates the answer arity does not match the
// declared question type.
var ErrInvalidAnswerShape = errors.New("invalid answer shape")

// Result is the outcome of evaluating a single answer.
type Result struct {
	Correct  bool
	Fraction float64 // fraction of the question's points awarded
	Points   float64
}

type strategy func(question models.Question, values []string) (Result, error)

var strategies = map[models.QuestionType]strategy{
	models.QuestionTypeMultipleChoice: evaluateMultipleChoice,
	models.QuestionTypeTrueFalse:      evaluateTrueFalse,
	models.QuestionTypeMultipleSelect: evaluateMultipleSelect,
	models.QuestionTypeShortAnswer:    evaluateShortAnswer,
	models.QuestionTypeFillInBlank:    evaluateFillInBlank,
}

// AutoGradable reports whether Evaluate can score the question without human
// judgment. Essay questions and questions with an empty correct-answer set
// always require manual grading.
func AutoGradable(question models.Question) bool {
	if _, ok := strategies[question.Type]; !ok {
		return false
	}
	return len(question.CorrectAnswerList()) > 0
}

// Evaluate scores a single answer against the question's correct-answer
// definition, dispatching on the declared question type. Callers must only
// pass questions for which AutoGradable returns true; essays and unknown
// types fail with ErrUnsupportedQuestionType.
func Evaluate(question models.Question, values []string) (Result, error) {
	evaluate, ok := strategies[question.Type]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedQuestionType, question.Type)
	}
	if len(question.CorrectAnswerList()) == 0 {
		return Result{}, fmt.Errorf("%w: empty correct-answer set", ErrUnsupportedQuestionType)
	}
	return evaluate(question, values)
}

func evaluateMultipleChoice(question models.Question, values []string) (Result, error) {
	if len(values) != 1 {
		return Result{}, fmt.Errorf("%w: multiple_choice expects exactly one value, got %d", ErrInvalidAnswerShape, len(values))
	}
	for _, correct := range question.CorrectAnswerList() {
		if values[0] == correct {
			return fullCredit(question), nil
		}
	}
	return zeroCredit(), nil
}

func evaluateTrueFalse(question models.Question, values []string) (Result, error) {
	if len(values) != 1 {
		return Result{}, fmt.Errorf("%w: true_false expects exactly one value, got %d", ErrInvalidAnswerShape, len(values))
	}
	answer := strings.ToLower(strings.TrimSpace(values[0]))
	if answer != "true" && answer != "false" {
		return Result{}, fmt.Errorf("%w: true_false value must be True or False", ErrInvalidAnswerShape)
	}
	for _, correct := range question.CorrectAnswerList() {
		if answer == strings.ToLower(strings.TrimSpace(correct)) {
			return fullCredit(question), nil
		}
	}
	return zeroCredit(), nil
}

// evaluateMultipleSelect compares the answer as an unordered set against the
// full correct-answer set. No partial credit.
func evaluateMultipleSelect(question models.Question, values []string) (Result, error) {
	if len(values) == 0 {
		return Result{}, fmt.Errorf("%w: multiple_select expects at least one value", ErrInvalidAnswerShape)
	}
	correct := question.CorrectAnswerList()
	selected := make(map[string]struct{}, len(values))
	for _, value := range values {
		selected[value] = struct{}{}
	}
	if len(selected) != len(correct) {
		return zeroCredit(), nil
	}
	for _, want := range correct {
		if _, ok := selected[want]; !ok {
			return zeroCredit(), nil
		}
	}
	return fullCredit(question), nil
}

func evaluateShortAnswer(question models.Question, values []string) (Result, error) {
	if len(values) != 1 {
		return Result{}, fmt.Errorf("%w: short_answer expects exactly one value, got %d", ErrInvalidAnswerShape, len(values))
	}
	answer := normalizeText(values[0])
	for _, correct := range question.CorrectAnswerList() {
		if answer == normalizeText(correct) {
			return fullCredit(question), nil
		}
	}
	return zeroCredit(), nil
}

// evaluateFillInBlank scores each blank independently against the
// correct-answer entry at the same position. Partial credit is the fraction
// of blanks matched.
func evaluateFillInBlank(question models.Question, values []string) (Result, error) {
	correct := question.CorrectAnswerList()
	if len(values) != len(correct) {
		return Result{}, fmt.Errorf("%w: fill_in_blank expects %d values, got %d", ErrInvalidAnswerShape, len(correct), len(values))
	}
	matched := 0
	for i, value := range values {
		if normalizeText(value) == normalizeText(correct[i]) {
			matched++
		}
	}
	fraction := float64(matched) / float64(len(correct))
	return Result{
		Correct:  matched == len(correct),
		Fraction: fraction,
		Points:   fraction * question.Points,
	}, nil
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func fullCredit(question models.Question) Result {
	return Result{Correct: true, Fraction: 1, Points: question.Points}
}

func zeroCredit() Result {
	return Result{}
}
