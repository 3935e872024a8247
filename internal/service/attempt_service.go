package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/waaed/assessment-api/internal/dto"
	"github.com/waaed/assessment-api/internal/grading"
	"github.com/waaed/assessment-api/internal/models"
	"github.com/waaed/assessment-api/internal/observability"
	"github.com/waaed/assessment-api/internal/repository"
)

// ErrQuizNotFound indicates the quiz was not located.
var ErrQuizNotFound = errors.New("quiz not found")

// ErrAttemptNotFound indicates the attempt was not located.
var ErrAttemptNotFound = errors.New("attempt not found")

// ErrQuestionNotFound indicates the question does not belong to the quiz.
var ErrQuestionNotFound = errors.New("question not found")

// ErrRubricNotFound indicates the question's linked rubric was not located.
var ErrRubricNotFound = errors.New("rubric not found")

// ErrQuizNotAvailable indicates the availability gate rejected the operation.
var ErrQuizNotAvailable = errors.New("quiz not available")

// ErrAttemptLimitExceeded indicates the student has used all allowed attempts.
var ErrAttemptLimitExceeded = errors.New("attempt limit exceeded")

// ErrAttemptAlreadyActive indicates an in-progress attempt already exists.
var ErrAttemptAlreadyActive = errors.New("attempt already active")

// ErrAttemptNotActive indicates the attempt no longer accepts the operation.
var ErrAttemptNotActive = errors.New("attempt not active")

// ErrAttemptExpired indicates the attempt timed out; the attempt has been
// moved to the expired state as a side effect of detection.
var ErrAttemptExpired = errors.New("attempt expired")

// ErrBacktrackNotAllowed indicates the quiz forbids revisiting earlier
// questions once a later one has been answered.
var ErrBacktrackNotAllowed = errors.New("backtracking not allowed")

// ErrManualGradeNotPending indicates the attempt has no manual grading
// outstanding.
var ErrManualGradeNotPending = errors.New("attempt has no pending manual grading")

// ErrManualGradeNotAllowed indicates the question is auto-gradable and
// cannot receive a manual grade.
var ErrManualGradeNotAllowed = errors.New("question does not accept manual grades")

// Evaluation errors surface from the grading package unchanged so handlers
// can map them alongside the service sentinels.
var (
	ErrInvalidAnswerShape        = grading.ErrInvalidAnswerShape
	ErrUnsupportedQuestionType   = grading.ErrUnsupportedQuestionType
	ErrMissingCriterionSelection = grading.ErrMissingCriterionSelection
)

// GradeRecomputer refreshes the stored quiz grade after an attempt reaches
// the graded state.
type GradeRecomputer interface {
	Recompute(ctx context.Context, quiz models.Quiz, studentID string) error
}

// AttemptService drives the attempt state machine: start, answer, submit,
// and manual grading.
type AttemptService interface {
	Start(ctx context.Context, quizID uuid.UUID, studentID string, payload dto.StartAttemptRequest) (dto.AttemptResponse, error)
	Get(ctx context.Context, attemptID uuid.UUID) (dto.AttemptResponse, error)
	List(ctx context.Context, quizID uuid.UUID, studentID string) ([]dto.AttemptResponse, error)
	RecordAnswer(ctx context.Context, attemptID, questionID uuid.UUID, payload dto.RecordAnswerRequest) (dto.AttemptResponse, error)
	Submit(ctx context.Context, attemptID uuid.UUID) (dto.AttemptResponse, error)
	ApplyManualGrade(ctx context.Context, attemptID, questionID uuid.UUID, graderID string, payload dto.ManualGradeRequest) (dto.AttemptResponse, error)
}

type attemptService struct {
	quizzes   repository.QuizRepository
	rubrics   repository.RubricRepository
	attempts  repository.AttemptRepository
	grades    GradeRecomputer
	events    *EventPublisher
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	locks     *keyedMutex
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAttemptService constructs the attempt engine.
func NewAttemptService(
	quizzes repository.QuizRepository,
	rubrics repository.RubricRepository,
	attempts repository.AttemptRepository,
	grades GradeRecomputer,
	events *EventPublisher,
	validate *validator.Validate,
	logger zerolog.Logger,
) AttemptService {
	return &attemptService{
		quizzes:   quizzes,
		rubrics:   rubrics,
		attempts:  attempts,
		grades:    grades,
		events:    events,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		locks:     newKeyedMutex(),
		logger:    logger.With().Str("component", "attempt_service").Logger(),
		now:       time.Now,
	}
}

func (s *attemptService) Start(ctx context.Context, quizID uuid.UUID, studentID string, payload dto.StartAttemptRequest) (dto.AttemptResponse, error) {
	tracer := otel.Tracer("github.com/waaed/assessment-api/internal/service/attempt")
	ctx, span := tracer.Start(ctx, "attempt.start")
	span.SetAttributes(
		attribute.String("attempt.quiz_id", quizID.String()),
		attribute.String("attempt.student_id", studentID),
	)
	defer span.End()

	// The per-pair lock makes the no-active-attempt check and the insert one
	// critical section; the partial unique index backs it up across processes.
	unlock := s.locks.Lock("start:" + quizID.String() + ":" + studentID)
	defer unlock()

	quiz, err := s.getQuiz(ctx, quizID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "quiz_lookup_failed")
		return dto.AttemptResponse{}, err
	}

	now := s.now()
	gate := grading.EvaluateGate(quiz, now, grading.Preconditions{
		AccessCodeVerified: payload.AccessCodeVerified,
		LockdownVerified:   payload.LockdownVerified,
	})
	if gate != grading.AvailabilityOpen {
		err := fmt.Errorf("%w: %s", ErrQuizNotAvailable, gate)
		span.RecordError(err)
		span.SetStatus(codes.Error, "quiz_not_available")
		return dto.AttemptResponse{}, err
	}

	history, err := s.attempts.ListByQuizStudent(ctx, quizID, studentID)
	if err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}

	counted := 0
	for i := range history {
		prior := &history[i]
		if prior.Active() {
			if prior.TimedOut(now) {
				if err := s.expire(ctx, prior); err != nil {
					span.RecordError(err)
					return dto.AttemptResponse{}, err
				}
				continue
			}
			span.SetStatus(codes.Error, "attempt_already_active")
			return dto.AttemptResponse{}, ErrAttemptAlreadyActive
		}
		if prior.CountsTowardLimit() {
			counted++
		}
	}

	if !quiz.UnlimitedAttempts() && counted >= quiz.AllowedAttempts {
		span.SetStatus(codes.Error, "attempt_limit_exceeded")
		return dto.AttemptResponse{}, ErrAttemptLimitExceeded
	}

	attempt := models.Attempt{
		ID:            uuid.New(),
		QuizID:        quizID,
		StudentID:     studentID,
		AttemptNumber: len(history) + 1,
		State:         models.AttemptStateInProgress,
		StartedAt:     now,
	}
	if limit := quiz.TimeLimit(); limit > 0 {
		expiresAt := now.Add(limit)
		attempt.ExpiresAt = &expiresAt
	}

	if err := s.attempts.Create(ctx, &attempt); err != nil {
		// A concurrent start from another process can slip past the listing
		// and hit the partial unique index instead.
		span.RecordError(err)
		span.SetStatus(codes.Error, "attempt_create_failed")
		return dto.AttemptResponse{}, ErrAttemptAlreadyActive
	}

	observability.AttemptsStarted().WithLabelValues(string(quiz.Type)).Inc()
	s.logger.Info().
		Str("quiz_id", quizID.String()).
		Str("student_id", studentID).
		Int("attempt_number", attempt.AttemptNumber).
		Msg("attempt started")

	return dto.NewAttemptResponse(attempt, quiz, now, false), nil
}

func (s *attemptService) Get(ctx context.Context, attemptID uuid.UUID) (dto.AttemptResponse, error) {
	unlock := s.locks.Lock("attempt:" + attemptID.String())
	defer unlock()

	attempt, err := s.getAttempt(ctx, attemptID)
	if err != nil {
		return dto.AttemptResponse{}, err
	}

	quiz, err := s.getQuiz(ctx, attempt.QuizID)
	if err != nil {
		return dto.AttemptResponse{}, err
	}

	now := s.now()
	if attempt.Active() {
		if attempt.TimedOut(now) {
			if err := s.expire(ctx, &attempt); err != nil {
				return dto.AttemptResponse{}, err
			}
		} else if gate := grading.EvaluateGate(quiz, now, grading.Preconditions{
			// Access code and lockdown were verified when the attempt started.
			AccessCodeVerified: true,
			LockdownVerified:   true,
		}); gate == grading.AvailabilityClosed || gate == grading.AvailabilityUnpublished {
			// The quiz closed (or was unpublished) underneath the attempt.
			if err := s.expire(ctx, &attempt); err != nil {
				return dto.AttemptResponse{}, err
			}
		}
	}

	reveal := !attempt.Active() && quiz.CorrectAnswersVisible(now)
	return dto.NewAttemptResponse(attempt, quiz, now, reveal), nil
}

func (s *attemptService) List(ctx context.Context, quizID uuid.UUID, studentID string) ([]dto.AttemptResponse, error) {
	quiz, err := s.getQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attempts.ListByQuizStudent(ctx, quizID, studentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return dto.NewAttemptListResponse(attempts, quiz, now, quiz.CorrectAnswersVisible(now)), nil
}

func (s *attemptService) RecordAnswer(ctx context.Context, attemptID, questionID uuid.UUID, payload dto.RecordAnswerRequest) (dto.AttemptResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttemptResponse{}, err
	}

	unlock := s.locks.Lock("attempt:" + attemptID.String())
	defer unlock()

	attempt, err := s.getAttempt(ctx, attemptID)
	if err != nil {
		return dto.AttemptResponse{}, err
	}

	if !attempt.Active() {
		return dto.AttemptResponse{}, ErrAttemptNotActive
	}

	now := s.now()
	if attempt.TimedOut(now) {
		if err := s.expire(ctx, &attempt); err != nil {
			return dto.AttemptResponse{}, err
		}
		return dto.AttemptResponse{}, ErrAttemptExpired
	}

	quiz, err := s.getQuiz(ctx, attempt.QuizID)
	if err != nil {
		return dto.AttemptResponse{}, err
	}

	question, found := findQuestion(quiz, questionID)
	if !found {
		return dto.AttemptResponse{}, ErrQuestionNotFound
	}

	if err := validateAnswerShape(question, payload.Values); err != nil {
		return dto.AttemptResponse{}, err
	}

	if quiz.OneQuestionAtATime && quiz.CantGoBack {
		highest := -1
		for _, answer := range attempt.Answers {
			if answer.Position > highest {
				highest = answer.Position
			}
		}
		if question.Position < highest {
			return dto.AttemptResponse{}, ErrBacktrackNotAllowed
		}
	}

	answer := models.AttemptAnswer{
		AttemptID:  attempt.ID,
		QuestionID: question.ID,
		Position:   question.Position,
	}
	if err := answer.SetValues(s.sanitizeValues(question, payload.Values)); err != nil {
		return dto.AttemptResponse{}, err
	}
	if err := s.attempts.SaveAnswer(ctx, &answer); err != nil {
		return dto.AttemptResponse{}, err
	}

	attempt, err = s.getAttempt(ctx, attemptID)
	if err != nil {
		return dto.AttemptResponse{}, err
	}

	return dto.NewAttemptResponse(attempt, quiz, now, false), nil
}

func (s *attemptService) Submit(ctx context.Context, attemptID uuid.UUID) (dto.AttemptResponse, error) {
	tracer := otel.Tracer("github.com/waaed/assessment-api/internal/service/attempt")
	ctx, span := tracer.Start(ctx, "attempt.submit")
	span.SetAttributes(attribute.String("attempt.id", attemptID.String()))
	defer span.End()

	unlock := s.locks.Lock("attempt:" + attemptID.String())
	defer unlock()

	attempt, err := s.getAttempt(ctx, attemptID)
	if err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}

	if !attempt.Active() {
		span.SetStatus(codes.Error, "attempt_not_active")
		return dto.AttemptResponse{}, ErrAttemptNotActive
	}

	now := s.now()
	if attempt.TimedOut(now) {
		if err := s.expire(ctx, &attempt); err != nil {
			span.RecordError(err)
			return dto.AttemptResponse{}, err
		}
		span.SetStatus(codes.Error, "attempt_expired")
		return dto.AttemptResponse{}, ErrAttemptExpired
	}

	quiz, err := s.getQuiz(ctx, attempt.QuizID)
	if err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}

	gradingStart := s.now()
	autoScore, pendingManual := s.evaluateAnswers(quiz, &attempt)
	observability.GradingLatency().Observe(s.now().Sub(gradingStart).Seconds())

	if err := s.attempts.UpdateAnswers(ctx, attempt.Answers); err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}

	attempt.SubmittedAt = &now
	attempt.TimeSpent = int(now.Sub(attempt.StartedAt).Seconds())
	attempt.AutoScore = autoScore
	attempt.PendingManual = pendingManual
	if pendingManual {
		attempt.State = models.AttemptStateSubmitted
	} else {
		attempt.State = models.AttemptStateGraded
		final := autoScore
		attempt.FinalScore = &final
	}

	if err := s.attempts.Update(ctx, &attempt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "attempt_update_failed")
		return dto.AttemptResponse{}, err
	}

	observability.AttemptsFinished().WithLabelValues(string(attempt.State)).Inc()
	span.SetAttributes(
		attribute.Float64("attempt.auto_score", autoScore),
		attribute.Bool("attempt.pending_manual", pendingManual),
	)

	if attempt.State == models.AttemptStateGraded {
		s.finalize(ctx, quiz, attempt)
	} else {
		s.events.AttemptSubmitted(attempt)
	}

	return dto.NewAttemptResponse(attempt, quiz, now, quiz.CorrectAnswersVisible(now)), nil
}

func (s *attemptService) ApplyManualGrade(ctx context.Context, attemptID, questionID uuid.UUID, graderID string, payload dto.ManualGradeRequest) (dto.AttemptResponse, error) {
	tracer := otel.Tracer("github.com/waaed/assessment-api/internal/service/attempt")
	ctx, span := tracer.Start(ctx, "attempt.manual_grade")
	span.SetAttributes(
		attribute.String("attempt.id", attemptID.String()),
		attribute.String("attempt.question_id", questionID.String()),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}

	unlock := s.locks.Lock("attempt:" + attemptID.String())
	defer unlock()

	attempt, err := s.getAttempt(ctx, attemptID)
	if err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}

	if attempt.State != models.AttemptStateSubmitted || !attempt.PendingManual {
		span.SetStatus(codes.Error, "manual_grade_not_pending")
		return dto.AttemptResponse{}, ErrManualGradeNotPending
	}

	quiz, err := s.getQuiz(ctx, attempt.QuizID)
	if err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}

	question, found := findQuestion(quiz, questionID)
	if !found {
		return dto.AttemptResponse{}, ErrQuestionNotFound
	}
	if grading.AutoGradable(question) {
		return dto.AttemptResponse{}, ErrManualGradeNotAllowed
	}

	points, err := s.manualPoints(ctx, question, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "manual_grade_rejected")
		return dto.AttemptResponse{}, err
	}

	now := s.now()
	grade := models.ManualGrade{
		AttemptID:  attempt.ID,
		QuestionID: question.ID,
		Points:     points,
		GraderID:   graderID,
		GradedAt:   now,
	}
	if err := grade.SetSelections(payload.Selections); err != nil {
		return dto.AttemptResponse{}, err
	}
	if err := s.attempts.UpsertManualGrade(ctx, &grade); err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}

	if err := s.storeManualPoints(ctx, &attempt, question, points); err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}

	// All-manual-graded check runs under the attempt lock so two graders
	// finishing different questions cannot both miss the transition.
	complete, manualTotal, err := s.manualGradingComplete(ctx, quiz, attempt)
	if err != nil {
		span.RecordError(err)
		return dto.AttemptResponse{}, err
	}
	if complete {
		final := attempt.AutoScore + manualTotal
		attempt.FinalScore = &final
		attempt.PendingManual = false
		attempt.State = models.AttemptStateGraded
		if err := s.attempts.Update(ctx, &attempt); err != nil {
			span.RecordError(err)
			return dto.AttemptResponse{}, err
		}
		observability.AttemptsFinished().WithLabelValues(string(models.AttemptStateGraded)).Inc()
		s.finalize(ctx, quiz, attempt)
	}

	span.SetAttributes(attribute.Float64("attempt.manual_points", points))
	return dto.NewAttemptResponse(attempt, quiz, now, quiz.CorrectAnswersVisible(now)), nil
}

// evaluateAnswers scores every auto-gradable answered question in place and
// reports the auto score plus whether any question still needs a human.
func (s *attemptService) evaluateAnswers(quiz models.Quiz, attempt *models.Attempt) (float64, bool) {
	answersByQuestion := make(map[uuid.UUID]*models.AttemptAnswer, len(attempt.Answers))
	for i := range attempt.Answers {
		answersByQuestion[attempt.Answers[i].QuestionID] = &attempt.Answers[i]
	}

	autoScore := 0.0
	pendingManual := false
	for _, question := range quiz.Questions {
		if !grading.AutoGradable(question) {
			pendingManual = true
			continue
		}

		answer, answered := answersByQuestion[question.ID]
		if !answered {
			continue
		}

		result, err := grading.Evaluate(question, answer.ValueList())
		if err != nil {
			// Shape is validated when the answer is recorded; a mismatch here
			// means the definition changed underneath the attempt.
			s.logger.Warn().Err(err).
				Str("attempt_id", attempt.ID.String()).
				Str("question_id", question.ID.String()).
				Msg("answer evaluation failed, awarding zero")
			incorrect := false
			zero := 0.0
			answer.IsCorrect = &incorrect
			answer.PointsAwarded = &zero
			continue
		}

		correct := result.Correct
		points := result.Points
		answer.IsCorrect = &correct
		answer.PointsAwarded = &points
		autoScore += points
	}

	return autoScore, pendingManual
}

func (s *attemptService) manualPoints(ctx context.Context, question models.Question, payload dto.ManualGradeRequest) (float64, error) {
	if len(payload.Selections) > 0 {
		if question.RubricID == nil {
			return 0, ErrRubricNotFound
		}
		rubric, err := s.rubrics.GetByID(ctx, *question.RubricID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrRubricNotFound
			}
			return 0, err
		}
		return grading.ScoreRubric(rubric, payload.Selections)
	}

	if payload.DirectPoints != nil {
		points := *payload.DirectPoints
		if points > question.Points {
			points = question.Points
		}
		return points, nil
	}

	return 0, fmt.Errorf("%w: no selections or direct points provided", grading.ErrMissingCriterionSelection)
}

// storeManualPoints mirrors the manual grade onto the answer row, creating
// one when the student never answered the question.
func (s *attemptService) storeManualPoints(ctx context.Context, attempt *models.Attempt, question models.Question, points float64) error {
	for i := range attempt.Answers {
		if attempt.Answers[i].QuestionID == question.ID {
			attempt.Answers[i].PointsAwarded = &points
			return s.attempts.UpdateAnswers(ctx, attempt.Answers[i:i+1])
		}
	}

	answer := models.AttemptAnswer{
		AttemptID:  attempt.ID,
		QuestionID: question.ID,
		Position:   question.Position,
	}
	if err := answer.SetValues(nil); err != nil {
		return err
	}
	answer.PointsAwarded = &points
	if err := s.attempts.SaveAnswer(ctx, &answer); err != nil {
		return err
	}
	attempt.Answers = append(attempt.Answers, answer)
	return nil
}

func (s *attemptService) manualGradingComplete(ctx context.Context, quiz models.Quiz, attempt models.Attempt) (bool, float64, error) {
	grades, err := s.attempts.ListManualGrades(ctx, attempt.ID)
	if err != nil {
		return false, 0, err
	}

	gradedPoints := make(map[uuid.UUID]float64, len(grades))
	for _, grade := range grades {
		gradedPoints[grade.QuestionID] = grade.Points
	}

	total := 0.0
	for _, question := range quiz.Questions {
		if grading.AutoGradable(question) {
			continue
		}
		points, graded := gradedPoints[question.ID]
		if !graded {
			return false, 0, nil
		}
		total += points
	}

	return true, total, nil
}

// finalize runs the side effects of an attempt reaching the graded state.
// Grade recomputation failures are logged, not surfaced: the grade remains
// derivable from the attempts and the next recompute heals it.
func (s *attemptService) finalize(ctx context.Context, quiz models.Quiz, attempt models.Attempt) {
	s.events.AttemptGraded(attempt)

	if s.grades == nil || !quiz.ProducesGrade() {
		return
	}
	if err := s.grades.Recompute(ctx, quiz, attempt.StudentID); err != nil {
		s.logger.Warn().Err(err).
			Str("quiz_id", quiz.ID.String()).
			Str("student_id", attempt.StudentID).
			Msg("failed to recompute quiz grade")
	}
}

func (s *attemptService) expire(ctx context.Context, attempt *models.Attempt) error {
	attempt.State = models.AttemptStateExpired
	if err := s.attempts.Update(ctx, attempt); err != nil {
		return err
	}
	observability.AttemptsFinished().WithLabelValues(string(models.AttemptStateExpired)).Inc()
	s.logger.Info().Str("attempt_id", attempt.ID.String()).Msg("attempt expired")
	return nil
}

// sanitizeValues strips markup from free-text answers before storage.
// Choice-based values are compared verbatim against the definition and pass
// through untouched.
func (s *attemptService) sanitizeValues(question models.Question, values []string) []string {
	switch question.Type {
	case models.QuestionTypeShortAnswer, models.QuestionTypeEssay, models.QuestionTypeFillInBlank:
		sanitized := make([]string, len(values))
		for i, value := range values {
			sanitized[i] = s.sanitizer.Sanitize(value)
		}
		return sanitized
	default:
		return values
	}
}

// validateAnswerShape rejects arity mismatches when the answer is recorded
// so students learn about malformed payloads before submitting.
func validateAnswerShape(question models.Question, values []string) error {
	switch question.Type {
	case models.QuestionTypeMultipleChoice, models.QuestionTypeTrueFalse, models.QuestionTypeShortAnswer:
		if len(values) != 1 {
			return fmt.Errorf("%w: %s expects exactly one value, got %d", ErrInvalidAnswerShape, question.Type, len(values))
		}
	case models.QuestionTypeMultipleSelect:
		if len(values) == 0 {
			return fmt.Errorf("%w: multiple_select expects at least one value", ErrInvalidAnswerShape)
		}
	case models.QuestionTypeFillInBlank:
		if expected := len(question.CorrectAnswerList()); expected > 0 && len(values) != expected {
			return fmt.Errorf("%w: fill_in_blank expects %d values, got %d", ErrInvalidAnswerShape, expected, len(values))
		}
	}
	return nil
}

func findQuestion(quiz models.Quiz, questionID uuid.UUID) (models.Question, bool) {
	for _, question := range quiz.Questions {
		if question.ID == questionID {
			return question, true
		}
	}
	return models.Question{}, false
}

func (s *attemptService) getQuiz(ctx context.Context, quizID uuid.UUID) (models.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Quiz{}, ErrQuizNotFound
		}
		return models.Quiz{}, err
	}
	return quiz, nil
}

func (s *attemptService) getAttempt(ctx context.Context, attemptID uuid.UUID) (models.Attempt, error) {
	attempt, err := s.attempts.GetByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attempt{}, ErrAttemptNotFound
		}
		return models.Attempt{}, err
	}
	return attempt, nil
}
