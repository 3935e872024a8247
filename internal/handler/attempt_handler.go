package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/waaed/assessment-api/internal/dto"
	"github.com/waaed/assessment-api/internal/service"
	"github.com/waaed/assessment-api/internal/utils"
)

// AttemptHandler manages the attempt lifecycle endpoints.
type AttemptHandler struct {
	service service.AttemptService
	logger  zerolog.Logger
}

// NewAttemptHandler builds an attempt handler instance.
func NewAttemptHandler(service service.AttemptService, logger zerolog.Logger) *AttemptHandler {
	return &AttemptHandler{
		service: service,
		logger:  logger.With().Str("component", "attempt_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AttemptHandler) Register(router fiber.Router) {
	router.Post("/quizzes/:quizId/attempts", h.start)
	router.Get("/quizzes/:quizId/attempts", h.list)
	router.Get("/attempts/:id", h.get)
	router.Put("/attempts/:id/answers/:questionId", h.recordAnswer)
	router.Post("/attempts/:id/submit", h.submit)
	router.Post("/attempts/:id/questions/:questionId/manual-grade", h.manualGrade)
}

func (h *AttemptHandler) start(c *fiber.Ctx) error {
	quizID, err := parseUUIDParam(c, "quizId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.StartAttemptRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	attempt, err := h.service.Start(c.Context(), quizID, studentID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	requestLogger(h.logger, c).Info().
		Str("quiz_id", quizID.String()).
		Str("student_id", studentID).
		Msg("attempt started")

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attempt started", attempt)
}

func (h *AttemptHandler) list(c *fiber.Ctx) error {
	quizID, err := parseUUIDParam(c, "quizId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	studentID := userIDFromContext(c)
	if studentID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	attempts, err := h.service.List(c.Context(), quizID, studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attempts retrieved", attempts)
}

func (h *AttemptHandler) get(c *fiber.Ctx) error {
	attemptID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	attempt, err := h.service.Get(c.Context(), attemptID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "attempt retrieved", attempt)
}

func (h *AttemptHandler) recordAnswer(c *fiber.Ctx) error {
	attemptID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	questionID, err := parseUUIDParam(c, "questionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.RecordAnswerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	attempt, err := h.service.RecordAnswer(c.Context(), attemptID, questionID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "answer recorded", attempt)
}

func (h *AttemptHandler) submit(c *fiber.Ctx) error {
	attemptID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	attempt, err := h.service.Submit(c.Context(), attemptID)
	if err != nil {
		return h.handleError(c, err)
	}

	requestLogger(h.logger, c).Info().
		Str("attempt_id", attemptID.String()).
		Str("state", string(attempt.State)).
		Msg("attempt submitted")

	return utils.SendSuccess(c, "attempt submitted", attempt)
}

func (h *AttemptHandler) manualGrade(c *fiber.Ctx) error {
	role := userRoleFromContext(c)
	if role != "teacher" && role != "admin" {
		return utils.SendError(c, fiber.StatusForbidden, "grading requires a teacher role")
	}

	attemptID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	questionID, err := parseUUIDParam(c, "questionId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	graderID := userIDFromContext(c)
	if graderID == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.ManualGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	attempt, err := h.service.ApplyManualGrade(c.Context(), attemptID, questionID, graderID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	requestLogger(h.logger, c).Info().
		Str("attempt_id", attemptID.String()).
		Str("question_id", questionID.String()).
		Str("grader_id", graderID).
		Msg("manual grade applied")

	return utils.SendSuccess(c, "manual grade applied", attempt)
}

func (h *AttemptHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "quiz not found")
	case errors.Is(err, service.ErrAttemptNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "attempt not found")
	case errors.Is(err, service.ErrQuestionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "question not found")
	case errors.Is(err, service.ErrRubricNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "rubric not found")
	case errors.Is(err, service.ErrQuizNotAvailable):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAttemptLimitExceeded):
		return utils.SendError(c, fiber.StatusConflict, "attempt limit exceeded")
	case errors.Is(err, service.ErrAttemptAlreadyActive):
		return utils.SendError(c, fiber.StatusConflict, "an attempt is already in progress")
	case errors.Is(err, service.ErrAttemptExpired):
		return utils.SendError(c, fiber.StatusGone, "attempt time limit exceeded")
	case errors.Is(err, service.ErrAttemptNotActive):
		return utils.SendError(c, fiber.StatusConflict, "attempt is no longer active")
	case errors.Is(err, service.ErrInvalidAnswerShape):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrBacktrackNotAllowed):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "backtracking is not allowed for this quiz")
	case errors.Is(err, service.ErrMissingCriterionSelection):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrUnsupportedQuestionType):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrManualGradeNotPending):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "attempt has no pending manual grading")
	case errors.Is(err, service.ErrManualGradeNotAllowed):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "question does not accept manual grades")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
