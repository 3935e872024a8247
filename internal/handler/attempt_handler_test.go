package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/waaed/assessment-api/internal/config"
	"github.com/waaed/assessment-api/internal/database"
	"github.com/waaed/assessment-api/internal/dto"
	"github.com/waaed/assessment-api/internal/handler"
	"github.com/waaed/assessment-api/internal/models"
	"github.com/waaed/assessment-api/internal/repository"
	"github.com/waaed/assessment-api/internal/router"
	"github.com/waaed/assessment-api/internal/service"
)

func setupAssessmentApp(t *testing.T, userID, role string) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	quizRepo := repository.NewQuizRepository(db)
	rubricRepo := repository.NewRubricRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	gradeRepo := repository.NewGradeRepository(db)

	gradeService := service.NewGradeService(quizRepo, attemptRepo, gradeRepo, nil, nil, 0, logger)
	attemptService := service.NewAttemptService(quizRepo, rubricRepo, attemptRepo, gradeService, nil, validate, logger)

	app := fiber.New()
	attemptHandler := handler.NewAttemptHandler(attemptService, logger)
	gradeHandler := handler.NewGradeHandler(gradeService, logger)

	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		AttemptHandler: attemptHandler,
		GradeHandler:   gradeHandler,
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", userID)
			c.Locals("user_role", role)
			return c.Next()
		},
	})

	return app, db
}

func seedQuiz(t *testing.T, db *gorm.DB, quiz *models.Quiz) {
	t.Helper()
	if quiz.ID == uuid.Nil {
		quiz.ID = uuid.New()
	}
	if quiz.CourseID == uuid.Nil {
		quiz.CourseID = uuid.New()
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == uuid.Nil {
			quiz.Questions[i].ID = uuid.New()
		}
		quiz.Questions[i].QuizID = quiz.ID
	}
	require.NoError(t, db.Create(quiz).Error)
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

type attemptEnvelope struct {
	Success bool                `json:"success"`
	Data    dto.AttemptResponse `json:"data"`
	Message string              `json:"message"`
}

func TestAttemptHandlerFullFlow(t *testing.T) {
	app, db := setupAssessmentApp(t, "student-1", "student")

	question := models.Question{
		Text:     "Which organelle produces ATP?",
		Type:     models.QuestionTypeMultipleChoice,
		Points:   10,
		Position: 0,
	}
	require.NoError(t, question.SetCorrectAnswers([]string{"mitochondria"}))
	require.NoError(t, question.SetChoices([]string{"nucleus", "mitochondria", "ribosome"}))

	quiz := models.Quiz{
		Title:           "Cell Biology Checkpoint",
		Type:            models.QuizTypeGraded,
		Points:          10,
		AllowedAttempts: 2,
		ScoringPolicy:   models.ScoringPolicyHighest,
		Published:       true,
		Questions:       []models.Question{question},
	}
	seedQuiz(t, db, &quiz)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/assessment/quizzes/"+quiz.ID.String()+"/attempts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var started attemptEnvelope
	decodeResponse(t, resp, &started)
	require.True(t, started.Success)
	require.Equal(t, models.AttemptStateInProgress, started.Data.State)
	require.Equal(t, 1, started.Data.AttemptNumber)

	attemptID := started.Data.ID.String()
	questionID := quiz.Questions[0].ID.String()

	resp, err = app.Test(jsonRequest(t, "PUT", "/api/v1/assessment/attempts/"+attemptID+"/answers/"+questionID,
		dto.RecordAnswerRequest{Values: []string{"mitochondria"}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/v1/assessment/attempts/"+attemptID+"/submit", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var submitted attemptEnvelope
	decodeResponse(t, resp, &submitted)
	require.Equal(t, models.AttemptStateGraded, submitted.Data.State)
	require.NotNil(t, submitted.Data.FinalScore)
	require.Equal(t, 10.0, *submitted.Data.FinalScore)

	resp, err = app.Test(jsonRequest(t, "GET", "/api/v1/assessment/quizzes/"+quiz.ID.String()+"/grade", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var grade struct {
		Success bool              `json:"success"`
		Data    dto.GradeResponse `json:"data"`
	}
	decodeResponse(t, resp, &grade)
	require.True(t, grade.Success)
	require.NotNil(t, grade.Data.Score)
	require.Equal(t, 10.0, *grade.Data.Score)
}

func TestAttemptHandlerErrorMapping(t *testing.T) {
	app, db := setupAssessmentApp(t, "student-1", "student")

	unpublished := models.Quiz{
		Title:           "Draft quiz",
		Type:            models.QuizTypeGraded,
		AllowedAttempts: 1,
		ScoringPolicy:   models.ScoringPolicyHighest,
		Published:       false,
	}
	seedQuiz(t, db, &unpublished)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/v1/assessment/quizzes/"+unpublished.ID.String()+"/attempts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/v1/assessment/quizzes/"+uuid.NewString()+"/attempts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/v1/assessment/quizzes/not-a-uuid/attempts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	question := models.Question{Text: "Pick one", Type: models.QuestionTypeMultipleChoice, Points: 5, Position: 0}
	require.NoError(t, question.SetCorrectAnswers([]string{"A"}))
	published := models.Quiz{
		Title:           "Live quiz",
		Type:            models.QuizTypeGraded,
		AllowedAttempts: 1,
		ScoringPolicy:   models.ScoringPolicyHighest,
		Published:       true,
		Questions:       []models.Question{question},
	}
	seedQuiz(t, db, &published)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/v1/assessment/quizzes/"+published.ID.String()+"/attempts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var started attemptEnvelope
	decodeResponse(t, resp, &started)

	// A second concurrent start conflicts with the active attempt.
	resp, err = app.Test(jsonRequest(t, "POST", "/api/v1/assessment/quizzes/"+published.ID.String()+"/attempts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// A multiple-choice answer with two values has the wrong shape.
	resp, err = app.Test(jsonRequest(t, "PUT",
		"/api/v1/assessment/attempts/"+started.Data.ID.String()+"/answers/"+published.Questions[0].ID.String(),
		dto.RecordAnswerRequest{Values: []string{"A", "B"}}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestManualGradeRequiresTeacherRole(t *testing.T) {
	app, db := setupAssessmentApp(t, "student-1", "student")

	essay := models.Question{Text: "Discuss", Type: models.QuestionTypeEssay, Points: 10, Position: 0}
	quiz := models.Quiz{
		Title:           "Essay quiz",
		Type:            models.QuizTypeGraded,
		AllowedAttempts: 1,
		ScoringPolicy:   models.ScoringPolicyHighest,
		Published:       true,
		Questions:       []models.Question{essay},
	}
	seedQuiz(t, db, &quiz)

	resp, err := app.Test(jsonRequest(t, "POST",
		"/api/v1/assessment/attempts/"+uuid.NewString()+"/questions/"+quiz.Questions[0].ID.String()+"/manual-grade",
		dto.ManualGradeRequest{}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestManualGradeThroughHandler(t *testing.T) {
	studentApp, db := setupAssessmentApp(t, "student-1", "student")

	essay := models.Question{Text: "Discuss the cell cycle", Type: models.QuestionTypeEssay, Points: 10, Position: 0}
	quiz := models.Quiz{
		Title:           "Essay quiz",
		Type:            models.QuizTypeGraded,
		AllowedAttempts: 1,
		ScoringPolicy:   models.ScoringPolicyHighest,
		Published:       true,
		Questions:       []models.Question{essay},
	}
	seedQuiz(t, db, &quiz)

	resp, err := studentApp.Test(jsonRequest(t, "POST", "/api/v1/assessment/quizzes/"+quiz.ID.String()+"/attempts", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var started attemptEnvelope
	decodeResponse(t, resp, &started)

	resp, err = studentApp.Test(jsonRequest(t, "POST", "/api/v1/assessment/attempts/"+started.Data.ID.String()+"/submit", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var submitted attemptEnvelope
	decodeResponse(t, resp, &submitted)
	require.Equal(t, models.AttemptStateSubmitted, submitted.Data.State)
	require.True(t, submitted.Data.PendingManual)

	// The grader works against the same database through a teacher session.
	teacherApp := appForExistingDB(t, db, "teacher-1", "teacher")

	points := 7.5
	resp, err = teacherApp.Test(jsonRequest(t, "POST",
		"/api/v1/assessment/attempts/"+started.Data.ID.String()+"/questions/"+quiz.Questions[0].ID.String()+"/manual-grade",
		dto.ManualGradeRequest{DirectPoints: &points}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var graded attemptEnvelope
	decodeResponse(t, resp, &graded)
	require.Equal(t, models.AttemptStateGraded, graded.Data.State)
	require.NotNil(t, graded.Data.FinalScore)
	require.Equal(t, 7.5, *graded.Data.FinalScore)
}

func appForExistingDB(t *testing.T, db *gorm.DB, userID, role string) *fiber.App {
	t.Helper()

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	quizRepo := repository.NewQuizRepository(db)
	rubricRepo := repository.NewRubricRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	gradeRepo := repository.NewGradeRepository(db)

	gradeService := service.NewGradeService(quizRepo, attemptRepo, gradeRepo, nil, nil, 0, logger)
	attemptService := service.NewAttemptService(quizRepo, rubricRepo, attemptRepo, gradeService, nil, validate, logger)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		AttemptHandler: handler.NewAttemptHandler(attemptService, logger),
		GradeHandler:   handler.NewGradeHandler(gradeService, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", userID)
			c.Locals("user_role", role)
			return c.Next()
		},
	})
	return app
}
