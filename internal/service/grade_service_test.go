package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/waaed/assessment-api/internal/models"
)

type fakeGradeRepo struct {
	mu     sync.Mutex
	grades map[string]models.QuizGrade
}

func newFakeGradeRepo() *fakeGradeRepo {
	return &fakeGradeRepo{grades: make(map[string]models.QuizGrade)}
}

func gradeKey(quizID uuid.UUID, studentID string) string {
	return quizID.String() + ":" + studentID
}

func (f *fakeGradeRepo) Upsert(ctx context.Context, grade *models.QuizGrade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grades[gradeKey(grade.QuizID, grade.StudentID)] = *grade
	return nil
}

func (f *fakeGradeRepo) Get(ctx context.Context, quizID uuid.UUID, studentID string) (models.QuizGrade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	grade, ok := f.grades[gradeKey(quizID, studentID)]
	if !ok {
		return models.QuizGrade{}, gorm.ErrRecordNotFound
	}
	return grade, nil
}

func (f *fakeGradeRepo) Delete(ctx context.Context, quizID uuid.UUID, studentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.grades, gradeKey(quizID, studentID))
	return nil
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	server := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: server.Addr()})
}

func gradedAttempt(quizID uuid.UUID, studentID string, score float64, submittedAt time.Time) models.Attempt {
	final := score
	return models.Attempt{
		ID:          uuid.New(),
		QuizID:      quizID,
		StudentID:   studentID,
		State:       models.AttemptStateGraded,
		SubmittedAt: &submittedAt,
		FinalScore:  &final,
	}
}

func newGradeFixture(t *testing.T, quiz models.Quiz) (*gradeService, *fakeAttemptRepo, *fakeGradeRepo) {
	t.Helper()
	quizRepo := &fakeQuizRepo{quizzes: map[uuid.UUID]models.Quiz{quiz.ID: quiz}}
	attemptRepo := newFakeAttemptRepo()
	gradeRepo := newFakeGradeRepo()
	svc := NewGradeService(quizRepo, attemptRepo, gradeRepo, nil, testRedis(t), time.Minute, testLogger()).(*gradeService)
	return svc, attemptRepo, gradeRepo
}

func TestRecomputeHighestPolicy(t *testing.T) {
	quiz := publishedQuiz()
	svc, attempts, grades := newGradeFixture(t, quiz)

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	first := gradedAttempt(quiz.ID, "student-1", 60, base)
	second := gradedAttempt(quiz.ID, "student-1", 85, base.Add(time.Hour))
	require.NoError(t, attempts.Create(context.Background(), &first))
	require.NoError(t, attempts.Create(context.Background(), &second))

	require.NoError(t, svc.Recompute(context.Background(), quiz, "student-1"))

	stored, err := grades.Get(context.Background(), quiz.ID, "student-1")
	require.NoError(t, err)
	require.Equal(t, 85.0, stored.Score)
	require.Equal(t, models.ScoringPolicyHighest, stored.Policy)
}

func TestRecomputeAveragePolicy(t *testing.T) {
	quiz := publishedQuiz()
	quiz.ScoringPolicy = models.ScoringPolicyAverage
	svc, attempts, grades := newGradeFixture(t, quiz)

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	first := gradedAttempt(quiz.ID, "student-1", 70, base)
	second := gradedAttempt(quiz.ID, "student-1", 90, base.Add(time.Hour))
	require.NoError(t, attempts.Create(context.Background(), &first))
	require.NoError(t, attempts.Create(context.Background(), &second))

	require.NoError(t, svc.Recompute(context.Background(), quiz, "student-1"))

	stored, err := grades.Get(context.Background(), quiz.ID, "student-1")
	require.NoError(t, err)
	require.InDelta(t, 80.0, stored.Score, 1e-9)
}

func TestRecomputeIgnoresUngradedAttempts(t *testing.T) {
	quiz := publishedQuiz()
	svc, attempts, grades := newGradeFixture(t, quiz)

	inProgress := models.Attempt{
		ID:        uuid.New(),
		QuizID:    quiz.ID,
		StudentID: "student-1",
		State:     models.AttemptStateInProgress,
	}
	require.NoError(t, attempts.Create(context.Background(), &inProgress))

	require.NoError(t, svc.Recompute(context.Background(), quiz, "student-1"))

	_, err := grades.Get(context.Background(), quiz.ID, "student-1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	response, err := svc.GetGrade(context.Background(), quiz.ID, "student-1")
	require.NoError(t, err)
	require.Nil(t, response.Score, "absent grade must be null, not zero")
}

func TestRecomputeSkipsPracticeQuizzes(t *testing.T) {
	quiz := publishedQuiz()
	quiz.Type = models.QuizTypePractice
	svc, attempts, grades := newGradeFixture(t, quiz)

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	attempt := gradedAttempt(quiz.ID, "student-1", 95, base)
	require.NoError(t, attempts.Create(context.Background(), &attempt))

	require.NoError(t, svc.Recompute(context.Background(), quiz, "student-1"))

	_, err := grades.Get(context.Background(), quiz.ID, "student-1")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	response, err := svc.GetGrade(context.Background(), quiz.ID, "student-1")
	require.NoError(t, err)
	require.Nil(t, response.Score)
}

func TestGetGradeServesFromCache(t *testing.T) {
	quiz := publishedQuiz()
	svc, attempts, grades := newGradeFixture(t, quiz)

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	attempt := gradedAttempt(quiz.ID, "student-1", 85, base)
	require.NoError(t, attempts.Create(context.Background(), &attempt))
	require.NoError(t, svc.Recompute(context.Background(), quiz, "student-1"))

	// Wipe the backing store; the cached entry written by Recompute must
	// still serve the read.
	require.NoError(t, grades.Delete(context.Background(), quiz.ID, "student-1"))

	response, err := svc.GetGrade(context.Background(), quiz.ID, "student-1")
	require.NoError(t, err)
	require.NotNil(t, response.Score)
	require.Equal(t, 85.0, *response.Score)
}

func TestRecomputeInvalidatesCacheWhenGradeDisappears(t *testing.T) {
	quiz := publishedQuiz()
	svc, attempts, _ := newGradeFixture(t, quiz)

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	attempt := gradedAttempt(quiz.ID, "student-1", 85, base)
	require.NoError(t, attempts.Create(context.Background(), &attempt))
	require.NoError(t, svc.Recompute(context.Background(), quiz, "student-1"))

	// The attempt is invalidated after the fact; recompute must drop both
	// the stored grade and the cache mirror.
	stored, err := attempts.GetByID(context.Background(), attempt.ID)
	require.NoError(t, err)
	stored.State = models.AttemptStateExpired
	stored.FinalScore = nil
	require.NoError(t, attempts.Update(context.Background(), &stored))

	require.NoError(t, svc.Recompute(context.Background(), quiz, "student-1"))

	response, err := svc.GetGrade(context.Background(), quiz.ID, "student-1")
	require.NoError(t, err)
	require.Nil(t, response.Score)
}

func TestGetGradeUnknownQuiz(t *testing.T) {
	quiz := publishedQuiz()
	svc, _, _ := newGradeFixture(t, quiz)

	_, err := svc.GetGrade(context.Background(), uuid.New(), "student-1")
	require.ErrorIs(t, err, ErrQuizNotFound)
}
