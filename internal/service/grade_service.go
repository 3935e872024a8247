package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/waaed/assessment-api/internal/dto"
	"github.com/waaed/assessment-api/internal/grading"
	"github.com/waaed/assessment-api/internal/models"
	"github.com/waaed/assessment-api/internal/repository"
)

// GradeService exposes the aggregated quiz grade and recomputes it whenever
// an attempt reaches the graded state. The stored grade is always derivable
// from the attempts plus the scoring policy; the redis entry only mirrors it.
type GradeService interface {
	GetGrade(ctx context.Context, quizID uuid.UUID, studentID string) (dto.GradeResponse, error)
	Recompute(ctx context.Context, quiz models.Quiz, studentID string) error
}

type gradeService struct {
	quizzes  repository.QuizRepository
	attempts repository.AttemptRepository
	grades   repository.GradeRepository
	events   *EventPublisher
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewGradeService constructs the score aggregation service.
func NewGradeService(
	quizzes repository.QuizRepository,
	attempts repository.AttemptRepository,
	grades repository.GradeRepository,
	events *EventPublisher,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) GradeService {
	return &gradeService{
		quizzes:  quizzes,
		attempts: attempts,
		grades:   grades,
		events:   events,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "grade_service").Logger(),
		now:      time.Now,
	}
}

func (s *gradeService) GetGrade(ctx context.Context, quizID uuid.UUID, studentID string) (dto.GradeResponse, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GradeResponse{}, ErrQuizNotFound
		}
		return dto.GradeResponse{}, err
	}

	if !quiz.ProducesGrade() {
		return dto.NewUndefinedGradeResponse(quizID, studentID, quiz.ScoringPolicy), nil
	}

	cacheKey := gradeCacheKey(quizID, studentID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.GradeResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Str("quiz_id", quizID.String()).Msg("grade cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read grade cache")
		}
	}

	grade, err := s.grades.Get(ctx, quizID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No attempt has reached the graded state yet; the grade is
			// undefined, not zero.
			return dto.NewUndefinedGradeResponse(quizID, studentID, quiz.ScoringPolicy), nil
		}
		return dto.GradeResponse{}, err
	}

	response := dto.NewGradeResponse(grade)
	s.storeCache(ctx, cacheKey, response)
	return response, nil
}

func (s *gradeService) Recompute(ctx context.Context, quiz models.Quiz, studentID string) error {
	if !quiz.ProducesGrade() {
		return nil
	}

	attempts, err := s.attempts.ListByQuizStudent(ctx, quiz.ID, studentID)
	if err != nil {
		return err
	}

	cacheKey := gradeCacheKey(quiz.ID, studentID)
	score := grading.Aggregate(quiz.ScoringPolicy, attempts)
	if score == nil {
		if err := s.grades.Delete(ctx, quiz.ID, studentID); err != nil {
			return err
		}
		s.invalidateCache(ctx, cacheKey)
		s.events.GradeUpdated(quiz.ID.String(), studentID, nil, quiz.ScoringPolicy)
		return nil
	}

	grade := models.QuizGrade{
		QuizID:    quiz.ID,
		StudentID: studentID,
		Score:     *score,
		Policy:    quiz.ScoringPolicy,
		UpdatedAt: s.now(),
	}
	if err := s.grades.Upsert(ctx, &grade); err != nil {
		return err
	}

	s.storeCache(ctx, cacheKey, dto.NewGradeResponse(grade))
	s.events.GradeUpdated(quiz.ID.String(), studentID, score, quiz.ScoringPolicy)
	s.logger.Info().
		Str("quiz_id", quiz.ID.String()).
		Str("student_id", studentID).
		Float64("score", *score).
		Msg("quiz grade recomputed")

	return nil
}

func (s *gradeService) storeCache(ctx context.Context, key string, response dto.GradeResponse) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store grade cache")
	}
}

func (s *gradeService) invalidateCache(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate grade cache")
	}
}

func gradeCacheKey(quizID uuid.UUID, studentID string) string {
	return fmt.Sprintf("grade:quiz:%s:student:%s", quizID, studentID)
}
