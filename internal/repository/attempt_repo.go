package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/waaed/assessment-api/internal/models"
)

// AttemptRepository persists attempts, their answers, and manual grades.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Attempt, error)
	Update(ctx context.Context, attempt *models.Attempt) error
	ListByQuizStudent(ctx context.Context, quizID uuid.UUID, studentID string) ([]models.Attempt, error)
	CountForStudent(ctx context.Context, quizID uuid.UUID, studentID string) (int64, error)
	ActiveForStudent(ctx context.Context, quizID uuid.UUID, studentID string) (*models.Attempt, error)
	SaveAnswer(ctx context.Context, answer *models.AttemptAnswer) error
	UpdateAnswers(ctx context.Context, answers []models.AttemptAnswer) error
	UpsertManualGrade(ctx context.Context, grade *models.ManualGrade) error
	ListManualGrades(ctx context.Context, attemptID uuid.UUID) ([]models.ManualGrade, error)
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository builds an attempt repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

func (r *attemptRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Attempt, error) {
	var attempt models.Attempt
	if err := r.db.WithContext(ctx).
		Preload("Answers", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		First(&attempt, "id = ?", id).Error; err != nil {
		return models.Attempt{}, err
	}

	return attempt, nil
}

func (r *attemptRepository) Update(ctx context.Context, attempt *models.Attempt) error {
	return r.db.WithContext(ctx).Save(attempt).Error
}

func (r *attemptRepository) ListByQuizStudent(ctx context.Context, quizID uuid.UUID, studentID string) ([]models.Attempt, error) {
	var attempts []models.Attempt
	if err := r.db.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Order("attempt_number ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

// CountForStudent counts attempts that consume the allowed-attempts budget.
// Expired attempts are excluded.
func (r *attemptRepository) CountForStudent(ctx context.Context, quizID uuid.UUID, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attempt{}).
		Where("quiz_id = ? AND student_id = ? AND state <> ?", quizID, studentID, models.AttemptStateExpired).
		Count(&count).Error

	return count, err
}

func (r *attemptRepository) ActiveForStudent(ctx context.Context, quizID uuid.UUID, studentID string) (*models.Attempt, error) {
	var attempt models.Attempt
	err := r.db.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ? AND state = ?", quizID, studentID, models.AttemptStateInProgress).
		First(&attempt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &attempt, nil
}

// SaveAnswer upserts the answer row for the attempt/question pair so that
// re-recording an answer never duplicates it.
func (r *attemptRepository) SaveAnswer(ctx context.Context, answer *models.AttemptAnswer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"values", "position", "updated_at"}),
		}).
		Create(answer).Error
}

func (r *attemptRepository) UpdateAnswers(ctx context.Context, answers []models.AttemptAnswer) error {
	for i := range answers {
		if err := r.db.WithContext(ctx).Save(&answers[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpsertManualGrade overwrites any prior grading pass for the same
// attempt/question pair, keeping manual grading idempotent.
func (r *attemptRepository) UpsertManualGrade(ctx context.Context, grade *models.ManualGrade) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"selections", "points", "grader_id", "graded_at"}),
		}).
		Create(grade).Error
}

func (r *attemptRepository) ListManualGrades(ctx context.Context, attemptID uuid.UUID) ([]models.ManualGrade, error) {
	var grades []models.ManualGrade
	if err := r.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Find(&grades).Error; err != nil {
		return nil, err
	}

	return grades, nil
}
