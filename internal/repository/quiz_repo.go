package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waaed/assessment-api/internal/models"
)

// QuizRepository reads quiz and question definitions. The engine never
// writes to these tables; they are owned by the course management surface.
type QuizRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (models.Quiz, error)
	GetQuestion(ctx context.Context, quizID, questionID uuid.UUID) (models.Question, error)
}

type quizRepository struct {
	db *gorm.DB
}

// NewQuizRepository builds a read-only quiz repository.
func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Quiz, error) {
	var quiz models.Quiz
	if err := r.db.WithContext(ctx).
		Preload("Questions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		First(&quiz, "id = ?", id).Error; err != nil {
		return models.Quiz{}, err
	}

	return quiz, nil
}

func (r *quizRepository) GetQuestion(ctx context.Context, quizID, questionID uuid.UUID) (models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).
		First(&question, "id = ? AND quiz_id = ?", questionID, quizID).Error; err != nil {
		return models.Question{}, err
	}

	return question, nil
}
