package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waaed/assessment-api/internal/models"
)

// RubricRepository reads rubric definitions for manual grading.
type RubricRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (models.Rubric, error)
}

type rubricRepository struct {
	db *gorm.DB
}

// NewRubricRepository builds a read-only rubric repository.
func NewRubricRepository(db *gorm.DB) RubricRepository {
	return &rubricRepository{db: db}
}

func (r *rubricRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Rubric, error) {
	var rubric models.Rubric
	if err := r.db.WithContext(ctx).
		Preload("Criteria", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Preload("Criteria.Levels", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		First(&rubric, "id = ?", id).Error; err != nil {
		return models.Rubric{}, err
	}

	return rubric, nil
}
