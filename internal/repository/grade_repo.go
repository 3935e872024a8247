package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/waaed/assessment-api/internal/models"
)

// GradeRepository persists recomputed quiz grades.
type GradeRepository interface {
	Upsert(ctx context.Context, grade *models.QuizGrade) error
	Get(ctx context.Context, quizID uuid.UUID, studentID string) (models.QuizGrade, error)
	Delete(ctx context.Context, quizID uuid.UUID, studentID string) error
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository builds a quiz grade repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) Upsert(ctx context.Context, grade *models.QuizGrade) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quiz_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "policy", "updated_at"}),
		}).
		Create(grade).Error
}

func (r *gradeRepository) Get(ctx context.Context, quizID uuid.UUID, studentID string) (models.QuizGrade, error) {
	var grade models.QuizGrade
	if err := r.db.WithContext(ctx).
		First(&grade, "quiz_id = ? AND student_id = ?", quizID, studentID).Error; err != nil {
		return models.QuizGrade{}, err
	}

	return grade, nil
}

func (r *gradeRepository) Delete(ctx context.Context, quizID uuid.UUID, studentID string) error {
	return r.db.WithContext(ctx).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Delete(&models.QuizGrade{}).Error
}
