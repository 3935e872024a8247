package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/waaed/assessment-api/internal/models"
)

// Migrate creates the engine tables and the constraints gorm tags cannot
// express. The partial unique index is the durable guard behind the
// one-active-attempt invariant: concurrent starts for the same student and
// quiz collapse to a single in-progress row even across processes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Quiz{},
		&models.Question{},
		&models.Rubric{},
		&models.RubricCriterion{},
		&models.RubricLevel{},
		&models.Attempt{},
		&models.AttemptAnswer{},
		&models.ManualGrade{},
		&models.QuizGrade{},
	); err != nil {
		return fmt.Errorf("failed to migrate assessment tables: %w", err)
	}

	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_attempts_one_active
		 ON attempts (quiz_id, student_id) WHERE state = 'in_progress'`,
	).Error; err != nil {
		return fmt.Errorf("failed to create active attempt index: %w", err)
	}

	return nil
}
