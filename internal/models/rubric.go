package models

import (
	"time"

	"github.com/google/uuid"
)

// Rubric defines the weighted criteria used to grade manual work.
type Rubric struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	Type        string            `gorm:"size:32" json:"type"`
	IsPublic    bool              `json:"is_public"`
	Criteria    []RubricCriterion `gorm:"constraint:OnDelete:CASCADE" json:"criteria"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// RubricCriterion is one graded dimension. Its levels are mutually exclusive;
// exactly one level is selected per grading pass.
type RubricCriterion struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	RubricID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"rubric_id"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Points      float64       `gorm:"not null" json:"points"`
	Position    int           `gorm:"not null" json:"position"`
	Levels      []RubricLevel `gorm:"foreignKey:CriterionID;constraint:OnDelete:CASCADE" json:"levels"`
}

// RubricLevel is one discrete point tier within a criterion.
type RubricLevel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CriterionID uuid.UUID `gorm:"type:uuid;not null;index" json:"criterion_id"`
	Description string    `gorm:"type:text" json:"description"`
	Points      float64   `gorm:"not null" json:"points"`
	Position    int       `gorm:"not null" json:"position"`
}

// MaxPoints is the highest-point level of the criterion.
func (c RubricCriterion) MaxPoints() float64 {
	max := 0.0
	for _, level := range c.Levels {
		if level.Points > max {
			max = level.Points
		}
	}
	return max
}

// MaxPoints is the rubric's theoretical maximum score, the sum of each
// criterion's highest-point level.
func (r Rubric) MaxPoints() float64 {
	total := 0.0
	for _, criterion := range r.Criteria {
		total += criterion.MaxPoints()
	}
	return total
}
