package grading

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/waaed/assessment-api/internal/models"
)

func buildRubric() (models.Rubric, models.RubricCriterion, models.RubricCriterion) {
	clarity := models.RubricCriterion{
		ID:          uuid.New(),
		Description: "Clarity",
		Points:      10,
		Position:    0,
		Levels: []models.RubricLevel{
			{ID: uuid.New(), Description: "Excellent", Points: 10, Position: 0},
			{ID: uuid.New(), Description: "Adequate", Points: 7, Position: 1},
			{ID: uuid.New(), Description: "Poor", Points: 2, Position: 2},
		},
	}
	depth := models.RubricCriterion{
		ID:          uuid.New(),
		Description: "Depth of analysis",
		Points:      15,
		Position:    1,
		Levels: []models.RubricLevel{
			{ID: uuid.New(), Description: "Thorough", Points: 15, Position: 0},
			{ID: uuid.New(), Description: "Superficial", Points: 5, Position: 1},
		},
	}
	rubric := models.Rubric{ID: uuid.New(), Title: "Essay rubric", Criteria: []models.RubricCriterion{clarity, depth}}
	return rubric, clarity, depth
}

func TestScoreRubricSumsSelectedLevels(t *testing.T) {
	rubric, clarity, depth := buildRubric()

	score, err := ScoreRubric(rubric, map[string]string{
		clarity.ID.String(): clarity.Levels[1].ID.String(), // 7 points
		depth.ID.String():   depth.Levels[0].ID.String(),   // 15 points
	})
	require.NoError(t, err)
	require.Equal(t, 22.0, score)
}

func TestScoreRubricMissingCriterion(t *testing.T) {
	rubric, clarity, _ := buildRubric()

	_, err := ScoreRubric(rubric, map[string]string{
		clarity.ID.String(): clarity.Levels[0].ID.String(),
	})
	require.ErrorIs(t, err, ErrMissingCriterionSelection)
}

func TestScoreRubricUnknownLevel(t *testing.T) {
	rubric, clarity, depth := buildRubric()

	_, err := ScoreRubric(rubric, map[string]string{
		clarity.ID.String(): uuid.NewString(),
		depth.ID.String():   depth.Levels[0].ID.String(),
	})
	require.ErrorIs(t, err, ErrUnknownRubricLevel)
}

func TestScoreRubricCapsAtTheoreticalMax(t *testing.T) {
	criterion := models.RubricCriterion{
		ID:     uuid.New(),
		Points: 10,
		Levels: []models.RubricLevel{
			{ID: uuid.New(), Points: 12}, // misconfigured level above the criterion cap
		},
	}
	rubric := models.Rubric{ID: uuid.New(), Criteria: []models.RubricCriterion{criterion}}

	score, err := ScoreRubric(rubric, map[string]string{
		criterion.ID.String(): criterion.Levels[0].ID.String(),
	})
	require.NoError(t, err)
	require.Equal(t, 12.0, score, "cap is the sum of highest levels, not criterion points")
}
