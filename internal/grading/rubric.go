package grading

import (
	"errors"
	"fmt"

	"github.com/waaed/assessment-api/internal/models"
)

// ErrMissingCriterionSelection indicates a grading pass left at least one
// rubric criterion without a selected level.
var ErrMissingCriterionSelection = errors.New("missing criterion selection")

// ErrUnknownRubricLevel indicates a selection references a level that does
// not belong to the criterion.
var ErrUnknownRubricLevel = errors.New("unknown rubric level")

// ScoreRubric computes the weighted score for one grading pass: the sum of
// the selected level's points across every criterion, capped at the rubric's
// theoretical maximum. Selections map criterion ID to the chosen level ID.
func ScoreRubric(rubric models.Rubric, selections map[string]string) (float64, error) {
	total := 0.0
	for _, criterion := range rubric.Criteria {
		levelID, ok := selections[criterion.ID.String()]
		if !ok {
			return 0, fmt.Errorf("%w: criterion %s", ErrMissingCriterionSelection, criterion.ID)
		}
		level, found := findLevel(criterion, levelID)
		if !found {
			return 0, fmt.Errorf("%w: level %s on criterion %s", ErrUnknownRubricLevel, levelID, criterion.ID)
		}
		total += level.Points
	}
	if max := rubric.MaxPoints(); total > max {
		total = max
	}
	return total, nil
}

func findLevel(criterion models.RubricCriterion, levelID string) (models.RubricLevel, bool) {
	for _, level := range criterion.Levels {
		if level.ID.String() == levelID {
			return level, true
		}
	}
	return models.RubricLevel{}, false
}
