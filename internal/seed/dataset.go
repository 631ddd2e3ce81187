// Package seed holds the built-in wellness datasets and the logic to
// load them into an empty database on startup.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mdjurovic/vitalis/internal/nutrition"
	"github.com/mdjurovic/vitalis/internal/workouts"
)

//go:embed diet_plans.json
var dietPlansJson []byte

//go:embed workout_plans.json
var workoutPlansJson []byte

// Dataset is the full built-in collection of nutrition plans and
// exercise routines.
type Dataset struct {
	Plans    []nutrition.Plan
	Routines []workouts.Routine
}

// Load parses the embedded datasets and validates them. The datasets
// are authored by hand, a validation failure here is a bug.
func Load() (*Dataset, error) {
	var dataset Dataset
	if err := json.Unmarshal(dietPlansJson, &dataset.Plans); err != nil {
		return nil, fmt.Errorf("unmarshal diet plans: %w", err)
	}
	if err := json.Unmarshal(workoutPlansJson, &dataset.Routines); err != nil {
		return nil, fmt.Errorf("unmarshal workout plans: %w", err)
	}
	if err := dataset.Validate(); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// Validate runs per-record validation plus the dataset-wide identifier
// uniqueness checks. Meal and exercise ids are unique across the whole
// dataset, not just within their parent record.
func (d *Dataset) Validate() error {
	seenPlanIDs := make(map[string]bool)
	seenMealIDs := make(map[string]bool)
	for _, plan := range d.Plans {
		if plan.ID == "" {
			return fmt.Errorf("%w: plan id empty", nutrition.ErrMalformedRecord)
		}
		if seenPlanIDs[plan.ID] {
			return fmt.Errorf("%w: duplicate plan id [%s]", nutrition.ErrMalformedRecord, plan.ID)
		}
		seenPlanIDs[plan.ID] = true

		if err := plan.Validate(); err != nil {
			return err
		}

		for _, meal := range plan.Meals {
			if seenMealIDs[meal.ID] {
				return fmt.Errorf("%w: duplicate meal id [%s] across plans", nutrition.ErrMalformedRecord, meal.ID)
			}
			seenMealIDs[meal.ID] = true
		}
	}

	seenRoutineIDs := make(map[string]bool)
	seenExerciseIDs := make(map[string]bool)
	for _, routine := range d.Routines {
		if routine.ID == "" {
			return fmt.Errorf("%w: routine id empty", workouts.ErrMalformedRecord)
		}
		if seenRoutineIDs[routine.ID] {
			return fmt.Errorf("%w: duplicate routine id [%s]", workouts.ErrMalformedRecord, routine.ID)
		}
		seenRoutineIDs[routine.ID] = true

		if err := routine.Validate(); err != nil {
			return err
		}

		for _, exercise := range routine.Exercises {
			if seenExerciseIDs[exercise.ID] {
				return fmt.Errorf("%w: duplicate exercise id [%s] across routines", workouts.ErrMalformedRecord, exercise.ID)
			}
			seenExerciseIDs[exercise.ID] = true
		}
	}

	return nil
}
