package workouts

import (
	"errors"
	"fmt"
	"time"

	"github.com/mdjurovic/vitalis/pkg"
)

var (
	ErrRoutineNotFound = errors.New("exercise routine not found")
	ErrMalformedRecord = errors.New("malformed record")
)

const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Exercise is a single exercise within a routine. Reps and Weight are
// free text on purpose, the source material has values like
// "8-10 per leg" and "Bodyweight".
type Exercise struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Sets   int    `json:"sets"`
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
	Notes  string `json:"notes"`
}

// Routine is a named, ordered collection of exercises with routine
// level attributes (difficulty, targeted muscle groups, duration).
// CreatedAt is a pointer so a routine that never touched the database
// marshals exactly like the seed records, without a created_at field.
type Routine struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Exercises          []Exercise `json:"exercises"`
	TargetMuscleGroups []string   `json:"target_muscle_groups"`
	Difficulty         string     `json:"difficulty"`
	EstimatedDuration  int        `json:"estimated_duration"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
}

// Validate reports the first malformed-record problem found:
// missing required fields, unknown difficulty, duplicate exercise ids,
// negative numeric fields.
func (r *Routine) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: routine name empty", ErrMalformedRecord)
	}
	if r.Description == "" {
		return fmt.Errorf("%w: routine description empty", ErrMalformedRecord)
	}
	if len(r.Exercises) == 0 {
		return fmt.Errorf("%w: routine [%s] has no exercises", ErrMalformedRecord, r.ID)
	}
	if len(r.TargetMuscleGroups) == 0 {
		return fmt.Errorf("%w: routine [%s] has no target muscle groups", ErrMalformedRecord, r.ID)
	}
	switch r.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return fmt.Errorf("%w: routine [%s] unknown difficulty [%s]", ErrMalformedRecord, r.ID, r.Difficulty)
	}
	if r.EstimatedDuration < 0 {
		return fmt.Errorf("%w: routine [%s] estimated_duration negative", ErrMalformedRecord, r.ID)
	}

	seenExerciseIDs := make(map[string]bool)
	for _, exercise := range r.Exercises {
		if err := exercise.Validate(); err != nil {
			return fmt.Errorf("routine [%s]: %w", r.ID, err)
		}
		if seenExerciseIDs[exercise.ID] {
			return fmt.Errorf("%w: routine [%s] duplicate exercise id [%s]", ErrMalformedRecord, r.ID, exercise.ID)
		}
		seenExerciseIDs[exercise.ID] = true
	}

	return nil
}

func (e *Exercise) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: exercise id empty", ErrMalformedRecord)
	}
	if e.Name == "" {
		return fmt.Errorf("%w: exercise [%s] name empty", ErrMalformedRecord, e.ID)
	}
	if e.Sets < 0 {
		return fmt.Errorf("%w: exercise [%s] sets negative", ErrMalformedRecord, e.ID)
	}
	if e.Reps == "" {
		return fmt.Errorf("%w: exercise [%s] reps empty", ErrMalformedRecord, e.ID)
	}
	return nil
}

// EnsureIDs fills in missing record identifiers on the routine and its
// exercises.
func (r *Routine) EnsureIDs() {
	if r.ID == "" {
		r.ID = pkg.NewRecordID()
	}
	for i := range r.Exercises {
		if r.Exercises[i].ID == "" {
			r.Exercises[i].ID = pkg.NewRecordID()
		}
	}
}

// Duplicate returns a deep copy of the routine with fresh identifiers,
// named "<name> (Copy)".
func (r *Routine) Duplicate() Routine {
	duplicate := Routine{
		ID:                 pkg.NewRecordID(),
		Name:               fmt.Sprintf("%s (Copy)", r.Name),
		Description:        r.Description,
		Exercises:          make([]Exercise, 0, len(r.Exercises)),
		TargetMuscleGroups: append([]string{}, r.TargetMuscleGroups...),
		Difficulty:         r.Difficulty,
		EstimatedDuration:  r.EstimatedDuration,
	}
	for _, exercise := range r.Exercises {
		exerciseCopy := exercise
		exerciseCopy.ID = pkg.NewRecordID()
		duplicate.Exercises = append(duplicate.Exercises, exerciseCopy)
	}
	return duplicate
}

// SetsTotal sums the sets of the individual exercises.
func (r *Routine) SetsTotal() int {
	var total int
	for _, exercise := range r.Exercises {
		total += exercise.Sets
	}
	return total
}

// TargetsMuscleGroup checks routine targeting, case sensitive.
func (r *Routine) TargetsMuscleGroup(group string) bool {
	for _, g := range r.TargetMuscleGroups {
		if g == group {
			return true
		}
	}
	return false
}
