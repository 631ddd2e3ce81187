package test

import (
	"context"
	"time"

	"github.com/mdjurovic/vitalis/internal/workouts"
)

// seedWorkoutRoutines inserts four routines with explicit, increasing
// created_at values. Returned routines are ordered oldest first.
func (s *IntegrationTestSuite) seedWorkoutRoutines(ctx context.Context, repo *workouts.Repo) []workouts.Routine {
	routines := []workouts.Routine{
		{
			ID:          "routine-fullbody",
			Name:        "Full Body Basics",
			Description: "compound movements, three times a week",
			Exercises: []workouts.Exercise{
				{ID: "ex-1", Name: "Goblet Squat", Sets: 3, Reps: "10-12", Weight: "12kg kettlebell"},
				{ID: "ex-2", Name: "Push-up", Sets: 3, Reps: "8-10"},
			},
			TargetMuscleGroups: []string{"Legs", "Chest", "Back"},
			Difficulty:         workouts.DifficultyBeginner,
			EstimatedDuration:  30,
		},
		{
			ID:          "routine-upper",
			Name:        "Upper Body Push Pull",
			Description: "pressing and rowing supersets",
			Exercises: []workouts.Exercise{
				{ID: "ex-3", Name: "Bench Press", Sets: 4, Reps: "6-8", Weight: "60kg barbell"},
				{ID: "ex-4", Name: "Barbell Row", Sets: 4, Reps: "6-8", Weight: "50kg barbell"},
			},
			TargetMuscleGroups: []string{"Chest", "Shoulders", "Arms"},
			Difficulty:         workouts.DifficultyIntermediate,
			EstimatedDuration:  45,
		},
		{
			ID:          "routine-core",
			Name:        "Core Express",
			Description: "short ab session for rest days",
			Exercises: []workouts.Exercise{
				{ID: "ex-5", Name: "Plank", Sets: 3, Reps: "60s hold"},
			},
			TargetMuscleGroups: []string{"Core"},
			Difficulty:         workouts.DifficultyBeginner,
			EstimatedDuration:  20,
		},
		{
			ID:          "routine-legs",
			Name:        "Heavy Leg Day",
			Description: "squat focused lower body session",
			Exercises: []workouts.Exercise{
				{ID: "ex-6", Name: "Back Squat", Sets: 5, Reps: "5", Weight: "100kg barbell"},
				{ID: "ex-7", Name: "Romanian Deadlift", Sets: 3, Reps: "8", Weight: "80kg barbell"},
			},
			TargetMuscleGroups: []string{"Legs", "Glutes"},
			Difficulty:         workouts.DifficultyAdvanced,
			EstimatedDuration:  60,
		},
	}

	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	for i := range routines {
		createdAt := base.Add(time.Duration(i) * time.Hour)
		routines[i].CreatedAt = &createdAt
		_, err := repo.Add(ctx, routines[i])
		s.Require().NoError(err)
	}

	return routines
}

func (s *IntegrationTestSuite) TestWorkoutRoutines_CRUD() {
	ctx := context.Background()
	repo := workouts.NewRepo(s.db)

	routine := workouts.Routine{
		ID:          "routine-crud",
		Name:        "Morning Routine",
		Description: "quick session before work",
		Exercises: []workouts.Exercise{
			{ID: "ex-a", Name: "Goblet Squat", Sets: 3, Reps: "10-12", Weight: "12kg kettlebell", Notes: "keep heels down"},
			{ID: "ex-b", Name: "Push-up", Sets: 3, Reps: "8-10"},
		},
		TargetMuscleGroups: []string{"Legs", "Chest"},
		Difficulty:         workouts.DifficultyBeginner,
		EstimatedDuration:  30,
	}

	added, err := repo.Add(ctx, routine)
	s.Require().NoError(err)
	// created_at gets stamped on insert
	s.Require().NotNil(added.CreatedAt)

	got, err := repo.Get(ctx, routine.ID)
	s.Require().NoError(err)
	s.Assert().Equal(routine.Name, got.Name)
	s.Assert().Equal(routine.Difficulty, got.Difficulty)
	s.Assert().Equal(routine.EstimatedDuration, got.EstimatedDuration)
	s.Assert().Equal([]string{"Legs", "Chest"}, got.TargetMuscleGroups)
	s.Require().NotNil(got.CreatedAt)

	// exercises survive the jsonb round trip
	s.Require().Len(got.Exercises, 2)
	s.Assert().Equal("ex-a", got.Exercises[0].ID)
	s.Assert().Equal("10-12", got.Exercises[0].Reps)
	s.Assert().Equal("keep heels down", got.Exercises[0].Notes)
	s.Assert().Empty(got.Exercises[1].Weight)

	got.Name = "Morning Routine v2"
	got.Difficulty = workouts.DifficultyIntermediate
	got.EstimatedDuration = 40
	got.TargetMuscleGroups = append(got.TargetMuscleGroups, "Core")
	s.Require().NoError(repo.Update(ctx, got))

	updated, err := repo.Get(ctx, routine.ID)
	s.Require().NoError(err)
	s.Assert().Equal("Morning Routine v2", updated.Name)
	s.Assert().Equal(workouts.DifficultyIntermediate, updated.Difficulty)
	s.Assert().Equal(40, updated.EstimatedDuration)
	s.Assert().Len(updated.TargetMuscleGroups, 3)

	s.Require().NoError(repo.Delete(ctx, routine.ID))
	_, err = repo.Get(ctx, routine.ID)
	s.Assert().ErrorIs(err, workouts.ErrRoutineNotFound)

	// mutations on a missing routine report not found
	s.Assert().ErrorIs(repo.Update(ctx, updated), workouts.ErrRoutineNotFound)
	s.Assert().ErrorIs(repo.Delete(ctx, routine.ID), workouts.ErrRoutineNotFound)
}

func (s *IntegrationTestSuite) TestWorkoutRoutines_ListAll() {
	ctx := context.Background()
	repo := workouts.NewRepo(s.db)
	s.seedWorkoutRoutines(ctx, repo)

	// no filters, newest first
	all, err := repo.ListAll(ctx, workouts.RoutineParams{})
	s.Require().NoError(err)
	s.Require().Len(all, 4)
	s.Assert().Equal("routine-legs", all[0].ID)
	s.Assert().Equal("routine-core", all[1].ID)
	s.Assert().Equal("routine-upper", all[2].ID)
	s.Assert().Equal("routine-fullbody", all[3].ID)

	// difficulty filter
	beginner, err := repo.ListAll(ctx, workouts.RoutineParams{
		Difficulty: workouts.DifficultyBeginner,
	})
	s.Require().NoError(err)
	s.Require().Len(beginner, 2)
	s.Assert().Equal("routine-core", beginner[0].ID)
	s.Assert().Equal("routine-fullbody", beginner[1].ID)

	// muscle group membership runs against the jsonb array
	legs, err := repo.ListAll(ctx, workouts.RoutineParams{MuscleGroup: "Legs"})
	s.Require().NoError(err)
	s.Require().Len(legs, 2)
	s.Assert().Equal("routine-legs", legs[0].ID)
	s.Assert().Equal("routine-fullbody", legs[1].ID)

	chest, err := repo.ListAll(ctx, workouts.RoutineParams{MuscleGroup: "Chest"})
	s.Require().NoError(err)
	s.Require().Len(chest, 2)

	// membership is exact, not substring
	leg, err := repo.ListAll(ctx, workouts.RoutineParams{MuscleGroup: "Leg"})
	s.Require().NoError(err)
	s.Assert().Empty(leg)

	// duration range
	midDuration, err := repo.ListAll(ctx, workouts.RoutineParams{
		MinDuration: 30,
		MaxDuration: 45,
	})
	s.Require().NoError(err)
	s.Require().Len(midDuration, 2)
	s.Assert().Equal("routine-upper", midDuration[0].ID)
	s.Assert().Equal("routine-fullbody", midDuration[1].ID)

	// combined filters
	combined, err := repo.ListAll(ctx, workouts.RoutineParams{
		Difficulty:  workouts.DifficultyBeginner,
		MuscleGroup: "Chest",
	})
	s.Require().NoError(err)
	s.Require().Len(combined, 1)
	s.Assert().Equal("routine-fullbody", combined[0].ID)

	count, err := repo.Count(ctx, workouts.RoutineParams{MuscleGroup: "Legs"})
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func (s *IntegrationTestSuite) TestWorkoutRoutines_ListPaginated() {
	ctx := context.Background()
	repo := workouts.NewRepo(s.db)
	s.seedWorkoutRoutines(ctx, repo)

	firstPage, total, err := repo.List(ctx, workouts.ListParams{Page: 1, Size: 3})
	s.Require().NoError(err)
	s.Assert().Equal(4, total)
	s.Require().Len(firstPage, 3)
	s.Assert().Equal("routine-legs", firstPage[0].ID)
	s.Assert().Equal("routine-upper", firstPage[2].ID)

	// the last page gets clamped so it still carries a full page
	secondPage, total, err := repo.List(ctx, workouts.ListParams{Page: 2, Size: 3})
	s.Require().NoError(err)
	s.Assert().Equal(4, total)
	s.Require().Len(secondPage, 3)
	s.Assert().Equal("routine-core", secondPage[0].ID)
	s.Assert().Equal("routine-fullbody", secondPage[2].ID)

	// a size larger than the total returns everything
	everything, total, err := repo.List(ctx, workouts.ListParams{Page: 3, Size: 20})
	s.Require().NoError(err)
	s.Assert().Equal(4, total)
	s.Assert().Len(everything, 4)

	// filters apply to the page and the total alike
	filtered, total, err := repo.List(ctx, workouts.ListParams{
		RoutineParams: workouts.RoutineParams{Difficulty: workouts.DifficultyBeginner},
		Page:          1,
		Size:          1,
	})
	s.Require().NoError(err)
	s.Assert().Equal(2, total)
	s.Require().Len(filtered, 1)
	s.Assert().Equal("routine-core", filtered[0].ID)

	_, _, err = repo.List(ctx, workouts.ListParams{Page: 0, Size: 10})
	s.Assert().Error(err)
	_, _, err = repo.List(ctx, workouts.ListParams{Page: 1, Size: 0})
	s.Assert().Error(err)
}
