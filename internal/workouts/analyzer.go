package workouts

import (
	"context"
	"math"

	"github.com/mdjurovic/vitalis/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// RoutineAnalysis is a per-routine breakdown of training volume.
type RoutineAnalysis struct {
	RoutineID      string  `json:"routine_id"`
	TotalExercises int     `json:"total_exercises"`
	TotalSets      int     `json:"total_sets"`
	AvgSets        float64 `json:"avg_sets"`

	// MinutesPerExercise is the estimated duration spread over the
	// exercises, a rough pacing hint.
	MinutesPerExercise float64 `json:"minutes_per_exercise"`
}

type RoutinesStats struct {
	Total                  int            `json:"total"`
	ByDifficulty           map[string]int `json:"by_difficulty"`
	AvgDuration            float64        `json:"avg_duration"`
	TotalExercises         int            `json:"total_exercises"`
	AvgExercisesPerRoutine float64        `json:"avg_exercises_per_routine"`
	MuscleGroupCounts      map[string]int `json:"muscle_group_counts"`
}

type Analyzer struct {
	repo routinesRepo
}

func NewAnalyzer(repo routinesRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, routineID string) (_ *RoutineAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.analyze")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", routineID))

	routine, err := a.repo.Get(ctx, routineID)
	if err != nil {
		return nil, err
	}

	analysis := &RoutineAnalysis{
		RoutineID:      routine.ID,
		TotalExercises: len(routine.Exercises),
		TotalSets:      routine.SetsTotal(),
	}
	if analysis.TotalExercises > 0 {
		analysis.AvgSets = roundTo1(float64(analysis.TotalSets) / float64(analysis.TotalExercises))
		analysis.MinutesPerExercise = roundTo1(float64(routine.EstimatedDuration) / float64(analysis.TotalExercises))
	}

	return analysis, nil
}

func (a *Analyzer) Stats(ctx context.Context) (_ *RoutinesStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.workouts.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	routines, err := a.repo.ListAll(ctx, RoutineParams{})
	if err != nil {
		return nil, err
	}

	stats := &RoutinesStats{
		Total:             len(routines),
		ByDifficulty:      make(map[string]int),
		MuscleGroupCounts: make(map[string]int),
	}
	if len(routines) == 0 {
		return stats, nil
	}

	var durationSum int
	for _, routine := range routines {
		stats.ByDifficulty[routine.Difficulty]++
		stats.TotalExercises += len(routine.Exercises)
		durationSum += routine.EstimatedDuration
		for _, group := range routine.TargetMuscleGroups {
			stats.MuscleGroupCounts[group]++
		}
	}

	stats.AvgDuration = roundTo1(float64(durationSum) / float64(len(routines)))
	stats.AvgExercisesPerRoutine = roundTo1(float64(stats.TotalExercises) / float64(len(routines)))

	return stats, nil
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
