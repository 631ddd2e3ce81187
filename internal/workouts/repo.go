package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mdjurovic/vitalis/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type RoutineParams struct {
	Difficulty  string
	MuscleGroup string
	MinDuration int
	MaxDuration int
}

type ListParams struct {
	RoutineParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, routine Routine) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", routine.ID))

	exercisesJson, err := json.Marshal(routine.Exercises)
	if err != nil {
		return nil, fmt.Errorf("marshal exercises: %w", err)
	}
	muscleGroupsJson, err := json.Marshal(routine.TargetMuscleGroups)
	if err != nil {
		return nil, fmt.Errorf("marshal target muscle groups: %w", err)
	}

	if routine.CreatedAt == nil {
		now := time.Now()
		routine.CreatedAt = &now
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_routine
				(id, name, description, exercises, target_muscle_groups, difficulty, estimated_duration, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		routine.ID, routine.Name, routine.Description,
		exercisesJson, muscleGroupsJson,
		routine.Difficulty, routine.EstimatedDuration,
		routine.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &routine, nil
}

func (r *Repo) Update(ctx context.Context, routine *Routine) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", routine.ID))

	exercisesJson, err := json.Marshal(routine.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}
	muscleGroupsJson, err := json.Marshal(routine.TargetMuscleGroups)
	if err != nil {
		return fmt.Errorf("marshal target muscle groups: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_routine
			SET name = $1, description = $2, exercises = $3,
				target_muscle_groups = $4, difficulty = $5, estimated_duration = $6
			WHERE id = $7;`,
		routine.Name, routine.Description, exercisesJson,
		muscleGroupsJson, routine.Difficulty, routine.EstimatedDuration,
		routine.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrRoutineNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_routine WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRoutineNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, name, description, exercises, target_muscle_groups, difficulty, estimated_duration, created_at
			FROM workout_routine
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	routines, err := r.rows2routines(rows)
	if err != nil {
		return nil, err
	}

	if len(routines) != 1 {
		return nil, ErrRoutineNotFound
	}

	return &routines[0], nil
}

// ListAll returns all exercise routines matching the given filters.
func (r *Repo) ListAll(ctx context.Context, params RoutineParams) (_ []Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("difficulty", params.Difficulty))
	span.SetAttributes(attribute.String("muscle_group", params.MuscleGroup))
	span.SetAttributes(attribute.Int("min_duration", params.MinDuration))
	span.SetAttributes(attribute.Int("max_duration", params.MaxDuration))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, name, description, exercises, target_muscle_groups, difficulty, estimated_duration, created_at
			FROM workout_routine
				WHERE ($1::text = '' OR difficulty = $1)
				AND ($2::text = '' OR target_muscle_groups ? $2)
				AND ($3::int = 0 OR estimated_duration >= $3)
				AND ($4::int = 0 OR estimated_duration <= $4)
			ORDER BY created_at DESC;`,
		params.Difficulty, params.MuscleGroup,
		params.MinDuration, params.MaxDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	routines, err := r.rows2routines(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2routines: %w", err)
	}
	return routines, nil
}

// List is like ListAll, but returns the specific PAGE of routines,
// i.e. is used for pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Routine, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.Count(ctx, params.RoutineParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	span.SetAttributes(attribute.Int("count_all", countAll))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, name, description, exercises, target_muscle_groups, difficulty, estimated_duration, created_at
			FROM workout_routine
				WHERE ($1::text = '' OR difficulty = $1)
				AND ($2::text = '' OR target_muscle_groups ? $2)
				AND ($3::int = 0 OR estimated_duration >= $3)
				AND ($4::int = 0 OR estimated_duration <= $4)
			ORDER BY created_at DESC
			LIMIT $5
			OFFSET $6;`,
		params.Difficulty, params.MuscleGroup,
		params.MinDuration, params.MaxDuration,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	routines, err := r.rows2routines(rows)
	if err != nil {
		return nil, -1, err
	}
	return routines, countAll, nil
}

func (r *Repo) Count(ctx context.Context, params RoutineParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM workout_routine
			WHERE ($1::text = '' OR difficulty = $1)
			AND ($2::text = '' OR target_muscle_groups ? $2)
			AND ($3::int = 0 OR estimated_duration >= $3)
			AND ($4::int = 0 OR estimated_duration <= $4);
	`,
		params.Difficulty, params.MuscleGroup,
		params.MinDuration, params.MaxDuration,
	)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get workout routines count")
}

func (r *Repo) rows2routines(rows pgx.Rows) ([]Routine, error) {
	var routines []Routine
	for rows.Next() {
		var routine Routine
		var exercisesBytes []byte
		var muscleGroupsBytes []byte
		if err := rows.Scan(
			&routine.ID, &routine.Name, &routine.Description,
			&exercisesBytes, &muscleGroupsBytes,
			&routine.Difficulty, &routine.EstimatedDuration,
			&routine.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(exercisesBytes) > 0 {
			if err := json.Unmarshal(exercisesBytes, &routine.Exercises); err != nil {
				return nil, fmt.Errorf("unmarshal exercises for routine [%s]: %w", routine.ID, err)
			}
		}
		if routine.Exercises == nil {
			routine.Exercises = make([]Exercise, 0)
		}

		if len(muscleGroupsBytes) > 0 {
			if err := json.Unmarshal(muscleGroupsBytes, &routine.TargetMuscleGroups); err != nil {
				return nil, fmt.Errorf("unmarshal muscle groups for routine [%s]: %w", routine.ID, err)
			}
		}
		if routine.TargetMuscleGroups == nil {
			routine.TargetMuscleGroups = make([]string, 0)
		}

		routines = append(routines, routine)
	}

	if routines == nil {
		routines = make([]Routine, 0)
	}

	return routines, nil
}
