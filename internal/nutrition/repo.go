package nutrition

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

type PlanParams struct {
	MinCalories int
	MaxCalories int
	MinMeals    int
	MaxMeals    int
}

type ListParams struct {
	PlanParams
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

func (r *Repo) Add(ctx context.Context, plan Plan) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", plan.ID))

	mealsJson, err := json.Marshal(plan.Meals)
	if err != nil {
		return nil, fmt.Errorf("marshal meals: %w", err)
	}

	if plan.CreatedAt == nil {
		now := time.Now()
		plan.CreatedAt = &now
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO nutrition_plan
				(id, name, description, meals, daily_calories, daily_protein, daily_carbs, daily_fat, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		plan.ID, plan.Name, plan.Description, mealsJson,
		plan.DailyCalories, plan.DailyProtein, plan.DailyCarbs, plan.DailyFat,
		plan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

func (r *Repo) Update(ctx context.Context, plan *Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", plan.ID))

	mealsJson, err := json.Marshal(plan.Meals)
	if err != nil {
		return fmt.Errorf("marshal meals: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE nutrition_plan
			SET name = $1, description = $2, meals = $3,
				daily_calories = $4, daily_protein = $5, daily_carbs = $6, daily_fat = $7
			WHERE id = $8;`,
		plan.Name, plan.Description, mealsJson,
		plan.DailyCalories, plan.DailyProtein, plan.DailyCarbs, plan.DailyFat,
		plan.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}

	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM nutrition_plan WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, name, description, meals, daily_calories, daily_protein, daily_carbs, daily_fat, created_at
			FROM nutrition_plan
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

	plans, err := r.rows2plans(rows)
	if err != nil {
		return nil, err
	}

	if len(plans) != 1 {
		return nil, ErrPlanNotFound
	}

	return &plans[0], nil
}

// ListAll returns all nutrition plans matching the given filters.
func (r *Repo) ListAll(ctx context.Context, params PlanParams) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("min_calories", params.MinCalories))
	span.SetAttributes(attribute.Int("max_calories", params.MaxCalories))
	span.SetAttributes(attribute.Int("min_meals", params.MinMeals))
	span.SetAttributes(attribute.Int("max_meals", params.MaxMeals))

	rows, err := r.db.Query(
		ctx,
		`SELECT
				id, name, description, meals, daily_calories, daily_protein, daily_carbs, daily_fat, created_at
			FROM nutrition_plan
				WHERE ($1::int = 0 OR daily_calories >= $1)
				AND ($2::int = 0 OR daily_calories <= $2)
				AND ($3::int = 0 OR jsonb_array_length(meals) >= $3)
				AND ($4::int = 0 OR jsonb_array_length(meals) <= $4)
			ORDER BY created_at DESC;`,
		params.MinCalories, params.MaxCalories,
		params.MinMeals, params.MaxMeals,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	plans, err := r.rows2plans(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2plans: %w", err)
	}
	return plans, nil
}

// List is like ListAll, but returns the specific PAGE of plans,
// i.e. is used for pagination.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Plan, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.list")
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
	countAll, err := r.Count(ctx, params.PlanParams)
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
				id, name, description, meals, daily_calories, daily_protein, daily_carbs, daily_fat, created_at
			FROM nutrition_plan
				WHERE ($1::int = 0 OR daily_calories >= $1)
				AND ($2::int = 0 OR daily_calories <= $2)
				AND ($3::int = 0 OR jsonb_array_length(meals) >= $3)
				AND ($4::int = 0 OR jsonb_array_length(meals) <= $4)
			ORDER BY created_at DESC
			LIMIT $5
			OFFSET $6;`,
		params.MinCalories, params.MaxCalories,
		params.MinMeals, params.MaxMeals,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	plans, err := r.rows2plans(rows)
	if err != nil {
		return nil, -1, err
	}
	return plans, countAll, nil
}

func (r *Repo) Count(ctx context.Context, params PlanParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT COUNT(*) FROM nutrition_plan
			WHERE ($1::int = 0 OR daily_calories >= $1)
			AND ($2::int = 0 OR daily_calories <= $2)
			AND ($3::int = 0 OR jsonb_array_length(meals) >= $3)
			AND ($4::int = 0 OR jsonb_array_length(meals) <= $4);
	`,
		params.MinCalories, params.MaxCalories,
		params.MinMeals, params.MaxMeals,
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

	return -1, errors.New("unexpected error, failed to get nutrition plans count")
}

func (r *Repo) rows2plans(rows pgx.Rows) ([]Plan, error) {
	var plans []Plan
	for rows.Next() {
		var plan Plan
		var mealsBytes []byte
		if err := rows.Scan(
			&plan.ID, &plan.Name, &plan.Description, &mealsBytes,
			&plan.DailyCalories, &plan.DailyProtein, &plan.DailyCarbs, &plan.DailyFat,
			&plan.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(mealsBytes) > 0 {
			if err := json.Unmarshal(mealsBytes, &plan.Meals); err != nil {
				return nil, fmt.Errorf("unmarshal meals for plan [%s]: %w", plan.ID, err)
			}
		}
		if plan.Meals == nil {
			plan.Meals = make([]Meal, 0)
		}

		plans = append(plans, plan)
	}

	if plans == nil {
		plans = make([]Plan, 0)
	}

	return plans, nil
}
