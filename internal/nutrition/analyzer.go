package nutrition

import (
	"context"
	"math"

	"github.com/mdjurovic/vitalis/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// calorieDriftThreshold marks plans whose meal calories stray too far
// from the stated daily target.
const calorieDriftThreshold = 50

// MacroSplit is the percentage of daily calories coming from each macro,
// derived via 4 kcal/g for protein and carbs and 9 kcal/g for fat.
type MacroSplit struct {
	ProteinPct float64 `json:"protein_pct"`
	CarbsPct   float64 `json:"carbs_pct"`
	FatPct     float64 `json:"fat_pct"`
}

type PlanAnalysis struct {
	PlanID     string     `json:"plan_id"`
	MacroSplit MacroSplit `json:"macro_split"`

	// totals summed over the individual meals
	MealCalories int     `json:"meal_calories"`
	MealProtein  float64 `json:"meal_protein"`
	MealCarbs    float64 `json:"meal_carbs"`
	MealFat      float64 `json:"meal_fat"`

	// CalorieDrift is meal calories total minus the stated daily target.
	// The sample datasets only approximate equality, so the drift is
	// reported, never enforced.
	CalorieDrift int  `json:"calorie_drift"`
	DriftWarning bool `json:"drift_warning"`
}

type PlansStats struct {
	Total           int     `json:"total"`
	AvgCalories     float64 `json:"avg_calories"`
	TotalMeals      int     `json:"total_meals"`
	AvgMealsPerPlan float64 `json:"avg_meals_per_plan"`
}

type Analyzer struct {
	repo plansRepo
}

func NewAnalyzer(repo plansRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, planID string) (_ *PlanAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.nutrition.analyze")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID))

	plan, err := a.repo.Get(ctx, planID)
	if err != nil {
		return nil, err
	}

	analysis := &PlanAnalysis{
		PlanID:     plan.ID,
		MacroSplit: macroSplit(plan.DailyProtein, plan.DailyCarbs, plan.DailyFat),
	}

	for _, meal := range plan.Meals {
		analysis.MealCalories += meal.Calories
		analysis.MealProtein += meal.Protein
		analysis.MealCarbs += meal.Carbs
		analysis.MealFat += meal.Fat
	}

	analysis.CalorieDrift = analysis.MealCalories - plan.DailyCalories
	if abs(analysis.CalorieDrift) > calorieDriftThreshold {
		analysis.DriftWarning = true
	}

	return analysis, nil
}

func (a *Analyzer) Stats(ctx context.Context) (_ *PlansStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.nutrition.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plans, err := a.repo.ListAll(ctx, PlanParams{})
	if err != nil {
		return nil, err
	}

	stats := &PlansStats{
		Total: len(plans),
	}
	if len(plans) == 0 {
		return stats, nil
	}

	var caloriesSum int
	for _, plan := range plans {
		caloriesSum += plan.DailyCalories
		stats.TotalMeals += len(plan.Meals)
	}

	stats.AvgCalories = math.Round(float64(caloriesSum) / float64(len(plans)))
	stats.AvgMealsPerPlan = roundTo1(float64(stats.TotalMeals) / float64(len(plans)))

	return stats, nil
}

func macroSplit(protein, carbs, fat float64) MacroSplit {
	caloriesFromMacros := protein*4 + carbs*4 + fat*9
	if caloriesFromMacros <= 0 {
		return MacroSplit{}
	}
	return MacroSplit{
		ProteinPct: roundTo2(protein * 4 / caloriesFromMacros * 100),
		CarbsPct:   roundTo2(carbs * 4 / caloriesFromMacros * 100),
		FatPct:     roundTo2(fat * 9 / caloriesFromMacros * 100),
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
