package test

import (
	"context"
	"fmt"
	"time"

	"github.com/mdjurovic/vitalis/internal/nutrition"
)

func testMeals(count int) []nutrition.Meal {
	meals := make([]nutrition.Meal, 0, count)
	for i := 0; i < count; i++ {
		meals = append(meals, nutrition.Meal{
			ID:          fmt.Sprintf("meal-%d", i+1),
			Name:        fmt.Sprintf("Meal %d", i+1),
			Calories:    400 + i*50,
			Protein:     30,
			Carbs:       45,
			Fat:         12.5,
			Ingredients: []string{"oats", "eggs"},
		})
	}
	return meals
}

// seedNutritionPlans inserts four plans with explicit, increasing
// created_at values, so list ordering is deterministic. Returned
// plans are ordered oldest first.
func (s *IntegrationTestSuite) seedNutritionPlans(ctx context.Context, repo *nutrition.Repo) []nutrition.Plan {
	plans := []nutrition.Plan{
		{
			ID:            "plan-cut",
			Name:          "Cutting Plan",
			Description:   "calorie deficit, high protein",
			Meals:         testMeals(3),
			DailyCalories: 1500,
			DailyProtein:  130,
			DailyCarbs:    120,
			DailyFat:      45,
		},
		{
			ID:            "plan-maintain",
			Name:          "Maintenance Plan",
			Description:   "hold current weight",
			Meals:         testMeals(4),
			DailyCalories: 2000,
			DailyProtein:  120,
			DailyCarbs:    200,
			DailyFat:      60,
		},
		{
			ID:            "plan-bulk",
			Name:          "Bulking Plan",
			Description:   "calorie surplus for muscle gain",
			Meals:         testMeals(5),
			DailyCalories: 2800,
			DailyProtein:  160,
			DailyCarbs:    320,
			DailyFat:      85,
		},
		{
			ID:            "plan-light",
			Name:          "Light Plan",
			Description:   "two bigger meals per day",
			Meals:         testMeals(2),
			DailyCalories: 1800,
			DailyProtein:  110,
			DailyCarbs:    170,
			DailyFat:      55,
		},
	}

	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	for i := range plans {
		createdAt := base.Add(time.Duration(i) * time.Hour)
		plans[i].CreatedAt = &createdAt
		_, err := repo.Add(ctx, plans[i])
		s.Require().NoError(err)
	}

	return plans
}

func (s *IntegrationTestSuite) TestNutritionPlans_CRUD() {
	ctx := context.Background()
	repo := nutrition.NewRepo(s.db)

	plan := nutrition.Plan{
		ID:            "plan-crud",
		Name:          "Weekday Plan",
		Description:   "three meals, nothing fancy",
		Meals:         testMeals(3),
		DailyCalories: 1500,
		DailyProtein:  120,
		DailyCarbs:    150,
		DailyFat:      50,
	}

	added, err := repo.Add(ctx, plan)
	s.Require().NoError(err)
	// created_at gets stamped on insert
	s.Require().NotNil(added.CreatedAt)

	got, err := repo.Get(ctx, plan.ID)
	s.Require().NoError(err)
	s.Assert().Equal(plan.Name, got.Name)
	s.Assert().Equal(plan.Description, got.Description)
	s.Assert().Equal(plan.DailyCalories, got.DailyCalories)
	s.Assert().Equal(plan.DailyProtein, got.DailyProtein)
	s.Require().NotNil(got.CreatedAt)

	// meals survive the jsonb round trip
	s.Require().Len(got.Meals, 3)
	s.Assert().Equal("meal-1", got.Meals[0].ID)
	s.Assert().Equal(400, got.Meals[0].Calories)
	s.Assert().Equal([]string{"oats", "eggs"}, got.Meals[0].Ingredients)

	got.Name = "Weekday Plan v2"
	got.DailyCalories = 1600
	got.Meals = append(got.Meals, nutrition.Meal{
		ID:       "meal-4",
		Name:     "Evening Snack",
		Calories: 200,
	})
	s.Require().NoError(repo.Update(ctx, got))

	updated, err := repo.Get(ctx, plan.ID)
	s.Require().NoError(err)
	s.Assert().Equal("Weekday Plan v2", updated.Name)
	s.Assert().Equal(1600, updated.DailyCalories)
	s.Assert().Len(updated.Meals, 4)

	s.Require().NoError(repo.Delete(ctx, plan.ID))
	_, err = repo.Get(ctx, plan.ID)
	s.Assert().ErrorIs(err, nutrition.ErrPlanNotFound)

	// mutations on a missing plan report not found
	s.Assert().ErrorIs(repo.Update(ctx, updated), nutrition.ErrPlanNotFound)
	s.Assert().ErrorIs(repo.Delete(ctx, plan.ID), nutrition.ErrPlanNotFound)
}

func (s *IntegrationTestSuite) TestNutritionPlans_ListAll() {
	ctx := context.Background()
	repo := nutrition.NewRepo(s.db)
	s.seedNutritionPlans(ctx, repo)

	// no filters, newest first
	all, err := repo.ListAll(ctx, nutrition.PlanParams{})
	s.Require().NoError(err)
	s.Require().Len(all, 4)
	s.Assert().Equal("plan-light", all[0].ID)
	s.Assert().Equal("plan-bulk", all[1].ID)
	s.Assert().Equal("plan-maintain", all[2].ID)
	s.Assert().Equal("plan-cut", all[3].ID)

	// calorie range
	midRange, err := repo.ListAll(ctx, nutrition.PlanParams{
		MinCalories: 1600,
		MaxCalories: 2200,
	})
	s.Require().NoError(err)
	s.Require().Len(midRange, 2)
	s.Assert().Equal("plan-light", midRange[0].ID)
	s.Assert().Equal("plan-maintain", midRange[1].ID)

	// meal count bounds run against jsonb_array_length
	atLeastFourMeals, err := repo.ListAll(ctx, nutrition.PlanParams{MinMeals: 4})
	s.Require().NoError(err)
	s.Require().Len(atLeastFourMeals, 2)
	s.Assert().Equal("plan-bulk", atLeastFourMeals[0].ID)
	s.Assert().Equal("plan-maintain", atLeastFourMeals[1].ID)

	upToThreeMeals, err := repo.ListAll(ctx, nutrition.PlanParams{MaxMeals: 3})
	s.Require().NoError(err)
	s.Require().Len(upToThreeMeals, 2)
	s.Assert().Equal("plan-light", upToThreeMeals[0].ID)
	s.Assert().Equal("plan-cut", upToThreeMeals[1].ID)

	// combined filters
	combined, err := repo.ListAll(ctx, nutrition.PlanParams{
		MinCalories: 1400,
		MaxCalories: 2000,
		MinMeals:    3,
	})
	s.Require().NoError(err)
	s.Require().Len(combined, 2)
	s.Assert().Equal("plan-maintain", combined[0].ID)
	s.Assert().Equal("plan-cut", combined[1].ID)

	// nothing matches
	none, err := repo.ListAll(ctx, nutrition.PlanParams{MinCalories: 5000})
	s.Require().NoError(err)
	s.Assert().Empty(none)

	count, err := repo.Count(ctx, nutrition.PlanParams{MaxMeals: 3})
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func (s *IntegrationTestSuite) TestNutritionPlans_ListPaginated() {
	ctx := context.Background()
	repo := nutrition.NewRepo(s.db)
	s.seedNutritionPlans(ctx, repo)

	firstPage, total, err := repo.List(ctx, nutrition.ListParams{Page: 1, Size: 3})
	s.Require().NoError(err)
	s.Assert().Equal(4, total)
	s.Require().Len(firstPage, 3)
	s.Assert().Equal("plan-light", firstPage[0].ID)
	s.Assert().Equal("plan-bulk", firstPage[1].ID)
	s.Assert().Equal("plan-maintain", firstPage[2].ID)

	// the last page gets clamped so it still carries a full page
	secondPage, total, err := repo.List(ctx, nutrition.ListParams{Page: 2, Size: 3})
	s.Require().NoError(err)
	s.Assert().Equal(4, total)
	s.Require().Len(secondPage, 3)
	s.Assert().Equal("plan-bulk", secondPage[0].ID)
	s.Assert().Equal("plan-cut", secondPage[2].ID)

	// a size larger than the total returns everything
	everything, total, err := repo.List(ctx, nutrition.ListParams{Page: 5, Size: 50})
	s.Require().NoError(err)
	s.Assert().Equal(4, total)
	s.Assert().Len(everything, 4)

	// filters apply to the page and the total alike
	filtered, total, err := repo.List(ctx, nutrition.ListParams{
		PlanParams: nutrition.PlanParams{MinCalories: 1600},
		Page:       1,
		Size:       2,
	})
	s.Require().NoError(err)
	s.Assert().Equal(3, total)
	s.Require().Len(filtered, 2)
	s.Assert().Equal("plan-light", filtered[0].ID)

	_, _, err = repo.List(ctx, nutrition.ListParams{Page: 0, Size: 10})
	s.Assert().Error(err)
	_, _, err = repo.List(ctx, nutrition.ListParams{Page: 1, Size: 0})
	s.Assert().Error(err)
}
