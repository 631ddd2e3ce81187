package nutrition

import (
	"errors"
	"fmt"
	"time"

	"github.com/mdjurovic/vitalis/pkg"
)

var (
	ErrPlanNotFound    = errors.New("nutrition plan not found")
	ErrMalformedRecord = errors.New("malformed record")
)

// Meal is a single meal within a nutrition plan. Calories is a whole
// count, the macros are fractional grams.
type Meal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Calories    int      `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Ingredients []string `json:"ingredients"`
	Notes       string   `json:"notes"`
}

// Plan is a named, ordered collection of meals with aggregate
// daily nutrition targets. CreatedAt is a pointer so a plan that
// never touched the database marshals exactly like the seed records,
// without a created_at field.
type Plan struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Meals         []Meal     `json:"meals"`
	DailyCalories int        `json:"daily_calories"`
	DailyProtein  float64    `json:"daily_protein"`
	DailyCarbs    float64    `json:"daily_carbs"`
	DailyFat      float64    `json:"daily_fat"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// Validate reports the first malformed-record problem found:
// missing required fields, duplicate meal ids, negative numeric fields.
func (p *Plan) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: plan name empty", ErrMalformedRecord)
	}
	if p.Description == "" {
		return fmt.Errorf("%w: plan description empty", ErrMalformedRecord)
	}
	if len(p.Meals) == 0 {
		return fmt.Errorf("%w: plan [%s] has no meals", ErrMalformedRecord, p.ID)
	}
	if p.DailyCalories < 0 {
		return fmt.Errorf("%w: plan [%s] daily_calories negative", ErrMalformedRecord, p.ID)
	}
	if p.DailyProtein < 0 || p.DailyCarbs < 0 || p.DailyFat < 0 {
		return fmt.Errorf("%w: plan [%s] daily macro negative", ErrMalformedRecord, p.ID)
	}

	seenMealIDs := make(map[string]bool)
	for _, meal := range p.Meals {
		if err := meal.Validate(); err != nil {
			return fmt.Errorf("plan [%s]: %w", p.ID, err)
		}
		if seenMealIDs[meal.ID] {
			return fmt.Errorf("%w: plan [%s] duplicate meal id [%s]", ErrMalformedRecord, p.ID, meal.ID)
		}
		seenMealIDs[meal.ID] = true
	}

	return nil
}

func (m *Meal) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: meal id empty", ErrMalformedRecord)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: meal [%s] name empty", ErrMalformedRecord, m.ID)
	}
	if m.Calories < 0 {
		return fmt.Errorf("%w: meal [%s] calories negative", ErrMalformedRecord, m.ID)
	}
	if m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 {
		return fmt.Errorf("%w: meal [%s] macro negative", ErrMalformedRecord, m.ID)
	}
	return nil
}

// EnsureIDs fills in missing record identifiers on the plan and its meals.
func (p *Plan) EnsureIDs() {
	if p.ID == "" {
		p.ID = pkg.NewRecordID()
	}
	for i := range p.Meals {
		if p.Meals[i].ID == "" {
			p.Meals[i].ID = pkg.NewRecordID()
		}
	}
}

// Duplicate returns a deep copy of the plan with fresh identifiers,
// named "<name> (Copy)".
func (p *Plan) Duplicate() Plan {
	duplicate := Plan{
		ID:            pkg.NewRecordID(),
		Name:          fmt.Sprintf("%s (Copy)", p.Name),
		Description:   p.Description,
		Meals:         make([]Meal, 0, len(p.Meals)),
		DailyCalories: p.DailyCalories,
		DailyProtein:  p.DailyProtein,
		DailyCarbs:    p.DailyCarbs,
		DailyFat:      p.DailyFat,
	}
	for _, meal := range p.Meals {
		mealCopy := meal
		mealCopy.ID = pkg.NewRecordID()
		mealCopy.Ingredients = append([]string{}, meal.Ingredients...)
		duplicate.Meals = append(duplicate.Meals, mealCopy)
	}
	return duplicate
}

// MealCaloriesTotal sums the calories of the individual meals. It can
// drift from DailyCalories, the stated target is not derived from meals.
func (p *Plan) MealCaloriesTotal() int {
	var total int
	for _, meal := range p.Meals {
		total += meal.Calories
	}
	return total
}
