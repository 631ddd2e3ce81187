package seed

import (
	"context"
	"fmt"

	"github.com/mdjurovic/vitalis/internal/nutrition"
	"github.com/mdjurovic/vitalis/internal/workouts"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=seed_test

type plansStore interface {
	Add(ctx context.Context, plan nutrition.Plan) (*nutrition.Plan, error)
	Count(ctx context.Context, params nutrition.PlanParams) (int, error)
}

type routinesStore interface {
	Add(ctx context.Context, routine workouts.Routine) (*workouts.Routine, error)
	Count(ctx context.Context, params workouts.RoutineParams) (int, error)
}

type Seeder struct {
	plans    plansStore
	routines routinesStore
}

func NewSeeder(plans plansStore, routines routinesStore) *Seeder {
	return &Seeder{
		plans:    plans,
		routines: routines,
	}
}

// SeedIfEmpty inserts the built-in datasets into each collection that
// has no records yet. Collections with existing data are left alone.
func (s *Seeder) SeedIfEmpty(ctx context.Context) error {
	dataset, err := Load()
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	plansCount, err := s.plans.Count(ctx, nutrition.PlanParams{})
	if err != nil {
		return fmt.Errorf("count nutrition plans: %w", err)
	}
	if plansCount == 0 {
		for _, plan := range dataset.Plans {
			if _, err := s.plans.Add(ctx, plan); err != nil {
				return fmt.Errorf("seed plan [%s]: %w", plan.ID, err)
			}
		}
		log.Debugf("seeded %d nutrition plans", len(dataset.Plans))
	} else {
		log.Tracef("nutrition plans present (%d), seeding skipped", plansCount)
	}

	routinesCount, err := s.routines.Count(ctx, workouts.RoutineParams{})
	if err != nil {
		return fmt.Errorf("count workout routines: %w", err)
	}
	if routinesCount == 0 {
		for _, routine := range dataset.Routines {
			if _, err := s.routines.Add(ctx, routine); err != nil {
				return fmt.Errorf("seed routine [%s]: %w", routine.ID, err)
			}
		}
		log.Debugf("seeded %d workout routines", len(dataset.Routines))
	} else {
		log.Tracef("workout routines present (%d), seeding skipped", routinesCount)
	}

	return nil
}
