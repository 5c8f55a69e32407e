package plan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompletePlan matches every error returned by Validate
var ErrIncompletePlan = errors.New("incomplete health plan")

// Validate reports sections the model left out or filled with unknown values.
// Rendering never depends on it; a plan that fails validation still renders.
func (d *Document) Validate() error {
	var problems []string

	if d.Overview.Summary == "" {
		problems = append(problems, "overview.summary is empty")
	}
	if len(d.Workout.WeeklyPlan) == 0 {
		problems = append(problems, "workout.weeklyPlan is empty")
	}
	for i, day := range d.Workout.WeeklyPlan {
		if !bool(day.RestDay) && len(day.Exercises) == 0 {
			problems = append(problems, fmt.Sprintf("workout.weeklyPlan[%d] has no exercises", i))
		}
	}
	mp := d.Diet.MealPlan
	if len(mp.Breakfast)+len(mp.Lunch)+len(mp.Dinner)+len(mp.Snacks) == 0 {
		problems = append(problems, "diet.mealPlan is empty")
	}
	if d.Sleep.TargetHours == "" {
		problems = append(problems, "sleep.targetHours is empty")
	}
	if len(d.Equipment) == 0 {
		problems = append(problems, "equipment is empty")
	}
	for i, item := range d.Equipment {
		switch strings.ToLower(string(item.Priority)) {
		case PriorityEssential, PriorityRecommended, PriorityOptional:
		default:
			problems = append(problems, fmt.Sprintf("equipment[%d] has unknown priority %q", i, item.Priority))
		}
	}
	if len(d.WeeklySchedule) == 0 {
		problems = append(problems, "weeklySchedule is empty")
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrIncompletePlan, strings.Join(problems, "; "))
}
