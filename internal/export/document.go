package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bizmatters/healthpath/internal/plan"
)

// DefaultFileName is the suggested name of an exported plan
const DefaultFileName = "healthpath-plan.txt"

const (
	title    = "HealthPath"
	subtitle = "Your Personalized Health Plan"
	footer   = "Generated by HealthPath - Your Personal Health Journey"
	bullet   = "  • "
)

var ErrNoPlan = errors.New("no health plan to export")

// Options controls page geometry
type Options struct {
	// Width is the maximum line width in characters
	Width int
	// LinesPerPage is the number of body lines on a page, footer excluded
	LinesPerPage int
	// SectionReserve is the minimum number of free lines a section header
	// needs; with fewer left the section starts on a new page
	SectionReserve int
}

func DefaultOptions() Options {
	return Options{Width: 80, LinesPerPage: 56, SectionReserve: 6}
}

// Page is one page of body lines
type Page struct {
	Lines []string
}

// Paginate lays the plan out into pages
func Paginate(doc *plan.Document, opts Options) ([]Page, error) {
	if doc == nil {
		return nil, ErrNoPlan
	}
	if opts.Width <= 0 || opts.LinesPerPage <= 0 {
		opts = DefaultOptions()
	}
	if opts.SectionReserve >= opts.LinesPerPage {
		opts.SectionReserve = opts.LinesPerPage / 2
	}

	l := &layout{opts: opts}
	l.newPage()
	l.raw(strings.Repeat("=", opts.Width))
	l.raw(title)
	l.raw(subtitle)
	l.raw(strings.Repeat("=", opts.Width))

	writeOverview(l, doc.Overview)
	writeWorkout(l, doc.Workout)
	writeDiet(l, doc.Diet)
	writeSleep(l, doc.Sleep)
	writeEquipment(l, doc.Equipment)
	writeWeekly(l, doc.WeeklySchedule)

	return l.pages, nil
}

// Write renders the paginated plan to w. Pages are separated by a form feed
// and end with the footer and page number.
func Write(w io.Writer, doc *plan.Document, opts Options) error {
	pages, err := Paginate(doc, opts)
	if err != nil {
		return err
	}
	for i, p := range pages {
		if i > 0 {
			if _, err := io.WriteString(w, "\f\n"); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
		}
		var b strings.Builder
		for _, line := range p.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "\n%s\nPage %d of %d\n", footer, i+1, len(pages))
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}
	return nil
}

func writeOverview(l *layout, o plan.Overview) {
	l.section("OVERVIEW")
	l.text(o.Summary.String())
	l.blank()
	l.text(fmt.Sprintf("BMI: %s (%s)", o.BMI, o.BMICategory))
	l.text(fmt.Sprintf("Daily Calories: %s", o.DailyCalories))
	l.text(fmt.Sprintf("Protein Goal: %sg", o.ProteinGoal))
	l.text(fmt.Sprintf("Water Intake: %s", o.WaterIntake))
}

func writeWorkout(l *layout, w plan.Workout) {
	l.section("WORKOUT PLAN")
	l.text("Warm-up: " + w.Warmup.String())
	l.blank()
	for _, day := range w.WeeklyPlan {
		if day.RestDay {
			l.text(fmt.Sprintf("%s: Rest Day", day.Day))
		} else {
			l.text(fmt.Sprintf("%s: %s (%s)", day.Day, day.Focus, day.Duration))
			for _, ex := range day.Exercises {
				l.item(fmt.Sprintf("%s: %s sets x %s reps", ex.Name, ex.Sets, ex.Reps))
			}
		}
		l.blank()
	}
	l.text("Cool-down: " + w.Cooldown.String())
}

func writeDiet(l *layout, d plan.Diet) {
	l.section("DIET PLAN")
	l.text("Guidelines:")
	for _, g := range d.Guidelines {
		l.item(g.String())
	}
	l.blank()

	meals := []struct {
		label string
		meals []plan.Meal
	}{
		{"Breakfast Options:", d.MealPlan.Breakfast},
		{"Lunch Options:", d.MealPlan.Lunch},
		{"Dinner Options:", d.MealPlan.Dinner},
	}
	for _, m := range meals {
		l.text(m.label)
		for _, meal := range m.meals {
			l.item(fmt.Sprintf("%s (~%s cal) - %s", meal.Name, meal.Calories, meal.Description))
		}
	}
	l.text("Snacks:")
	for _, snack := range d.MealPlan.Snacks {
		l.item(fmt.Sprintf("%s (~%s cal)", snack.Name, snack.Calories))
	}
}

func writeSleep(l *layout, s plan.Sleep) {
	l.section("SLEEP SCHEDULE")
	l.text("Target Sleep: " + s.TargetHours.String())
	l.text("Bedtime: " + s.Bedtime.String())
	l.text("Wake Time: " + s.WakeTime.String())
	l.blank()
	l.text("Evening Routine:")
	for _, step := range s.Routine.Evening {
		l.item(step.String())
	}
	l.text("Morning Routine:")
	for _, step := range s.Routine.Morning {
		l.item(step.String())
	}
}

func writeEquipment(l *layout, items []plan.EquipmentItem) {
	l.section("RECOMMENDED EQUIPMENT")
	for _, item := range items {
		l.text(fmt.Sprintf("%s [%s]", item.Name, strings.ToUpper(item.Priority.String())))
		l.indented(item.Reason.String())
		l.indented("Price: " + item.PriceRange.String())
		l.blank()
	}
}

func writeWeekly(l *layout, days []plan.ScheduleDay) {
	l.section("WEEKLY SCHEDULE")
	for _, day := range days {
		l.text(day.Day.String())
		for _, e := range day.Schedule {
			l.indented(fmt.Sprintf("%s - %s", e.Time, e.Activity))
		}
		l.blank()
	}
}
