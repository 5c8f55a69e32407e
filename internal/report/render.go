package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bizmatters/healthpath/internal/plan"
)

// Tab selects one section of the report
type Tab string

const (
	TabOverview  Tab = "overview"
	TabWorkout   Tab = "workout"
	TabDiet      Tab = "diet"
	TabSleep     Tab = "sleep"
	TabEquipment Tab = "equipment"
	TabWeekly    Tab = "weekly"
)

// Tabs lists every tab in display order
var Tabs = []Tab{TabOverview, TabWorkout, TabDiet, TabSleep, TabEquipment, TabWeekly}

var (
	ErrUnknownTab = errors.New("unknown report tab")
	ErrNoPlan     = errors.New("no health plan to render")
)

// ParseTab converts a tab name
func ParseTab(s string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tabs {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Title is the tab's display name
func (t Tab) Title() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabWorkout:
		return "Workout"
	case TabDiet:
		return "Diet"
	case TabSleep:
		return "Sleep"
	case TabEquipment:
		return "Equipment"
	case TabWeekly:
		return "Weekly"
	}
	return string(t)
}

// View is the render model of one tab
type View interface {
	Tab() Tab
}

// Render builds the view model of one tab. Values are copied verbatim from the
// document; missing values render empty.
func Render(doc *plan.Document, tab Tab) (View, error) {
	if doc == nil {
		return nil, ErrNoPlan
	}
	switch tab {
	case TabOverview:
		return renderOverview(doc.Overview), nil
	case TabWorkout:
		return renderWorkout(doc.Workout), nil
	case TabDiet:
		return renderDiet(doc.Diet), nil
	case TabSleep:
		return renderSleep(doc.Sleep), nil
	case TabEquipment:
		return renderEquipment(doc.Equipment), nil
	case TabWeekly:
		return renderWeekly(doc.WeeklySchedule), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
}

type Stat struct {
	Label string
	Value string
}

type OverviewView struct {
	Summary     string
	BMI         string
	BMICategory string
	Stats       []Stat
	WaterIntake string
	KeyFocus    []string
}

func (OverviewView) Tab() Tab { return TabOverview }

func renderOverview(o plan.Overview) OverviewView {
	return OverviewView{
		Summary:     o.Summary.String(),
		BMI:         o.BMI.String(),
		BMICategory: o.BMICategory.String(),
		Stats: []Stat{
			{Label: fmt.Sprintf("BMI (%s)", o.BMICategory), Value: o.BMI.String()},
			{Label: "Daily Calories", Value: o.DailyCalories.String()},
			{Label: "Daily Protein", Value: o.ProteinGoal.String() + "g"},
		},
		WaterIntake: o.WaterIntake.String(),
		KeyFocus:    o.KeyFocus.Strings(),
	}
}

type WorkoutView struct {
	Warmup          string
	Days            []WorkoutDayView
	Cooldown        string
	ProgressionTips []string
}

type WorkoutDayView struct {
	Day       string
	RestDay   bool
	Headline  string
	Note      string
	Exercises []ExerciseView
}

type ExerciseView struct {
	Name   string
	Detail string
}

// RestDayNote accompanies every rest day
const RestDayNote = "Recovery and light stretching recommended"

func (WorkoutView) Tab() Tab { return TabWorkout }

func renderWorkout(w plan.Workout) WorkoutView {
	v := WorkoutView{
		Warmup:          w.Warmup.String(),
		Cooldown:        w.Cooldown.String(),
		ProgressionTips: w.ProgressionTips.Strings(),
	}
	for _, d := range w.WeeklyPlan {
		day := WorkoutDayView{Day: d.Day.String(), RestDay: bool(d.RestDay)}
		if day.RestDay {
			day.Headline = "Rest Day"
			day.Note = RestDayNote
		} else {
			day.Headline = fmt.Sprintf("%s • %s", d.Focus, d.Duration)
			for _, ex := range d.Exercises {
				detail := fmt.Sprintf("%s sets × %s reps", ex.Sets, ex.Reps)
				if ex.Notes != "" {
					detail += " • " + ex.Notes.String()
				}
				day.Exercises = append(day.Exercises, ExerciseView{Name: ex.Name.String(), Detail: detail})
			}
		}
		v.Days = append(v.Days, day)
	}
	return v
}

type DietView struct {
	Guidelines  []string
	Sections    []MealSection
	Hydration   string
	Supplements []string
}

type MealSection struct {
	Title string
	Meals []MealView
}

type MealView struct {
	Name        string
	Detail      string
	Description string
}

func (DietView) Tab() Tab { return TabDiet }

func renderDiet(d plan.Diet) DietView {
	v := DietView{
		Guidelines: d.Guidelines.Strings(),
		Sections: []MealSection{
			{Title: "Breakfast Options", Meals: meals(d.MealPlan.Breakfast, true)},
			{Title: "Lunch Options", Meals: meals(d.MealPlan.Lunch, true)},
			{Title: "Dinner Options", Meals: meals(d.MealPlan.Dinner, true)},
			{Title: "Healthy Snacks", Meals: meals(d.MealPlan.Snacks, false)},
		},
		Hydration: d.Hydration.String(),
	}
	if len(d.Supplements) > 0 {
		v.Supplements = d.Supplements.Strings()
	}
	return v
}

func meals(in []plan.Meal, timed bool) []MealView {
	out := make([]MealView, 0, len(in))
	for _, m := range in {
		detail := fmt.Sprintf("~%s cal", m.Calories)
		if timed {
			detail = fmt.Sprintf("%s • %s", m.Time, detail)
		}
		out = append(out, MealView{Name: m.Name.String(), Detail: detail, Description: m.Description.String()})
	}
	return out
}

type SleepView struct {
	Stats          []Stat
	EveningRoutine []string
	MorningRoutine []string
	Tips           []string
	AvoidBefore    []string
}

func (SleepView) Tab() Tab { return TabSleep }

func renderSleep(s plan.Sleep) SleepView {
	return SleepView{
		Stats: []Stat{
			{Label: "Target Sleep", Value: s.TargetHours.String()},
			{Label: "Bedtime", Value: s.Bedtime.String()},
			{Label: "Wake Time", Value: s.WakeTime.String()},
		},
		EveningRoutine: s.Routine.Evening.Strings(),
		MorningRoutine: s.Routine.Morning.Strings(),
		Tips:           s.Tips.Strings(),
		AvoidBefore:    s.AvoidBefore.Strings(),
	}
}

// EquipmentIntro precedes the equipment list
const EquipmentIntro = "Based on your goals and budget, here's the recommended home equipment:"

// ShoppingTips follow the equipment list
var ShoppingTips = []string{
	"Start with essential items first",
	"Check for sales and discounts online",
	"Consider second-hand options for larger equipment",
	"Invest in quality for items you'll use daily",
}

type EquipmentView struct {
	Intro        string
	Items        []EquipmentItemView
	ShoppingTips []string
}

type EquipmentItemView struct {
	Name       string
	Priority   string
	Badge      string
	Reason     string
	PriceRange string
}

func (EquipmentView) Tab() Tab { return TabEquipment }

// PriorityRank orders equipment priorities; unknown priorities sort last
func PriorityRank(priority string) int {
	switch strings.ToLower(priority) {
	case plan.PriorityEssential:
		return 1
	case plan.PriorityRecommended:
		return 2
	case plan.PriorityOptional:
		return 3
	}
	return 4
}

// SortEquipment returns the items ordered by priority rank, keeping input order within a rank
func SortEquipment(items []plan.EquipmentItem) []plan.EquipmentItem {
	sorted := append([]plan.EquipmentItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return PriorityRank(string(sorted[i].Priority)) < PriorityRank(string(sorted[j].Priority))
	})
	return sorted
}

func renderEquipment(items []plan.EquipmentItem) EquipmentView {
	v := EquipmentView{
		Intro:        EquipmentIntro,
		ShoppingTips: append([]string(nil), ShoppingTips...),
	}
	for _, item := range SortEquipment(items) {
		v.Items = append(v.Items, EquipmentItemView{
			Name:       item.Name.String(),
			Priority:   item.Priority.String(),
			Badge:      capitalize(item.Priority.String()),
			Reason:     item.Reason.String(),
			PriceRange: item.PriceRange.String(),
		})
	}
	return v
}

type WeeklyView struct {
	Days []ScheduleDayView
}

type ScheduleDayView struct {
	Day     string
	Entries []ScheduleEntryView
}

type ScheduleEntryView struct {
	Time     string
	Activity string
}

func (WeeklyView) Tab() Tab { return TabWeekly }

func renderWeekly(days []plan.ScheduleDay) WeeklyView {
	var v WeeklyView
	for _, d := range days {
		day := ScheduleDayView{Day: d.Day.String()}
		for _, e := range d.Schedule {
			day.Entries = append(day.Entries, ScheduleEntryView{Time: e.Time.String(), Activity: e.Activity.String()})
		}
		v.Days = append(v.Days, day)
	}
	return v
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
