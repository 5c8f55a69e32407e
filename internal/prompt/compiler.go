package prompt

import (
	"strings"
	"text/template"

	"github.com/bizmatters/healthpath/internal/answers"
	"github.com/bizmatters/healthpath/internal/questionnaire"
)

// GoalLabels maps goal option ids to the phrase used in the prompt
var GoalLabels = map[string]string{
	"loseWeight":     "lose weight",
	"gainWeight":     "gain weight and build mass",
	"buildMuscle":    "build muscle and strength",
	"improveSleep":   "improve sleep quality",
	"increaseEnergy": "increase daily energy levels",
	"overallHealth":  "improve overall health and wellness",
}

// ActivityLabels maps activity option ids to the phrase used in the prompt
var ActivityLabels = map[string]string{
	"sedentary":        "sedentary (little to no exercise)",
	"lightlyActive":    "lightly active (1-3 days/week)",
	"moderatelyActive": "moderately active (3-5 days/week)",
	"veryActive":       "very active (6-7 days/week)",
	"athlete":          "athlete level (intense daily training)",
}

const (
	noDietRestrictions = "No specific restrictions"
	noInjuries         = "None"
)

// profile is the flattened view of the answers the template reads
type profile struct {
	Age          string
	Gender       string
	Height       string
	Weight       string
	Goal         string
	Activity     string
	SleepHours   string
	SleepQuality string
	SleepIssues  string
	Diet         string
	WorkSchedule string
	CookingTime  string
	Budget       string
	Injuries     string
}

var promptTemplate = template.Must(template.New("prompt").Parse(promptText))

// Compile renders the generation prompt for a set of answers. Missing values
// render as empty text; it never fails.
func Compile(store *answers.Store) string {
	p := buildProfile(store)

	var b strings.Builder
	// the template only reads string fields of a struct we control
	_ = promptTemplate.Execute(&b, p)
	return b.String()
}

func buildProfile(store *answers.Store) profile {
	basic := store.Fields(questionnaire.BasicInfo)
	sleep := store.Fields(questionnaire.SleepInfo)
	life := store.Fields(questionnaire.Lifestyle)

	goal, _ := store.Choice(questionnaire.Goal)
	activity, _ := store.Choice(questionnaire.ActivityLevel)

	diet := noDietRestrictions
	if sel, ok := store.Selection(questionnaire.DietInfo); ok && len(sel) > 0 {
		diet = strings.Join(sel, ", ")
	}

	injuries := life[questionnaire.FieldInjuries]
	if injuries == "" {
		injuries = noInjuries
	}

	return profile{
		Age:          basic[questionnaire.FieldAge],
		Gender:       basic[questionnaire.FieldGender],
		Height:       basic[questionnaire.FieldHeight],
		Weight:       basic[questionnaire.FieldWeight],
		Goal:         label(GoalLabels, goal),
		Activity:     label(ActivityLabels, activity),
		SleepHours:   sleep[questionnaire.FieldSleepHours],
		SleepQuality: sleep[questionnaire.FieldSleepQuality],
		SleepIssues:  sleep[questionnaire.FieldSleepIssues],
		Diet:         diet,
		WorkSchedule: life[questionnaire.FieldWorkSchedule],
		CookingTime:  life[questionnaire.FieldCookingTime],
		Budget:       life[questionnaire.FieldBudget],
		Injuries:     injuries,
	}
}

// label translates an option id, passing unknown ids through
func label(labels map[string]string, id string) string {
	if l, ok := labels[id]; ok {
		return l
	}
	return id
}
