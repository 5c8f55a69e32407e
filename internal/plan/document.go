package plan

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Document is the generated health plan
type Document struct {
	Overview       Overview        `json:"overview"`
	Workout        Workout         `json:"workout"`
	Diet           Diet            `json:"diet"`
	Sleep          Sleep           `json:"sleep"`
	Equipment      []EquipmentItem `json:"equipment"`
	WeeklySchedule []ScheduleDay   `json:"weeklySchedule"`
}

type Overview struct {
	Summary       Text     `json:"summary"`
	BMI           Text     `json:"bmi"`
	BMICategory   Text     `json:"bmiCategory"`
	DailyCalories Text     `json:"dailyCalories"`
	ProteinGoal   Text     `json:"proteinGoal"`
	WaterIntake   Text     `json:"waterIntake"`
	KeyFocus      TextList `json:"keyFocus"`
}

type Workout struct {
	WeeklyPlan      []WorkoutDay `json:"weeklyPlan"`
	Warmup          Text         `json:"warmup"`
	Cooldown        Text         `json:"cooldown"`
	ProgressionTips TextList     `json:"progressionTips"`
}

type WorkoutDay struct {
	Day       Text       `json:"day"`
	Focus     Text       `json:"focus,omitempty"`
	Duration  Text       `json:"duration,omitempty"`
	Exercises []Exercise `json:"exercises,omitempty"`
	RestDay   Flag       `json:"restDay"`
}

type Exercise struct {
	Name  Text `json:"name"`
	Sets  Text `json:"sets"`
	Reps  Text `json:"reps"`
	Notes Text `json:"notes,omitempty"`
}

type Diet struct {
	Guidelines  TextList `json:"guidelines"`
	MealPlan    MealPlan `json:"mealPlan"`
	Hydration   Text     `json:"hydration"`
	Supplements TextList `json:"supplements,omitempty"`
}

type MealPlan struct {
	Breakfast []Meal `json:"breakfast"`
	Lunch     []Meal `json:"lunch"`
	Dinner    []Meal `json:"dinner"`
	Snacks    []Meal `json:"snacks"`
}

// Meal is a meal or snack suggestion; snacks carry no time
type Meal struct {
	Name        Text `json:"name"`
	Description Text `json:"description"`
	Calories    Text `json:"calories"`
	Time        Text `json:"time,omitempty"`
}

type Sleep struct {
	TargetHours Text         `json:"targetHours"`
	Bedtime     Text         `json:"bedtime"`
	WakeTime    Text         `json:"wakeTime"`
	Routine     SleepRoutine `json:"routine"`
	Tips        TextList     `json:"tips"`
	AvoidBefore TextList     `json:"avoidBefore"`
}

type SleepRoutine struct {
	Evening TextList `json:"evening"`
	Morning TextList `json:"morning"`
}

// Equipment priorities
const (
	PriorityEssential   = "essential"
	PriorityRecommended = "recommended"
	PriorityOptional    = "optional"
)

type EquipmentItem struct {
	Name       Text `json:"name"`
	Priority   Text `json:"priority"`
	PriceRange Text `json:"priceRange"`
	Reason     Text `json:"reason"`
}

type ScheduleDay struct {
	Day      Text            `json:"day"`
	Schedule []ScheduleEntry `json:"schedule"`
}

type ScheduleEntry struct {
	Time     Text `json:"time"`
	Activity Text `json:"activity"`
}

// Text is a scalar the model may send as a string, number or boolean.
// Non-string values keep their literal JSON text, so 24.7 stays "24.7".
type Text string

func (t Text) String() string { return string(t) }

func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := literal(data)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// TextList is a list of Text; a lone scalar decodes as a one-element list
type TextList []Text

func (l *TextList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Text
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var single Text
	if err := single.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	if single == "" {
		*l = nil
		return nil
	}
	*l = TextList{single}
	return nil
}

// Strings returns the list as plain strings
func (l TextList) Strings() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = string(t)
	}
	return out
}

// Flag is a boolean the model may send as true/false, "true"/"false" or 0/1
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	s, err := literal(data)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

func literal(data []byte) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", err
	}
	return buf.String(), nil
}
