// Package fixtures holds shared questionnaire answers and model replies for tests.
package fixtures

import (
	"encoding/json"

	"github.com/bizmatters/healthpath/internal/answers"
	"github.com/bizmatters/healthpath/internal/questionnaire"
)

// CompleteAnswers returns a fully answered questionnaire: a sedentary
// vegetarian aiming to lose weight.
func CompleteAnswers() *answers.Store {
	s := answers.NewStore()
	must(s.Set(questionnaire.BasicInfo, answers.Fields{
		questionnaire.FieldAge:    "30",
		questionnaire.FieldGender: "Female",
		questionnaire.FieldHeight: "165",
		questionnaire.FieldWeight: "72",
	}))
	must(s.Set(questionnaire.Goal, answers.Choice("loseWeight")))
	must(s.Set(questionnaire.ActivityLevel, answers.Choice("sedentary")))
	must(s.Set(questionnaire.SleepInfo, answers.Fields{
		questionnaire.FieldSleepHours:   "6.5",
		questionnaire.FieldSleepQuality: "Fair - Sometimes restful",
		questionnaire.FieldSleepIssues:  "Trouble falling asleep",
	}))
	must(s.Set(questionnaire.DietInfo, answers.Selection{"vegetarian"}))
	must(s.Set(questionnaire.Lifestyle, answers.Fields{
		questionnaire.FieldWorkSchedule: "Regular 9-5",
		questionnaire.FieldCookingTime:  "30-60 minutes",
		questionnaire.FieldBudget:       "Moderate ($50-150)",
		questionnaire.FieldInjuries:     "knee pain",
	}))
	return s
}

// WithoutActivityLevel returns CompleteAnswers minus the activity level
func WithoutActivityLevel() *answers.Store {
	s := CompleteAnswers()
	s.Delete(questionnaire.ActivityLevel)
	return s
}

// PlanJSON is a model reply covering every section of the plan document
const PlanJSON = `{
  "overview": {
    "summary": "A gentle, progressive plan focused on steady fat loss at home.",
    "bmi": 26.4,
    "bmiCategory": "overweight",
    "dailyCalories": "1700",
    "proteinGoal": "90",
    "waterIntake": "2.5 liters",
    "keyFocus": ["Calorie deficit", "Daily movement", "Better sleep", "Knee-friendly training"]
  },
  "workout": {
    "weeklyPlan": [
      {
        "day": "Monday",
        "focus": "Full Body",
        "duration": "30 mins",
        "exercises": [
          {"name": "Glute Bridge", "sets": 3, "reps": "12", "notes": "Squeeze at the top"},
          {"name": "Wall Push-up", "sets": "3", "reps": "10"}
        ],
        "restDay": false
      },
      {"day": "Tuesday", "restDay": true}
    ],
    "warmup": "5 minutes of marching in place",
    "cooldown": "Gentle stretching",
    "progressionTips": ["Add one set every two weeks"]
  },
  "diet": {
    "guidelines": ["Fill half your plate with vegetables"],
    "mealPlan": {
      "breakfast": [{"name": "Overnight Oats", "description": "Oats with berries", "calories": "350", "time": "7:30 AM"}],
      "lunch": [{"name": "Lentil Salad", "description": "Lentils and greens", "calories": "450", "time": "12:30 PM"}],
      "dinner": [{"name": "Tofu Stir-fry", "description": "Tofu with vegetables", "calories": "500", "time": "7:00 PM"}],
      "snacks": [{"name": "Greek Yogurt", "description": "Plain yogurt", "calories": "150"}]
    },
    "hydration": "Drink a glass of water with every meal",
    "supplements": []
  },
  "sleep": {
    "targetHours": "7-8",
    "bedtime": "10:30 PM",
    "wakeTime": "6:30 AM",
    "routine": {
      "evening": ["Dim the lights at 9:30 PM"],
      "morning": ["Get sunlight within 30 minutes"]
    },
    "tips": ["Keep the bedroom cool"],
    "avoidBefore": ["Caffeine after 2 PM"]
  },
  "equipment": [
    {"name": "Foam Roller", "priority": "optional", "priceRange": "$15-30", "reason": "Recovery"},
    {"name": "Yoga Mat", "priority": "essential", "priceRange": "$20-40", "reason": "Floor work"},
    {"name": "Resistance Bands", "priority": "recommended", "priceRange": "$15-25", "reason": "Progression"},
    {"name": "Water Bottle", "priority": "essential", "priceRange": "$10-20", "reason": "Hydration"}
  ],
  "weeklySchedule": [
    {
      "day": "Monday",
      "schedule": [
        {"time": "6:30 AM", "activity": "Wake up + morning routine"},
        {"time": "7:00 AM", "activity": "Workout"}
      ]
    }
  ]
}`

// FencedPlanJSON is PlanJSON wrapped the way chat models usually reply
const FencedPlanJSON = "```json\n" + PlanJSON + "\n```"

// ToJSON converts a fixture to a JSON string
func ToJSON(fixture interface{}) string {
	data, _ := json.Marshal(fixture)
	return string(data)
}

// FromJSON parses a JSON string into a map
func FromJSON(jsonStr string) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal([]byte(jsonStr), &result)
	return result
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
