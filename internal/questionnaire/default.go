package questionnaire

// Question ids of the default catalog
const (
	BasicInfo     = "basicInfo"
	Goal          = "goal"
	ActivityLevel = "activityLevel"
	SleepInfo     = "sleepInfo"
	DietInfo      = "dietInfo"
	Lifestyle     = "lifestyle"
)

// Field ids of the default catalog
const (
	FieldAge          = "age"
	FieldGender       = "gender"
	FieldHeight       = "height"
	FieldWeight       = "weight"
	FieldSleepHours   = "sleepHours"
	FieldSleepQuality = "sleepQuality"
	FieldSleepIssues  = "sleepIssues"
	FieldWorkSchedule = "workSchedule"
	FieldCookingTime  = "cookingTime"
	FieldBudget       = "budget"
	FieldInjuries     = "injuries"
)

// Default returns the six-step HealthPath questionnaire
func Default() *Catalog {
	return MustNew(defaultQuestions())
}

func defaultQuestions() []QuestionDefinition {
	return []QuestionDefinition{
		{
			ID:       BasicInfo,
			Title:    "Tell us about yourself",
			Subtitle: "This helps us personalize your plan",
			Kind:     KindMultiInput,
			Fields: []FieldDefinition{
				{ID: FieldAge, Label: "Age", Type: InputNumber, Placeholder: "Enter your age", Unit: "years", Min: 13, Max: 100},
				{ID: FieldGender, Label: "Gender", Type: InputSelect, Options: []string{"Male", "Female", "Other", "Prefer not to say"}},
				{ID: FieldHeight, Label: "Height", Type: InputNumber, Placeholder: "Enter height", Unit: "cm", Min: 100, Max: 250},
				{ID: FieldWeight, Label: "Current Weight", Type: InputNumber, Placeholder: "Enter weight", Unit: "kg", Min: 30, Max: 300},
			},
		},
		{
			ID:       Goal,
			Title:    "What's your primary health goal?",
			Subtitle: "Select the goal that matters most to you right now",
			Kind:     KindSingleChoice,
			Options: []OptionDefinition{
				{ID: "loseWeight", Label: "Lose Weight", Description: "Burn fat and achieve a leaner body", Icon: "trending-down"},
				{ID: "gainWeight", Label: "Gain Weight", Description: "Build muscle mass and bulk up", Icon: "trending-up"},
				{ID: "buildMuscle", Label: "Build Muscle", Description: "Increase strength and muscle definition", Icon: "dumbbell"},
				{ID: "improveSleep", Label: "Improve Sleep", Description: "Get better quality rest", Icon: "moon"},
				{ID: "increaseEnergy", Label: "Increase Energy", Description: "Feel more energized throughout the day", Icon: "zap"},
				{ID: "overallHealth", Label: "Overall Health", Description: "Maintain and improve general wellness", Icon: "heart"},
			},
		},
		{
			ID:       ActivityLevel,
			Title:    "What's your current activity level?",
			Subtitle: "Be honest - this helps us create a realistic plan",
			Kind:     KindSingleChoice,
			Options: []OptionDefinition{
				{ID: "sedentary", Label: "Sedentary", Description: "Little to no exercise, desk job", Icon: "armchair"},
				{ID: "lightlyActive", Label: "Lightly Active", Description: "Light exercise 1-3 days/week", Icon: "footprints"},
				{ID: "moderatelyActive", Label: "Moderately Active", Description: "Moderate exercise 3-5 days/week", Icon: "bike"},
				{ID: "veryActive", Label: "Very Active", Description: "Hard exercise 6-7 days/week", Icon: "flame"},
				{ID: "athlete", Label: "Athlete", Description: "Intense training, physical job", Icon: "trophy"},
			},
		},
		{
			ID:       SleepInfo,
			Title:    "Tell us about your sleep",
			Subtitle: "Sleep is crucial for health and recovery",
			Kind:     KindMultiInput,
			Fields: []FieldDefinition{
				{ID: FieldSleepHours, Label: "Average sleep per night", Type: InputRange, Unit: "hours", Min: 3, Max: 12, Step: 0.5, Default: "7"},
				{ID: FieldSleepQuality, Label: "Sleep quality", Type: InputSelect, Options: []string{
					"Poor - Wake up tired",
					"Fair - Sometimes restful",
					"Good - Usually restful",
					"Excellent - Always refreshed",
				}},
				{ID: FieldSleepIssues, Label: "Sleep challenges (if any)", Type: InputSelect, Options: []string{
					"None",
					"Trouble falling asleep",
					"Waking up at night",
					"Waking up too early",
					"Snoring/Sleep apnea",
				}},
			},
		},
		{
			ID:       DietInfo,
			Title:    "What are your dietary preferences?",
			Subtitle: "We'll tailor meal recommendations to your lifestyle",
			Kind:     KindMultiChoice,
			Options: []OptionDefinition{
				{ID: "noRestrictions", Label: "No Restrictions", Description: "I eat everything", Icon: "utensils"},
				{ID: "vegetarian", Label: "Vegetarian", Description: "No meat or fish", Icon: "leaf"},
				{ID: "vegan", Label: "Vegan", Description: "No animal products", Icon: "carrot"},
				{ID: "glutenFree", Label: "Gluten-Free", Description: "Avoid gluten", Icon: "wheat-off"},
				{ID: "dairyFree", Label: "Dairy-Free", Description: "No dairy products", Icon: "milk-off"},
				{ID: "lowCarb", Label: "Low Carb", Description: "Limit carbohydrates", Icon: "cookie"},
				{ID: "highProtein", Label: "High Protein", Description: "Focus on protein intake", Icon: "beef"},
			},
		},
		{
			ID:       Lifestyle,
			Title:    "A few more details about your lifestyle",
			Subtitle: "This helps us make practical recommendations",
			Kind:     KindMultiInput,
			Fields: []FieldDefinition{
				{ID: FieldWorkSchedule, Label: "Work schedule", Type: InputSelect, Options: []string{
					"Regular 9-5",
					"Shift work",
					"Remote/Flexible",
					"Freelance/Variable",
					"Not working",
				}},
				{ID: FieldCookingTime, Label: "Time available for cooking per day", Type: InputSelect, Options: []string{
					"Less than 30 minutes",
					"30-60 minutes",
					"1-2 hours",
					"More than 2 hours",
				}},
				{ID: FieldBudget, Label: "Monthly budget for health/fitness", Type: InputSelect, Options: []string{
					"Minimal ($0-50)",
					"Moderate ($50-150)",
					"Comfortable ($150-300)",
					"Flexible ($300+)",
				}},
				{ID: FieldInjuries, Label: "Any injuries or health conditions?", Type: InputText, Placeholder: `e.g., knee pain, back issues, or "None"`},
			},
		},
	}
}
