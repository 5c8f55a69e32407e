package prompt

// promptText is the generation prompt; placeholders are filled from profile.
const promptText = `You are a professional health and fitness coach. Create a comprehensive, personalized weekly health plan for a person with the following profile:

**Personal Information:**
- Age: {{.Age}} years
- Gender: {{.Gender}}
- Height: {{.Height}} cm
- Current Weight: {{.Weight}} kg
- Primary Goal: {{.Goal}}
- Activity Level: {{.Activity}}

**Sleep Profile:**
- Average sleep: {{.SleepHours}} hours/night
- Sleep quality: {{.SleepQuality}}
- Sleep issues: {{.SleepIssues}}

**Dietary Preferences:**
{{.Diet}}

**Lifestyle:**
- Work schedule: {{.WorkSchedule}}
- Time for cooking: {{.CookingTime}}
- Budget: {{.Budget}}
- Health conditions/injuries: {{.Injuries}}

**Important Context:**
- All activities will be done AT HOME
- Equipment recommendations should be for home use
- Meals should be easy to prepare at home

Please provide a detailed response in the following JSON format:

{
  "overview": {
    "summary": "Brief personalized summary of the plan",
    "bmi": "calculated BMI",
    "bmiCategory": "underweight/normal/overweight/obese",
    "dailyCalories": "recommended daily calorie intake",
    "proteinGoal": "daily protein goal in grams",
    "waterIntake": "daily water intake in liters",
    "keyFocus": ["list of 3-4 key focus areas"]
  },
  "workout": {
    "weeklyPlan": [
      {
        "day": "Monday",
        "focus": "e.g., Upper Body",
        "duration": "e.g., 30-45 mins",
        "exercises": [
          {"name": "Exercise name", "sets": "3", "reps": "12", "notes": "Any form tips"}
        ],
        "restDay": false
      }
    ],
    "warmup": "General warmup routine",
    "cooldown": "General cooldown routine",
    "progressionTips": ["Tips for progressing over time"]
  },
  "diet": {
    "guidelines": ["Key dietary guidelines"],
    "mealPlan": {
      "breakfast": [{"name": "Meal name", "description": "Brief description", "calories": "approx calories", "time": "suggested time"}],
      "lunch": [{"name": "Meal name", "description": "Brief description", "calories": "approx calories", "time": "suggested time"}],
      "dinner": [{"name": "Meal name", "description": "Brief description", "calories": "approx calories", "time": "suggested time"}],
      "snacks": [{"name": "Snack name", "description": "Brief description", "calories": "approx calories"}]
    },
    "hydration": "Hydration tips",
    "supplements": ["Any recommended supplements with reasons"]
  },
  "sleep": {
    "targetHours": "recommended sleep hours",
    "bedtime": "suggested bedtime",
    "wakeTime": "suggested wake time",
    "routine": {
      "evening": ["Evening routine steps"],
      "morning": ["Morning routine steps"]
    },
    "tips": ["Sleep improvement tips"],
    "avoidBefore": ["Things to avoid before bed"]
  },
  "equipment": [
    {
      "name": "Equipment name",
      "priority": "essential/recommended/optional",
      "priceRange": "approximate price range",
      "reason": "Why this is recommended"
    }
  ],
  "weeklySchedule": [
    {
      "day": "Monday",
      "schedule": [
        {"time": "6:00 AM", "activity": "Wake up + morning routine"},
        {"time": "6:30 AM", "activity": "Workout"},
        {"time": "8:00 AM", "activity": "Breakfast"}
      ]
    }
  ]
}

Make sure all recommendations are:
1. Safe and appropriate for home exercise
2. Realistic given their time and budget constraints
3. Progressive (can be built upon over time)
4. Aligned with their specific goal
5. Account for any mentioned injuries/conditions

Respond ONLY with the JSON object, no additional text.`
