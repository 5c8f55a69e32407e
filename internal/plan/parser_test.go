package plan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizmatters/healthpath/internal/fixtures"
)

func TestParse_Document(t *testing.T) {
	doc, err := Parse(fixtures.PlanJSON)
	require.NoError(t, err)

	assert.Equal(t, Text("26.4"), doc.Overview.BMI, "numbers keep their literal text")
	assert.Equal(t, Text("90"), doc.Overview.ProteinGoal)
	assert.Len(t, doc.Overview.KeyFocus, 4)

	require.Len(t, doc.Workout.WeeklyPlan, 2)
	monday := doc.Workout.WeeklyPlan[0]
	assert.False(t, bool(monday.RestDay))
	assert.Equal(t, Text("3"), monday.Exercises[0].Sets)
	assert.Equal(t, Text(""), monday.Exercises[1].Notes)
	assert.True(t, bool(doc.Workout.WeeklyPlan[1].RestDay))

	assert.Equal(t, Text(""), doc.Diet.MealPlan.Snacks[0].Time)
	assert.Empty(t, doc.Diet.Supplements)
	assert.Len(t, doc.Equipment, 4)
	assert.Equal(t, Text("6:30 AM"), doc.WeeklySchedule[0].Schedule[0].Time)
}

func TestParse_FenceStripping(t *testing.T) {
	plain, err := Parse(fixtures.PlanJSON)
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "json fence", raw: "```json\n" + fixtures.PlanJSON + "\n```"},
		{name: "bare fence", raw: "```\n" + fixtures.PlanJSON + "\n```"},
		{name: "upper case tag", raw: "```JSON\n" + fixtures.PlanJSON + "```"},
		{name: "surrounding whitespace", raw: "\n\n  ```json\n" + fixtures.PlanJSON + "\n```  \n"},
		{name: "leading fence only", raw: "```json " + fixtures.PlanJSON},
		{name: "trailing fence only", raw: fixtures.PlanJSON + "```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.raw)
			require.NoError(t, err)
			if diff := cmp.Diff(plain, doc); diff != "" {
				t.Errorf("fenced parse differs (-plain +fenced):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "prose", raw: "not json"},
		{name: "empty", raw: ""},
		{name: "fence only", raw: "```json\n```"},
		{name: "array", raw: `[{"overview":{}}]`},
		{name: "null", raw: "null"},
		{name: "truncated", raw: `{"overview": {"summary": "cut off`},
		{name: "wrong shape", raw: `{"equipment": "yoga mat"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.raw)
			assert.Nil(t, doc)
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.ErrorIs(t, err, ErrPlanParse)
			assert.Contains(t, err.Error(), "failed to parse the health plan")
		})
	}
}

func TestParse_LenientScalars(t *testing.T) {
	raw := `{
		"overview": {"keyFocus": "Sleep", "bmi": null},
		"workout": {"weeklyPlan": [{"day": "Sunday", "restDay": "true"}, {"day": "Monday", "restDay": 0}]},
		"diet": {"supplements": null}
	}`

	doc, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, TextList{"Sleep"}, doc.Overview.KeyFocus)
	assert.Equal(t, Text(""), doc.Overview.BMI)
	assert.True(t, bool(doc.Workout.WeeklyPlan[0].RestDay))
	assert.False(t, bool(doc.Workout.WeeklyPlan[1].RestDay))
	assert.Nil(t, doc.Diet.Supplements)
	assert.Empty(t, doc.Equipment, "missing sections decode to zero values")
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFence("  {\"a\":1}  "))
	assert.Equal(t, "", StripFence("```"))
}

func TestDocument_Validate(t *testing.T) {
	doc, err := Parse(fixtures.PlanJSON)
	require.NoError(t, err)
	assert.NoError(t, doc.Validate())

	doc.Equipment[0].Priority = "must-have"
	doc.WeeklySchedule = nil

	err = doc.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompletePlan)
	assert.Contains(t, err.Error(), `unknown priority "must-have"`)
	assert.Contains(t, err.Error(), "weeklySchedule is empty")

	empty := &Document{}
	assert.ErrorIs(t, empty.Validate(), ErrIncompletePlan)
}
