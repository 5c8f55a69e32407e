package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 6, c.Len())

	ids := make([]string, 0, c.Len())
	for _, q := range c.Questions() {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{BasicInfo, Goal, ActivityLevel, SleepInfo, DietInfo, Lifestyle}, ids)

	sleep, ok := c.Lookup(SleepInfo)
	require.True(t, ok)
	hours, ok := sleep.Field(FieldSleepHours)
	require.True(t, ok)
	assert.Equal(t, InputRange, hours.Type)
	assert.Equal(t, "7", hours.Default)
	assert.Equal(t, 0.5, hours.Step)

	diet, ok := c.Lookup(DietInfo)
	require.True(t, ok)
	assert.Equal(t, KindMultiChoice, diet.Kind)
	assert.Len(t, diet.Options, 7)

	assert.Equal(t, 2, c.IndexOf(ActivityLevel))
	assert.Equal(t, -1, c.IndexOf("missing"))
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	c := Default()

	q, ok := c.At(0)
	require.True(t, ok)
	q.Fields[0].Label = "changed"
	q.Fields[1].Options[0] = "changed"

	again, _ := c.At(0)
	assert.Equal(t, "Age", again.Fields[0].Label)
	assert.Equal(t, "Male", again.Fields[1].Options[0])

	_, ok = c.At(6)
	assert.False(t, ok)
	_, ok = c.At(-1)
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		questions []QuestionDefinition
		wantErr   string
	}{
		{
			name:    "empty catalog",
			wantErr: "no questions",
		},
		{
			name: "duplicate question ids",
			questions: []QuestionDefinition{
				{ID: "a", Kind: KindSingleChoice, Options: []OptionDefinition{{ID: "x"}}},
				{ID: "a", Kind: KindSingleChoice, Options: []OptionDefinition{{ID: "y"}}},
			},
			wantErr: `duplicate question id "a"`,
		},
		{
			name: "duplicate field ids",
			questions: []QuestionDefinition{
				{ID: "a", Kind: KindMultiInput, Fields: []FieldDefinition{
					{ID: "f", Type: InputText},
					{ID: "f", Type: InputNumber},
				}},
			},
			wantErr: `duplicate field id "f"`,
		},
		{
			name: "unknown field type",
			questions: []QuestionDefinition{
				{ID: "a", Kind: KindMultiInput, Fields: []FieldDefinition{{ID: "f", Type: "slider"}}},
			},
			wantErr: "unknown type",
		},
		{
			name: "choice without options",
			questions: []QuestionDefinition{
				{ID: "a", Kind: KindMultiChoice},
			},
			wantErr: "has no options",
		},
		{
			name: "unknown kind",
			questions: []QuestionDefinition{
				{ID: "a", Kind: "ranking", Options: []OptionDefinition{{ID: "x"}}},
			},
			wantErr: "unknown kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.questions)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
