package wizard

import (
	"fmt"
	"strconv"

	"github.com/bizmatters/healthpath/internal/questionnaire"
)

// View is the render model of the current question, pre-populated from the answers
type View struct {
	QuestionID    string
	Title         string
	Subtitle      string
	Kind          questionnaire.Kind
	Step          int
	Total         int
	Progress      float64
	ProgressLabel string
	CanRetreat    bool
	NextLabel     string
	Fields        []FieldView
	Options       []OptionView
}

type FieldView struct {
	questionnaire.FieldDefinition
	Value string
	// Display is the value with its unit, set for range fields
	Display string
}

type OptionView struct {
	questionnaire.OptionDefinition
	Selected bool
}

// View builds the render model for the current question
func (c *Controller) View() View {
	q := c.current()
	step := c.session.Step
	total := c.catalog.Len()

	v := View{
		QuestionID:    q.ID,
		Title:         q.Title,
		Subtitle:      q.Subtitle,
		Kind:          q.Kind,
		Step:          step,
		Total:         total,
		Progress:      float64(step+1) / float64(total) * 100,
		ProgressLabel: fmt.Sprintf("Step %d of %d", step+1, total),
		CanRetreat:    step > 0,
		NextLabel:     "Next",
	}
	if c.IsLast() {
		v.NextLabel = "Continue"
	}

	store := c.session.Answers
	switch q.Kind {
	case questionnaire.KindMultiInput:
		for _, f := range q.Fields {
			fv := FieldView{FieldDefinition: f}
			fv.Value, _ = store.Field(q.ID, f.ID)
			if f.Type == questionnaire.InputRange {
				if fv.Value == "" {
					fv.Value = rangeDefault(f)
				}
				fv.Display = fv.Value + " " + f.Unit
			}
			v.Fields = append(v.Fields, fv)
		}
	case questionnaire.KindSingleChoice:
		selected, _ := store.Choice(q.ID)
		for _, o := range q.Options {
			v.Options = append(v.Options, OptionView{OptionDefinition: o, Selected: o.ID == selected})
		}
	case questionnaire.KindMultiChoice:
		sel, _ := store.Selection(q.ID)
		for _, o := range q.Options {
			v.Options = append(v.Options, OptionView{OptionDefinition: o, Selected: sel.Contains(o.ID)})
		}
	}
	return v
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
