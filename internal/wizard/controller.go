package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bizmatters/healthpath/internal/answers"
	"github.com/bizmatters/healthpath/internal/questionnaire"
	"github.com/bizmatters/healthpath/internal/session"
)

// IncompleteMessage is shown when the current step cannot be left
const IncompleteMessage = "Please complete all fields before continuing."

var (
	ErrUnknownOption = errors.New("unknown option")
	ErrUnknownField  = errors.New("unknown field")
	ErrWrongKind     = errors.New("operation does not match question kind")
)

// ValidationError reports what is missing on the current step
type ValidationError struct {
	QuestionID string
	Missing    []string
}

func (e *ValidationError) Error() string {
	return IncompleteMessage
}

// Outcome is the result of Advance
type Outcome int

const (
	OutcomeBlocked Outcome = iota
	OutcomeAdvanced
	OutcomeComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeComplete:
		return "complete"
	default:
		return "blocked"
	}
}

// Saver persists the session after every mutation
type Saver interface {
	Save(ctx context.Context, s *session.Session)
}

// Controller walks a session through the catalog one question at a time
type Controller struct {
	catalog *questionnaire.Catalog
	session *session.Session
	saver   Saver
}

// NewController binds a catalog and a session. A restored step outside the
// catalog is clamped.
func NewController(catalog *questionnaire.Catalog, s *session.Session, saver Saver) *Controller {
	if s.Step < 0 {
		s.Step = 0
	}
	if s.Step >= catalog.Len() {
		s.Step = catalog.Len() - 1
	}
	return &Controller{catalog: catalog, session: s, saver: saver}
}

// Start moves to the first question, keeping any answers
func (c *Controller) Start() View {
	c.session.Step = 0
	return c.View()
}

// Step returns the current question index
func (c *Controller) Step() int {
	return c.session.Step
}

// IsLast reports whether the current question is the final one
func (c *Controller) IsLast() bool {
	return c.session.Step == c.catalog.Len()-1
}

func (c *Controller) current() questionnaire.QuestionDefinition {
	q, _ := c.catalog.At(c.session.Step)
	return q
}

// Validate reports whether the current question is sufficiently answered
func (c *Controller) Validate() bool {
	return len(c.missing(c.current())) == 0
}

// ValidateStep is Validate for an arbitrary question index
func (c *Controller) ValidateStep(i int) bool {
	q, ok := c.catalog.At(i)
	if !ok {
		return false
	}
	return len(c.missing(q)) == 0
}

func (c *Controller) missing(q questionnaire.QuestionDefinition) []string {
	store := c.session.Answers
	switch q.Kind {
	case questionnaire.KindSingleChoice:
		if _, ok := store.Choice(q.ID); !ok {
			return []string{q.ID}
		}
	case questionnaire.KindMultiChoice:
		if sel, ok := store.Selection(q.ID); !ok || len(sel) == 0 {
			return []string{q.ID}
		}
	case questionnaire.KindMultiInput:
		var out []string
		for _, f := range q.Fields {
			if f.Type == questionnaire.InputRange {
				continue
			}
			if v, _ := store.Field(q.ID, f.ID); strings.TrimSpace(v) == "" {
				out = append(out, f.ID)
			}
		}
		return out
	}
	return nil
}

// Advance leaves the current question. For multiInput questions every value
// in readBack for a known field is stored first, range fields without a value
// or with a blank one get their default, and the session is saved. The step
// only changes when the question validates; on the last question a valid
// Advance reports completion.
func (c *Controller) Advance(ctx context.Context, readBack map[string]string) (Outcome, error) {
	q := c.current()

	if q.Kind == questionnaire.KindMultiInput {
		for _, f := range q.Fields {
			v, provided := readBack[f.ID]
			if !provided {
				if _, stored := c.session.Answers.Field(q.ID, f.ID); stored || f.Type != questionnaire.InputRange {
					continue
				}
				v = rangeDefault(f)
			}
			v = strings.TrimSpace(v)
			if v == "" && f.Type == questionnaire.InputRange {
				v = rangeDefault(f)
			}
			if err := c.session.Answers.SetField(q.ID, f.ID, v); err != nil {
				return OutcomeBlocked, fmt.Errorf("failed to record %s.%s: %w", q.ID, f.ID, err)
			}
		}
	}
	c.saver.Save(ctx, c.session)

	if missing := c.missing(q); len(missing) > 0 {
		return OutcomeBlocked, &ValidationError{QuestionID: q.ID, Missing: missing}
	}
	if c.IsLast() {
		return OutcomeComplete, nil
	}
	c.session.Step++
	return OutcomeAdvanced, nil
}

// Retreat moves to the previous question. Answers are never discarded.
func (c *Controller) Retreat() bool {
	if c.session.Step == 0 {
		return false
	}
	c.session.Step--
	return true
}

// SelectOption records the answer of a singleChoice question
func (c *Controller) SelectOption(ctx context.Context, optionID string) (View, error) {
	q := c.current()
	if q.Kind != questionnaire.KindSingleChoice {
		return c.View(), fmt.Errorf("%w: %s is %s", ErrWrongKind, q.ID, q.Kind)
	}
	if _, ok := q.Option(optionID); !ok {
		return c.View(), fmt.Errorf("%w: %s has no option %q", ErrUnknownOption, q.ID, optionID)
	}
	if err := c.session.Answers.Set(q.ID, answers.Choice(optionID)); err != nil {
		return c.View(), err
	}
	c.saver.Save(ctx, c.session)
	return c.View(), nil
}

// ToggleOption adds or removes an option of a multiChoice question
func (c *Controller) ToggleOption(ctx context.Context, optionID string) (View, error) {
	q := c.current()
	if q.Kind != questionnaire.KindMultiChoice {
		return c.View(), fmt.Errorf("%w: %s is %s", ErrWrongKind, q.ID, q.Kind)
	}
	if _, ok := q.Option(optionID); !ok {
		return c.View(), fmt.Errorf("%w: %s has no option %q", ErrUnknownOption, q.ID, optionID)
	}
	if err := c.session.Answers.Toggle(q.ID, optionID); err != nil {
		return c.View(), err
	}
	c.saver.Save(ctx, c.session)
	return c.View(), nil
}

// SetField records one value of a multiInput question
func (c *Controller) SetField(ctx context.Context, fieldID, value string) (View, error) {
	q := c.current()
	if q.Kind != questionnaire.KindMultiInput {
		return c.View(), fmt.Errorf("%w: %s is %s", ErrWrongKind, q.ID, q.Kind)
	}
	if _, ok := q.Field(fieldID); !ok {
		return c.View(), fmt.Errorf("%w: %s has no field %q", ErrUnknownField, q.ID, fieldID)
	}
	if err := c.session.Answers.SetField(q.ID, fieldID, value); err != nil {
		return c.View(), err
	}
	c.saver.Save(ctx, c.session)
	return c.View(), nil
}

func rangeDefault(f questionnaire.FieldDefinition) string {
	if f.Default != "" {
		return f.Default
	}
	return formatNumber(f.Min)
}
