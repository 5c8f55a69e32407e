package questionnaire

import (
	"errors"
	"fmt"
)

// Kind identifies how a question collects its answer
type Kind string

const (
	KindMultiInput   Kind = "multiInput"
	KindSingleChoice Kind = "singleChoice"
	KindMultiChoice  Kind = "multiChoice"
)

// InputType identifies the widget used for a multiInput field
type InputType string

const (
	InputNumber InputType = "number"
	InputSelect InputType = "select"
	InputRange  InputType = "range"
	InputText   InputType = "text"
)

// FieldDefinition describes one input of a multiInput question
type FieldDefinition struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        InputType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Min         float64   `json:"min,omitempty"`
	Max         float64   `json:"max,omitempty"`
	Step        float64   `json:"step,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Default     string    `json:"default,omitempty"`
}

// OptionDefinition describes one choice of a single or multi choice question
type OptionDefinition struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// QuestionDefinition is a single step of the questionnaire
type QuestionDefinition struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Subtitle string             `json:"subtitle"`
	Kind     Kind               `json:"type"`
	Fields   []FieldDefinition  `json:"fields,omitempty"`
	Options  []OptionDefinition `json:"options,omitempty"`
}

// Field returns the field with the given id
func (q QuestionDefinition) Field(id string) (FieldDefinition, bool) {
	for _, f := range q.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Option returns the option with the given id
func (q QuestionDefinition) Option(id string) (OptionDefinition, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return OptionDefinition{}, false
}

func (q QuestionDefinition) clone() QuestionDefinition {
	out := q
	if q.Fields != nil {
		out.Fields = make([]FieldDefinition, len(q.Fields))
		for i, f := range q.Fields {
			f.Options = append([]string(nil), f.Options...)
			out.Fields[i] = f
		}
	}
	if q.Options != nil {
		out.Options = append([]OptionDefinition(nil), q.Options...)
	}
	return out
}

var ErrInvalidCatalog = errors.New("invalid question catalog")

// Catalog is the ordered, immutable list of questions shown by the wizard
type Catalog struct {
	questions []QuestionDefinition
	index     map[string]int
}

// New validates the definitions and builds a catalog from a private copy of them
func New(questions []QuestionDefinition) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidCatalog)
	}

	c := &Catalog{
		questions: make([]QuestionDefinition, 0, len(questions)),
		index:     make(map[string]int, len(questions)),
	}
	for i, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, err
		}
		if _, dup := c.index[q.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate question id %q", ErrInvalidCatalog, q.ID)
		}
		c.index[q.ID] = i
		c.questions = append(c.questions, q.clone())
	}
	return c, nil
}

// MustNew is New for static definitions; it panics on an invalid catalog
func MustNew(questions []QuestionDefinition) *Catalog {
	c, err := New(questions)
	if err != nil {
		panic(err)
	}
	return c
}

func validateQuestion(q QuestionDefinition) error {
	if q.ID == "" {
		return fmt.Errorf("%w: question without id", ErrInvalidCatalog)
	}

	switch q.Kind {
	case KindMultiInput:
		if len(q.Fields) == 0 {
			return fmt.Errorf("%w: question %q has no fields", ErrInvalidCatalog, q.ID)
		}
		seen := make(map[string]bool, len(q.Fields))
		for _, f := range q.Fields {
			if f.ID == "" {
				return fmt.Errorf("%w: question %q has a field without id", ErrInvalidCatalog, q.ID)
			}
			if seen[f.ID] {
				return fmt.Errorf("%w: question %q has duplicate field id %q", ErrInvalidCatalog, q.ID, f.ID)
			}
			seen[f.ID] = true
			switch f.Type {
			case InputNumber, InputSelect, InputRange, InputText:
			default:
				return fmt.Errorf("%w: field %s.%s has unknown type %q", ErrInvalidCatalog, q.ID, f.ID, f.Type)
			}
		}
	case KindSingleChoice, KindMultiChoice:
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %q has no options", ErrInvalidCatalog, q.ID)
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if o.ID == "" || seen[o.ID] {
				return fmt.Errorf("%w: question %q has a missing or duplicate option id %q", ErrInvalidCatalog, q.ID, o.ID)
			}
			seen[o.ID] = true
		}
	default:
		return fmt.Errorf("%w: question %q has unknown kind %q", ErrInvalidCatalog, q.ID, q.Kind)
	}
	return nil
}

// Len returns the number of questions
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at position i
func (c *Catalog) At(i int) (QuestionDefinition, bool) {
	if i < 0 || i >= len(c.questions) {
		return QuestionDefinition{}, false
	}
	return c.questions[i].clone(), true
}

// Lookup returns the question with the given id
func (c *Catalog) Lookup(id string) (QuestionDefinition, bool) {
	i, ok := c.index[id]
	if !ok {
		return QuestionDefinition{}, false
	}
	return c.questions[i].clone(), true
}

// IndexOf returns the position of a question id, or -1
func (c *Catalog) IndexOf(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Questions returns a copy of every question in order
func (c *Catalog) Questions() []QuestionDefinition {
	out := make([]QuestionDefinition, len(c.questions))
	for i, q := range c.questions {
		out[i] = q.clone()
	}
	return out
}
