package answers

import (
	"github.com/bizmatters/healthpath/internal/questionnaire"
)

// Answer is the value recorded for one question. It is one of Fields,
// Choice or Selection, matching the question kind.
type Answer interface {
	Kind() questionnaire.Kind
	clone() Answer
}

// Fields holds the values of a multiInput question keyed by field id
type Fields map[string]string

// Choice holds the selected option id of a singleChoice question
type Choice string

// Selection holds the selected option ids of a multiChoice question in selection order
type Selection []string

func (Fields) Kind() questionnaire.Kind    { return questionnaire.KindMultiInput }
func (Choice) Kind() questionnaire.Kind    { return questionnaire.KindSingleChoice }
func (Selection) Kind() questionnaire.Kind { return questionnaire.KindMultiChoice }

func (f Fields) clone() Answer {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func (c Choice) clone() Answer { return c }

func (s Selection) clone() Answer {
	return dedupe(s)
}

// Contains reports whether id is selected
func (s Selection) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func dedupe(ids []string) Selection {
	out := make(Selection, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
