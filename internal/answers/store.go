package answers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/bizmatters/healthpath/internal/questionnaire"
)

var (
	// ErrKindMismatch is returned when an answer would change the kind stored for a question
	ErrKindMismatch = errors.New("answer kind does not match stored answer")
	// ErrNilAnswer is returned when Set is called without a value
	ErrNilAnswer = errors.New("nil answer")
)

// Store maps question ids to answers. The zero value is not usable; call NewStore.
type Store struct {
	values map[string]Answer
}

// NewStore creates an empty answer store
func NewStore() *Store {
	return &Store{values: make(map[string]Answer)}
}

// Len returns the number of answered questions
func (s *Store) Len() int {
	return len(s.values)
}

// IDs returns the answered question ids in lexical order
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns a copy of the answer stored for a question
func (s *Store) Get(questionID string) (Answer, bool) {
	a, ok := s.values[questionID]
	if !ok {
		return nil, false
	}
	return a.clone(), true
}

// Fields returns the multiInput values for a question, or nil
func (s *Store) Fields(questionID string) Fields {
	if f, ok := s.values[questionID].(Fields); ok {
		return f.clone().(Fields)
	}
	return nil
}

// Field returns one multiInput value
func (s *Store) Field(questionID, fieldID string) (string, bool) {
	f, ok := s.values[questionID].(Fields)
	if !ok {
		return "", false
	}
	v, ok := f[fieldID]
	return v, ok
}

// Choice returns the selected option of a singleChoice question
func (s *Store) Choice(questionID string) (string, bool) {
	c, ok := s.values[questionID].(Choice)
	return string(c), ok
}

// Selection returns the selected options of a multiChoice question
func (s *Store) Selection(questionID string) (Selection, bool) {
	sel, ok := s.values[questionID].(Selection)
	if !ok {
		return nil, false
	}
	return sel.clone().(Selection), true
}

// Set stores an answer. A question keeps the kind of its first answer.
func (s *Store) Set(questionID string, a Answer) error {
	if a == nil {
		return ErrNilAnswer
	}
	if prev, ok := s.values[questionID]; ok && prev.Kind() != a.Kind() {
		return fmt.Errorf("%w: question %q holds %s, got %s", ErrKindMismatch, questionID, prev.Kind(), a.Kind())
	}
	s.values[questionID] = a.clone()
	return nil
}

// SetField records a single multiInput value, creating the group if needed
func (s *Store) SetField(questionID, fieldID, value string) error {
	prev, ok := s.values[questionID]
	if !ok {
		s.values[questionID] = Fields{fieldID: value}
		return nil
	}
	f, isFields := prev.(Fields)
	if !isFields {
		return fmt.Errorf("%w: question %q holds %s, got %s", ErrKindMismatch, questionID, prev.Kind(), questionnaire.KindMultiInput)
	}
	f[fieldID] = value
	return nil
}

// Toggle adds optionID to a multiChoice selection, or removes it when already selected
func (s *Store) Toggle(questionID, optionID string) error {
	prev, ok := s.values[questionID]
	if !ok {
		s.values[questionID] = Selection{optionID}
		return nil
	}
	sel, isSelection := prev.(Selection)
	if !isSelection {
		return fmt.Errorf("%w: question %q holds %s, got %s", ErrKindMismatch, questionID, prev.Kind(), questionnaire.KindMultiChoice)
	}

	out := make(Selection, 0, len(sel)+1)
	removed := false
	for _, id := range sel {
		if id == optionID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		out = append(out, optionID)
	}
	s.values[questionID] = out
	return nil
}

// Delete removes the answer for a question
func (s *Store) Delete(questionID string) {
	delete(s.values, questionID)
}

// Clone returns a deep copy of the store
func (s *Store) Clone() *Store {
	out := NewStore()
	for id, a := range s.values {
		out.values[id] = a.clone()
	}
	return out
}

// Snapshot returns a deep copy of every answer keyed by question id
func (s *Store) Snapshot() map[string]Answer {
	out := make(map[string]Answer, len(s.values))
	for id, a := range s.values {
		out[id] = a.clone()
	}
	return out
}

// MarshalJSON encodes fields as an object, a choice as a string and a selection as an array
func (s *Store) MarshalJSON() ([]byte, error) {
	raw := make(map[string]interface{}, len(s.values))
	for id, a := range s.values {
		switch v := a.(type) {
		case Fields:
			raw[id] = map[string]string(v)
		case Choice:
			raw[id] = string(v)
		case Selection:
			if v == nil {
				v = Selection{}
			}
			raw[id] = []string(v)
		}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON infers each answer's kind from its JSON shape. Numbers and
// booleans inside field groups keep their literal text; null values are dropped.
func (s *Store) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode answers: %w", err)
	}

	values := make(map[string]Answer, len(raw))
	for id, msg := range raw {
		a, err := decodeAnswer(msg)
		if err != nil {
			return fmt.Errorf("failed to decode answer %q: %w", id, err)
		}
		if a != nil {
			values[id] = a
		}
	}
	s.values = values
	return nil
}

func decodeAnswer(msg json.RawMessage) (Answer, error) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var group map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &group); err != nil {
			return nil, err
		}
		f := make(Fields, len(group))
		for field, v := range group {
			text, ok := scalarText(v)
			if !ok {
				continue
			}
			f[field] = text
		}
		return f, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(items))
		for _, item := range items {
			if text, ok := scalarText(item); ok {
				ids = append(ids, text)
			}
		}
		return dedupe(ids), nil
	default:
		text, ok := scalarText(trimmed)
		if !ok {
			return nil, nil
		}
		return Choice(text), nil
	}
}

// scalarText returns a string's value or any other JSON value's literal text
func scalarText(msg json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	}
	return string(trimmed), true
}
