package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrPlanParse matches every ParseError
var ErrPlanParse = errors.New("failed to parse the health plan")

// ParseError reports model output that is not a JSON object
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return ErrPlanParse.Error()
	}
	return fmt.Sprintf("%s: %v", ErrPlanParse, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrPlanParse }

const fence = "```"

// Parse strips an optional markdown code fence from the model reply and
// decodes the remaining JSON object.
func Parse(raw string) (*Document, error) {
	body := StripFence(raw)
	if body == "" {
		return nil, &ParseError{Err: errors.New("empty response")}
	}
	if body[0] != '{' {
		return nil, &ParseError{Err: errors.New("response is not a JSON object")}
	}

	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &doc, nil
}

// StripFence removes a leading ``` (with an optional language tag such as
// json) and a trailing ```, trimming whitespace around the result.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, fence) {
		s = s[len(fence):]
		s = s[languageTagLen(s):]
	}
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

func languageTagLen(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
			n++
			continue
		}
		break
	}
	return n
}
