package model

import "strings"

// Answers maps question id to the respondent's value. The value shape
// depends on the question type: string for text/textarea/date/number and
// single_choice, []string for multiple_choice, int for scale/rating,
// "yes"/"no" for yes_no. A shadow key "<id>_other" holds the free text
// entered for the "Other" option.
type Answers map[string]any

// OtherKey returns the shadow key paired with a question id.
func OtherKey(questionID string) string {
	return questionID + "_other"
}

// Set stores a value; Unset removes both the value and its shadow key.
func (a Answers) Set(questionID string, value any) {
	a[questionID] = value
}

func (a Answers) Unset(questionID string) {
	delete(a, questionID)
	delete(a, OtherKey(questionID))
}

// String returns the value as a string, or "" if absent or not a string.
func (a Answers) String(questionID string) string {
	s, _ := a[questionID].(string)
	return s
}

// Strings returns the value as a string slice. A JSON round-trip turns
// []string into []any, so both shapes are accepted.
func (a Answers) Strings(questionID string) []string {
	switch v := a[questionID].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Int returns the value as an int. JSON decoding yields float64.
func (a Answers) Int(questionID string) (int, bool) {
	switch v := a[questionID].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// IsBlank reports the uniform "empty" rule: absent value, empty or
// whitespace-only string, or empty array.
func (a Answers) IsBlank(questionID string) bool {
	v, ok := a[questionID]
	if !ok || v == nil {
		return true
	}
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}
