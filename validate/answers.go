// Package validate decides whether answers and authored questions are
// acceptable. Each question validates independently; the aggregate is
// the AND of the per-question results.
package validate

import (
	"fmt"

	"github.com/Roman3340/ai-surveys-sub000/model"
)

// Answer checks one question against the answer map and returns a
// human-readable reason, or "" when it passes.
//
// The empty rule is uniform across types: absent, blank string, or
// empty array. The "Other" coupling fires regardless of Required — an
// optional question with "Other" selected still demands the free text.
func Answer(q model.Question, answers model.Answers) string {
	blank := answers.IsBlank(q.ID)

	if blank {
		if q.Required {
			return "This question requires an answer"
		}
		return ""
	}

	switch q.Type {
	case model.TypeSingleChoice:
		if q.HasOtherOption && answers.String(q.ID) == model.OtherOption {
			if reason := otherText(q, answers); reason != "" {
				return reason
			}
		}

	case model.TypeMultipleChoice:
		if q.HasOtherOption && contains(answers.Strings(q.ID), model.OtherOption) {
			if reason := otherText(q, answers); reason != "" {
				return reason
			}
		}

	case model.TypeScale:
		v, ok := answers.Int(q.ID)
		if !ok {
			return "Choose a value on the scale"
		}
		if v < q.ScaleMin || v > q.ScaleMax {
			return fmt.Sprintf("Choose a value between %d and %d", q.ScaleMin, q.ScaleMax)
		}

	case model.TypeRating:
		max := q.RatingMax
		if max == 0 {
			max = model.DefaultRatingMax
		}
		v, ok := answers.Int(q.ID)
		if !ok || v < 1 || v > max {
			return fmt.Sprintf("Choose a rating between 1 and %d", max)
		}

	case model.TypeYesNo:
		if v := answers.String(q.ID); v != "yes" && v != "no" {
			return "Choose yes or no"
		}
	}

	// text, textarea, date and number only require non-emptiness here;
	// numeric bounds, if any, live with the caller's input control
	return ""
}

func otherText(q model.Question, answers model.Answers) string {
	if answers.IsBlank(model.OtherKey(q.ID)) {
		return `Fill in the text for "Other"`
	}
	return ""
}

// All validates every question. The result maps question id to reason;
// an id missing from the map passed. An empty map means submittable.
func All(questions []model.Question, answers model.Answers) map[string]string {
	errs := map[string]string{}
	for _, q := range questions {
		if reason := Answer(q, answers); reason != "" {
			errs[q.ID] = reason
		}
	}
	return errs
}

// FirstFailing returns the id of the first question (in sequence order)
// present in errs, for the scroll-to-error behaviour. "" if none.
func FirstFailing(questions []model.Question, errs map[string]string) string {
	for _, q := range questions {
		if _, ok := errs[q.ID]; ok {
			return q.ID
		}
	}
	return ""
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
