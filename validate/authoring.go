package validate

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Roman3340/ai-surveys-sub000/model"
)

var settingsValidator = validator.New()

// Questions runs the author-side checks that gate preview and publish:
// every question needs a title, choice questions need at least one
// non-empty option, scale bounds must be ordered.
func Questions(questions []model.Question) map[string]string {
	errs := map[string]string{}
	for _, q := range questions {
		if reason := question(q); reason != "" {
			errs[q.ID] = reason
		}
	}
	return errs
}

func question(q model.Question) string {
	if strings.TrimSpace(q.Title) == "" {
		return "Give the question a title"
	}

	if q.Type.IsChoice() {
		filled := 0
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) != "" {
				filled++
			}
		}
		if filled == 0 {
			return "Add at least one answer option"
		}
	}

	if q.Type == model.TypeScale && q.ScaleMin >= q.ScaleMax {
		return "The scale minimum must be below the maximum"
	}

	return ""
}

// Draft checks the whole draft is publishable: committed settings with
// a survey title, at least one question, and no per-question problems.
func Draft(draft *model.Draft) (map[string]string, error) {
	if draft == nil || draft.Settings == nil {
		return nil, errors.New("survey settings are not filled in yet")
	}
	if err := settingsValidator.Struct(draft.Settings); err != nil {
		return nil, errors.Wrap(err, "survey settings are incomplete")
	}
	if len(draft.Questions) == 0 {
		return nil, errors.New("the survey has no questions")
	}

	if errs := Questions(draft.Questions); len(errs) > 0 {
		return errs, errors.New("some questions are incomplete")
	}
	return nil, nil
}
