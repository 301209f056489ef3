package editor

import "github.com/Roman3340/ai-surveys-sub000/model"

// Option helpers scoped to one question's option list. None of them
// enforce the minimum-one-option rule: that is checked at publish time,
// so the editor stays composable.

func (l *List) AddOption(id string) {
	q := l.find(id)
	if q == nil {
		return
	}
	q.Options = append(q.Options, "")
}

func (l *List) RemoveOption(id string, index int) {
	q := l.find(id)
	if q == nil || index < 0 || index >= len(q.Options) {
		return
	}
	q.Options = append(q.Options[:index], q.Options[index+1:]...)
}

func (l *List) UpdateOption(id string, index int, value string) {
	q := l.find(id)
	if q == nil || index < 0 || index >= len(q.Options) {
		return
	}
	q.Options[index] = value
}

// typeDefaults is the full table of side effects applied when a
// question's type changes:
//
//	single/multiple choice, no options yet -> seed two empty slots
//	away from a choice type               -> options kept, become inert
//	scale, unset bounds                   -> 1..10
//	rating, unset max                     -> DefaultRatingMax
func typeDefaults(q *model.Question) {
	switch {
	case q.Type.IsChoice() && len(q.Options) == 0:
		q.Options = []string{"", ""}
	case q.Type == model.TypeScale && q.ScaleMin == 0 && q.ScaleMax == 0:
		q.ScaleMin = 1
		q.ScaleMax = 10
	case q.Type == model.TypeRating && q.RatingMax == 0:
		q.RatingMax = model.DefaultRatingMax
	}
}

// SetType changes a question's type and applies the defaults table.
// Existing per-type fields are deliberately not wiped, so switching
// back and forth never loses authored option text.
func (l *List) SetType(id string, t model.QuestionType) {
	q := l.find(id)
	if q == nil || q.Type == t {
		return
	}
	q.Type = t
	typeDefaults(q)
}
