// Package editor holds the in-memory question list the author works on.
// All operations are synchronous transformations; persistence is the
// wizard's job, not the editor's.
package editor

import (
	"github.com/gofrs/uuid"

	"github.com/Roman3340/ai-surveys-sub000/model"
)

// List is an ordered collection of questions. The zero value is usable.
type List struct {
	questions []model.Question
	images    map[string]*ImageRef
}

func NewList(questions []model.Question) *List {
	l := &List{}
	for _, q := range questions {
		l.questions = append(l.questions, q.Clone())
	}
	return l
}

// Questions returns a copy of the current sequence in order.
func (l *List) Questions() []model.Question {
	out := make([]model.Question, len(l.questions))
	for i, q := range l.questions {
		out[i] = q.Clone()
	}
	return out
}

func (l *List) Len() int {
	return len(l.questions)
}

// Add appends a question with defaults and returns its id, so the
// caller can scroll the new card into view.
func (l *List) Add() string {
	id := newID()
	l.questions = append(l.questions, model.Question{
		ID:   id,
		Type: model.TypeText,
	})
	return id
}

// Patch is a field-level question update; nil fields are untouched.
type Patch struct {
	Title          *string
	Description    *string
	Required       *bool
	HasOtherOption *bool
	ScaleMin       *int
	ScaleMax       *int
	ScaleMinLabel  *string
	ScaleMaxLabel  *string
	RatingMax      *int
}

// Update merges patch into the question matching id. Unknown ids are a
// no-op.
func (l *List) Update(id string, patch Patch) {
	q := l.find(id)
	if q == nil {
		return
	}
	if patch.Title != nil {
		q.Title = *patch.Title
	}
	if patch.Description != nil {
		q.Description = *patch.Description
	}
	if patch.Required != nil {
		q.Required = *patch.Required
	}
	if patch.HasOtherOption != nil {
		q.HasOtherOption = *patch.HasOtherOption
	}
	if patch.ScaleMin != nil {
		q.ScaleMin = *patch.ScaleMin
	}
	if patch.ScaleMax != nil {
		q.ScaleMax = *patch.ScaleMax
	}
	if patch.ScaleMinLabel != nil {
		q.ScaleMinLabel = *patch.ScaleMinLabel
	}
	if patch.ScaleMaxLabel != nil {
		q.ScaleMaxLabel = *patch.ScaleMaxLabel
	}
	if patch.RatingMax != nil {
		q.RatingMax = *patch.RatingMax
	}
}

// Remove deletes by id, releasing any attached image. No-op if absent.
func (l *List) Remove(id string) {
	for i, q := range l.questions {
		if q.ID == id {
			l.releaseImage(id)
			l.questions = append(l.questions[:i], l.questions[i+1:]...)
			return
		}
	}
}

// Duplicate clones the question right after its source, under a fresh
// id and a marked title. The image reference is not shared: the copy
// starts without one.
func (l *List) Duplicate(id string) string {
	for i, q := range l.questions {
		if q.ID != id {
			continue
		}
		dup := q.Clone()
		dup.ID = newID()
		dup.Title = q.Title + " (copy)"
		dup.ImageURL = ""
		dup.ImageName = ""

		l.questions = append(l.questions, model.Question{})
		copy(l.questions[i+2:], l.questions[i+1:])
		l.questions[i+1] = dup
		return dup.ID
	}
	return ""
}

// Move takes the element at from and reinserts it at to. Out-of-bounds
// or equal indices are a no-op; order is never corrupted.
func (l *List) Move(from, to int) {
	n := len(l.questions)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	q := l.questions[from]
	l.questions = append(l.questions[:from], l.questions[from+1:]...)
	l.questions = append(l.questions, model.Question{})
	copy(l.questions[to+1:], l.questions[to:])
	l.questions[to] = q
}

func (l *List) find(id string) *model.Question {
	for i := range l.questions {
		if l.questions[i].ID == id {
			return &l.questions[i]
		}
	}
	return nil
}

func newID() string {
	return uuid.Must(uuid.NewV4()).String()
}
