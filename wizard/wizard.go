// Package wizard sequences the survey creation flow and decides where
// to land when a previous session left a draft behind.
package wizard

import (
	"github.com/Roman3340/ai-surveys-sub000/log"
	"github.com/Roman3340/ai-surveys-sub000/model"
	"github.com/Roman3340/ai-surveys-sub000/storage"
)

// Step identifies one screen of the creation flow.
type Step string

const (
	StepModeSelect Step = "mode_select"
	StepSettings   Step = "settings"
	StepQuestions  Step = "questions"
	StepMotivation Step = "motivation"
	StepPreview    Step = "preview"
	StepPublish    Step = "publish"

	// AI track; generation itself happens outside this core
	StepAITopic    Step = "ai_topic"
	StepAIGenerate Step = "ai_generate"
	StepAIReview   Step = "ai_review"
)

var manualOrder = []Step{
	StepModeSelect, StepSettings, StepQuestions, StepMotivation, StepPreview, StepPublish,
}

var aiOrder = []Step{
	StepModeSelect, StepSettings, StepAITopic, StepAIGenerate, StepAIReview,
	StepMotivation, StepPreview, StepPublish,
}

var aiSteps = map[Step]bool{
	StepAITopic:    true,
	StepAIGenerate: true,
	StepAIReview:   true,
}

// Navigator owns the draft store: no other subsystem writes to it.
type Navigator struct {
	store *storage.DraftStore
}

func New(store *storage.DraftStore) *Navigator {
	return &Navigator{store: store}
}

// Entry is what the creation flow starts from.
type Entry struct {
	Draft        *model.Draft
	OfferRestore bool
}

// Enter loads any leftover draft. When nothing resumable exists the
// store is cleared unconditionally so a brand-new session starts with
// zero residual state (including legacy fragments).
func (n *Navigator) Enter() Entry {
	draft := n.store.Load()
	if !OfferRestore(draft) {
		n.store.Clear()
		return Entry{}
	}
	return Entry{Draft: draft, OfferRestore: true}
}

// OfferRestore reports whether the draft is worth prompting about:
// committed settings, at least one question, or recorded AI progress.
// When true the caller must ask accept/decline, never silently discard.
func OfferRestore(draft *model.Draft) bool {
	return !draft.Empty()
}

// ResumeTarget picks the step to resume into. Manual drafts always land
// on the unified question-authoring step, even if the session died
// mid-settings: a manual draft is always safe to edit there. AI drafts
// resume into their recorded step, or the first AI step when that is
// unset or unrecognized.
func ResumeTarget(draft *model.Draft) Step {
	if draft == nil {
		return StepModeSelect
	}
	switch draft.Mode {
	case model.ModeManual:
		return StepQuestions
	case model.ModeAI:
		if draft.AI != nil && aiSteps[Step(draft.AI.CurrentStep)] {
			return Step(draft.AI.CurrentStep)
		}
		return StepAITopic
	}
	return StepModeSelect
}

// Discard is the author declining the restore prompt: both the manual
// and the AI fragments go away, whatever mode they belonged to.
func (n *Navigator) Discard() {
	n.store.Clear()
}

// CommitStep persists a snapshot and only then hands back the step to
// navigate to, so a crash right after navigation still resumes into the
// latest committed state.
func (n *Navigator) CommitStep(patch storage.Patch, current Step, mode model.Mode) Step {
	n.store.Save(patch)

	next := NextStep(mode, current)
	log.Debugf("wizard.commit: %s -> %s", current, next)
	return next
}

// NextStep returns the step after current for the given track, or ""
// past the end.
func NextStep(mode model.Mode, current Step) Step {
	order := manualOrder
	if mode == model.ModeAI {
		order = aiOrder
	}
	for i, s := range order {
		if s == current && i+1 < len(order) {
			return order[i+1]
		}
	}
	return ""
}
