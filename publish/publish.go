// Package publish turns the local draft into a live survey. It is the
// only writer that may clear the draft store, and it only does so after
// the backend has confirmed both steps.
package publish

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/Roman3340/ai-surveys-sub000/api"
	"github.com/Roman3340/ai-surveys-sub000/log"
	"github.com/Roman3340/ai-surveys-sub000/storage"
	"github.com/Roman3340/ai-surveys-sub000/validate"
)

// ErrInFlight guards against double-taps on the publish control.
var ErrInFlight = errors.New("publish already in progress")

// ValidationError is the fail-fast outcome: nothing was sent to the
// backend. Questions maps question id to reason; FirstFailing drives
// the scroll-to-error behaviour.
type ValidationError struct {
	Reason       string
	Questions    map[string]string
	FirstFailing string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Result is a confirmed publish.
type Result struct {
	SurveyID string
}

// Reconciler remembers the server-assigned id across retries in the
// same session, so a failed publish step never re-creates the survey.
type Reconciler struct {
	client api.Client
	store  *storage.DraftStore

	mu        sync.Mutex
	inFlight  bool
	createdID string
}

func NewReconciler(client api.Client, store *storage.DraftStore) *Reconciler {
	return &Reconciler{client: client, store: store}
}

// Publish validates the latest draft, creates the survey (at most once
// per session) and activates it. Partial failure keeps both the draft
// and the remembered id so a retry only repeats the publish step.
func (r *Reconciler) Publish(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	if r.inFlight {
		r.mu.Unlock()
		return nil, ErrInFlight
	}
	r.inFlight = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.inFlight = false
		r.mu.Unlock()
	}()

	draft := r.store.Load()
	if draft == nil {
		return nil, errors.New("there is no draft to publish")
	}

	questionErrs, err := validate.Draft(draft)
	if err != nil {
		return nil, &ValidationError{
			Reason:       err.Error(),
			Questions:    questionErrs,
			FirstFailing: validate.FirstFailing(draft.Questions, questionErrs),
		}
	}

	surveyID := r.rememberedID()
	if surveyID == "" {
		surveyID, err = r.client.CreateSurvey(ctx, api.BuildSurveyPayload(draft))
		if err != nil {
			return nil, errors.Wrap(err, "publish.create")
		}
		r.remember(surveyID)
		log.Debugf("publish.create: survey %s", surveyID)
	}

	if err := r.client.PublishSurvey(ctx, surveyID); err != nil {
		// survey exists but is not live; draft and id stay for retry
		return nil, errors.Wrap(err, "publish.activate")
	}

	r.store.Clear()
	r.remember("")
	log.Infof("publish: survey %s is live", surveyID)

	return &Result{SurveyID: surveyID}, nil
}

// Retryable reports whether a previous attempt already created the
// survey, i.e. the next attempt will skip straight to activation.
func (r *Reconciler) Retryable() bool {
	return r.rememberedID() != ""
}

func (r *Reconciler) rememberedID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createdID
}

func (r *Reconciler) remember(id string) {
	r.mu.Lock()
	r.createdID = id
	r.mu.Unlock()
}
