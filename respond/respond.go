// Package respond drives the take-survey side: one session per opened
// survey, answers kept in memory only (they do not survive a reload).
package respond

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/Roman3340/ai-surveys-sub000/api"
	"github.com/Roman3340/ai-surveys-sub000/model"
	"github.com/Roman3340/ai-surveys-sub000/validate"
)

// ErrInFlight guards the submit control while a request is pending.
var ErrInFlight = errors.New("submit already in progress")

// ValidationError blocks a submit locally, before any network call.
type ValidationError struct {
	Questions    map[string]string
	FirstFailing string
}

func (e *ValidationError) Error() string {
	return "some answers are missing or invalid"
}

type Session struct {
	client api.Client
	survey *api.PublicSurvey

	mu       sync.Mutex
	answers  model.Answers
	inFlight bool
}

// Open fetches the survey through the public endpoint and starts an
// empty answer set.
func Open(ctx context.Context, client api.Client, surveyID string) (*Session, error) {
	survey, err := client.FetchPublicSurvey(ctx, surveyID)
	if err != nil {
		return nil, errors.Wrap(err, "respond.open")
	}
	return &Session{
		client:  client,
		survey:  survey,
		answers: model.Answers{},
	}, nil
}

func (s *Session) Survey() *api.PublicSurvey {
	return s.survey
}

// SetAnswer records a value for a question. A nil value clears it along
// with its "other" text.
func (s *Session) SetAnswer(questionID string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == nil {
		s.answers.Unset(questionID)
		return
	}
	s.answers.Set(questionID, value)
}

// SetOtherText records the free text paired with the "Other" option.
func (s *Session) SetOtherText(questionID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers.Set(model.OtherKey(questionID), text)
}

// ValidateQuestion runs the per-question check as the respondent moves
// along; "" means the question is currently fine.
func (s *Session) ValidateQuestion(questionID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.survey.Questions {
		if q.ID == questionID {
			return validate.Answer(q, s.answers)
		}
	}
	return ""
}

// Validate runs the full pre-submit check.
func (s *Session) Validate() *ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *Session) validateLocked() *ValidationError {
	errs := validate.All(s.survey.Questions, s.answers)
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{
		Questions:    errs,
		FirstFailing: validate.FirstFailing(s.survey.Questions, errs),
	}
}

// Submit validates and sends the answers. Validation failures never
// reach the network; a pending submit blocks further attempts until the
// backend answers.
func (s *Session) Submit(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return "", ErrInFlight
	}
	if verr := s.validateLocked(); verr != nil {
		s.mu.Unlock()
		return "", verr
	}
	s.inFlight = true
	payload := api.SubmissionPayload{Answers: s.snapshotLocked()}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	id, err := s.client.SubmitAnswers(ctx, s.survey.ID, payload)
	if err != nil {
		return "", errors.Wrap(err, "respond.submit")
	}
	return id, nil
}

func (s *Session) snapshotLocked() model.Answers {
	out := model.Answers{}
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}
