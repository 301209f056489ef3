package api

import (
	"strings"
	"time"

	"github.com/Roman3340/ai-surveys-sub000/model"
)

// Wire shapes for the survey backend. Questions travel nested inside
// the survey on the single-shot create call; the granular per-question
// calls reuse QuestionPayload on its own.

type SurveyPayload struct {
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Language        string     `json:"language,omitempty"`
	StartsAt        *time.Time `json:"startsAt,omitempty"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
	MaxParticipants int        `json:"maxParticipants,omitempty"`

	AllowAnonymous     bool `json:"allowAnonymous"`
	ShowProgress       bool `json:"showProgress"`
	RandomizeOrder     bool `json:"randomizeOrder"`
	OneResponsePerUser bool `json:"oneResponsePerUser"`
	CollectIdentity    bool `json:"collectIdentity"`

	Motivation *MotivationPayload `json:"motivation,omitempty"`
	Questions  []QuestionPayload  `json:"questions"`
}

type MotivationPayload struct {
	Type       string `json:"type"`
	Detail     string `json:"detail,omitempty"`
	Conditions string `json:"conditions,omitempty"`
}

type QuestionPayload struct {
	ClientID    string `json:"clientId"`
	Order       int    `json:"order"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`

	Options        []string `json:"options,omitempty"`
	HasOtherOption bool     `json:"hasOtherOption,omitempty"`

	ScaleMin      int    `json:"scaleMin,omitempty"`
	ScaleMax      int    `json:"scaleMax,omitempty"`
	ScaleMinLabel string `json:"scaleMinLabel,omitempty"`
	ScaleMaxLabel string `json:"scaleMaxLabel,omitempty"`
	RatingMax     int    `json:"ratingMax,omitempty"`

	ImageURL string `json:"imageUrl,omitempty"`
}

type SubmissionPayload struct {
	Answers model.Answers `json:"answers"`
}

// PublicSurvey is the unauthenticated respondent-side shape.
type PublicSurvey struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	ShowProgress bool              `json:"showProgress"`
	Questions    []model.Question  `json:"questions"`
	Motivation   map[string]string `json:"motivation,omitempty"`
}

type ShareInfo struct {
	Link  string `json:"link"`
	QRURL string `json:"qrUrl"`
}

// Stats are backend-computed aggregates, passed through verbatim.
type Stats struct {
	Responses  int            `json:"responses"`
	Completed  int            `json:"completed"`
	ByQuestion map[string]any `json:"byQuestion,omitempty"`
}

// BuildSurveyPayload flattens a validated draft into the create-survey
// wire shape. Options that are pure whitespace are dropped; positions
// in the draft sequence become explicit order numbers.
func BuildSurveyPayload(draft *model.Draft) SurveyPayload {
	st := draft.Settings

	payload := SurveyPayload{
		Title:           st.Title,
		Description:     st.Description,
		Language:        st.Language,
		StartsAt:        st.StartsAt,
		EndsAt:          st.EndsAt,
		MaxParticipants: st.MaxParticipants,

		AllowAnonymous:     st.AllowAnonymous,
		ShowProgress:       st.ShowProgress,
		RandomizeOrder:     st.RandomizeOrder,
		OneResponsePerUser: st.OneResponsePerUser,
		CollectIdentity:    st.CollectIdentity,
	}

	if st.Motivation != nil && st.Motivation.Enabled {
		payload.Motivation = &MotivationPayload{
			Type:       string(st.Motivation.Type),
			Detail:     st.Motivation.Detail,
			Conditions: st.Motivation.Conditions,
		}
	}

	for i, q := range draft.Questions {
		qp := QuestionPayload{
			ClientID:    q.ID,
			Order:       i,
			Type:        string(q.Type),
			Title:       q.Title,
			Description: q.Description,
			Required:    q.Required,
			ImageURL:    q.ImageURL,
		}
		if q.Type.IsChoice() {
			qp.Options = nonBlank(q.Options)
			qp.HasOtherOption = q.HasOtherOption
		}
		if q.Type == model.TypeScale {
			qp.ScaleMin = q.ScaleMin
			qp.ScaleMax = q.ScaleMax
			qp.ScaleMinLabel = q.ScaleMinLabel
			qp.ScaleMaxLabel = q.ScaleMaxLabel
		}
		if q.Type == model.TypeRating {
			qp.RatingMax = q.RatingMax
			if qp.RatingMax == 0 {
				qp.RatingMax = model.DefaultRatingMax
			}
		}
		payload.Questions = append(payload.Questions, qp)
	}

	return payload
}

func nonBlank(options []string) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		if strings.TrimSpace(opt) != "" {
			out = append(out, opt)
		}
	}
	return out
}
