package model

import "time"

// Mode is the creation track chosen once per draft.
type Mode string

const (
	ModeUnset  Mode = ""
	ModeManual Mode = "manual"
	ModeAI     Mode = "ai"
)

// Draft is the locally persisted, in-progress survey definition.
// Settings stays nil until the first settings step is committed;
// AI is only meaningful when Mode is ModeAI.
type Draft struct {
	Mode      Mode       `json:"mode"`
	Settings  *Settings  `json:"settings,omitempty"`
	AI        *AITrack   `json:"ai,omitempty"`
	Questions []Question `json:"questions"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Empty reports whether the draft holds nothing worth restoring:
// no committed settings, no questions, no AI progress.
func (d *Draft) Empty() bool {
	if d == nil {
		return true
	}
	return d.Settings == nil && len(d.Questions) == 0 && (d.AI == nil || d.AI.CurrentStep == "")
}

// Settings is the survey metadata shared by both creation tracks.
type Settings struct {
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description"`
	Language        string     `json:"language"`
	StartsAt        *time.Time `json:"startsAt,omitempty"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
	MaxParticipants int        `json:"maxParticipants" validate:"min=0"`

	AllowAnonymous     bool `json:"allowAnonymous"`
	ShowProgress       bool `json:"showProgress"`
	RandomizeOrder     bool `json:"randomizeOrder"`
	OneResponsePerUser bool `json:"oneResponsePerUser"`
	CollectIdentity    bool `json:"collectIdentity"`

	Motivation *Motivation `json:"motivation,omitempty"`
}

type MotivationType string

const (
	MotivationDiscount MotivationType = "discount"
	MotivationPromo    MotivationType = "promo"
	MotivationStars    MotivationType = "stars"
	MotivationGift     MotivationType = "gift"
	MotivationOther    MotivationType = "other"
)

type Motivation struct {
	Enabled    bool           `json:"enabled"`
	Type       MotivationType `json:"type" validate:"omitempty,oneof=discount promo stars gift other"`
	Detail     string         `json:"detail"`
	Conditions string         `json:"conditions"`
}

// AITrack carries the AI-specific creation progress: which generation
// step the author was on, plus the generation parameters themselves.
type AITrack struct {
	CurrentStep   string    `json:"currentStep"`
	Topic         string    `json:"topic"`
	QuestionCount int       `json:"questionCount"`
	Advanced      *Settings `json:"advanced,omitempty"`
}
