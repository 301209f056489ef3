package model

type QuestionType string

const (
	TypeText           QuestionType = "text"
	TypeTextarea       QuestionType = "textarea"
	TypeSingleChoice   QuestionType = "single_choice"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeScale          QuestionType = "scale"
	TypeRating         QuestionType = "rating"
	TypeYesNo          QuestionType = "yes_no"
	TypeDate           QuestionType = "date"
	TypeNumber         QuestionType = "number"
)

// IsChoice reports whether the type renders an option list.
func (t QuestionType) IsChoice() bool {
	return t == TypeSingleChoice || t == TypeMultipleChoice
}

// DefaultRatingMax is used when a rating question does not set its own maximum.
const DefaultRatingMax = 5

// OtherOption is the sentinel option label that demands a paired
// free-text answer when selected.
const OtherOption = "Other"

// Question is one survey item. Option, scale and image fields are only
// meaningful for the matching types; they are kept (inert) across type
// switches so authored content is not lost.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Required    bool         `json:"required"`

	Options        []string `json:"options,omitempty"`
	HasOtherOption bool     `json:"hasOtherOption,omitempty"`

	ScaleMin      int    `json:"scaleMin,omitempty"`
	ScaleMax      int    `json:"scaleMax,omitempty"`
	ScaleMinLabel string `json:"scaleMinLabel,omitempty"`
	ScaleMaxLabel string `json:"scaleMaxLabel,omitempty"`

	RatingMax int `json:"ratingMax,omitempty"`

	ImageURL  string `json:"imageUrl,omitempty"`
	ImageName string `json:"imageName,omitempty"`
}

// Clone returns a deep copy (options are the only reference field).
func (q Question) Clone() Question {
	c := q
	if q.Options != nil {
		c.Options = make([]string, len(q.Options))
		copy(c.Options, q.Options)
	}
	return c
}
