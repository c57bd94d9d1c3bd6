package types

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultTemplateID is the template used when none is given or the given one is unknown.
const DefaultTemplateID = "classic"

// MaxNameLength is the longest record name, in characters, Validate accepts.
const MaxNameLength = 200

// SavedResume is a resume document persisted in the local store under a generated identifier.
type SavedResume struct {
	ID         string    `json:"id" validate:"required,uuid"`
	Name       string    `json:"name" validate:"required,max=200"`
	UpdatedAt  time.Time `json:"updatedAt" validate:"required"`
	TemplateID string    `json:"templateId" validate:"required"`
	Data       Resume    `json:"data"`
}

var (
	recordValidatorOnce sync.Once
	recordValidator     *validator.Validate
)

func getRecordValidator() *validator.Validate {
	recordValidatorOnce.Do(func() {
		recordValidator = validator.New()
	})
	return recordValidator
}

// Validate checks the record envelope. The document body is not deep-validated.
func (s *SavedResume) Validate() error {
	return getRecordValidator().Struct(s)
}

// DefaultResume returns the starter document used for new records.
func DefaultResume() *Resume {
	return &Resume{
		PersonalInfo: PersonalInfo{
			Name:     "Your Name",
			Title:    "Software Engineer",
			Phone:    "+1 555 0100",
			Email:    "you@example.com",
			Location: "City, Country",
		},
		ProfileSummary: "A short summary of your experience and what you are looking for.",
		Skills:         []string{"Go", "SQL", "Distributed Systems"},
		WorkExperience: []WorkExperience{
			{
				Title:            "Software Engineer",
				Company:          "Example Corp",
				Period:           "2021 - Present",
				Responsibilities: []string{"Built and operated backend services."},
			},
		},
		Education: []Education{
			{
				Year:        "2020",
				Degree:      "B.Sc.",
				Field:       "Computer Science",
				Institution: "Example University",
			},
		},
	}
}
