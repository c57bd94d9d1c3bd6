// Package types provides type definitions for the resume document and its saved records.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Resume is the canonical structured resume document.
//
// Field order is the serialization order. Optional scalar strings treat absent and empty as
// the same value; optional sequences keep nil (absent) distinct from empty (present, no items).
// An AdditionalInfo with no sections is left out.
type Resume struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	ProfileSummary string           `json:"profileSummary"`
	Skills         []string         `json:"skills"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Certifications []string         `json:"certifications,omitzero"`
	Projects       []Project        `json:"projects,omitzero"`
	AdditionalInfo AdditionalInfo   `json:"additionalInfo,omitzero"`
}

// PersonalInfo holds the contact header of a resume
type PersonalInfo struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Location   string `json:"location"`
	Experience string `json:"experience,omitempty"` // e.g. "8+ years"
	LinkedIn   string `json:"linkedin,omitempty"`
	GitHub     string `json:"github,omitempty"`
}

// WorkExperience is a single position in the work history
type WorkExperience struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Period           string   `json:"period"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements,omitzero"`
	TechStack        string   `json:"techStack,omitempty"`
}

// Education is a single degree or programme
type Education struct {
	Year        string `json:"year"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Marks       string `json:"marks,omitempty"`
}

// Project is a single side or portfolio project
type Project struct {
	Name        string   `json:"name"`
	Duration    string   `json:"duration,omitempty"`
	Description []string `json:"description,omitzero"`
	Tools       string   `json:"tools,omitempty"`
}

// AdditionalInfo holds trailing miscellaneous sections
type AdditionalInfo struct {
	Languages []string `json:"languages,omitzero"`
}

// Normalize replaces nil required sequences with empty ones so that the serialized form always
// carries arrays for skills, workExperience, education and responsibilities. Optional sequences
// are left untouched.
func (r *Resume) Normalize() {
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.WorkExperience == nil {
		r.WorkExperience = []WorkExperience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	for i := range r.WorkExperience {
		if r.WorkExperience[i].Responsibilities == nil {
			r.WorkExperience[i].Responsibilities = []string{}
		}
	}
}

// Clone returns a deep copy of the resume. Nil and empty sequences are preserved as they are.
func (r *Resume) Clone() *Resume {
	if r == nil {
		return nil
	}
	out := *r
	out.Skills = cloneStrings(r.Skills)
	out.Certifications = cloneStrings(r.Certifications)
	out.AdditionalInfo.Languages = cloneStrings(r.AdditionalInfo.Languages)

	if r.WorkExperience != nil {
		out.WorkExperience = make([]WorkExperience, len(r.WorkExperience))
		for i, w := range r.WorkExperience {
			w.Responsibilities = cloneStrings(w.Responsibilities)
			w.Achievements = cloneStrings(w.Achievements)
			out.WorkExperience[i] = w
		}
	}
	if r.Education != nil {
		out.Education = append([]Education{}, r.Education...)
	}
	if r.Projects != nil {
		out.Projects = make([]Project, len(r.Projects))
		for i, p := range r.Projects {
			p.Description = cloneStrings(p.Description)
			out.Projects[i] = p
		}
	}
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
