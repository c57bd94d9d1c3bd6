package rendering

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	"text/template"

	"github.com/jonathan/resume-share/internal/types"
)

// Format is an output format for Render.
type Format string

const (
	FormatText  Format = "text"
	FormatHTML  Format = "html"
	FormatLaTeX Format = "latex"
)

// ParseFormat maps a user supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	default:
		return "", &FormatError{Format: name}
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatLaTeX:
		return "application/x-tex; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (f Format) fileName() string {
	switch f {
	case FormatHTML:
		return "resume.html.tmpl"
	case FormatLaTeX:
		return "resume.tex.tmpl"
	default:
		return "resume.txt.tmpl"
	}
}

//go:embed templates
var templateFS embed.FS

// Render writes the resume through the given template in the given format. Unknown template
// ids fall back to the default template. HTML output strips markup from every field first.
func Render(w io.Writer, r *types.Resume, templateID string, format Format) error {
	if r == nil {
		return &TemplateError{Template: templateID, Message: "no resume to render"}
	}
	id := Resolve(templateID)
	path := "templates/" + id + "/" + format.fileName()

	content, err := templateFS.ReadFile(path)
	if err != nil {
		return &TemplateError{Template: id, Message: fmt.Sprintf("template file not found: %s", path), Cause: err}
	}

	funcs := map[string]any{
		"join":   strings.Join,
		"escape": EscapeLaTeX,
	}

	switch format {
	case FormatHTML:
		tmpl, err := htmltemplate.New(id).Funcs(funcs).Parse(string(content))
		if err != nil {
			return &TemplateError{Template: id, Message: "failed to parse template", Cause: err}
		}
		if err := tmpl.Execute(w, stripResume(r)); err != nil {
			return &TemplateError{Template: id, Message: "failed to execute template", Cause: err}
		}
	case FormatText, FormatLaTeX:
		tmpl, err := template.New(id).Funcs(funcs).Parse(string(content))
		if err != nil {
			return &TemplateError{Template: id, Message: "failed to parse template", Cause: err}
		}
		if err := tmpl.Execute(w, r); err != nil {
			return &TemplateError{Template: id, Message: "failed to execute template", Cause: err}
		}
	default:
		return &FormatError{Format: string(format)}
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(r *types.Resume, templateID string, format Format) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, r, templateID, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// stripResume returns a copy of r with markup removed from every string.
func stripResume(r *types.Resume) *types.Resume {
	out := r.Clone()

	p := &out.PersonalInfo
	for _, s := range []*string{&p.Name, &p.Title, &p.Phone, &p.Email, &p.Location, &p.Experience, &p.LinkedIn, &p.GitHub} {
		*s = StripMarkup(*s)
	}
	out.ProfileSummary = StripMarkup(out.ProfileSummary)
	stripAll(out.Skills)
	stripAll(out.Certifications)
	stripAll(out.AdditionalInfo.Languages)

	for i := range out.WorkExperience {
		w := &out.WorkExperience[i]
		w.Title = StripMarkup(w.Title)
		w.Company = StripMarkup(w.Company)
		w.Period = StripMarkup(w.Period)
		w.TechStack = StripMarkup(w.TechStack)
		stripAll(w.Responsibilities)
		stripAll(w.Achievements)
	}
	for i := range out.Education {
		e := &out.Education[i]
		e.Year = StripMarkup(e.Year)
		e.Degree = StripMarkup(e.Degree)
		e.Field = StripMarkup(e.Field)
		e.Institution = StripMarkup(e.Institution)
		e.Marks = StripMarkup(e.Marks)
	}
	for i := range out.Projects {
		pr := &out.Projects[i]
		pr.Name = StripMarkup(pr.Name)
		pr.Duration = StripMarkup(pr.Duration)
		pr.Tools = StripMarkup(pr.Tools)
		stripAll(pr.Description)
	}
	return out
}

func stripAll(items []string) {
	for i := range items {
		items[i] = StripMarkup(items[i])
	}
}
