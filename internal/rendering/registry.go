// Package rendering renders resume documents through the registered templates.
package rendering

import "github.com/jonathan/resume-share/internal/types"

// TemplateOption describes a selectable template.
type TemplateOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var templateOptions = []TemplateOption{
	{
		ID:          types.DefaultTemplateID,
		Name:        "Classic",
		Description: "Clean, professional layout with sections and borders",
	},
}

// Options returns the registered templates in display order.
func Options() []TemplateOption {
	return append([]TemplateOption(nil), templateOptions...)
}

// Lookup returns the template with the given id.
func Lookup(id string) (TemplateOption, bool) {
	for _, opt := range templateOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return TemplateOption{}, false
}

// Resolve returns id if it names a registered template and the default template id otherwise.
func Resolve(id string) string {
	if _, ok := Lookup(id); ok {
		return id
	}
	return types.DefaultTemplateID
}
