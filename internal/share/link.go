// Package share builds shareable resume links and resolves incoming ones.
package share

import (
	"net/url"

	"github.com/jonathan/resume-share/internal/codec"
	"github.com/jonathan/resume-share/internal/types"
)

// Query parameter names of a share link.
const (
	ParamPayload  = "d"
	ParamTemplate = "t"
	ParamRecordID = "id"
)

// SharePath is the path the viewer serves shared resumes on.
const SharePath = "/share"

// Length thresholds for ClassifyURLLength. Lengths strictly above a threshold are flagged.
const (
	ModerateURLLength  = 5000
	ExcessiveURLLength = 10000
)

// Link is a share link before it is turned into a URL string.
type Link struct {
	Origin     string
	Payload    string
	TemplateID string
}

// String assembles <origin>/share?d=<payload>&t=<templateId>. The origin is used verbatim.
func (l Link) String() string {
	templateID := l.TemplateID
	if templateID == "" {
		templateID = types.DefaultTemplateID
	}
	return l.Origin + SharePath + "?" + ParamPayload + "=" + l.Payload + "&" + ParamTemplate + "=" + url.QueryEscape(templateID)
}

// NewLink encodes the resume and returns the link parts.
func NewLink(r *types.Resume, templateID, origin string) Link {
	if templateID == "" {
		templateID = types.DefaultTemplateID
	}
	return Link{
		Origin:     origin,
		Payload:    codec.Encode(r),
		TemplateID: templateID,
	}
}

// BuildShareURL encodes the resume and returns the full share URL. An empty templateID means
// the default template.
func BuildShareURL(r *types.Resume, templateID, origin string) string {
	return NewLink(r, templateID, origin).String()
}

// RiskLevel classifies how likely a URL is to be rejected for its length.
type RiskLevel int

const (
	// RiskNone means no warning is needed.
	RiskNone RiskLevel = iota
	// RiskModerate means most consumers accept the URL but its length is notable.
	RiskModerate
	// RiskExcessive means some consumers may reject the URL outright.
	RiskExcessive
)

func (r RiskLevel) String() string {
	switch r {
	case RiskModerate:
		return "moderate"
	case RiskExcessive:
		return "excessive"
	default:
		return "none"
	}
}

// Message returns user guidance for the level, or "" for RiskNone.
func (r RiskLevel) Message() string {
	switch r {
	case RiskModerate:
		return "This URL is moderately long. It should work in most browsers."
	case RiskExcessive:
		return "This URL is very long. Some platforms may not support it."
	default:
		return ""
	}
}

// ClassifyURLLength is advisory only; it never prevents a link from being created.
func ClassifyURLLength(u string) RiskLevel {
	switch n := len(u); {
	case n > ExcessiveURLLength:
		return RiskExcessive
	case n > ModerateURLLength:
		return RiskModerate
	default:
		return RiskNone
	}
}
