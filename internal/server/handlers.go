package server

import (
	"bytes"
	"encoding/json"
	htmltemplate "html/template"
	"net/http"
	"net/url"

	"github.com/jonathan/resume-share/internal/rendering"
	"github.com/jonathan/resume-share/internal/schemas"
	"github.com/jonathan/resume-share/internal/share"
	"github.com/jonathan/resume-share/internal/store"
	"github.com/jonathan/resume-share/internal/types"
	schemafiles "github.com/jonathan/resume-share/schemas"
)

var errorPage = htmltemplate.Must(htmltemplate.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Resume unavailable</title>
</head>
<body>
<main>
<h1>Resume unavailable</h1>
<p>{{.}}</p>
</main>
</body>
</html>
`))

// renderFailure writes the error page for a failed resolution.
func (s *Server) renderFailure(w http.ResponseWriter, status int, message string) {
	var buf bytes.Buffer
	if err := errorPage.Execute(&buf, message); err != nil {
		s.logger.Error().Err(err).Msg("failed to render error page")
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", rendering.FormatHTML.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderResolution writes a resolved resume in the format named by the "format" parameter
// (HTML by default) or the error page for a failed one.
func (s *Server) renderResolution(w http.ResponseWriter, r *http.Request, res share.Resolution) {
	if res.State != share.StateResolved {
		s.renderFailure(w, ReasonStatus(res.Reason), res.Message())
		return
	}

	format := rendering.FormatHTML
	if name := r.URL.Query().Get("format"); name != "" {
		f, err := rendering.ParseFormat(name)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}

	var buf bytes.Buffer
	if err := rendering.Render(&buf, res.Resume, res.TemplateID, format); err != nil {
		s.logger.Error().Err(err).Str("template", res.TemplateID).Msg("failed to render resume")
		s.renderFailure(w, http.StatusInternalServerError, "The resume could not be displayed.")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleShare renders the resume carried by a share link (d=...&t=...) or saved under id=....
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	res := s.consumer.Resolve(r.Context(), "?"+r.URL.RawQuery)
	s.renderResolution(w, r, res)
}

// handlePreview renders a saved resume by id, ignoring any payload parameter.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get(share.ParamRecordID)
	if id == "" {
		s.renderFailure(w, http.StatusBadRequest, "A resume id is required.")
		return
	}
	res := s.consumer.ResolveQuery(r.Context(), url.Values{
		share.ParamRecordID: {id},
		share.ParamTemplate: {q.Get(share.ParamTemplate)},
	})
	s.renderResolution(w, r, res)
}

// CreateShareRequest is the body of POST /api/share. Exactly one of Resume and ID is set.
type CreateShareRequest struct {
	Resume     json.RawMessage `json:"resume,omitempty"`
	ID         string          `json:"id,omitempty"`
	TemplateID string          `json:"templateId,omitempty"`
}

// CreateShareResponse is the body returned by POST /api/share.
type CreateShareResponse struct {
	URL        string `json:"url"`
	Length     int    `json:"length"`
	Risk       string `json:"risk"`
	Warning    string `json:"warning,omitempty"`
	TemplateID string `json:"templateId"`
}

// handleCreateShare builds a share link for a posted document or a saved record.
func (s *Server) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req CreateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	doc, templateID, err := s.shareSource(r, &req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			s.logger.Error().Err(err).Msg("failed to load resume for sharing")
			s.errorResponse(w, status, "Failed to load resume")
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	origin := s.origin
	if origin == "" {
		origin = requestOrigin(r)
	}

	link := share.BuildShareURL(doc, templateID, origin)
	risk := share.ClassifyURLLength(link)
	s.jsonResponse(w, http.StatusOK, CreateShareResponse{
		URL:        link,
		Length:     len(link),
		Risk:       risk.String(),
		Warning:    risk.Message(),
		TemplateID: templateID,
	})
}

func (s *Server) shareSource(r *http.Request, req *CreateShareRequest) (*types.Resume, string, error) {
	templateID := req.TemplateID

	switch {
	case len(req.Resume) > 0 && req.ID != "":
		return nil, "", &ErrValidation{Field: "resume", Message: "resume and id are mutually exclusive"}

	case len(req.Resume) > 0:
		if err := schemas.Validate(schemafiles.ShareGate, req.Resume); err != nil {
			return nil, "", err
		}
		var doc types.Resume
		if err := json.Unmarshal(req.Resume, &doc); err != nil {
			return nil, "", &ErrValidation{Field: "resume", Message: err.Error()}
		}
		if templateID == "" {
			templateID = s.template
		}
		return &doc, rendering.Resolve(templateID), nil

	case req.ID != "":
		if s.resumes == nil {
			return nil, "", store.ErrNotFound
		}
		rec, err := s.resumes.Get(r.Context(), req.ID)
		if err != nil {
			return nil, "", err
		}
		if templateID == "" {
			templateID = rec.TemplateID
		}
		return &rec.Data, rendering.Resolve(templateID), nil

	default:
		return nil, "", &ErrValidation{Field: "resume", Message: "resume or id is required"}
	}
}

// requestOrigin derives scheme://host from the request.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// ResolveResponse is the body returned by GET /api/resolve.
type ResolveResponse struct {
	State      string        `json:"state"`
	Source     string        `json:"source,omitempty"`
	TemplateID string        `json:"templateId,omitempty"`
	RecordID   string        `json:"recordId,omitempty"`
	Resume     *types.Resume `json:"resume,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Message    string        `json:"message,omitempty"`
}

// handleResolve returns the consumer outcome for the request's share parameters as JSON.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	res := s.consumer.Resolve(r.Context(), "?"+r.URL.RawQuery)

	body := ResolveResponse{
		State:      res.State.String(),
		TemplateID: res.TemplateID,
		RecordID:   res.RecordID,
		Resume:     res.Resume,
	}
	status := http.StatusOK
	if res.State == share.StateFailed {
		status = ReasonStatus(res.Reason)
		body.Reason = string(res.Reason)
		body.Message = res.Message()
	} else {
		body.Source = res.Source.String()
	}
	s.jsonResponse(w, status, body)
}

// handleTemplates lists the registered templates.
func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": rendering.Options()})
}
