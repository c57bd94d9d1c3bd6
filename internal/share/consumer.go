package share

import (
	"context"
	"net/url"
	"strings"

	"github.com/jonathan/resume-share/internal/codec"
	"github.com/jonathan/resume-share/internal/rendering"
	"github.com/jonathan/resume-share/internal/types"
	"github.com/rs/zerolog"
)

// State is the consumer's progress on one incoming link.
type State int

const (
	// StateLoading is the initial state: the link has not been inspected yet.
	StateLoading State = iota
	// StateResolved means a resume was obtained from the payload or the local store.
	StateResolved
	// StateFailed is terminal: no usable resume could be obtained.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Source tells where a resolved resume came from.
type Source int

const (
	// SourceNone is set on unresolved links.
	SourceNone Source = iota
	// SourcePayload means the resume was decoded from the d parameter.
	SourcePayload
	// SourceStore means the resume was read from the local store by id.
	SourceStore
)

func (s Source) String() string {
	switch s {
	case SourcePayload:
		return "payload"
	case SourceStore:
		return "store"
	default:
		return ""
	}
}

// Reason explains a failed resolution.
type Reason string

const (
	// ReasonPayloadAbsent means the link carries neither d nor id.
	ReasonPayloadAbsent Reason = "payload_absent"
	// ReasonPayloadCorrupted means d is present but does not decode to a shareable resume.
	ReasonPayloadCorrupted Reason = "payload_corrupted"
	// ReasonRecordNotFound means no saved resume has the id.
	ReasonRecordNotFound Reason = "record_not_found"
	// ReasonLookupFailed means the local store returned an error.
	ReasonLookupFailed Reason = "lookup_failed"
)

// Message returns the user-facing text for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonPayloadAbsent:
		return "No resume data found in the URL. The link may be incomplete."
	case ReasonPayloadCorrupted:
		return "Failed to decode the resume data. The link may be corrupted."
	case ReasonRecordNotFound:
		return "No saved resume matches this link."
	case ReasonLookupFailed:
		return "The saved resume could not be loaded."
	default:
		return ""
	}
}

// Resolution is the outcome of resolving one link. The zero value is StateLoading.
type Resolution struct {
	State      State
	Source     Source
	Resume     *types.Resume
	TemplateID string
	RecordID   string
	Reason     Reason
	// Cause is the underlying error for a failed resolution, if there was one.
	Cause error
}

// Terminal reports whether the resolution has left StateLoading.
func (r Resolution) Terminal() bool {
	return r.State != StateLoading
}

// Message returns the user-facing failure text, or "" unless the state is StateFailed.
func (r Resolution) Message() string {
	if r.State != StateFailed {
		return ""
	}
	return r.Reason.Message()
}

// RecordLookup reads a saved resume by identifier. A missing record is reported as
// found == false with a nil error.
type RecordLookup interface {
	Lookup(ctx context.Context, id string) (rec *types.SavedResume, found bool, err error)
}

// Consumer resolves incoming share links into resumes.
type Consumer struct {
	records RecordLookup
	logger  zerolog.Logger
}

// NewConsumer returns a consumer. records may be nil when links are the only source.
func NewConsumer(records RecordLookup, logger zerolog.Logger) *Consumer {
	return &Consumer{records: records, logger: logger}
}

// Resolve accepts a full URL, a "?query" or a bare "d=...&t=..." query string. Malformed
// pairs are skipped; the link only fails on them when no d or id survives.
func (c *Consumer) Resolve(ctx context.Context, rawURL string) Resolution {
	q, err := parseQuery(rawURL)
	if err != nil {
		if q.Get(ParamPayload) == "" && q.Get(ParamRecordID) == "" {
			c.logger.Debug().Err(err).Msg("share link query could not be parsed")
			return failed(ReasonPayloadCorrupted, err)
		}
		c.logger.Debug().Err(err).Msg("skipped malformed share link parameters")
	}
	return c.ResolveQuery(ctx, q)
}

// ResolveQuery resolves already parsed query parameters. A payload takes precedence over a
// record identifier.
func (c *Consumer) ResolveQuery(ctx context.Context, q url.Values) Resolution {
	templateID := q.Get(ParamTemplate)

	if payload := q.Get(ParamPayload); payload != "" {
		doc, err := codec.Parse(payload)
		if err != nil {
			c.logger.Debug().Err(err).Int("payload_length", len(payload)).Msg("share payload rejected")
			return failed(ReasonPayloadCorrupted, err)
		}
		return Resolution{
			State:      StateResolved,
			Source:     SourcePayload,
			Resume:     doc,
			TemplateID: rendering.Resolve(templateID),
		}
	}

	id := q.Get(ParamRecordID)
	if id == "" {
		return failed(ReasonPayloadAbsent, nil)
	}
	if c.records == nil {
		res := failed(ReasonRecordNotFound, nil)
		res.RecordID = id
		return res
	}

	rec, found, err := c.records.Lookup(ctx, id)
	if err != nil {
		c.logger.Error().Err(err).Str("id", id).Msg("saved resume lookup failed")
		res := failed(ReasonLookupFailed, err)
		res.RecordID = id
		return res
	}
	if !found || rec == nil {
		res := failed(ReasonRecordNotFound, nil)
		res.RecordID = id
		return res
	}

	if templateID == "" {
		templateID = rec.TemplateID
	}
	return Resolution{
		State:      StateResolved,
		Source:     SourceStore,
		Resume:     rec.Data.Clone(),
		TemplateID: rendering.Resolve(templateID),
		RecordID:   id,
	}
}

func failed(reason Reason, cause error) Resolution {
	return Resolution{State: StateFailed, Reason: reason, Cause: cause}
}

// parseQuery extracts the query component from a URL or query string. On error the
// well-formed pairs are still returned.
func parseQuery(raw string) (url.Values, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	return url.ParseQuery(raw)
}
