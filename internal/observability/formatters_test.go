package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/resume-share/internal/share"
	"github.com/jonathan/resume-share/internal/types"
	"github.com/stretchr/testify/assert"
)

func sample() *types.Resume {
	return &types.Resume{
		PersonalInfo: types.PersonalInfo{Name: "Zoë Ñúñez 山田", Title: "Staff Engineer"},
		Skills:       []string{"Go", "SQL", "Kafka", "gRPC", "Kubernetes", "Terraform", "Rust"},
		WorkExperience: []types.WorkExperience{
			{Title: "Engineer", Company: "Acme"},
		},
		Education: []types.Education{{Year: "2015"}},
	}
}

func assertBoxLines(t *testing.T, out string) {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResume(sample())
	out := buf.String()

	assert.Contains(t, out, "RESUME")
	assert.Contains(t, out, "Zoë Ñúñez 山田")
	assert.Contains(t, out, "Go, SQL, Kafka, gRPC, Kubernetes (+2)")
	assert.Contains(t, out, "• Engineer, Acme")
	assert.Contains(t, out, "1 education, 0 certifications, 0 projects")
	assertBoxLines(t, out)
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResume(nil)
	assert.Empty(t, buf.String())
}

func TestPrintLink(t *testing.T) {
	var buf bytes.Buffer
	link := share.Link{Origin: "http://x", Payload: strings.Repeat("a", 6000), TemplateID: "classic"}

	NewPrinter(&buf).PrintLink(link)
	out := buf.String()

	assert.Contains(t, out, "Payload:  6000 characters")
	assert.Contains(t, out, "Risk:     moderate")
	assertBoxLines(t, out)
}

func TestPrintResolution(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResolution(share.Resolution{State: share.StateFailed, Reason: share.ReasonRecordNotFound, RecordID: "abc"})
	out := buf.String()
	assert.Contains(t, out, "State:    failed")
	assert.Contains(t, out, "Reason:   record_not_found")
	assert.Contains(t, out, "Record:   abc")

	buf.Reset()
	p.PrintResolution(share.Resolution{State: share.StateResolved, Source: share.SourcePayload, TemplateID: "classic"})
	assert.Contains(t, buf.String(), "Source:   payload")
	assertBoxLines(t, buf.String())
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", 5))
	assert.Equal(t, "ab...", pad("abcdefgh", 5))
	assert.Equal(t, "山田...", pad("山田太郎さん", 5))
}
