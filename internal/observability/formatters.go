// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-share/internal/share"
	"github.com/jonathan/resume-share/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		return string([]rune(s)[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-n)
}

// PrintResume outputs a short summary of a resume document.
func (p *Printer) PrintResume(r *types.Resume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", r.PersonalInfo.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", r.PersonalInfo.Title))
	sb.WriteString("\n")

	if len(r.Skills) > 0 {
		count := min(len(r.Skills), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Skills:   %s", strings.Join(r.Skills[:count], ", ")))
		if len(r.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" (+%d)", len(r.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(r.WorkExperience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(r.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			w := r.WorkExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", w.Title, w.Company))
		}
		if len(r.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.WorkExperience)-maxItemsToShow))
		}
	}

	sb.WriteString(fmt.Sprintf("Sections: %d education, %d certifications, %d projects",
		len(r.Education), len(r.Certifications), len(r.Projects)))

	p.printBox("RESUME", sb.String())
}

// PrintLink outputs the size breakdown of a share link.
func (p *Printer) PrintLink(link share.Link) {
	u := link.String()
	risk := share.ClassifyURLLength(u)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s\n", link.TemplateID))
	sb.WriteString(fmt.Sprintf("Payload:  %d characters\n", len(link.Payload)))
	sb.WriteString(fmt.Sprintf("URL:      %d characters\n", len(u)))
	sb.WriteString(fmt.Sprintf("Risk:     %s", risk))

	p.printBox("SHARE LINK", sb.String())
}

// PrintResolution outputs how a link was resolved.
func (p *Printer) PrintResolution(res share.Resolution) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("State:    %s\n", res.State))
	if res.State == share.StateResolved {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", res.Source))
		sb.WriteString(fmt.Sprintf("Template: %s", res.TemplateID))
	} else {
		sb.WriteString(fmt.Sprintf("Reason:   %s", res.Reason))
	}
	if res.RecordID != "" {
		sb.WriteString(fmt.Sprintf("\nRecord:   %s", res.RecordID))
	}

	p.printBox("RESOLUTION", sb.String())
}
