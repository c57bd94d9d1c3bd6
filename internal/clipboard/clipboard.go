// Package clipboard copies share links to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

// Writer places text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Copy writes text and reports whether it succeeded. Failures are logged, never returned.
func Copy(w Writer, text string, logger zerolog.Logger) bool {
	if w == nil {
		w = System{}
	}
	if err := w.WriteAll(text); err != nil {
		logger.Warn().Err(err).Msg("failed to copy to clipboard")
		return false
	}
	return true
}
