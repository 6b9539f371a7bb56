package options

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Wrap80 wraps help text for an 80 column terminal.
func Wrap80(text string) string {
	return Wrap(text, 80)
}

// Wrap collapses runs of whitespace and breaks text at word boundaries so no
// line is wider than width cells.
func Wrap(text string, width int) string {
	return wordwrap.String(strings.Join(strings.Fields(text), " "), width)
}
