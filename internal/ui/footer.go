package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint defines a key hint for the footer bar.
// These are intentionally shorter than the KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

// Context-specific hints are listed first and dropped first.
var pickerFooterHints = []footerHint{
	{"↑↓", "Move"},
	{"⏎", "Select"},
}

var globalFooterHints = []footerHint{
	{"^S", "Save"},
	{"^D", "Remove"},
	{"^C", "Quit"},
	{"F1", "Help"},
}

// renderFooter renders the footer bar with pill-style key hints and the
// catalog source on the right.
func (m *App) renderFooter() string {
	hints := append([]footerHint(nil), pickerFooterHints...)
	hints = append(hints, globalFooterHints...)

	source := styleStatsDim().Render(m.sourceLabel)
	sourceWidth := lipgloss.Width(source)
	hints = trimHintsToFit(hints, m.width-sourceWidth-4)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")

	spacing := m.width - lipgloss.Width(left) - sourceWidth
	if spacing < 2 {
		spacing = 2
	}
	return left + strings.Repeat(" ", spacing) + source
}

// keyPill renders a single key hint as a pill with description.
func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleKeyDesc().Render(desc)
}

// trimHintsToFit drops context hints first, then globals from the end.
func trimHintsToFit(hints []footerHint, availableWidth int) []footerHint {
	globalCount := len(globalFooterHints)
	for len(hints) > 0 && renderHintsWidth(hints) > availableWidth {
		if len(hints) > globalCount {
			hints = hints[1:]
		} else {
			hints = hints[:len(hints)-1]
		}
	}
	return hints
}

func renderHintsWidth(hints []footerHint) int {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}
