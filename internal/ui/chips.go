package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"attrpicker/internal/store"
	"attrpicker/internal/ui/theme"
)

// Chip visual states for pill rendering
type chipState int

const (
	chipStateGlobal chipState = iota
	chipStateLocal
	chipStateLatest
)

// Powerline characters for pill-shaped chips
const (
	pillLeft  = "\ue0b6" // Left half-circle (rounded left edge)
	pillRight = "\ue0b4" // Right half-circle (rounded right edge)
)

// renderSelectionChips renders the attached attributes as pills, wrapped to
// width. The most recent selection is emphasized since it is the one the
// remove and copy shortcuts act on.
func renderSelectionChips(selected []store.Selection, width int) string {
	if len(selected) == 0 {
		return ""
	}
	chips := make([]string, 0, len(selected))
	for i, sel := range selected {
		state := chipStateGlobal
		label := sel.Attribute.Name
		if sel.Local {
			state = chipStateLocal
			label += " ·local"
		}
		if i == len(selected)-1 {
			state = chipStateLatest
		}
		chips = append(chips, renderPillChip(label, state))
	}
	return wrapChips(chips, width)
}

func wrapChips(renderedChips []string, width int) string {
	if width <= 0 {
		return strings.Join(renderedChips, " ")
	}

	var lines []string
	var currentLine []string
	currentWidth := 0

	for _, chip := range renderedChips {
		chipWidth := lipgloss.Width(chip)
		spaceNeeded := chipWidth
		if len(currentLine) > 0 {
			spaceNeeded++ // +1 for space separator
		}

		if currentWidth+spaceNeeded > width && len(currentLine) > 0 {
			lines = append(lines, strings.Join(currentLine, " "))
			currentLine = []string{chip}
			currentWidth = chipWidth
		} else {
			currentLine = append(currentLine, chip)
			currentWidth += spaceNeeded
		}
	}

	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}

	return strings.Join(lines, "\n")
}

// renderPillChip renders a label as a pill-shaped chip using powerline glyphs.
func renderPillChip(label string, state chipState) string {
	var bgColor, fgColor lipgloss.TerminalColor

	t := theme.Current()
	switch state {
	case chipStateLatest:
		bgColor = t.Secondary()
		fgColor = t.Background()
	case chipStateLocal:
		bgColor = t.Warning()
		fgColor = t.Background()
	default:
		bgColor = t.Info()
		fgColor = t.Background()
	}

	leftCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillLeft)

	labelStyle := lipgloss.NewStyle().
		Foreground(fgColor).
		Background(bgColor)
	if state == chipStateLatest {
		labelStyle = labelStyle.Bold(true)
	}
	labelText := labelStyle.Render(label)

	rightCap := lipgloss.NewStyle().Foreground(bgColor).Render(pillRight)

	return leftCap + labelText + rightCap
}
