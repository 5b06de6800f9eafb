package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"attrpicker/internal/store"
)

func (m *App) View() string {
	if !m.ready {
		return "Initializing..."
	}

	selected := store.Selected(m.store)
	available := len(store.AvailableAttributes(m.store))

	title := "ATTRIBUTE PICKER"
	if m.version != "" {
		title = fmt.Sprintf("ATTRIBUTE PICKER v%s", m.version)
	}
	status := fmt.Sprintf("Attached: %d • Available: %d", len(selected), available)
	if m.loading {
		status += " • loading…"
	}
	header := styleAppHeader().Render(title) + " " + styleStatsDim().Render(status)

	sections := []string{header, ""}

	sections = append(sections, styleSectionHeader().Render("Product attributes"))
	if chips := renderSelectionChips(selected, m.width-2); chips != "" {
		sections = append(sections, chips)
	} else {
		sections = append(sections, styleStatsDim().Render("None yet."))
	}
	sections = append(sections, "", m.picker.View())

	body := truncateLines(strings.Join(sections, "\n"), m.width)
	footer := m.renderFooter()

	canvas := NewCanvas(m.width, m.height)
	canvas.DrawStringAt(0, 0, body)
	canvas.DrawStringAt(0, m.height-1, footer)

	if notices := store.Notices(m.store); len(notices) > 0 {
		if n := notices[len(notices)-1]; n.ID == m.noticeID {
			canvas.bottomRightOverlay(renderNotice(n, len(notices)-1, m.noticeShownAt, m.now()), 1)
		}
	}
	if m.showHelp {
		footerHeight := lipgloss.Height(footer)
		canvas.centerOverlay(renderHelpOverlay(m.keys, m.renderMarkdown), 1, footerHeight)
	}
	return canvas.Render()
}
