package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// helpIntro is rendered as markdown above the key tables.
const helpIntro = `Type to search the attribute catalog. When nothing matches, pick
**Create "…"** to add the typed name. Attributes already on the product are
hidden from the list.`

// helpSection represents a group of keybindings for display.
type helpSection struct {
	title string
	rows  [][]string // Each row: [keys, description]
}

// getHelpSections returns the help content organized into sections.
// Text is derived from binding.Help() to maintain single source of truth.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "PICKER",
			rows: [][]string{
				{keys.Up.Help().Key, keys.Up.Help().Desc},
				{keys.Select.Help().Key, keys.Select.Help().Desc},
				{keys.Escape.Help().Key, keys.Escape.Help().Desc},
			},
		},
		{
			title: "ACTIONS",
			rows: [][]string{
				{keys.Submit.Help().Key, keys.Submit.Help().Desc},
				{keys.RemoveLast.Help().Key, keys.RemoveLast.Help().Desc},
				{keys.CopySlug.Help().Key, keys.CopySlug.Help().Desc},
				{keys.Reload.Help().Key, keys.Reload.Help().Desc},
				{keys.Dismiss.Help().Key, keys.Dismiss.Help().Desc},
				{keys.Theme.Help().Key, keys.Theme.Help().Desc},
				{keys.Quit.Help().Key, keys.Quit.Help().Desc},
			},
		},
	}
}

// renderHelpOverlay builds the help modal; the caller positions it.
func renderHelpOverlay(keys KeyMap, markdown func(string) string) string {
	sections := getHelpSections(keys)

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		renderHelpSectionTable(sections[0]),
		"    ",
		renderHelpSectionTable(sections[1]),
	)

	title := styleHelpTitle().Render("✦ ATTRIBUTE PICKER HELP ✦")
	dividerWidth := lipgloss.Width(columns)
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	divider := styleHelpDivider().Render(strings.Repeat("─", dividerWidth))
	footer := styleHelpFooter().Render("Press F1 or Esc to close")

	intro := helpIntro
	if markdown != nil {
		intro = markdown(helpIntro)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		divider,
		intro,
		"",
		columns,
		"",
		footer,
	)
	return styleHelpOverlay().Render(content)
}

// renderHelpSectionTable renders a single help section using lipgloss/table.
func renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey().Width(10)
			}
			return styleHelpDesc()
		}).
		Rows(section.rows...)

	header := styleHelpSectionHeader().Render(section.title)
	underline := styleHelpUnderline().Render(strings.Repeat("─", len(section.title)))

	// Hidden border adds an empty top row.
	tableStr := strings.TrimPrefix(t.String(), "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		underline,
		tableStr,
	)
}
