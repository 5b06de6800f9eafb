package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"attrpicker/internal/ui/theme"
	"attrpicker/internal/validation"
)

// View implements tea.Model.
func (c ComboBox) View() string {
	var b strings.Builder

	if c.Label != "" {
		b.WriteString(styleComboBoxLabel().Render(c.Label))
		b.WriteString("\n")
	}

	// Build input view - may include inline ghost text
	var inputView string
	ghostText := c.GhostText()
	if ghostText != "" && c.focused {
		// First ghost char sits inside an inverted block cursor, the rest is muted.
		ghost := []rune(ghostText)
		cursorWithChar := styleGhostCursor().Render(string(ghost[0]))
		inputView = c.textInput.Prompt + c.textInput.Value() + cursorWithChar + styleGhostText().Render(string(ghost[1:]))
	} else {
		inputView = c.textInput.View()
	}

	errMsg, hasErr := validation.Visible(c.registry, c.errorID())

	// c.Width is the visual width including the border.
	inputStyle := styleComboBoxInput()
	switch {
	case hasErr:
		inputStyle = styleComboBoxInputError()
	case c.focused:
		inputStyle = styleComboBoxInputFocused()
	}
	b.WriteString(inputStyle.Width(c.Width - 2).Render(inputView))

	if c.IsDropdownOpen() {
		b.WriteString("\n")
		if len(c.visible) == 0 {
			b.WriteString(c.renderEmptyDropdown())
		} else {
			b.WriteString(c.renderDropdownItems())
		}
	}

	if hasErr {
		b.WriteString("\n")
		b.WriteString(styleComboBoxError().Render("  " + errMsg))
	}

	return b.String()
}

// renderEmptyDropdown renders the dropdown when no options match.
func (c ComboBox) renderEmptyDropdown() string {
	if strings.TrimSpace(c.textInput.Value()) == "" && c.EmptyText != "" {
		return styleComboBoxHint().Render("  " + c.EmptyText)
	}
	return styleComboBoxNoMatch().Render("  No matches")
}

// renderDropdownItems renders the rows the virtualizer places in view.
func (c ComboBox) renderDropdownItems() string {
	var b strings.Builder

	v := c.list
	v.Count = len(c.visible)
	v.Key = func(i int) string { return c.visible[i].Value }

	start, end := v.Range()
	total := v.TotalSize()
	if v.ScrollOffset > 0 {
		b.WriteString(styleComboBoxHint().Render("  ▲ more above"))
		b.WriteString("\n")
	}

	contentWidth := c.Width - 4
	if contentWidth < 10 {
		contentWidth = 10
	}

	rows := make([]string, 0, end-start)
	for _, item := range v.Items() {
		if !v.InView(item) {
			continue
		}
		rows = append(rows, c.renderDropdownItem(item.Index, contentWidth))
	}
	b.WriteString(strings.Join(rows, "\n"))

	if v.ScrollOffset+v.ContainerHeight() < total {
		b.WriteString("\n")
		b.WriteString(styleComboBoxHint().Render("  ▼ more below"))
	}
	return b.String()
}

// renderDropdownItem renders a single row.
func (c ComboBox) renderDropdownItem(index, width int) string {
	opt := c.visible[index]
	// Leave room for the 2-char prefix and the row padding.
	label := ansi.Truncate(opt.Label, width-4, "…")

	prefix := "  "
	if index == c.highlightIndex {
		prefix = "▸ "
	}

	var style lipgloss.Style
	switch {
	case opt.Disabled:
		style = styleComboBoxDisabled()
	case index == c.highlightIndex:
		style = styleComboBoxHighlight()
	case c.hasTrailing && index == len(c.visible)-1:
		style = styleComboBoxCreate()
	default:
		style = styleComboBoxOption()
	}
	return style.Width(width).Render(prefix + label)
}

// ComboBox styles

func styleComboBoxLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextEmphasized()).
		Bold(true)
}

func styleComboBoxInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderDim()).
		Padding(0, 1)
}

func styleComboBoxInputFocused() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderFocused()).
		Padding(0, 1)
}

func styleComboBoxInputError() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Error()).
		Padding(0, 1)
}

func styleComboBoxOption() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text()).
		PaddingLeft(2)
}

func styleComboBoxHighlight() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Bold(true).
		PaddingLeft(2)
}

func styleComboBoxDisabled() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Strikethrough(true).
		PaddingLeft(2)
}

func styleComboBoxCreate() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Accent()).
		Italic(true).
		PaddingLeft(2)
}

func styleComboBoxNoMatch() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BorderNormal()).
		Italic(true)
}

func styleComboBoxHint() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

func styleComboBoxError() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error())
}

func styleGhostText() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted())
}

// styleGhostCursor: grey text on bright background (inverted block cursor)
func styleGhostCursor() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background()).
		Background(theme.Current().TextMuted())
}
