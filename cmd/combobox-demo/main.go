// Demo program to visually test the ComboBox component
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"attrpicker/internal/match"
	"attrpicker/internal/ui"
	"attrpicker/internal/validation"
)

type model struct {
	combo    ui.ComboBox
	registry *validation.MemoryRegistry
	selected string
	quit     bool
}

func countries() []match.Option {
	return []match.Option{
		{Value: "AU", Label: "Australia"},
		{Value: "AT", Label: "Austria"},
		{Value: "BR", Label: "Brazil"},
		{Value: "CA", Label: "Canada"},
		{Value: "CI", Label: "Côte d'Ivoire"},
		{Value: "DE", Label: "Germany"},
		{Value: "IS", Label: "Iceland"},
		{Value: "JP", Label: "Japan"},
		{Value: "NZ", Label: "New Zealand"},
		{Value: "NO", Label: "Norway"},
		{Value: "KP", Label: "North Korea", Disabled: true},
		{Value: "PT", Label: "Portugal"},
		{Value: "ES", Label: "Spain"},
		{Value: "GB", Label: "United Kingdom"},
		{Value: "US", Label: "United States"},
	}
}

func initialModel(mode ui.AutoCompleteMode) model {
	reg := validation.NewMemoryRegistry()
	cb := ui.NewComboBox(countries()).
		WithLabel("Country").
		WithPlaceholder("Search countries...").
		WithWidth(40).
		WithMaxVisible(5).
		WithAutoComplete(mode).
		WithRegistry(reg).
		WithRequired(true).
		WithErrorMessage("Choose a country")

	cb.Focus()

	return model{combo: cb, registry: reg}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.combo.Init(), textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.combo.Unmount()
			m.quit = true
			return m, tea.Quit
		case "ctrl+s":
			m.registry.ShowAll()
			return m, nil
		}

	case ui.ComboBoxChangedMsg:
		m.selected = fmt.Sprintf("%s (%s)", msg.Label, msg.Value)
		if msg.Value == "" {
			m.selected = ""
		}
	}

	var cmd tea.Cmd
	m.combo, cmd = m.combo.Update(msg)
	return m, cmd
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

func (m model) View() string {
	if m.quit {
		return ""
	}

	s := titleStyle.Render("ComboBox Demo")
	s += "\n\n"
	s += m.combo.View()
	s += "\n\n"

	if m.selected != "" {
		s += "Selected: " + selectedStyle.Render(m.selected) + "\n"
	}

	s += helpStyle.Render("\n↓ open • type to filter • Enter select • Esc close • ^S validate • ^C quit")

	return s
}

func main() {
	modeFlag := flag.String("autocomplete", "list", "Autocomplete mode (none, list, inline, both)")
	flag.Parse()

	mode, ok := ui.ParseAutoCompleteMode(*modeFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown autocomplete mode %q\n", *modeFlag)
		os.Exit(2)
	}

	p := tea.NewProgram(initialModel(mode))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
