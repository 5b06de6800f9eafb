package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"attrpicker/internal/ui"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7"))
	summaryDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#565F89"))
)

type selectionJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Local bool   `json:"local"`
}

type resultJSON struct {
	Submitted  bool            `json:"submitted"`
	Attributes []selectionJSON `json:"attributes"`
}

// printResult writes what the user saved. Cancelled sessions print nothing
// in text mode so the picker can be used inside scripts.
func printResult(w io.Writer, res ui.Result, asJSON bool) error {
	if asJSON {
		out := resultJSON{Submitted: res.Submitted, Attributes: []selectionJSON{}}
		for _, sel := range res.Selections {
			out.Attributes = append(out.Attributes, selectionJSON{
				ID:    sel.Attribute.ID,
				Name:  sel.Attribute.Name,
				Slug:  sel.Attribute.Slug,
				Local: sel.Local,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if !res.Submitted {
		return nil
	}
	names := make([]string, 0, len(res.Selections))
	for _, sel := range res.Selections {
		name := sel.Attribute.Name
		if sel.Local {
			name += summaryDimStyle.Render(" (local)")
		}
		names = append(names, name)
	}
	_, err := fmt.Fprintf(w, "%s %s\n", summaryTitleStyle.Render(fmt.Sprintf("Attached %d attribute(s):", len(names))), strings.Join(names, ", "))
	return err
}
