package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestKeyPill(t *testing.T) {
	pill := keyPill("↑↓", "Move")

	t.Run("ContainsKey", func(t *testing.T) {
		if !strings.Contains(pill, "↑↓") {
			t.Error("expected pill to contain key")
		}
	})

	t.Run("ContainsDesc", func(t *testing.T) {
		if !strings.Contains(pill, "Move") {
			t.Error("expected pill to contain description")
		}
	})
}

func TestRenderFooter(t *testing.T) {
	m := &App{width: 120, sourceLabel: "catalog.db"}
	footer := m.renderFooter()

	t.Run("ContainsPickerKeys", func(t *testing.T) {
		for _, k := range []string{"↑↓", "⏎"} {
			if !strings.Contains(footer, k) {
				t.Errorf("expected footer to contain %q", k)
			}
		}
	})

	t.Run("ContainsGlobalKeys", func(t *testing.T) {
		for _, k := range []string{"^S", "^D", "^C", "F1"} {
			if !strings.Contains(footer, k) {
				t.Errorf("expected footer to contain %q", k)
			}
		}
	})

	t.Run("ContainsSource", func(t *testing.T) {
		if !strings.Contains(footer, "catalog.db") {
			t.Error("expected footer to contain the catalog source")
		}
	})

	t.Run("FitsWidth", func(t *testing.T) {
		if w := lipgloss.Width(footer); w != 120 {
			t.Errorf("expected footer to span 120 columns, got %d", w)
		}
	})
}

func TestTrimHintsToFit(t *testing.T) {
	all := append(append([]footerHint(nil), pickerFooterHints...), globalFooterHints...)

	t.Run("KeepsAllWhenRoomy", func(t *testing.T) {
		if got := trimHintsToFit(all, 500); len(got) != len(all) {
			t.Errorf("expected %d hints, got %d", len(all), len(got))
		}
	})

	t.Run("DropsPickerHintsFirst", func(t *testing.T) {
		width := renderHintsWidth(globalFooterHints)
		got := trimHintsToFit(all, width)
		if len(got) != len(globalFooterHints) {
			t.Fatalf("expected only global hints, got %v", got)
		}
		if got[0].key != globalFooterHints[0].key {
			t.Errorf("expected globals kept in order, got %v", got)
		}
	})

	t.Run("ThenDropsGlobalsFromEnd", func(t *testing.T) {
		width := renderHintsWidth(globalFooterHints[:1])
		got := trimHintsToFit(all, width)
		if len(got) != 1 || got[0].key != "^S" {
			t.Errorf("expected only ^S to remain, got %v", got)
		}
	})
}
