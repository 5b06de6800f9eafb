package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"attrpicker/internal/store"
)

const noticeWrapWidth = 48

// renderNotice renders n as a toast with a right-aligned countdown. Older
// notices still waiting behind it are counted in the title.
func renderNotice(n store.Notice, waiting int, shownAt, now time.Time) string {
	remaining := int((noticeDuration - now.Sub(shownAt)).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	var title string
	var style lipgloss.Style
	switch n.Severity {
	case store.SeverityError:
		title, style = "⚠ Error", styleErrorToast()
	case store.SeveritySuccess:
		title, style = "✓ Done", styleSuccessToast()
	default:
		title, style = "ℹ Note", styleInfoToast()
	}
	if waiting > 0 {
		title += styleStatsDim().Render(fmt.Sprintf(" +%d more", waiting))
	}

	body := wordwrap.String(n.Message, noticeWrapWidth)
	countdown := styleStatsDim().Render(fmt.Sprintf("[%ds]", remaining))

	width := maxLineWidth(append(strings.Split(body, "\n"), title))
	if width < 30 {
		width = 30
	}
	padding := width - lipgloss.Width(countdown)
	if padding < 0 {
		padding = 0
	}

	content := title + "\n" + body + "\n" + strings.Repeat(" ", padding) + countdown
	return style.Render(content)
}

// noticeExpired reports whether a notice shown at shownAt should go.
func noticeExpired(shownAt, now time.Time) bool {
	return !shownAt.IsZero() && now.Sub(shownAt) >= noticeDuration
}
