package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"attrpicker/internal/catalog"
)

const (
	loadTimeout = 15 * time.Second
	// noticeDuration is how long a notice stays up before it is dismissed.
	noticeDuration = 7 * time.Second
)

type attributesLoadedMsg struct {
	attributes []catalog.Attribute
	err        error
}

func loadAttributesCmd(client catalog.Client) tea.Cmd {
	if client == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		attrs, err := client.ListAttributes(ctx)
		return attributesLoadedMsg{attributes: attrs, err: err}
	}
}

type noticeTickMsg struct {
	id string
}

func scheduleNoticeTick(id string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return noticeTickMsg{id: id}
	})
}

type clipboardResultMsg struct {
	text string
	err  error
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	if write == nil {
		return nil
	}
	return func() tea.Msg {
		return clipboardResultMsg{text: text, err: write(text)}
	}
}
