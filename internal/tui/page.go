package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (fleet, detail, insights...).
type Page interface {
	ID() string
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params interface{}
}

// paramReceiver lets a page accept navigation parameters before Init runs.
type paramReceiver interface {
	SetParams(params interface{})
}

// inputCapturer marks a page that currently owns text input. Global
// shortcuts are suspended while it captures.
type inputCapturer interface {
	CapturingInput() bool
}
