package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autocare-ai/autocare/internal/fleet"
	"github.com/autocare-ai/autocare/internal/model"
)

const sidebarWidth = 24

// refreshMsg re-renders the shell so live widgets (sidebar badge, sensor
// tiles) stay current without any page-level action.
type refreshMsg time.Time

// App is the top-level Bubble Tea model. It owns the sidebar and status line
// and routes everything else to the active page.
type App struct {
	pages      []Page
	pageByID   map[string]Page
	activePage string

	registry       *fleet.Registry
	version        string
	updateInterval time.Duration

	sidebarFocused bool
	sidebarCursor  int

	width  int
	height int
}

// NewApp creates the app shell. The first page is the default.
// updateInterval <= 0 uses the default refresh cadence.
func NewApp(registry *fleet.Registry, version string, updateInterval time.Duration, pages ...Page) *App {
	if updateInterval <= 0 {
		updateInterval = model.DefaultUpdateInterval
	}
	byID := make(map[string]Page, len(pages))
	var firstID string
	for i, p := range pages {
		byID[p.ID()] = p
		if i == 0 {
			firstID = p.ID()
		}
	}
	return &App{
		pages:          pages,
		pageByID:       byID,
		activePage:     firstID,
		registry:       registry,
		version:        version,
		updateInterval: updateInterval,
	}
}

func (a *App) refreshTick() tea.Cmd {
	return tea.Tick(a.updateInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (a *App) Init() tea.Cmd {
	if p, ok := a.pageByID[a.activePage]; ok {
		return tea.Batch(p.Init(), a.refreshTick())
	}
	return a.refreshTick()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case refreshMsg:
		return a, a.refreshTick()

	case tea.KeyMsg:
		capturing := false
		if ic, ok := a.pageByID[a.activePage].(inputCapturer); ok {
			capturing = ic.CapturingInput()
		}

		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "tab":
			if !capturing {
				a.sidebarFocused = !a.sidebarFocused
				return a, nil
			}
		case "1", "2", "3", "4", "5", "6":
			if !capturing {
				idx := int(msg.String()[0] - '1')
				if idx < len(a.pages) {
					return a, a.navigate(a.pages[idx].ID(), nil)
				}
				return a, nil
			}
		}

		if a.sidebarFocused {
			switch msg.String() {
			case "up", "k":
				if a.sidebarCursor > 0 {
					a.sidebarCursor--
				}
				return a, nil
			case "down", "j":
				if a.sidebarCursor < len(a.pages)-1 {
					a.sidebarCursor++
				}
				return a, nil
			case "enter":
				a.sidebarFocused = false
				return a, a.navigate(a.pages[a.sidebarCursor].ID(), nil)
			case "q", "esc":
				a.sidebarFocused = false
				return a, nil
			}
			return a, nil
		}
	}

	p, ok := a.pageByID[a.activePage]
	if !ok {
		return a, nil
	}

	cmd, nav := p.Update(msg)
	if nav != nil {
		return a, tea.Batch(cmd, a.navigate(nav.PageID, nav.Params))
	}
	return a, cmd
}

// navigate switches the active page, delivering params before Init.
func (a *App) navigate(pageID string, params interface{}) tea.Cmd {
	target, ok := a.pageByID[pageID]
	if !ok {
		return nil
	}
	if params != nil {
		if pr, ok := target.(paramReceiver); ok {
			pr.SetParams(params)
		}
	}
	a.activePage = pageID
	for i, p := range a.pages {
		if p.ID() == pageID {
			a.sidebarCursor = i
			break
		}
	}
	return target.Init()
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	contentWidth := a.width - sidebarWidth
	contentHeight := a.height - 2 // status line + its margin

	sidebar := a.renderSidebar(contentHeight)

	var content string
	if p, ok := a.pageByID[a.activePage]; ok {
		content = p.View(contentWidth, contentHeight)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderStatusLine())
}

// renderSidebar renders page navigation. The Alerts row carries a live badge
// with the count of critical vehicles.
func (a *App) renderSidebar(height int) string {
	style := lipgloss.NewStyle().
		Width(sidebarWidth-2).
		Height(height).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorDimGray).
		Padding(0, 1)
	if a.sidebarFocused {
		style = style.BorderForeground(ColorCyan)
	}

	lines := make([]string, 0, len(a.pages)+2)
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("AutoCare.ai"), "")

	criticalCount := len(a.registry.Critical())
	for i, p := range a.pages {
		label := fmt.Sprintf("  %s", p.Title())
		if p.ID() == a.activePage {
			label = fmt.Sprintf("> %s", p.Title())
		}
		if p.ID() == pageIDAlerts && criticalCount > 0 {
			label = fmt.Sprintf("%s (%d)", label, criticalCount)
		}
		if a.sidebarFocused && a.sidebarCursor == i {
			label = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true).Render(label)
		} else if p.ID() == pageIDAlerts && criticalCount > 0 {
			label = lipgloss.NewStyle().Foreground(ColorRed).Render(label)
		}
		lines = append(lines, label)
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a *App) renderStatusLine() string {
	left := fmt.Sprintf(" autocare %s", a.version)
	right := "tab: sidebar | 1-6: pages | ctrl+c: quit "

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + lipgloss.NewStyle().Width(gap).Render("") + right
	return helpStyle.Render(line)
}
