package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autocare-ai/autocare/internal/fleet"
)

// AlertsPage lists every vehicle currently in the critical state.
type AlertsPage struct {
	registry *fleet.Registry
	cursor   int
}

func NewAlertsPage(registry *fleet.Registry) *AlertsPage {
	return &AlertsPage{registry: registry}
}

func (p *AlertsPage) ID() string    { return pageIDAlerts }
func (p *AlertsPage) Title() string { return "Alerts" }

func (p *AlertsPage) Init() tea.Cmd { return nil }

func (p *AlertsPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}

	critical := p.registry.Critical()
	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(critical)-1 {
			p.cursor++
		}
	case "enter":
		if p.cursor < len(critical) {
			return nil, &PageNav{PageID: pageIDDetail, Params: critical[p.cursor]}
		}
	}
	return nil, nil
}

func (p *AlertsPage) View(width, height int) string {
	critical := p.registry.Critical()

	if len(critical) == 0 {
		return panel("Active Alerts",
			successStyle.Render("All Systems Nominal")+
				"\n"+helpStyle.Render("No vehicles require attention."), false)
	}

	lines := make([]string, 0, len(critical)+2)
	for i, v := range critical {
		row := fmt.Sprintf("%-16s %-18s %s  %s", v.ID, v.Model, riskBar(float64(v.Risk), 14),
			helpStyle.Render(v.LastUpdate))
		if i == p.cursor {
			row = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true).Render("> ") + row
		} else {
			row = "  " + row
		}
		lines = append(lines, errorStyle.Render("▲ ")+row)
	}
	lines = append(lines, "", helpStyle.Render("enter: open vehicle"))

	return panel(fmt.Sprintf("Active Alerts (%d)", len(critical)),
		lipgloss.JoinVertical(lipgloss.Left, lines...), false)
}
