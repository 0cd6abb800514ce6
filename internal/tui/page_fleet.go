package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autocare-ai/autocare/internal/fleet"
	"github.com/autocare-ai/autocare/internal/model"
)

// statusFilters is the cycle order for the 'f' key.
var statusFilters = []string{fleet.FilterAll, "CRITICAL", "HEALTHY", "MAINTENANCE"}

// FleetPage is the landing grid of all monitored vehicles.
type FleetPage struct {
	registry *fleet.Registry

	searchInput  textinput.Model
	searchActive bool
	filterIdx    int
	cursor       int
}

func NewFleetPage(registry *fleet.Registry) *FleetPage {
	ti := textinput.New()
	ti.Placeholder = "Search by registration or model..."
	ti.CharLimit = 40
	return &FleetPage{
		registry:    registry,
		searchInput: ti,
	}
}

func (p *FleetPage) ID() string    { return pageIDFleet }
func (p *FleetPage) Title() string { return "Fleet" }

func (p *FleetPage) Init() tea.Cmd { return nil }

// CapturingInput reports whether the search box owns the keyboard.
func (p *FleetPage) CapturingInput() bool { return p.searchActive }

// visible returns the rows after search and status filtering.
func (p *FleetPage) visible() []model.VehicleRecord {
	return p.registry.Filter(p.searchInput.Value(), statusFilters[p.filterIdx])
}

func (p *FleetPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}

	if p.searchActive {
		switch key.String() {
		case "enter", "esc":
			p.searchActive = false
			p.searchInput.Blur()
			p.cursor = 0
			return nil, nil
		default:
			var cmd tea.Cmd
			p.searchInput, cmd = p.searchInput.Update(msg)
			p.cursor = 0
			return cmd, nil
		}
	}

	switch key.String() {
	case "/":
		p.searchActive = true
		return p.searchInput.Focus(), nil
	case "f":
		p.filterIdx = (p.filterIdx + 1) % len(statusFilters)
		p.cursor = 0
		return nil, nil
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, nil
	case "down", "j":
		if p.cursor < len(p.visible())-1 {
			p.cursor++
		}
		return nil, nil
	case "enter":
		rows := p.visible()
		if p.cursor < len(rows) {
			return nil, &PageNav{PageID: pageIDDetail, Params: rows[p.cursor]}
		}
		return nil, nil
	}
	return nil, nil
}

func (p *FleetPage) View(width, height int) string {
	rows := p.visible()

	header := fmt.Sprintf("%-16s %-18s %-14s %s", "REGISTRATION", "MODEL", "STATUS", "RISK")
	lines := []string{helpStyle.Render(header)}

	if len(rows) == 0 {
		lines = append(lines, "", noticeStyle.Render("No vehicles match the current filter."))
	}
	for i, v := range rows {
		row := fmt.Sprintf("%-16s %-18s %-24s %s",
			v.ID, v.Model, statusBadge(v.Status), riskBar(float64(v.Risk), 10))
		if i == p.cursor {
			row = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true).Render("> ") + row
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}

	searchLine := helpStyle.Render("/ search  f filter  enter open")
	if p.searchActive || p.searchInput.Value() != "" {
		searchLine = p.searchInput.View()
	}
	filterLine := fmt.Sprintf("Filter: %s   Vehicles: %d", statusFilters[p.filterIdx], len(rows))

	body := lipgloss.JoinVertical(lipgloss.Left,
		helpStyle.Render(filterLine),
		"",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
		"",
		searchLine,
	)
	return panel("Fleet Overview", body, !p.searchActive)
}
