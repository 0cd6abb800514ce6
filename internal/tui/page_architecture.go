package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ArchitecturePage is the static system wireframe: how telemetry flows from
// the vehicle through the prediction service to the agent workflow.
type ArchitecturePage struct{}

func NewArchitecturePage() *ArchitecturePage { return &ArchitecturePage{} }

func (p *ArchitecturePage) ID() string    { return pageIDArchitecture }
func (p *ArchitecturePage) Title() string { return "Architecture" }

func (p *ArchitecturePage) Init() tea.Cmd { return nil }

func (p *ArchitecturePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) { return nil, nil }

var architectureDiagram = []string{
	`  [Vehicle Sensors]`,
	`        |  CAN bus telemetry`,
	`        v`,
	`  [Telemetry Gateway] --> [Failure Prediction Model]`,
	`        |                          |`,
	`        v                          v`,
	`  [Fleet Dashboard] <------ [Risk Scores]`,
	`        |`,
	`        | risk > 80`,
	`        v`,
	`  [Master Agent]`,
	`    |-- [Data Fetcher]  queries sensor history`,
	`    |-- [Scheduler]     books the service slot`,
	`    |-- [Voice Bot]     briefs the owner`,
	`    \-- [UEBA SYSTEM]   watches the agents themselves`,
}

func (p *ArchitecturePage) View(width, height int) string {
	lines := make([]string, len(architectureDiagram))
	copy(lines, architectureDiagram)

	body := lipgloss.JoinVertical(lipgloss.Left,
		helpStyle.Render("End-to-end flow from sensor to booked service appointment."),
		"",
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
	return panel("System Architecture", body, false)
}
