package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autocare-ai/autocare/internal/model"
	"github.com/autocare-ai/autocare/internal/sim"
)

type consoleTickMsg time.Time

// consoleStepMsg delivers one scheduled console script event.
type consoleStepMsg struct {
	event sim.Event
}

// SecurityPage is the agent security console: the live agent topology, the
// streaming activity log, and the attack/resolve simulation.
type SecurityPage struct {
	console *sim.Console
	running bool
}

func NewSecurityPage(console *sim.Console) *SecurityPage {
	return &SecurityPage{console: console}
}

func (p *SecurityPage) ID() string    { return pageIDSecurity }
func (p *SecurityPage) Title() string { return "Agent Security" }

func consoleTick() tea.Cmd {
	return tea.Tick(sim.ConsoleTickInterval, func(t time.Time) tea.Msg {
		return consoleTickMsg(t)
	})
}

// scheduleSteps turns a console script into delayed Bubble Tea commands.
func scheduleSteps(steps []sim.Step) tea.Cmd {
	if len(steps) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(steps))
	for i, step := range steps {
		ev := step.Event
		cmds[i] = tea.Tick(step.After, func(time.Time) tea.Msg {
			return consoleStepMsg{event: ev}
		})
	}
	return tea.Batch(cmds...)
}

func (p *SecurityPage) Init() tea.Cmd {
	if p.running {
		return nil
	}
	p.running = true
	return consoleTick()
}

func (p *SecurityPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case consoleTickMsg:
		p.console.AppendRandom()
		return consoleTick(), nil

	case consoleStepMsg:
		p.console.Apply(msg.event)
		return nil, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			return scheduleSteps(p.console.TriggerAttack()), nil
		case "x":
			if p.console.UnderAttack() || p.console.AttackDetails() != nil {
				return scheduleSteps(p.console.Resolve()), nil
			}
		}
	}
	return nil, nil
}

// agentColor maps an agent to its topology color.
func agentColor(agent model.Agent, compromised bool) lipgloss.Style {
	if compromised && agent == model.AgentVoiceBot {
		return errorStyle
	}
	switch agent {
	case model.AgentMaster:
		return lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	case model.AgentUEBA:
		return lipgloss.NewStyle().Foreground(ColorPurple)
	default:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	}
}

func (p *SecurityPage) renderTopology() string {
	compromised := p.console.UnderAttack() || p.console.AttackDetails() != nil

	node := func(agent model.Agent) string {
		return agentColor(agent, compromised).Render(fmt.Sprintf("[%s]", agent))
	}

	top := node(model.AgentMaster)
	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		node(model.AgentDataFetcher), "  ",
		node(model.AgentVoiceBot), "  ",
		node(model.AgentScheduler),
	)
	bottom := node(model.AgentUEBA) + "  " + node(model.AgentAnalyzer)

	return lipgloss.JoinVertical(lipgloss.Center,
		top,
		"   |   ",
		middle,
		"   |   ",
		bottom,
	)
}

func logLineStyle(typ model.LogType) lipgloss.Style {
	switch typ {
	case model.LogWarning:
		return noticeStyle
	case model.LogError, model.LogCritical:
		return errorStyle
	case model.LogSuccess:
		return successStyle
	case model.LogSystem:
		return lipgloss.NewStyle().Foreground(ColorPurple)
	default:
		return lipgloss.NewStyle().Foreground(ColorSlate)
	}
}

func (p *SecurityPage) renderLog() string {
	logs := p.console.Logs()
	lines := make([]string, 0, len(logs))
	for _, entry := range logs {
		line := fmt.Sprintf("%s  %-14s %s",
			entry.Timestamp.Format("15:04:05"), entry.Agent, entry.Action)
		lines = append(lines, logLineStyle(entry.Type).Render(line))
	}
	if len(lines) == 0 {
		lines = append(lines, helpStyle.Render("Waiting for agent activity..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (p *SecurityPage) renderIncident() string {
	details := p.console.AttackDetails()
	if details == nil {
		if p.console.UnderAttack() {
			return panel("Incident", errorStyle.Render("⚠ Anomalous agent behavior in progress..."), true)
		}
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Type: %s", details.Type),
		details.Description,
		errorStyle.Render("Action: "+details.Action),
		helpStyle.Render("x: resolve incident"),
	)
	return panel("Incident", body, true)
}

func (p *SecurityPage) View(width, height int) string {
	sections := []string{
		panel("Agent Topology", p.renderTopology(), false),
		p.renderIncident(),
		panel("Activity Log", p.renderLog(), false),
		helpStyle.Render("a: simulate attack  x: resolve"),
	}
	return panel("Agent Security Console", lipgloss.JoinVertical(lipgloss.Left, sections...), false)
}
