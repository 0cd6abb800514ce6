package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/autocare-ai/autocare/internal/gateway"
	"github.com/autocare-ai/autocare/internal/model"
)

type insightsMsg struct {
	gen  int
	card *model.InsightCard
	err  error
}

// InsightsPage shows the fleet-wide defect analysis fetched from the
// insights endpoint, alongside the failure-history chart.
type InsightsPage struct {
	client *gateway.Client

	spinner spinner.Model
	gen     int
	loading bool
	card    *model.InsightCard
	err     error
}

func NewInsightsPage(client *gateway.Client) *InsightsPage {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorCyan)
	return &InsightsPage{client: client, spinner: sp}
}

func (p *InsightsPage) ID() string    { return pageIDInsights }
func (p *InsightsPage) Title() string { return "Insights" }

func (p *InsightsPage) Init() tea.Cmd {
	if p.card != nil || p.loading {
		return nil
	}
	return tea.Batch(p.fetch(), p.spinner.Tick)
}

func (p *InsightsPage) fetch() tea.Cmd {
	p.gen++
	p.loading = true
	p.err = nil
	gen := p.gen
	client := p.client
	return func() tea.Msg {
		card, err := client.GetInsights(context.Background())
		return insightsMsg{gen: gen, card: card, err: err}
	}
}

func (p *InsightsPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case insightsMsg:
		if msg.gen != p.gen {
			return nil, nil
		}
		p.loading = false
		p.card = msg.card
		p.err = msg.err
		return nil, nil

	case spinner.TickMsg:
		if !p.loading {
			return nil, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return cmd, nil

	case tea.KeyMsg:
		if msg.String() == "r" && !p.loading {
			return tea.Batch(p.fetch(), p.spinner.Tick), nil
		}
	}
	return nil, nil
}

func (p *InsightsPage) View(width, height int) string {
	var body string
	switch {
	case p.loading:
		body = p.spinner.View() + " Analyzing fleet failure history..."

	case p.err != nil:
		body = errorStyle.Render("Could not load insights: " + p.err.Error())
		var apiErr *gateway.APIError
		if errors.As(p.err, &apiErr) && apiErr.Retryable() {
			body += "\n" + helpStyle.Render("Transient network fault. Press r to retry.")
		} else {
			body += "\n" + helpStyle.Render("Press r to retry.")
		}

	case p.card != nil:
		c := p.card
		body = lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render(c.Title),
			fmt.Sprintf("Component: %s (%d failures)", c.CriticalComponent, c.TotalFailuresDetected),
			fmt.Sprintf("Pattern: %s", c.PatternDetected),
			fmt.Sprintf("Root cause: %s", c.RootCause),
			successStyle.Render(c.Recommendation),
			helpStyle.Render(c.LifecycleAnalysis),
		)
	}

	chart := panel("Cooling Pump Failures (5y)", renderFailureChart(width-8, 10), false)
	return panel("Fleet Insights", lipgloss.JoinVertical(lipgloss.Left, body, "", chart), false)
}
