package tui

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/autocare-ai/autocare/internal/model"
)

// tempPoint is one reading on the engine-temperature trend.
type tempPoint struct {
	Label string
	Value float64
}

// temperatureTrend returns the last 7 readings for a vehicle. Critical
// vehicles show the runaway heat curve; healthy ones hold steady; vehicles
// in the shop read ambient.
func temperatureTrend(status model.Status) []tempPoint {
	labels := []string{"10:00", "10:05", "10:10", "10:15", "10:20", "10:25", "10:30"}

	var values []float64
	switch status {
	case model.StatusCritical:
		values = []float64{85, 87, 89, 92, 95, 98, 105}
	case model.StatusMaintenance:
		values = []float64{30, 30, 30, 30, 30, 30, 30}
	default:
		values = []float64{85, 86, 85, 87, 86, 85, 86}
	}

	points := make([]tempPoint, len(values))
	for i, v := range values {
		points[i] = tempPoint{Label: labels[i], Value: v}
	}
	return points
}

// renderTemperatureChart draws the 7-point trend as a bar chart. Bars above
// the 95C warning line render red.
func renderTemperatureChart(status model.Status, width, height int) string {
	bc := barchart.New(width, height,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(3),
		barchart.WithNoAxis(),
	)

	for _, p := range temperatureTrend(status) {
		style := lipgloss.NewStyle().Foreground(ColorCyan)
		if p.Value > 95 {
			style = lipgloss.NewStyle().Foreground(ColorRed)
		}
		bc.Push(barchart.BarData{
			Label: p.Label,
			Values: []barchart.BarValue{
				{Name: p.Label, Value: p.Value, Style: style},
			},
		})
	}
	bc.Draw()
	return bc.View()
}

// yearlyFailure is one bar on the fleet-wide failure-history chart.
type yearlyFailure struct {
	Year  string
	Count float64
}

// failureHistory is the five-year cooling-pump failure count across the
// fleet. The 2024 spike is what the insights analysis flags.
func failureHistory() []yearlyFailure {
	return []yearlyFailure{
		{Year: "2020", Count: 2},
		{Year: "2021", Count: 3},
		{Year: "2022", Count: 5},
		{Year: "2023", Count: 12},
		{Year: "2024", Count: 34},
	}
}

// renderFailureChart draws the failure history, highlighting the spike year.
func renderFailureChart(width, height int) string {
	bc := barchart.New(width, height,
		barchart.WithBarGap(2),
		barchart.WithBarWidth(4),
		barchart.WithNoAxis(),
	)

	history := failureHistory()
	var max float64
	for _, y := range history {
		if y.Count > max {
			max = y.Count
		}
	}
	for _, y := range history {
		style := lipgloss.NewStyle().Foreground(ColorPurple)
		if y.Count == max {
			style = lipgloss.NewStyle().Foreground(ColorRed)
		}
		bc.Push(barchart.BarData{
			Label: y.Year,
			Values: []barchart.BarValue{
				{Name: y.Year, Value: y.Count, Style: style},
			},
		})
	}
	bc.Draw()
	return bc.View()
}
