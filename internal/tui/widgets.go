package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/autocare-ai/autocare/internal/model"
)

// Page IDs used for navigation.
const (
	pageIDFleet        = "fleet"
	pageIDDetail       = "detail"
	pageIDInsights     = "insights"
	pageIDAlerts       = "alerts"
	pageIDSecurity     = "security"
	pageIDArchitecture = "architecture"
)

// statusBadge renders a vehicle status with its signal color.
func statusBadge(s model.Status) string {
	switch s {
	case model.StatusCritical:
		return errorStyle.Render("● CRITICAL")
	case model.StatusMaintenance:
		return noticeStyle.Render("● MAINTENANCE")
	default:
		return successStyle.Render("● HEALTHY")
	}
}

// riskBar renders a 0-100 risk score as a fixed-width meter.
func riskBar(risk float64, width int) string {
	if width < 4 {
		width = 4
	}
	filled := int(risk / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	color := ColorGreen
	switch {
	case risk > 80:
		color = ColorRed
	case risk > 50:
		color = ColorYellow
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(ColorDimGray).Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s%s %3.0f%%", bar, rest, risk)
}

// panel wraps content in the section border with a title row.
func panel(title, content string, active bool) string {
	style := sectionStyle
	if active {
		style = activeSectionStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		panelTitleStyle.Render(title),
		content,
	))
}

// sensorReadings returns the live gauge values shown on the detail page.
// Critical vehicles run hot with starved oil pressure and heavy vibration.
func sensorReadings(status model.Status) (pressurePSI string, rpm string, vibrationHz string) {
	switch status {
	case model.StatusCritical:
		return "25.0 PSI", "2,200 RPM", "45 Hz"
	case model.StatusMaintenance:
		return "-- PSI", "0 RPM", "-- Hz"
	default:
		return "32.0 PSI", "1,800 RPM", "12 Hz"
	}
}

// renderSensorTiles renders the three live gauges side by side.
func renderSensorTiles(status model.Status) string {
	pressure, rpm, vibration := sensorReadings(status)

	tile := func(label, value string) string {
		return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			helpStyle.Render(label),
			lipgloss.NewStyle().Bold(true).Render(value),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Oil Pressure", pressure),
		tile("Engine RPM", rpm),
		tile("Vibration", vibration),
	)
}
