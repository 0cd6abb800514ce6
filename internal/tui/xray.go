package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// xrayZone is a named component region on the schematic.
type xrayZone struct {
	Name  string
	Match string // lowercase substring matched against the faulty component
}

var xrayZones = []xrayZone{
	{Name: "Cooling Pump", Match: "cooling pump"},
	{Name: "Battery", Match: "battery"},
	{Name: "Engine", Match: "engine"},
	{Name: "Brakes", Match: "brake"},
}

// zoneForComponent resolves a predicted component to a schematic zone by
// case-insensitive substring match. Empty string means no zoom target.
func zoneForComponent(component string) string {
	c := strings.ToLower(component)
	if c == "" {
		return ""
	}
	for _, z := range xrayZones {
		if strings.Contains(c, z.Match) {
			return z.Name
		}
	}
	return ""
}

var carSchematic = []string{
	`         ______________________`,
	`        /|      cabin         |\`,
	`   ____/_|____________________|_\____`,
	`  |  [ENGINE]  [PUMP]    [BATTERY]  |`,
	`  |_________________________________|`,
	`     (BRAKE)                (BRAKE)`,
}

// renderXRay draws the vehicle schematic. When a zone is faulty its marker
// is highlighted; pulse alternates the highlight each tick so it blinks.
func renderXRay(faultyZone string, pulse bool) string {
	marker := map[string]string{
		"Engine":       "[ENGINE]",
		"Cooling Pump": "[PUMP]",
		"Battery":      "[BATTERY]",
		"Brakes":       "(BRAKE)",
	}[faultyZone]

	highlight := errorStyle
	if !pulse {
		highlight = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	}

	lines := make([]string, len(carSchematic))
	for i, line := range carSchematic {
		if marker != "" && strings.Contains(line, marker) {
			line = strings.ReplaceAll(line, marker, highlight.Render(marker))
		}
		lines[i] = line
	}

	out := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if faultyZone != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, "",
			errorStyle.Render("⚠ FAULT ZONE: "+faultyZone))
	}
	return out
}
