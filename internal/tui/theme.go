package tui

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Theme palette. The defaults follow the AutoCare dark look; a YAML file in
// the config directory can override individual colors.
var (
	ColorNavy    = lipgloss.Color("#0f172a")
	ColorSlate   = lipgloss.Color("#64748b")
	ColorWhite   = lipgloss.Color("#f8fafc")
	ColorCyan    = lipgloss.Color("#22d3ee")
	ColorRed     = lipgloss.Color("#ef4444")
	ColorGreen   = lipgloss.Color("#10b981")
	ColorYellow  = lipgloss.Color("#eab308")
	ColorPurple  = lipgloss.Color("#a855f7")
	ColorDimGray = lipgloss.Color("#475569")
)

// Shared styles built from the palette.
var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDimGray).
			Padding(0, 1)

	activeSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorCyan).
				Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	helpStyle       = lipgloss.NewStyle().Foreground(ColorSlate)
	errorStyle      = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	noticeStyle     = lipgloss.NewStyle().Foreground(ColorYellow)
	successStyle    = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
)

// themeFile is the on-disk override shape.
type themeFile struct {
	Navy   string `yaml:"navy"`
	Slate  string `yaml:"slate"`
	White  string `yaml:"white"`
	Cyan   string `yaml:"cyan"`
	Red    string `yaml:"red"`
	Green  string `yaml:"green"`
	Yellow string `yaml:"yellow"`
	Purple string `yaml:"purple"`
}

// InitializeTheme loads a named theme from configDir/themes/<name>.yml and
// applies any colors it sets. The built-in default needs no file.
func InitializeTheme(name, configDir string) error {
	if name == "" || name == "default" {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(configDir, "themes", name+".yml"))
	if err != nil {
		return err
	}

	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return err
	}

	apply := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	apply(&ColorNavy, tf.Navy)
	apply(&ColorSlate, tf.Slate)
	apply(&ColorWhite, tf.White)
	apply(&ColorCyan, tf.Cyan)
	apply(&ColorRed, tf.Red)
	apply(&ColorGreen, tf.Green)
	apply(&ColorYellow, tf.Yellow)
	apply(&ColorPurple, tf.Purple)

	rebuildStyles()
	return nil
}

func rebuildStyles() {
	sectionStyle = sectionStyle.BorderForeground(ColorDimGray)
	activeSectionStyle = activeSectionStyle.BorderForeground(ColorCyan)
	panelTitleStyle = panelTitleStyle.Foreground(ColorCyan)
	helpStyle = helpStyle.Foreground(ColorSlate)
	errorStyle = errorStyle.Foreground(ColorRed)
	noticeStyle = noticeStyle.Foreground(ColorYellow)
	successStyle = successStyle.Foreground(ColorGreen)
}
