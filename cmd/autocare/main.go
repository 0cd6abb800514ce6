package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/autocare-ai/autocare/internal/fleet"
	"github.com/autocare-ai/autocare/internal/gateway"
	"github.com/autocare-ai/autocare/internal/sim"
	"github.com/autocare-ai/autocare/internal/tui"
	"github.com/autocare-ai/autocare/internal/voice"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var apiBaseURL string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/autocare/config.yml)")
	flag.StringVar(&apiBaseURL, "api", "", "override prediction API base URL")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("AutoCare.ai - Fleet Dashboard\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if apiBaseURL != "" {
		cfg.APIBaseURL = apiBaseURL
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	home, _ := os.UserHomeDir()
	configDir := filepath.Join(home, ".config", "autocare")
	if err := tui.InitializeTheme(cfg.Theme, configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load theme '%s': %v (using default)\n", cfg.Theme, err)
	}

	// The terminal owns stdout/stderr while the TUI runs, so the gateway
	// and dialer log nowhere by default.
	log := zerolog.Nop()

	client := gateway.NewClient(cfg.APIBaseURL,
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		gateway.WithLogger(log),
	)
	dialer := voice.NewStubDialer(log)
	registry := fleet.NewDemoRegistry()

	app := tui.NewApp(registry, version, cfg.UpdateInterval,
		tui.NewFleetPage(registry),
		tui.NewDetailPage(client, dialer, cfg.VoiceAssistantID),
		tui.NewInsightsPage(client),
		tui.NewAlertsPage(registry),
		tui.NewSecurityPage(sim.NewConsole(0)),
		tui.NewArchitecturePage(),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
