package model

import "time"

// Shared defaults used by both the dashboard and simulator binaries.
const (
	DefaultAPIBaseURL     = "http://localhost:8000"
	DefaultRequestTimeout = 10 * time.Second
	DefaultUpdateInterval = 2 * time.Second
	DefaultTheme          = "default"

	// DefaultConsoleBuffer caps the security-console log stream: 20 kept
	// entries plus the newly appended one.
	DefaultConsoleBuffer = 21
)

// DemoSnapshot is the fixed telemetry payload used by the "Run Diagnostics"
// action. It is intentionally not derived from the displayed charts.
var DemoSnapshot = TelemetrySnapshot{
	EngineTempC:    105.5,
	OilPressurePSI: 25.0,
	VibrationHz:    45.0,
	RPM:            2200,
	TempMA3h:       104.0,
	PressureMA3h:   26.0,
	VibMA3h:        44.0,
}
