package model

import (
	"fmt"
	"strings"
	"time"
)

// Status classifies the operational state of a vehicle.
type Status string

const (
	StatusHealthy     Status = "HEALTHY"
	StatusCritical    Status = "CRITICAL"
	StatusMaintenance Status = "MAINTENANCE"
)

// ParseStatus parses a status label case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(StatusHealthy):
		return StatusHealthy, nil
	case string(StatusCritical):
		return StatusCritical, nil
	case string(StatusMaintenance):
		return StatusMaintenance, nil
	}
	return "", fmt.Errorf("model: unknown status %q", s)
}

// VehicleRecord is one monitored vehicle in the fleet registry.
// Records are created once at startup and never mutated; Risk carries the
// failure probability percent and is not derived from Status.
type VehicleRecord struct {
	ID         string // plate-style identifier, globally unique
	Model      string
	Status     Status
	Risk       int    // 0-100 failure probability percent
	LastUpdate string // display label, not a machine timestamp
}

// TelemetrySnapshot is the fixed-shape sensor payload sent to /predict.
type TelemetrySnapshot struct {
	EngineTempC    float64 `json:"engine_temp_c"`
	OilPressurePSI float64 `json:"oil_pressure_psi"`
	VibrationHz    float64 `json:"vibration_hz"`
	RPM            int     `json:"rpm"`
	TempMA3h       float64 `json:"temp_ma_3h"`
	PressureMA3h   float64 `json:"pressure_ma_3h"`
	VibMA3h        float64 `json:"vib_ma_3h"`
}

// PredictionResult is the outcome of one failure analysis request.
// It lives only in the page state that requested it.
type PredictionResult struct {
	FailureRiskScore   float64 `json:"failure_risk_score"`
	IsFailurePredicted bool    `json:"is_failure_predicted"`
	AlertLevel         string  `json:"alert_level"`
	Component          string  `json:"component"`
	Recommendation     string  `json:"recommendation"`
}

// InsightCard is the manufacturing-insights payload.
type InsightCard struct {
	Title                 string `json:"title"`
	CriticalComponent     string `json:"critical_component"`
	PatternDetected       string `json:"pattern_detected"`
	RootCause             string `json:"root_cause"`
	Recommendation        string `json:"recommendation"`
	TotalFailuresDetected int    `json:"total_failures_detected"`
	LifecycleAnalysis     string `json:"lifecycle_analysis"`
}

// ServiceCenter describes the recommended service center for booking.
type ServiceCenter struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Distance string `json:"distance"`
}

// ScheduleSlots is the response of the slot-availability query.
type ScheduleSlots struct {
	AvailableSlots      []string      `json:"available_slots"`
	RecommendedCenter   ServiceCenter `json:"recommended_center"`
	TechnicianAvailable string        `json:"technician_available"`
}

// BookingRequest locks one appointment slot for a vehicle.
type BookingRequest struct {
	VehicleID string `json:"vehicle_id"`
	Slot      string `json:"slot"`
	OwnerName string `json:"owner_name"`
}

// BookingConfirmation is the service-center reply to a booking request.
// Status is "confirmed" on success; anything else is a non-fatal failure
// and JobCardID must be ignored.
type BookingConfirmation struct {
	Status       string `json:"status"`
	JobCardID    string `json:"job_card_id"`
	Message      string `json:"message"`
	SlotLocked   string `json:"slot_locked"`
	Center       string `json:"center"`
	Instructions string `json:"instructions"`
}

// Confirmed reports whether the booking was accepted.
func (b BookingConfirmation) Confirmed() bool { return b.Status == "confirmed" }

// Agent identifies a console log source in the agent security view.
type Agent string

const (
	AgentMaster      Agent = "Master"
	AgentVoiceBot    Agent = "Voice Bot"
	AgentDataFetcher Agent = "Data Fetcher"
	AgentScheduler   Agent = "Scheduler"
	AgentUEBA        Agent = "UEBA SYSTEM"
	AgentAnalyzer    Agent = "Analyzer"
)

// LogType classifies a console log entry for display.
type LogType string

const (
	LogNormal   LogType = "normal"
	LogWarning  LogType = "warning"
	LogError    LogType = "error"
	LogCritical LogType = "critical"
	LogSystem   LogType = "system"
	LogSuccess  LogType = "success"
)

// LogEntry is one line in the agent security console stream.
type LogEntry struct {
	Timestamp time.Time
	Agent     Agent
	Action    string
	Type      LogType
}

// AttackDetails describes a detected (simulated) agent compromise.
type AttackDetails struct {
	Type        string
	Description string
	Action      string
}
