package simserver

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocare-ai/autocare/internal/gateway"
	"github.com/autocare-ai/autocare/internal/model"
)

func newTestServer() *Server {
	return NewServer("",
		zerolog.Nop(),
		WithClock(func() time.Time {
			return time.Date(2025, 11, 30, 9, 0, 0, 0, time.UTC)
		}),
		WithRand(rand.New(rand.NewSource(1))),
	)
}

func TestPredict_CriticalSnapshot(t *testing.T) {
	t.Parallel()

	body, _ := json.Marshal(model.DemoSnapshot)
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		FailureRiskScore   float64 `json:"failure_risk_score"`
		IsFailurePredicted bool    `json:"is_failure_predicted"`
		AlertLevel         string  `json:"alert_level"`
		Component          string  `json:"component"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AlertLevel != "CRITICAL" || !resp.IsFailurePredicted {
		t.Fatalf("demo snapshot not classified critical: %+v", resp)
	}
	if resp.FailureRiskScore <= 80 {
		t.Fatalf("risk score %v, want > 80 so the booking flow opens", resp.FailureRiskScore)
	}
	if resp.Component != "Cooling Pump" {
		t.Fatalf("component = %q", resp.Component)
	}
}

func TestPredict_HealthySnapshot(t *testing.T) {
	t.Parallel()

	healthy := model.TelemetrySnapshot{
		EngineTempC:    85.0,
		OilPressurePSI: 40.0,
		VibrationHz:    15.0,
		RPM:            1800,
		TempMA3h:       85.5,
		PressureMA3h:   39.5,
		VibMA3h:        14.0,
	}
	body, _ := json.Marshal(healthy)
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(w, req)

	var resp struct {
		FailureRiskScore   float64 `json:"failure_risk_score"`
		IsFailurePredicted bool    `json:"is_failure_predicted"`
		AlertLevel         string  `json:"alert_level"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AlertLevel != "NORMAL" || resp.IsFailurePredicted {
		t.Fatalf("healthy snapshot misclassified: %+v", resp)
	}
	if resp.FailureRiskScore > 20 {
		t.Fatalf("risk score %v for nominal readings", resp.FailureRiskScore)
	}
}

func TestPredict_MalformedBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestFailureProbability_MonotoneInTemperature(t *testing.T) {
	t.Parallel()

	cool := model.TelemetrySnapshot{EngineTempC: 85, OilPressurePSI: 40, VibrationHz: 15}
	warm := cool
	warm.EngineTempC = 95
	hot := cool
	hot.EngineTempC = 110

	if !(failureProbability(cool) < failureProbability(warm)) {
		t.Fatal("probability not increasing from cool to warm")
	}
	if !(failureProbability(warm) < failureProbability(hot)) {
		t.Fatal("probability not increasing from warm to hot")
	}
}

// Temperature and pressure are pinned at their saturation values (0.4 + 0.3),
// so the vibration channel walks the total probability across the 0.8
// critical threshold.
func TestPredict_CriticalThresholdBoundary(t *testing.T) {
	t.Parallel()

	snapshotWithVibration := func(vib float64) model.TelemetrySnapshot {
		return model.TelemetrySnapshot{
			EngineTempC:    105.0,
			OilPressurePSI: 25.0,
			VibrationHz:    vib,
		}
	}

	below := failureProbability(snapshotWithVibration(24.0))
	above := failureProbability(snapshotWithVibration(27.0))
	if !(below < criticalProbability && criticalProbability < above) {
		t.Fatalf("probabilities %v / %v do not straddle %v", below, above, criticalProbability)
	}

	cases := []struct {
		name      string
		vib       float64
		wantAlert string
	}{
		{"just below threshold", 24.0, "NORMAL"},
		{"just above threshold", 27.0, "CRITICAL"},
	}
	router := newTestServer().Router()
	for _, tc := range cases {
		body, _ := json.Marshal(snapshotWithVibration(tc.vib))
		req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp struct {
			IsFailurePredicted bool   `json:"is_failure_predicted"`
			AlertLevel         string `json:"alert_level"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if resp.AlertLevel != tc.wantAlert {
			t.Errorf("%s: alert_level = %q, want %q", tc.name, resp.AlertLevel, tc.wantAlert)
		}
		// Both sit above the 0.5 prediction line; only the alert level flips.
		if !resp.IsFailurePredicted {
			t.Errorf("%s: failure not predicted", tc.name)
		}
	}
}

func TestInsights_DynamicAnalysis(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/insights", nil)
	w := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Status      string            `json:"status"`
		InsightCard model.InsightCard `json:"insight_card"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	card := resp.InsightCard
	if resp.Status != "success" {
		t.Fatalf("status payload = %q", resp.Status)
	}
	if card.CriticalComponent != "Cooling Pump" || card.TotalFailuresDetected != 120 {
		t.Fatalf("analysis did not surface the rigged pattern: %+v", card)
	}
	if !strings.Contains(card.PatternDetected, "Mumbai") {
		t.Fatalf("pattern %q missing the dominant region", card.PatternDetected)
	}
	if !strings.Contains(card.Recommendation, "Viton") {
		t.Fatalf("recommendation %q missing the knowledge-base fix", card.Recommendation)
	}
}

func TestScheduleSlots_TomorrowAndDayAfter(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/schedule/slots", nil)
	w := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(w, req)

	var resp model.ScheduleSlots
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.AvailableSlots) != 3 {
		t.Fatalf("got %d slots, want 3", len(resp.AvailableSlots))
	}
	// Clock is pinned to Sunday 2025-11-30; slots land Monday and Tuesday.
	if !strings.HasPrefix(resp.AvailableSlots[0], "Monday, 01 Dec") {
		t.Fatalf("first slot %q not tomorrow", resp.AvailableSlots[0])
	}
	if !strings.HasPrefix(resp.AvailableSlots[2], "Tuesday, 02 Dec") {
		t.Fatalf("third slot %q not the day after", resp.AvailableSlots[2])
	}
	if resp.RecommendedCenter.Name == "" || resp.RecommendedCenter.Type != "OFFICIAL_DEALER" {
		t.Fatalf("unexpected center: %+v", resp.RecommendedCenter)
	}
}

func TestBookAppointment_Handshake(t *testing.T) {
	t.Parallel()

	body, _ := json.Marshal(model.BookingRequest{
		VehicleID: "MH-12-AB-1000",
		Slot:      "Monday, 01 Dec at 10:00 AM",
		OwnerName: "Mr. Sharma",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/schedule/book", bytes.NewReader(body))
	w := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(w, req)

	var resp model.BookingConfirmation
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Confirmed() {
		t.Fatalf("booking not confirmed: %+v", resp)
	}
	if !strings.HasPrefix(resp.JobCardID, "SRV-") {
		t.Fatalf("job card %q missing SRV prefix", resp.JobCardID)
	}
	if resp.SlotLocked != "Monday, 01 Dec at 10:00 AM" {
		t.Fatalf("slot not echoed back: %+v", resp)
	}
	if !strings.Contains(resp.Message, "Mr. Sharma") {
		t.Fatalf("message %q missing owner name", resp.Message)
	}
}

// The simulator must satisfy the gateway client end to end.
func TestGatewayAgainstSimulator(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newTestServer().Router())
	defer srv.Close()

	client := gateway.NewClient(srv.URL)
	ctx := context.Background()

	prediction, err := client.PredictFailure(ctx, model.DemoSnapshot)
	if err != nil {
		t.Fatalf("PredictFailure: %v", err)
	}
	if prediction.FailureRiskScore <= 80 {
		t.Fatalf("risk score %v, want > 80", prediction.FailureRiskScore)
	}

	card, err := client.GetInsights(ctx)
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if card.CriticalComponent != "Cooling Pump" {
		t.Fatalf("card: %+v", card)
	}

	slots, err := client.GetScheduleSlots(ctx)
	if err != nil {
		t.Fatalf("GetScheduleSlots: %v", err)
	}
	if len(slots.AvailableSlots) == 0 {
		t.Fatal("no slots returned")
	}

	confirmation, err := client.BookAppointment(ctx, model.BookingRequest{
		VehicleID: "MH-12-AB-1000",
		Slot:      slots.AvailableSlots[0],
		OwnerName: "Mr. Sharma",
	})
	if err != nil {
		t.Fatalf("BookAppointment: %v", err)
	}
	if !confirmation.Confirmed() {
		t.Fatalf("confirmation: %+v", confirmation)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer()
	router := s.Router()

	// Generate one observation first.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "autocare_sim_requests_total") {
		t.Fatal("request counter not exported")
	}
}
