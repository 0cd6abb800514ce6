package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/autocare-ai/autocare/internal/gateway"
	"github.com/autocare-ai/autocare/internal/model"
	"github.com/autocare-ai/autocare/internal/sim"
	"github.com/autocare-ai/autocare/internal/voice"
)

// Diagnostic run states.
type diagState int

const (
	diagIdle diagState = iota
	diagRunning
	diagDone
	diagFailed
)

const (
	healthyDiagDelay  = 700 * time.Millisecond
	xrayPulseInterval = 500 * time.Millisecond
	defaultOwnerName  = "Mr. Sharma"
)

// Async results are tagged with the vehicle and a generation counter so a
// reply from a previous vehicle (or an aborted run) is dropped instead of
// overwriting fresh state.
type predictionMsg struct {
	vehicleID string
	gen       int
	result    *model.PredictionResult
	err       error
}

type slotsMsg struct {
	vehicleID string
	gen       int
	slots     *model.ScheduleSlots
	err       error
}

type bookingMsg struct {
	vehicleID string
	gen       int
	result    *model.BookingConfirmation
	err       error
}

type callMsg struct {
	vehicleID string
	gen       int
	err       error
}

type xrayPulseMsg struct{}

// DetailPage shows one vehicle: live sensors, temperature trend, the
// diagnostic verdict, the X-ray schematic, and the booking workflow.
type DetailPage struct {
	client *gateway.Client
	dialer voice.Dialer

	assistantID string

	vehicle model.VehicleRecord
	gen     int

	diag       diagState
	prediction *model.PredictionResult
	diagErr    error

	booking    *sim.BookingFlow
	slotCursor int

	calling    bool
	callNotice string

	pulse bool
}

func NewDetailPage(client *gateway.Client, dialer voice.Dialer, assistantID string) *DetailPage {
	return &DetailPage{
		client:      client,
		dialer:      dialer,
		assistantID: assistantID,
		booking:     sim.NewBookingFlow(),
	}
}

func (p *DetailPage) ID() string    { return pageIDDetail }
func (p *DetailPage) Title() string { return "Vehicle Detail" }

// SetParams receives the vehicle from the fleet page and resets all
// per-vehicle state. Bumping the generation invalidates in-flight replies.
func (p *DetailPage) SetParams(params interface{}) {
	v, ok := params.(model.VehicleRecord)
	if !ok {
		return
	}
	p.vehicle = v
	p.gen++
	p.diag = diagIdle
	p.prediction = nil
	p.diagErr = nil
	p.booking = sim.NewBookingFlow()
	p.slotCursor = 0
	p.calling = false
	p.callNotice = ""
}

func (p *DetailPage) Init() tea.Cmd {
	return tea.Tick(xrayPulseInterval, func(time.Time) tea.Msg { return xrayPulseMsg{} })
}

// current reports whether an async reply belongs to the vehicle and run the
// page is showing now.
func (p *DetailPage) current(vehicleID string, gen int) bool {
	return vehicleID == p.vehicle.ID && gen == p.gen
}

func (p *DetailPage) runDiagnostics() tea.Cmd {
	p.diag = diagRunning
	p.diagErr = nil
	vehicleID, gen := p.vehicle.ID, p.gen

	// Healthy vehicles resolve locally: there is nothing for the model to
	// flag, so synthesize a nominal verdict after a short scan delay.
	if p.vehicle.Status == model.StatusHealthy {
		return tea.Tick(healthyDiagDelay, func(time.Time) tea.Msg {
			return predictionMsg{
				vehicleID: vehicleID,
				gen:       gen,
				result: &model.PredictionResult{
					FailureRiskScore:   2,
					IsFailurePredicted: false,
					AlertLevel:         "NOMINAL",
					Recommendation:     "All systems within nominal range.",
				},
			}
		})
	}

	client := p.client
	return func() tea.Msg {
		result, err := client.PredictFailure(context.Background(), model.DemoSnapshot)
		return predictionMsg{vehicleID: vehicleID, gen: gen, result: result, err: err}
	}
}

func (p *DetailPage) fetchSlots() tea.Cmd {
	vehicleID, gen := p.vehicle.ID, p.gen
	client := p.client
	return func() tea.Msg {
		slots, err := client.GetScheduleSlots(context.Background())
		return slotsMsg{vehicleID: vehicleID, gen: gen, slots: slots, err: err}
	}
}

func (p *DetailPage) bookSlot(slot string) tea.Cmd {
	vehicleID, gen := p.vehicle.ID, p.gen
	client := p.client
	req := model.BookingRequest{
		VehicleID: vehicleID,
		Slot:      slot,
		OwnerName: defaultOwnerName,
	}
	return func() tea.Msg {
		result, err := client.BookAppointment(context.Background(), req)
		return bookingMsg{vehicleID: vehicleID, gen: gen, result: result, err: err}
	}
}

func (p *DetailPage) startCall() tea.Cmd {
	vehicleID, gen := p.vehicle.ID, p.gen
	dialer, assistantID := p.dialer, p.assistantID
	return func() tea.Msg {
		err := dialer.Start(context.Background(), assistantID)
		return callMsg{vehicleID: vehicleID, gen: gen, err: err}
	}
}

func (p *DetailPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case xrayPulseMsg:
		p.pulse = !p.pulse
		return tea.Tick(xrayPulseInterval, func(time.Time) tea.Msg { return xrayPulseMsg{} }), nil

	case predictionMsg:
		if !p.current(msg.vehicleID, msg.gen) {
			return nil, nil
		}
		if msg.err != nil {
			p.diag = diagFailed
			p.diagErr = msg.err
			return nil, nil
		}
		p.diag = diagDone
		p.prediction = msg.result
		return nil, nil

	case slotsMsg:
		if !p.current(msg.vehicleID, msg.gen) {
			return nil, nil
		}
		// Transition errors are discarded on purpose: a reply arriving in
		// any state but loading_slots is a stale duplicate, and the FSM
		// rejecting it leaves the visible state untouched.
		ctx := context.Background()
		if msg.err != nil {
			_ = p.booking.SlotsFailed(ctx, "Could not reach the scheduling service. Press b to retry.")
			return nil, nil
		}
		_ = p.booking.SlotsLoaded(ctx, msg.slots)
		p.slotCursor = 0
		return nil, nil

	case bookingMsg:
		if !p.current(msg.vehicleID, msg.gen) {
			return nil, nil
		}
		// Same discard rule as slotsMsg: outside the booking state the
		// reply is stale and the FSM keeps the current state.
		ctx := context.Background()
		if msg.err != nil {
			_ = p.booking.BookingResult(ctx, nil)
			return nil, nil
		}
		_ = p.booking.BookingResult(ctx, msg.result)
		return nil, nil

	case callMsg:
		if !p.current(msg.vehicleID, msg.gen) {
			return nil, nil
		}
		p.calling = false
		if msg.err != nil {
			p.callNotice = "Voice call failed: " + msg.err.Error()
		} else {
			p.callNotice = "Owner briefed by voice agent."
		}
		return nil, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return nil, nil
}

func (p *DetailPage) handleKey(key tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch key.String() {
	case "esc", "q":
		return nil, &PageNav{PageID: pageIDFleet}

	case "d":
		if p.diag == diagRunning {
			return nil, nil
		}
		return p.runDiagnostics(), nil

	case "c":
		if p.calling {
			return nil, nil
		}
		p.calling = true
		p.callNotice = ""
		return p.startCall(), nil

	case "b":
		switch p.booking.State() {
		case sim.StateIdle:
			if !sim.CanStartBooking(p.prediction, p.vehicle.Status) {
				return nil, nil
			}
			if err := p.booking.FetchSlots(context.Background()); err != nil {
				return nil, nil
			}
			return p.fetchSlots(), nil
		}
		return nil, nil

	case "up", "k":
		if p.booking.State() == sim.StateSlotsVisible && p.slotCursor > 0 {
			p.slotCursor--
		}
		return nil, nil

	case "down", "j":
		if p.booking.State() == sim.StateSlotsVisible && p.slotCursor < len(p.booking.Slots())-1 {
			p.slotCursor++
		}
		return nil, nil

	case "enter":
		if p.booking.State() != sim.StateSlotsVisible {
			return nil, nil
		}
		slots := p.booking.Slots()
		if p.slotCursor >= len(slots) {
			return nil, nil
		}
		if err := p.booking.Book(context.Background()); err != nil {
			return nil, nil
		}
		return p.bookSlot(slots[p.slotCursor]), nil
	}
	return nil, nil
}

func (p *DetailPage) View(width, height int) string {
	title := fmt.Sprintf("%s  %s  %s", p.vehicle.ID, p.vehicle.Model, statusBadge(p.vehicle.Status))

	sections := []string{}
	if p.vehicle.Status == model.StatusMaintenance {
		sections = append(sections,
			noticeStyle.Render("⛭ Vehicle is in the service bay. Live telemetry suspended."))
	}
	sections = append(sections,
		renderSensorTiles(p.vehicle.Status),
		panel("Engine Temperature (last 30 min)",
			renderTemperatureChart(p.vehicle.Status, width-8, 8), false),
		p.renderDiagnostics(),
		p.renderXRayPanel(),
		p.renderBooking(),
	)
	if p.callNotice != "" {
		sections = append(sections, noticeStyle.Render(p.callNotice))
	}
	if p.calling {
		sections = append(sections, noticeStyle.Render("Calling owner via voice agent..."))
	}
	sections = append(sections, helpStyle.Render("d diagnostics  b book service  c call owner  esc back"))

	return panel(title, lipgloss.JoinVertical(lipgloss.Left, sections...), false)
}

func (p *DetailPage) renderDiagnostics() string {
	var body string
	switch p.diag {
	case diagIdle:
		body = helpStyle.Render("Press d to run AI diagnostics.")
	case diagRunning:
		body = noticeStyle.Render("Scanning telemetry channels...")
	case diagFailed:
		body = errorStyle.Render("Diagnostics failed: " + p.diagErr.Error())
		var apiErr *gateway.APIError
		if errors.As(p.diagErr, &apiErr) && apiErr.Retryable() {
			body += "\n" + helpStyle.Render("Transient network fault. Press d to retry.")
		} else {
			body += "\n" + helpStyle.Render("Press d to run again.")
		}
	case diagDone:
		r := p.prediction
		verdict := successStyle.Render(r.AlertLevel)
		if r.IsFailurePredicted {
			verdict = errorStyle.Render(r.AlertLevel)
		}
		lines := []string{
			fmt.Sprintf("Verdict: %s", verdict),
			fmt.Sprintf("Failure risk: %s", riskBar(r.FailureRiskScore, 20)),
		}
		if r.Component != "" {
			lines = append(lines, fmt.Sprintf("Suspect component: %s", r.Component))
		}
		if r.Recommendation != "" {
			lines = append(lines, r.Recommendation)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}
	return panel("AI Diagnostics", body, p.diag == diagRunning)
}

func (p *DetailPage) renderXRayPanel() string {
	var zone string
	if p.prediction != nil && p.prediction.IsFailurePredicted {
		zone = zoneForComponent(p.prediction.Component)
	}
	return panel("X-Ray View", renderXRay(zone, p.pulse), false)
}

func (p *DetailPage) renderBooking() string {
	switch p.booking.State() {
	case sim.StateIdle:
		if sim.CanStartBooking(p.prediction, p.vehicle.Status) {
			body := errorStyle.Render("High failure risk detected.") +
				"\n" + helpStyle.Render("Press b to book priority service.")
			if notice := p.booking.LastError(); notice != "" {
				body = noticeStyle.Render(notice) + "\n" + body
			}
			return panel("Priority Service", body, true)
		}
		if p.vehicle.Status == model.StatusMaintenance {
			return panel("Priority Service",
				noticeStyle.Render("Vehicle is already in the service bay."), false)
		}
		return ""

	case sim.StateLoadingSlots:
		return panel("Priority Service", noticeStyle.Render("Fetching available slots..."), true)

	case sim.StateSlotsVisible:
		slots := p.booking.Slots()
		lines := make([]string, 0, len(slots)+3)
		center := p.booking.Center()
		lines = append(lines, fmt.Sprintf("Center: %s (%s)", center.Name, center.Distance))
		if notice := p.booking.LastError(); notice != "" {
			lines = append(lines, noticeStyle.Render(notice))
		}
		if len(slots) == 0 {
			lines = append(lines, noticeStyle.Render("No open slots at this center."))
		}
		for i, slot := range slots {
			row := "  " + slot
			if i == p.slotCursor {
				row = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true).Render("> " + slot)
			}
			lines = append(lines, row)
		}
		lines = append(lines, helpStyle.Render("enter: book selected slot"))
		return panel("Priority Service", lipgloss.JoinVertical(lipgloss.Left, lines...), true)

	case sim.StateBooking:
		return panel("Priority Service", noticeStyle.Render("Confirming with the service center..."), true)

	case sim.StateConfirmed:
		body := successStyle.Render("Appointment confirmed.") +
			fmt.Sprintf("\nJob card: %s", p.booking.JobCardID())
		return panel("Priority Service", body, false)
	}
	return ""
}
