package sim

import (
	"math/rand"
	"time"

	"github.com/autocare-ai/autocare/internal/model"
)

// ConsoleTickInterval paces the idle log stream.
const ConsoleTickInterval = 800 * time.Millisecond

// idlePool is the fixed set of routine agent activity lines.
var idlePool = []model.LogEntry{
	{Agent: model.AgentDataFetcher, Action: "Querying sensor API...", Type: model.LogNormal},
	{Agent: model.AgentScheduler, Action: "Checking availability slots...", Type: model.LogNormal},
	{Agent: model.AgentVoiceBot, Action: "Processing user intent...", Type: model.LogNormal},
	{Agent: model.AgentDataFetcher, Action: "Telemetry packet received.", Type: model.LogNormal},
	{Agent: model.AgentMaster, Action: "Orchestrating workflow ID: #8821", Type: model.LogNormal},
}

// Console simulates the agent security stream: routine log ticks, a scripted
// attack sequence, and the resolve flow. The log is ring-buffered to the
// configured cap; oldest entries drop first, the newest entry is always last.
type Console struct {
	maxEntries  int
	logs        []model.LogEntry
	underAttack bool
	details     *model.AttackDetails

	now  func() time.Time
	rand func(n int) int
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithClock overrides the timestamp source (tests).
func WithClock(now func() time.Time) ConsoleOption {
	return func(c *Console) { c.now = now }
}

// WithRand overrides the idle-pool picker (tests).
func WithRand(pick func(n int) int) ConsoleOption {
	return func(c *Console) { c.rand = pick }
}

// NewConsole creates a console engine. maxEntries <= 0 uses the default cap.
func NewConsole(maxEntries int, opts ...ConsoleOption) *Console {
	if maxEntries <= 0 {
		maxEntries = model.DefaultConsoleBuffer
	}
	c := &Console{
		maxEntries: maxEntries,
		now:        time.Now,
		rand:       rand.Intn,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logs returns the current entries, oldest first.
func (c *Console) Logs() []model.LogEntry {
	return append([]model.LogEntry(nil), c.logs...)
}

// UnderAttack reports whether an attack simulation is in progress.
func (c *Console) UnderAttack() bool { return c.underAttack }

// AttackDetails returns the detected-incident record, nil until the attack
// script completes and after Resolve.
func (c *Console) AttackDetails() *model.AttackDetails { return c.details }

// Append adds one entry, dropping the oldest when the buffer is full.
func (c *Console) Append(agent model.Agent, action string, typ model.LogType) {
	entry := model.LogEntry{
		Timestamp: c.now(),
		Agent:     agent,
		Action:    action,
		Type:      typ,
	}
	c.logs = append(c.logs, entry)
	if overflow := len(c.logs) - c.maxEntries; overflow > 0 {
		c.logs = c.logs[overflow:]
	}
}

// AppendRandom appends one routine line from the idle pool. It is a no-op
// while an attack is in progress: the idle stream pauses during an attack.
func (c *Console) AppendRandom() {
	if c.underAttack {
		return
	}
	entry := idlePool[c.rand(len(idlePool))]
	c.Append(entry.Agent, entry.Action, entry.Type)
}

// Console script events.
type (
	attackWarning    struct{}
	attackEscalation struct{}
	attackDetected   struct{}
	agentReinstated  struct{}
)

func (attackWarning) event()    {}
func (attackEscalation) event() {}
func (attackDetected) event()   {}
func (agentReinstated) event()  {}

// TriggerAttack starts the scripted attack sequence. It is idempotent while
// an attack is already in progress: the second call schedules nothing.
func (c *Console) TriggerAttack() []Step {
	if c.underAttack {
		return nil
	}
	c.underAttack = true
	c.details = nil
	return []Step{
		{After: 500 * time.Millisecond, Event: attackWarning{}},
		{After: 1200 * time.Millisecond, Event: attackEscalation{}},
		{After: 2000 * time.Millisecond, Event: attackDetected{}},
	}
}

// Resolve clears the incident, logs the context reset immediately, and
// schedules the reinstatement line.
func (c *Console) Resolve() []Step {
	c.underAttack = false
	c.details = nil
	c.Append(model.AgentUEBA, "Security Protocol: Resetting Agent Context...", model.LogSystem)
	return []Step{
		{After: time.Second, Event: agentReinstated{}},
	}
}

// Apply executes one scheduled console event.
func (c *Console) Apply(ev Event) {
	switch ev.(type) {
	case attackWarning:
		c.Append(model.AgentVoiceBot, "GET /admin/users - 401 Unauthorized", model.LogWarning)
	case attackEscalation:
		c.Append(model.AgentVoiceBot, "Attempting Privilege Escalation...", model.LogError)
	case attackDetected:
		// The trigger may have been resolved before the script finished.
		if !c.underAttack {
			return
		}
		c.Append(model.AgentUEBA, "MALICIOUS BEHAVIOR DETECTED: Voice Bot", model.LogCritical)
		c.details = &model.AttackDetails{
			Type:        "Unauthorized API Access",
			Description: "Agent attempted to reach restricted /admin endpoint.",
			Action:      "Workflow Terminated",
		}
	case agentReinstated:
		c.Append(model.AgentMaster, "Voice Bot reinstated with restricted permissions.", model.LogSuccess)
	}
}
