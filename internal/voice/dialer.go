// Package voice is the boundary to the third-party voice-call service that
// contacts vehicle owners. The SDK itself stays external; only the
// assistant-identifier contract and the start-call operation are modeled.
package voice

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Dialer starts an outbound assistant call to the registered owner.
type Dialer interface {
	Start(ctx context.Context, assistantID string) error
}

// StubDialer stands in for the real voice service in demos and tests. It
// succeeds when an assistant ID is configured and fails otherwise, which is
// also how a missing production credential surfaces.
type StubDialer struct {
	log zerolog.Logger
}

// NewStubDialer creates a stub dialer.
func NewStubDialer(log zerolog.Logger) *StubDialer {
	return &StubDialer{log: log}
}

// Start begins a simulated call.
func (d *StubDialer) Start(_ context.Context, assistantID string) error {
	if assistantID == "" {
		return errors.New("voice: no assistant ID configured")
	}
	d.log.Info().Str("assistant_id", assistantID).Msg("starting simulated owner call")
	return nil
}
