// Package gateway wraps the four REST operations the dashboard consumes.
//
// The backend contract is plain HTTP/JSON. Every operation returns either a
// decoded payload or an *APIError tagged with the failure kind; callers must
// surface failures as retryable page state, never crash.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/autocare-ai/autocare/internal/model"
)

// Client issues requests against the AutoCare backend API.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a gateway client for the given base URL. An empty base
// URL falls back to the default local backend.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = model.DefaultAPIBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: model.DefaultRequestTimeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PredictFailure runs the failure model on one telemetry snapshot.
func (c *Client) PredictFailure(ctx context.Context, snapshot model.TelemetrySnapshot) (*model.PredictionResult, error) {
	var result model.PredictionResult
	if err := c.post(ctx, "predict", "/predict", snapshot, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// insightsEnvelope is the wire shape of /api/insights.
type insightsEnvelope struct {
	Status      string            `json:"status"`
	InsightCard model.InsightCard `json:"insight_card"`
}

// GetInsights fetches the manufacturing-insights card.
//
// The backend historically exposed both /insights and /api/insights; this
// client uses /api/insights, the richer dynamic endpoint.
func (c *Client) GetInsights(ctx context.Context) (*model.InsightCard, error) {
	var envelope insightsEnvelope
	if err := c.get(ctx, "insights", "/api/insights", &envelope); err != nil {
		return nil, err
	}
	if envelope.Status != "success" {
		return nil, &APIError{
			Kind: KindStatus,
			Op:   "insights",
			Err:  errors.Errorf("insights payload status %q", envelope.Status),
		}
	}
	return &envelope.InsightCard, nil
}

// GetScheduleSlots queries the open service-bay slots.
func (c *Client) GetScheduleSlots(ctx context.Context) (*model.ScheduleSlots, error) {
	var slots model.ScheduleSlots
	if err := c.get(ctx, "slots", "/api/schedule/slots", &slots); err != nil {
		return nil, err
	}
	return &slots, nil
}

// BookAppointment locks one slot. A reply with status other than "confirmed"
// is returned to the caller, not converted into an error: the booking flow
// treats it as a non-fatal failure and stays retryable.
func (c *Client) BookAppointment(ctx context.Context, req model.BookingRequest) (*model.BookingConfirmation, error) {
	var confirmation model.BookingConfirmation
	if err := c.post(ctx, "book", "/api/schedule/book", req, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

// get issues a GET with exactly one retry on transport failure. GETs are
// idempotent here; POSTs never retry.
func (c *Client) get(ctx context.Context, op, path string, dest interface{}) error {
	err := c.do(ctx, op, http.MethodGet, path, nil, dest)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindTransport && ctx.Err() == nil {
		c.log.Debug().Str("op", op).Err(err).Msg("retrying idempotent GET after transport failure")
		return c.do(ctx, op, http.MethodGet, path, nil, dest)
	}
	return err
}

func (c *Client) post(ctx context.Context, op, path string, body, dest interface{}) error {
	return c.do(ctx, op, http.MethodPost, path, body, dest)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindDecode, Op: op, Err: errors.Wrap(err, "marshal request")}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Kind: KindTransport, Op: op, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for the diagnostic log, then discard.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Bytes("body", snippet).Msg("backend returned non-2xx")
		return &APIError{
			Kind:       KindStatus,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("unexpected status %s", resp.Status),
		}
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &APIError{Kind: KindDecode, Op: op, Err: errors.Wrap(err, "decode response")}
	}
	return nil
}
