package gateway

import "fmt"

// ErrorKind classifies gateway failures so pages can branch on the failure
// class instead of sniffing response shapes.
type ErrorKind int

const (
	// KindTransport covers network-level failures: dial, timeout, broken body.
	KindTransport ErrorKind = iota
	// KindStatus covers non-2xx responses and non-success payload statuses.
	KindStatus
	// KindDecode covers malformed or unparseable response bodies.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// APIError is the tagged failure type returned by every gateway operation.
// No APIError is fatal; callers revert to a well-defined prior page state.
type APIError struct {
	Kind       ErrorKind
	Op         string // "predict", "insights", "slots", "book"
	StatusCode int    // set for KindStatus from HTTP responses
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway: %s: %s failure (http %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("gateway: %s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// Retryable reports whether retrying the same call can succeed. Only
// transport failures qualify; status and decode failures are deterministic.
func (e *APIError) Retryable() bool { return e.Kind == KindTransport }
