package slack

import (
	"errors"
	"fmt"

	"github.com/boqier/slack-mcp-server/pkg/config"
)

// ErrNotConfigured is returned when the credential for the active mode is
// missing from the configuration.
var ErrNotConfigured = errors.New("not configured")

// Kind classifies how an outbound request failed.
type Kind int

const (
	// KindRequest means the request could not be built or sent.
	KindRequest Kind = iota
	// KindNoResponse means the request went out but nothing came back
	// (timeout, connection reset, DNS failure and so on).
	KindNoResponse
	// KindResponse means Slack answered with something other than success.
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNoResponse:
		return "no_response"
	case KindResponse:
		return "response"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// RequestError describes a failed post to Slack.
type RequestError struct {
	Mode config.Mode
	Kind Kind
	// StatusCode and Detail are set for KindResponse. Detail is the
	// provider's error text, or the HTTP status text when there is none.
	StatusCode int
	Detail     string
	Err        error
}

func (e *RequestError) Error() string {
	prefix := fmt.Sprintf("slack %s request failed", e.Mode)
	switch e.Kind {
	case KindResponse:
		return fmt.Sprintf("%s: %d %s", prefix, e.StatusCode, e.Detail)
	case KindNoResponse:
		if e.Err != nil {
			return fmt.Sprintf("%s: no response received (%v)", prefix, e.Err)
		}
		return prefix + ": no response received"
	default:
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
}

func (e *RequestError) Unwrap() error { return e.Err }
