package productboard

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
)

// APIError is the classified form of every failure the client can produce:
// configuration errors (blank token), transport failures (no status) and
// non-2xx responses. RetryAfter is only populated for 429 responses whose
// Retry-After header parses as a finite number of seconds.
type APIError struct {
	Message    string   `json:"message"`
	Status     int      `json:"status,omitempty"`
	RetryAfter *float64 `json:"retry_after_seconds,omitempty"`
	Details    any      `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// transportError wraps a network-level failure (DNS, refused connection,
// timeout). It carries no HTTP status and is never retried here; retrying is
// the caller's decision.
func transportError(err error) *APIError {
	return &APIError{
		Message: fmt.Sprintf("network error talking to Productboard: %v", err),
		Details: err.Error(),
	}
}

// classifyResponse converts a non-2xx response into an APIError. payload is
// the decoded JSON body (nil when the body was not JSON); raw is the body
// text kept as fallback detail.
func classifyResponse(status int, retryAfter string, payload any, raw string) *APIError {
	apiErr := &APIError{Status: status}
	if payload != nil {
		apiErr.Details = payload
	} else if raw != "" {
		apiErr.Details = raw
	}

	switch status {
	case http.StatusUnauthorized:
		apiErr.Message = "Productboard authentication failed: check PRODUCTBOARD_API_TOKEN"
	case http.StatusForbidden:
		apiErr.Message = "access denied: the token does not permit this operation"
	case http.StatusNotFound:
		apiErr.Message = "resource not found"
	case http.StatusTooManyRequests:
		apiErr.Message = "Productboard rate limit exceeded"
		if secs, err := strconv.ParseFloat(retryAfter, 64); err == nil && !math.IsInf(secs, 0) && !math.IsNaN(secs) {
			apiErr.RetryAfter = &secs
		}
	default:
		if msg, ok := payloadMessage(payload); ok {
			apiErr.Message = msg
		} else if raw != "" && payload == nil {
			apiErr.Message = raw
		} else {
			apiErr.Message = fmt.Sprintf("Productboard API returned status %d", status)
		}
	}

	return apiErr
}

// payloadMessage probes the error payload shapes Productboard uses, in order:
// a top-level "message" string, an "error.message" string, or the first
// element of an "errors" array (a string, or an object carrying "message" or
// "detail").
func payloadMessage(payload any) (string, bool) {
	body, ok := payload.(map[string]any)
	if !ok {
		return "", false
	}

	if msg, ok := body["message"].(string); ok && msg != "" {
		return msg, true
	}
	if errObj, ok := body["error"].(map[string]any); ok {
		if msg, ok := errObj["message"].(string); ok && msg != "" {
			return msg, true
		}
	}
	if errs, ok := body["errors"].([]any); ok && len(errs) > 0 {
		switch first := errs[0].(type) {
		case string:
			if first != "" {
				return first, true
			}
		case map[string]any:
			if msg, ok := first["message"].(string); ok && msg != "" {
				return msg, true
			}
			if msg, ok := first["detail"].(string); ok && msg != "" {
				return msg, true
			}
		}
	}
	return "", false
}
