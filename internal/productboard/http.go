package productboard

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// apiVersion is the fixed X-Version header Productboard requires.
const apiVersion = "1"

// request describes one outbound call. Path is resolved against the base URL;
// URL, when set, is a continuation link used verbatim (continuation requests
// never merge query parameters).
type request struct {
	method string
	path   string
	url    string
	query  map[string]string
	body   any
}

func (c *apiClient) do(ctx context.Context, req request) (map[string]any, error) {
	token := strings.TrimSpace(c.token())
	if token == "" {
		return nil, &APIError{
			Status:  http.StatusUnauthorized,
			Message: "PRODUCTBOARD_API_TOKEN is not set",
		}
	}

	target := req.url
	if target == "" {
		target = c.baseURL + "/" + strings.TrimLeft(req.path, "/")
	} else if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		// links.next may be relative to the API host
		target = c.baseURL + "/" + strings.TrimLeft(target, "/")
	}

	if len(req.query) > 0 {
		values := url.Values{}
		for key, value := range req.query {
			if value == "" {
				continue
			}
			values.Set(key, value)
		}
		if encoded := values.Encode(); encoded != "" {
			target += "?" + encoded
		}
	}

	var bodyReader io.Reader
	if req.body != nil {
		encoded, err := json.Marshal(req.body)
		if err != nil {
			return nil, &APIError{Message: "failed to encode request body", Details: err.Error()}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, bodyReader)
	if err != nil {
		return nil, &APIError{Message: "failed to build request", Details: err.Error()}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("X-Version", apiVersion)
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", req.method).Str("url", target).Msg("Productboard request")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	var payload any
	text := strings.TrimSpace(string(raw))
	if text != "" {
		if err := json.Unmarshal(raw, &payload); err != nil {
			// keep the raw text; it becomes the error detail below
			payload = nil
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := classifyResponse(resp.StatusCode, resp.Header.Get("Retry-After"), payload, text)
		log.Debug().Int("status", resp.StatusCode).Str("url", target).Msg("Productboard error response")
		return nil, apiErr
	}

	switch body := payload.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return body, nil
	default:
		return map[string]any{"data": body}, nil
	}
}
