package mcp

import (
	"encoding/json"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"productboard-mcp/internal/normalize"
	"productboard-mcp/internal/productboard"
)

// errorBody is the uniform failure envelope every tool call returns.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message           string   `json:"message"`
	Status            int      `json:"status,omitempty"`
	RetryAfterSeconds *float64 `json:"retry_after_seconds,omitempty"`
	Details           any      `json:"details,omitempty"`
}

// successResult renders data as an indented JSON text block.
func successResult(data any) *mcpsdk.CallToolResult {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errorResult(err)
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(encoded)}},
	}
}

// errorResult classifies err into the failure envelope. Validation errors map
// to status 400; API errors carry their own status and retry hint through.
func errorResult(err error) *mcpsdk.CallToolResult {
	detail := errorDetail{Message: err.Error()}

	var verr *normalize.ValidationError
	var apiErr *productboard.APIError
	switch {
	case errors.As(err, &verr):
		detail.Message = verr.Message
		detail.Status = 400
	case errors.As(err, &apiErr):
		detail.Message = apiErr.Message
		detail.Status = apiErr.Status
		detail.RetryAfterSeconds = apiErr.RetryAfter
		detail.Details = apiErr.Details
	}

	encoded, marshalErr := json.MarshalIndent(errorBody{Error: detail}, "", "  ")
	if marshalErr != nil {
		encoded = []byte(`{"error":{"message":"failed to encode error"}}`)
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(encoded)}},
		IsError: true,
	}
}
