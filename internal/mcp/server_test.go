package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"productboard-mcp/internal/productboard"
)

// mockClient embeds the Client interface so each test only implements the
// methods it exercises; calls to anything else panic.
type mockClient struct {
	productboard.Client

	listFeaturesFn    func(ctx context.Context, opts productboard.ListOptions) (*productboard.Page, error)
	createFeatureFn   func(ctx context.Context, body map[string]any) (map[string]any, error)
	updateFeatureFn   func(ctx context.Context, id string, body map[string]any) (map[string]any, error)
	getFeatureFn      func(ctx context.Context, id string) (map[string]any, error)
	createNoteFn      func(ctx context.Context, body map[string]any) (map[string]any, error)
	setAssignmentFn   func(ctx context.Context, featureID, releaseID string, assigned bool) (map[string]any, error)
	updateObjectiveFn func(ctx context.Context, id string, body map[string]any) (map[string]any, error)
}

func (m *mockClient) ListFeatures(ctx context.Context, opts productboard.ListOptions) (*productboard.Page, error) {
	return m.listFeaturesFn(ctx, opts)
}

func (m *mockClient) CreateFeature(ctx context.Context, body map[string]any) (map[string]any, error) {
	return m.createFeatureFn(ctx, body)
}

func (m *mockClient) UpdateFeature(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	return m.updateFeatureFn(ctx, id, body)
}

func (m *mockClient) GetFeature(ctx context.Context, id string) (map[string]any, error) {
	return m.getFeatureFn(ctx, id)
}

func (m *mockClient) CreateNote(ctx context.Context, body map[string]any) (map[string]any, error) {
	return m.createNoteFn(ctx, body)
}

func (m *mockClient) SetFeatureReleaseAssignment(ctx context.Context, featureID, releaseID string, assigned bool) (map[string]any, error) {
	return m.setAssignmentFn(ctx, featureID, releaseID, assigned)
}

func (m *mockClient) UpdateObjective(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	return m.updateObjectiveFn(ctx, id, body)
}

func newTestServer(t *testing.T, client productboard.Client) *Server {
	t.Helper()
	return NewServer(client, "test")
}

// resultText extracts the single text block of a tool result.
func resultText(t *testing.T, result *mcpsdk.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(*mcpsdk.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

// decodeEnvelope unmarshals a tool result body.
func decodeEnvelope(t *testing.T, result *mcpsdk.CallToolResult) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &body); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	return body
}

// errorEnvelope asserts the result is the failure envelope and returns it.
func errorEnvelope(t *testing.T, result *mcpsdk.CallToolResult) map[string]any {
	t.Helper()
	if !result.IsError {
		t.Fatal("expected IsError to be set")
	}
	body := decodeEnvelope(t, result)
	detail, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected an error envelope, got %v", body)
	}
	return detail
}

func TestDispatchUnknownOperation(t *testing.T) {
	s := newTestServer(t, &mockClient{})
	result := s.Dispatch(context.Background(), "pb_explode", map[string]any{})
	detail := errorEnvelope(t, result)
	if detail["status"] != float64(400) {
		t.Errorf("status = %v, want 400", detail["status"])
	}
	if !strings.Contains(detail["message"].(string), "unknown operation") {
		t.Errorf("message = %v", detail["message"])
	}
}

func TestDispatchSuccessEnvelope(t *testing.T) {
	s := newTestServer(t, &mockClient{
		getFeatureFn: func(ctx context.Context, id string) (map[string]any, error) {
			if id != "f-1" {
				t.Errorf("id = %q", id)
			}
			return map[string]any{"data": map[string]any{"id": "f-1", "name": "Search"}}, nil
		},
	})

	result := s.Dispatch(context.Background(), "pb_get_feature", map[string]any{"id": "f-1"})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	body := decodeEnvelope(t, result)
	data, _ := body["data"].(map[string]any)
	if data["name"] != "Search" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestDispatchAPIErrorEnvelope(t *testing.T) {
	retryAfter := 3.0
	s := newTestServer(t, &mockClient{
		getFeatureFn: func(ctx context.Context, id string) (map[string]any, error) {
			return nil, &productboard.APIError{
				Message:    "Productboard rate limit exceeded",
				Status:     429,
				RetryAfter: &retryAfter,
			}
		},
	})

	result := s.Dispatch(context.Background(), "pb_get_feature", map[string]any{"id": "f-1"})
	detail := errorEnvelope(t, result)
	if detail["status"] != float64(429) {
		t.Errorf("status = %v", detail["status"])
	}
	if detail["retry_after_seconds"] != float64(3) {
		t.Errorf("retry_after_seconds = %v", detail["retry_after_seconds"])
	}
}

func TestDispatchValidationErrorEnvelope(t *testing.T) {
	s := newTestServer(t, &mockClient{})
	result := s.Dispatch(context.Background(), "pb_get_feature", map[string]any{})
	detail := errorEnvelope(t, result)
	if detail["status"] != float64(400) {
		t.Errorf("status = %v, want 400", detail["status"])
	}
	if !strings.Contains(detail["message"].(string), `missing required argument "id"`) {
		t.Errorf("message = %v", detail["message"])
	}
}

func TestCatalogCoversEveryTool(t *testing.T) {
	s := newTestServer(t, &mockClient{})

	expected := []string{
		"pb_list_products", "pb_get_product",
		"pb_list_components", "pb_get_component", "pb_create_component",
		"pb_list_features", "pb_get_feature", "pb_create_feature", "pb_update_feature", "pb_delete_feature",
		"pb_list_notes", "pb_get_note", "pb_create_note", "pb_update_note", "pb_delete_note",
		"pb_add_note_tag", "pb_remove_note_tag",
		"pb_list_releases", "pb_get_release", "pb_create_release", "pb_update_release", "pb_delete_release",
		"pb_list_release_groups", "pb_get_release_group",
		"pb_list_feature_release_assignments", "pb_set_feature_release_assignment",
		"pb_list_objectives", "pb_get_objective", "pb_create_objective", "pb_update_objective", "pb_delete_objective",
		"pb_list_objective_links", "pb_link_objective_to_feature", "pb_unlink_objective_from_feature",
		"pb_list_initiatives", "pb_get_initiative", "pb_create_initiative", "pb_update_initiative", "pb_delete_initiative",
		"pb_list_initiative_links", "pb_link_initiative_to_feature", "pb_unlink_initiative_from_feature",
		"pb_list_key_results", "pb_get_key_result", "pb_create_key_result", "pb_update_key_result", "pb_delete_key_result",
		"pb_list_companies", "pb_get_company",
		"pb_list_users", "pb_get_user", "pb_get_current_user",
		"pb_list_custom_fields", "pb_get_custom_field",
		"pb_list_custom_field_values", "pb_get_custom_field_value",
	}

	for _, name := range expected {
		if _, ok := s.ops[name]; !ok {
			t.Errorf("missing tool %s", name)
		}
	}
	if len(s.ops) != len(expected) {
		t.Errorf("catalog has %d tools, expected %d", len(s.ops), len(expected))
	}
	for name, op := range s.ops {
		if op.tool.Description == "" {
			t.Errorf("tool %s has no description", name)
		}
		if op.tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", name)
		}
	}
}
