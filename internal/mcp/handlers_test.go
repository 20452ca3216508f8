package mcp

import (
	"context"
	"strings"
	"testing"

	"productboard-mcp/internal/productboard"
)

func emptyPage() *productboard.Page {
	return &productboard.Page{Data: []any{}}
}

func TestListFeaturesBuildsQuery(t *testing.T) {
	var captured productboard.ListOptions
	s := newTestServer(t, &mockClient{
		listFeaturesFn: func(ctx context.Context, opts productboard.ListOptions) (*productboard.Page, error) {
			captured = opts
			return emptyPage(), nil
		},
	})

	result := s.Dispatch(context.Background(), "pb_list_features", map[string]any{
		"status_name": "In Progress",
		"owner_email": "pm@example.com",
		"archived":    "false",
		"product_id":  "p-1",
		"limit":       float64(2500),
		"filter":      map[string]any{"owner": map[string]any{"email": "ignored@example.com"}},
	})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, result))
	}

	if captured.Limit != productboard.MaxLimit {
		t.Errorf("limit = %d, want the %d cap", captured.Limit, productboard.MaxLimit)
	}
	want := map[string]string{
		"status.name": "In Progress",
		"owner.email": "pm@example.com",
		"archived":    "false",
		"product.id":  "p-1",
	}
	for key, value := range want {
		if captured.Query[key] != value {
			t.Errorf("query[%s] = %q, want %q", key, captured.Query[key], value)
		}
	}
	// the convenience spelling wins over the free-form filter
	if captured.Query["owner.email"] != "pm@example.com" {
		t.Errorf("owner.email = %q", captured.Query["owner.email"])
	}
}

func TestListFeaturesRejectsBadArchived(t *testing.T) {
	s := newTestServer(t, &mockClient{
		listFeaturesFn: func(ctx context.Context, opts productboard.ListOptions) (*productboard.Page, error) {
			t.Fatal("client must not be called")
			return nil, nil
		},
	})
	result := s.Dispatch(context.Background(), "pb_list_features", map[string]any{"archived": "maybe"})
	detail := errorEnvelope(t, result)
	if detail["status"] != float64(400) {
		t.Errorf("status = %v, want 400", detail["status"])
	}
}

func TestCreateFeatureRequiresOneParent(t *testing.T) {
	s := newTestServer(t, &mockClient{
		createFeatureFn: func(ctx context.Context, body map[string]any) (map[string]any, error) {
			t.Fatal("client must not be called")
			return nil, nil
		},
	})

	result := s.Dispatch(context.Background(), "pb_create_feature", map[string]any{"name": "Search"})
	detail := errorEnvelope(t, result)
	if !strings.Contains(detail["message"].(string), "parent is required") {
		t.Errorf("message = %v", detail["message"])
	}

	result = s.Dispatch(context.Background(), "pb_create_feature", map[string]any{
		"name":         "Search",
		"product_id":   "p-1",
		"component_id": "c-1",
	})
	detail = errorEnvelope(t, result)
	if !strings.Contains(detail["message"].(string), "choose one parent type") {
		t.Errorf("message = %v", detail["message"])
	}
}

func TestCreateFeatureBody(t *testing.T) {
	var captured map[string]any
	s := newTestServer(t, &mockClient{
		createFeatureFn: func(ctx context.Context, body map[string]any) (map[string]any, error) {
			captured = body
			return map[string]any{"data": map[string]any{"id": "f-1"}}, nil
		},
	})

	result := s.Dispatch(context.Background(), "pb_create_feature", map[string]any{
		"name":              "Search",
		"parent_feature_id": "f-0",
		"status_name":       "Candidate",
		"owner_email":       "pm@example.com",
	})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, result))
	}

	parent, _ := captured["parent"].(map[string]any)
	feature, _ := parent["feature"].(map[string]any)
	if feature["id"] != "f-0" {
		t.Errorf("parent = %v", captured["parent"])
	}
	status, _ := captured["status"].(map[string]any)
	if status["name"] != "Candidate" {
		t.Errorf("status = %v", captured["status"])
	}
	owner, _ := captured["owner"].(map[string]any)
	if owner["email"] != "pm@example.com" {
		t.Errorf("owner = %v", captured["owner"])
	}
}

func TestUpdateFeatureOwnerPresence(t *testing.T) {
	var captured map[string]any
	s := newTestServer(t, &mockClient{
		updateFeatureFn: func(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
			captured = body
			return map[string]any{"data": map[string]any{"id": id}}, nil
		},
	})

	// explicit empty string clears the owner
	result := s.Dispatch(context.Background(), "pb_update_feature", map[string]any{
		"id":          "f-1",
		"owner_email": "",
	})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, result))
	}
	if v, ok := captured["owner"]; !ok || v != nil {
		t.Errorf("owner should be present and nil, got %v", captured)
	}

	// absent key leaves the owner untouched
	result = s.Dispatch(context.Background(), "pb_update_feature", map[string]any{
		"id":   "f-1",
		"name": "Renamed",
	})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, result))
	}
	if _, ok := captured["owner"]; ok {
		t.Errorf("owner must not appear when owner_email is absent, got %v", captured)
	}
	if captured["name"] != "Renamed" {
		t.Errorf("name = %v", captured["name"])
	}
}

func TestUpdateFeatureRejectsNonStringOwner(t *testing.T) {
	s := newTestServer(t, &mockClient{
		updateFeatureFn: func(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
			t.Fatal("client must not be called")
			return nil, nil
		},
	})

	result := s.Dispatch(context.Background(), "pb_update_feature", map[string]any{
		"id":          "f-1",
		"owner_email": float64(42),
	})
	detail := errorEnvelope(t, result)
	if detail["status"] != float64(400) {
		t.Errorf("status = %v, want 400", detail["status"])
	}
	if !strings.Contains(detail["message"].(string), "owner_email") {
		t.Errorf("message = %v", detail["message"])
	}
}

func TestUpdateObjectiveOwnerPresence(t *testing.T) {
	var captured map[string]any
	s := newTestServer(t, &mockClient{
		updateObjectiveFn: func(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
			captured = body
			return map[string]any{"data": map[string]any{"id": id}}, nil
		},
	})

	result := s.Dispatch(context.Background(), "pb_update_objective", map[string]any{
		"id":          "o-1",
		"owner_email": "",
	})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, result))
	}
	if v, ok := captured["owner"]; !ok || v != nil {
		t.Errorf("owner should be present and nil, got %v", captured)
	}

	result = s.Dispatch(context.Background(), "pb_update_objective", map[string]any{
		"id":          "o-1",
		"owner_email": true,
	})
	detail := errorEnvelope(t, result)
	if detail["status"] != float64(400) {
		t.Errorf("status = %v, want 400", detail["status"])
	}
	if !strings.Contains(detail["message"].(string), "owner_email") {
		t.Errorf("message = %v", detail["message"])
	}
}

func TestUpdateFeatureNoFields(t *testing.T) {
	s := newTestServer(t, &mockClient{
		updateFeatureFn: func(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
			t.Fatal("client must not be called")
			return nil, nil
		},
	})
	result := s.Dispatch(context.Background(), "pb_update_feature", map[string]any{"id": "f-1"})
	detail := errorEnvelope(t, result)
	if !strings.Contains(detail["message"].(string), "no update fields") {
		t.Errorf("message = %v", detail["message"])
	}
}

func TestCreateNoteBody(t *testing.T) {
	var captured map[string]any
	s := newTestServer(t, &mockClient{
		createNoteFn: func(ctx context.Context, body map[string]any) (map[string]any, error) {
			captured = body
			return map[string]any{"data": map[string]any{"id": "n-1"}}, nil
		},
	})

	result := s.Dispatch(context.Background(), "pb_create_note", map[string]any{
		"title":      "Call with Acme",
		"content":    "<p>wants SSO</p>",
		"user_email": "buyer@acme.com",
		"tags":       "churn-risk, enterprise",
	})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, result))
	}

	if captured["title"] != "Call with Acme" {
		t.Errorf("title = %v", captured["title"])
	}
	user, _ := captured["user"].(map[string]any)
	if user["email"] != "buyer@acme.com" {
		t.Errorf("user = %v", captured["user"])
	}
	tags, _ := captured["tags"].([]string)
	if len(tags) != 2 || tags[0] != "churn-risk" || tags[1] != "enterprise" {
		t.Errorf("tags = %v", captured["tags"])
	}
}

func TestSetAssignmentRequiresBooleanIsh(t *testing.T) {
	var gotAssigned bool
	s := newTestServer(t, &mockClient{
		setAssignmentFn: func(ctx context.Context, featureID, releaseID string, assigned bool) (map[string]any, error) {
			gotAssigned = assigned
			return map[string]any{"data": map[string]any{"assigned": assigned}}, nil
		},
	})

	result := s.Dispatch(context.Background(), "pb_set_feature_release_assignment", map[string]any{
		"feature_id": "f-1",
		"release_id": "r-1",
		"assigned":   "1",
	})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(t, result))
	}
	if !gotAssigned {
		t.Error(`assigned "1" should coerce to true`)
	}

	result = s.Dispatch(context.Background(), "pb_set_feature_release_assignment", map[string]any{
		"feature_id": "f-1",
		"release_id": "r-1",
	})
	if detail := errorEnvelope(t, result); detail["status"] != float64(400) {
		t.Errorf("missing assigned should be a validation error, got %v", detail)
	}
}
