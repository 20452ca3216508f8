package normalize

import (
	"errors"
	"reflect"
	"testing"
)

func TestStatusSpellings(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    map[string]any
		wantErr bool
	}{
		{
			name: "inline object with id",
			args: map[string]any{"status": map[string]any{"id": "st-1"}},
			want: map[string]any{"id": "st-1"},
		},
		{
			name: "inline bare name string",
			args: map[string]any{"status": "In Progress"},
			want: map[string]any{"name": "In Progress"},
		},
		{
			name: "separate status_name",
			args: map[string]any{"status_name": "Done"},
			want: map[string]any{"name": "Done"},
		},
		{
			name: "separate status_id",
			args: map[string]any{"status_id": "st-2"},
			want: map[string]any{"id": "st-2"},
		},
		{
			name:    "inline plus flat is ambiguous",
			args:    map[string]any{"status": "Done", "status_id": "st-2"},
			wantErr: true,
		},
		{
			name:    "id plus name is ambiguous",
			args:    map[string]any{"status_id": "st-2", "status_name": "Done"},
			wantErr: true,
		},
		{
			name:    "object with both id and name is ambiguous",
			args:    map[string]any{"status": map[string]any{"id": "st-1", "name": "Done"}},
			wantErr: true,
		},
		{
			name:    "object with numeric id is rejected",
			args:    map[string]any{"status": map[string]any{"id": float64(42)}},
			wantErr: true,
		},
		{
			name:    "object with numeric name is rejected",
			args:    map[string]any{"status": map[string]any{"name": float64(7)}},
			wantErr: true,
		},
		{
			name: "object with null id is absent",
			args: map[string]any{"status": map[string]any{"id": nil}},
			want: nil,
		},
		{
			name: "absent",
			args: map[string]any{},
			want: nil,
		},
		{
			name: "explicit null is absent",
			args: map[string]any{"status": nil},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Status(tt.args)
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParentResolution(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want map[string]any
	}{
		{
			name: "nested parent object",
			args: map[string]any{"parent": map[string]any{"component": map[string]any{"id": "c-1"}}},
			want: map[string]any{"component": map[string]any{"id": "c-1"}},
		},
		{
			name: "dotted key inside parent",
			args: map[string]any{"parent": map[string]any{"product.id": "p-1"}},
			want: map[string]any{"product": map[string]any{"id": "p-1"}},
		},
		{
			name: "dotted key at top level",
			args: map[string]any{"component.id": "c-2"},
			want: map[string]any{"component": map[string]any{"id": "c-2"}},
		},
		{
			name: "flat alias parent_feature_id maps to feature",
			args: map[string]any{"parent_feature_id": "f-9"},
			want: map[string]any{"feature": map[string]any{"id": "f-9"}},
		},
		{
			name: "no parent",
			args: map[string]any{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parent(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParentConflict(t *testing.T) {
	_, err := Parent(map[string]any{"product_id": "p-1", "component_id": "c-1"})
	if err == nil {
		t.Fatal("expected an error for two parent kinds")
	}
	want := "choose one parent type: got component and product"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestRequireParent(t *testing.T) {
	if _, err := RequireParent(map[string]any{}); err == nil {
		t.Error("expected an error when no parent resolves")
	}
	parent, err := RequireParent(map[string]any{"product_id": "p-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := parent["product"]; !ok {
		t.Errorf("expected a product parent, got %v", parent)
	}
}

func TestDateRangeSymmetry(t *testing.T) {
	if _, err := DateRange(map[string]any{"start_date": "2026-01-01"}); err == nil {
		t.Error("expected an error when only start_date is given")
	}
	if _, err := DateRange(map[string]any{"timeframe": map[string]any{"endDate": "2026-03-31"}}); err == nil {
		t.Error("expected an error when only endDate is given")
	}

	got, err := DateRange(map[string]any{"start_date": "2026-01-01", "end_date": "2026-03-31"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"startDate": "2026-01-01", "endDate": "2026-03-31"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDateRangeGranularityAlone(t *testing.T) {
	got, err := DateRange(map[string]any{"granularity": "quarter"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"granularity": "quarter"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDateRangeAbsent(t *testing.T) {
	got, err := DateRange(map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestProgress(t *testing.T) {
	got, err := Progress(map[string]any{
		"progress": map[string]any{"startValue": float64(0), "targetValue": float64(100)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"startValue": float64(0), "targetValue": float64(100)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = Progress(map[string]any{"current_value": "42.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["currentValue"] != 42.5 {
		t.Errorf("numeric string should coerce, got %v", got)
	}

	got, err = Progress(map[string]any{"progress": float64(60)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["progress"] != float64(60) {
		t.Errorf("bare progress scalar should map to progress, got %v", got)
	}

	if _, err := Progress(map[string]any{"target_value": "not-a-number"}); err == nil {
		t.Error("expected an error for a non-numeric value")
	}

	got, err = Progress(map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil when no progress fields resolve, got %v", got)
	}
}

func TestTags(t *testing.T) {
	got, err := Tags("a, b ,,c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = Tags([]any{"x", "y", "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"x", "y", "x"}) {
		t.Errorf("duplicates must be kept, got %v", got)
	}

	if _, err := Tags([]any{"x", 3.0}); err == nil {
		t.Error("expected an error for a non-string tag")
	}
	if _, err := Tags(42.0); err == nil {
		t.Error("expected an error for a numeric tags value")
	}
}

func TestBool(t *testing.T) {
	trueValues := []any{true, float64(1), "1", "true"}
	for _, v := range trueValues {
		got, err := Bool(v)
		if err != nil || !got {
			t.Errorf("Bool(%v) = %v, %v; want true", v, got, err)
		}
	}
	falseValues := []any{false, float64(0), "0", "false"}
	for _, v := range falseValues {
		got, err := Bool(v)
		if err != nil || got {
			t.Errorf("Bool(%v) = %v, %v; want false", v, got, err)
		}
	}
	for _, v := range []any{"yes", float64(2), nil, "TRUE"} {
		if _, err := Bool(v); err == nil {
			t.Errorf("Bool(%v) should fail", v)
		}
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten(map[string]any{
		"a": map[string]any{
			"b": float64(1),
			"c": []any{float64(2), float64(3)},
		},
		"d": nil,
	})
	want := map[string]string{
		"a.b": "1",
		"a.c": "2,3",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFlattenScalars(t *testing.T) {
	got := Flatten(map[string]any{
		"archived": true,
		"owner":    map[string]any{"email": "pm@example.com"},
		"score":    float64(2.5),
	})
	want := map[string]string{
		"archived":    "true",
		"owner.email": "pm@example.com",
		"score":       "2.5",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUpdateAccumulator(t *testing.T) {
	u := NewUpdate()
	if _, err := u.Fields(); err == nil {
		t.Error("expected an error when no fields were set")
	}

	u.Set("owner", nil)
	u.SetFrom(map[string]any{"name": "renamed"}, "name")
	u.SetFrom(map[string]any{}, "description")

	fields, err := u.Fields()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %v", fields)
	}
	if v, ok := fields["owner"]; !ok || v != nil {
		t.Errorf("owner should be present and nil, got %v", fields)
	}
	if fields["name"] != "renamed" {
		t.Errorf("name not carried: %v", fields)
	}
}

func TestTimeframe(t *testing.T) {
	if Timeframe(map[string]any{}) != nil {
		t.Error("expected nil for no timeframe inputs")
	}
	got := Timeframe(map[string]any{"timeframe": map[string]any{"start": "2026-01", "end": "2026-02"}})
	want := map[string]any{"start": "2026-01", "end": "2026-02"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	got = Timeframe(map[string]any{"start": "2026-03"})
	if !reflect.DeepEqual(got, map[string]any{"start": "2026-03"}) {
		t.Errorf("flat scalars should pass through, got %v", got)
	}
}
