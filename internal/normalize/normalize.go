// Package normalize reconciles the loosely-typed argument bags arriving from
// the tool host into the canonical shapes the Productboard API expects. Each
// logical field has one pure extraction function; conflicting spellings are
// rejected here, before any request is issued.
package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValidationError marks a caller mistake (ambiguous, conflicting or missing
// arguments). It never reaches the remote API and is surfaced with status 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Errorf builds a ValidationError from a format string.
func Errorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// String returns the string form of a scalar argument. Empty strings count as
// absent so that optional filters can be passed through untouched by hosts
// that always send every declared property.
func String(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Object returns v as a generic map when it is one.
func Object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Number coerces v into a float64. JSON numbers arrive as float64; numeric
// strings are accepted too since hosts frequently stringify everything.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Status reconciles the three accepted spellings of a feature status: an
// inline object {id,name}, a bare name string, or the separate status_id /
// status_name scalars. Exactly one spelling may be used.
func Status(args map[string]any) (map[string]any, error) {
	id, hasID := String(args["status_id"])
	name, hasName := String(args["status_name"])

	inline, hasInline := args["status"]
	if hasInline && inline == nil {
		hasInline = false
	}

	if hasInline && (hasID || hasName) {
		return nil, Errorf("ambiguous status: provide either 'status' or 'status_id'/'status_name', not both")
	}
	if hasID && hasName {
		return nil, Errorf("ambiguous status: provide 'status_id' or 'status_name', not both")
	}

	if hasInline {
		switch s := inline.(type) {
		case string:
			if s == "" {
				return nil, nil
			}
			return map[string]any{"name": s}, nil
		case map[string]any:
			oid, okID, err := statusField(s, "id")
			if err != nil {
				return nil, err
			}
			oname, okName, err := statusField(s, "name")
			if err != nil {
				return nil, err
			}
			if okID && okName {
				return nil, Errorf("ambiguous status: the status object must carry 'id' or 'name', not both")
			}
			if okID {
				return map[string]any{"id": oid}, nil
			}
			if okName {
				return map[string]any{"name": oname}, nil
			}
			return nil, nil
		default:
			return nil, Errorf("invalid status: expected an object or a name string")
		}
	}

	if hasID {
		return map[string]any{"id": id}, nil
	}
	if hasName {
		return map[string]any{"name": name}, nil
	}
	return nil, nil
}

// statusField reads one field of the inline status object. Absent, null and
// empty values count as unset; anything else that is not a string is rejected
// rather than dropped, so a create never proceeds without the status the
// caller asked for.
func statusField(obj map[string]any, key string) (string, bool, error) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, Errorf("invalid status: %q must be a string", key)
	}
	if s == "" {
		return "", false, nil
	}
	return s, true, nil
}

// parentKinds in the order they are reported in validation messages.
var parentKinds = []string{"product", "component", "feature"}

// parentAliases maps each parent kind to its flat top-level alias.
var parentAliases = map[string]string{
	"product":   "product_id",
	"component": "component_id",
	"feature":   "parent_feature_id",
}

// resolveParentKind applies the ordered extraction rules for one parent kind:
// nested object under 'parent', dotted key inside 'parent', dotted key at the
// top level, flat alias at the top level.
func resolveParentKind(args map[string]any, kind string) (string, bool) {
	if parent, ok := Object(args["parent"]); ok {
		if obj, ok := Object(parent[kind]); ok {
			if id, ok := String(obj["id"]); ok {
				return id, true
			}
		}
		if id, ok := String(parent[kind+".id"]); ok {
			return id, true
		}
	}
	if id, ok := String(args[kind+".id"]); ok {
		return id, true
	}
	if id, ok := String(args[parentAliases[kind]]); ok {
		return id, true
	}
	return "", false
}

// Parent resolves the hierarchy parent of a feature. At most one of the three
// parent kinds may resolve; more than one is a conflict.
func Parent(args map[string]any) (map[string]any, error) {
	resolved := map[string]string{}
	for _, kind := range parentKinds {
		if id, ok := resolveParentKind(args, kind); ok {
			resolved[kind] = id
		}
	}
	if len(resolved) > 1 {
		kinds := make([]string, 0, len(resolved))
		for k := range resolved {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		return nil, Errorf("choose one parent type: got %s", strings.Join(kinds, " and "))
	}
	for kind, id := range resolved {
		return map[string]any{kind: map[string]any{"id": id}}, nil
	}
	return nil, nil
}

// RequireParent is Parent for operations that cannot proceed without one.
func RequireParent(args map[string]any) (map[string]any, error) {
	parent, err := Parent(args)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, Errorf("a parent is required: provide product_id, component_id or parent_feature_id")
	}
	return parent, nil
}

// Timeframe handles the simple start/end form used by features: scalars are
// passed through as-is when at least one is present.
func Timeframe(args map[string]any) map[string]any {
	tf := map[string]any{}
	if obj, ok := Object(args["timeframe"]); ok {
		if s, ok := String(obj["start"]); ok {
			tf["start"] = s
		}
		if e, ok := String(obj["end"]); ok {
			tf["end"] = e
		}
	}
	if s, ok := String(args["start"]); ok {
		tf["start"] = s
	}
	if e, ok := String(args["end"]); ok {
		tf["end"] = e
	}
	if len(tf) == 0 {
		return nil
	}
	return tf
}

// dateRangeField resolves one date-range field from the nested timeframe
// object or its flat alias.
func dateRangeField(args map[string]any, nested, flat string) (string, bool) {
	if obj, ok := Object(args["timeframe"]); ok {
		if v, ok := String(obj[nested]); ok {
			return v, true
		}
	}
	if v, ok := String(args[nested]); ok {
		return v, true
	}
	if v, ok := String(args[flat]); ok {
		return v, true
	}
	return "", false
}

// DateRange handles the startDate/endDate/granularity form used by
// objectives, initiatives, releases and key results. startDate and endDate
// are symmetric: either both or neither. granularity alone is legal.
func DateRange(args map[string]any) (map[string]any, error) {
	start, hasStart := dateRangeField(args, "startDate", "start_date")
	end, hasEnd := dateRangeField(args, "endDate", "end_date")
	gran, hasGran := dateRangeField(args, "granularity", "granularity")

	if hasStart != hasEnd {
		return nil, Errorf("timeframe requires both startDate and endDate when either is provided")
	}

	if !hasStart && !hasGran {
		return nil, nil
	}
	tf := map[string]any{}
	if hasStart {
		tf["startDate"] = start
		tf["endDate"] = end
	}
	if hasGran {
		tf["granularity"] = gran
	}
	return tf, nil
}

// progressFields lists the key-result progress fields and their flat aliases.
var progressFields = []struct {
	canonical string
	flat      string
}{
	{"startValue", "start_value"},
	{"targetValue", "target_value"},
	{"currentValue", "current_value"},
	{"progress", "progress"},
}

// Progress resolves the key-result progress structure. Each field may come
// from a nested 'progress' object, a flat alias, or (for the bare percentage)
// the top-level 'progress' scalar. Values that fail numeric coercion are
// rejected naming the field. When nothing resolves the structure is omitted.
func Progress(args map[string]any) (map[string]any, error) {
	nested, _ := Object(args["progress"])

	out := map[string]any{}
	for _, f := range progressFields {
		var raw any
		var present bool

		if nested != nil {
			if v, ok := nested[f.canonical]; ok && v != nil {
				raw, present = v, true
			}
		}
		if !present {
			if v, ok := args[f.flat]; ok && v != nil {
				// The nested object occupies the 'progress' key, so it never
				// doubles as the bare percentage scalar.
				if f.flat == "progress" && nested != nil {
					continue
				}
				raw, present = v, true
			}
		}
		if !present {
			continue
		}
		n, ok := Number(raw)
		if !ok {
			return nil, Errorf("invalid numeric value for %s", f.canonical)
		}
		out[f.canonical] = n
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// Tags accepts either an actual sequence of strings or a single
// comma-separated string. Order is preserved; duplicates are kept.
func Tags(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return t, nil
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, Errorf("invalid tags: expected strings, got %T", item)
			}
			tags = append(tags, s)
		}
		return tags, nil
	case string:
		var tags []string
		for _, part := range strings.Split(t, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				tags = append(tags, part)
			}
		}
		return tags, nil
	default:
		return nil, Errorf("invalid tags: expected an array of strings or a comma-separated string")
	}
}

// Bool accepts native booleans plus the literal spellings 1, "1", "true",
// 0, "0" and "false".
func Bool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case float64:
		if b == 1 {
			return true, nil
		}
		if b == 0 {
			return false, nil
		}
	case int:
		if b == 1 {
			return true, nil
		}
		if b == 0 {
			return false, nil
		}
	case string:
		switch b {
		case "1", "true":
			return true, nil
		case "0", "false":
			return false, nil
		}
	}
	return false, Errorf("invalid boolean value %v: expected true/false, 1/0, \"true\"/\"false\" or \"1\"/\"0\"", v)
}

// Flatten turns an arbitrary nested filter object into dotted-path keys.
// Array leaves join with commas, null leaves are dropped.
func Flatten(filter map[string]any) map[string]string {
	out := map[string]string{}
	flattenInto(out, "", filter)
	return out
}

func flattenInto(out map[string]string, prefix string, obj map[string]any) {
	for key, value := range obj {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case nil:
			// dropped
		case map[string]any:
			flattenInto(out, path, v)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				if item == nil {
					continue
				}
				parts = append(parts, scalarString(item))
			}
			out[path] = strings.Join(parts, ",")
		default:
			out[path] = scalarString(v)
		}
	}
}

// scalarString renders a scalar the way it should appear in a query value.
// Floats without a fractional part print as integers.
func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// Update accumulates the fields an update operation explicitly received.
// Presence is what counts: an empty value clears the field, an absent key
// leaves it untouched.
type Update struct {
	fields map[string]any
}

// NewUpdate returns an empty update accumulator.
func NewUpdate() *Update {
	return &Update{fields: map[string]any{}}
}

// Set records a field that was explicitly present in the argument bag.
func (u *Update) Set(key string, value any) {
	u.fields[key] = value
}

// SetFrom records key under its own name when present in args.
func (u *Update) SetFrom(args map[string]any, key string) {
	if v, ok := args[key]; ok {
		u.fields[key] = v
	}
}

// Len reports how many fields were recorded.
func (u *Update) Len() int {
	return len(u.fields)
}

// Fields returns the accumulated update body, or a ValidationError when no
// recognized field was provided.
func (u *Update) Fields() (map[string]any, error) {
	if len(u.fields) == 0 {
		return nil, Errorf("no update fields provided")
	}
	return u.fields, nil
}
