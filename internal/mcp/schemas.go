package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Schema builders for the tool catalog. Fields that deliberately accept
// several spellings (limits, tags, boolean-ish flags, filter objects) are
// declared without a type so the normalizer stays the single validator.

type schemaMap = map[string]*jsonschema.Schema

func mergeProps(groups ...schemaMap) schemaMap {
	merged := schemaMap{}
	for _, group := range groups {
		for key, schema := range group {
			merged[key] = schema
		}
	}
	return merged
}

func schemaObject(props map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func schemaString(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func schemaEnum(desc string, values ...any) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc, Enum: values}
}

func schemaLoose(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Description: desc}
}

func schemaFilter() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "object",
		Description: "Free-form nested filter object; flattened to dotted query keys (arrays join with commas, nulls dropped). Explicit filter arguments take precedence.",
	}
}

func schemaLimit() *jsonschema.Schema {
	return schemaLoose("Maximum number of items to return (1-1000, default 100).")
}

// listProps augments the shared listing properties with per-tool filters.
func listProps(extra map[string]*jsonschema.Schema) map[string]*jsonschema.Schema {
	props := map[string]*jsonschema.Schema{
		"limit":  schemaLimit(),
		"filter": schemaFilter(),
	}
	for key, schema := range extra {
		props[key] = schema
	}
	return props
}

func idOnlySchema(desc string) *jsonschema.Schema {
	return schemaObject(map[string]*jsonschema.Schema{
		"id": schemaString(desc),
	}, "id")
}

// Shared spellings documented once and reused across tools.

func statusProps() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"status":      schemaLoose("Feature status as an object {id} or {name}, or a bare name string. Mutually exclusive with status_id/status_name."),
		"status_id":   schemaString("Feature status id. Mutually exclusive with status and status_name."),
		"status_name": schemaString("Feature status name. Mutually exclusive with status and status_id."),
	}
}

func parentProps() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"parent":            schemaLoose("Parent as a nested object, e.g. {product:{id}}, {component:{id}} or {feature:{id}}."),
		"product_id":        schemaString("Parent product id."),
		"component_id":      schemaString("Parent component id."),
		"parent_feature_id": schemaString("Parent feature id (creates a sub-feature)."),
	}
}

func dateRangeProps() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"timeframe":   schemaLoose("Timeframe object {startDate, endDate, granularity}. startDate and endDate go together."),
		"start_date":  schemaString("Timeframe start date (YYYY-MM-DD). Requires end_date."),
		"end_date":    schemaString("Timeframe end date (YYYY-MM-DD). Requires start_date."),
		"granularity": schemaString("Timeframe granularity (e.g. month, quarter). Legal without dates."),
	}
}

func progressProps() map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"progress":      schemaLoose("Progress as a bare percentage number, or an object {startValue, targetValue, currentValue, progress}."),
		"start_value":   schemaLoose("Key result start value (numeric)."),
		"target_value":  schemaLoose("Key result target value (numeric)."),
		"current_value": schemaLoose("Key result current value (numeric)."),
	}
}
