package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"productboard-mcp/internal/normalize"
)

// strategicCreateBody builds the shared create body of objectives and
// initiatives: name plus optional description, owner and date range.
func strategicCreateBody(args map[string]any) (map[string]any, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	tf, err := normalize.DateRange(args)
	if err != nil {
		return nil, err
	}

	body := map[string]any{"name": name}
	if desc, ok := normalize.String(args["description"]); ok {
		body["description"] = desc
	}
	if email, ok := normalize.String(args["owner_email"]); ok {
		body["owner"] = map[string]any{"email": email}
	}
	if tf != nil {
		body["timeframe"] = tf
	}
	return body, nil
}

// strategicUpdateFields collects the shared update fields of objectives and
// initiatives with presence semantics.
func strategicUpdateFields(args map[string]any) (map[string]any, error) {
	update := normalize.NewUpdate()
	update.SetFrom(args, "name")
	update.SetFrom(args, "description")
	if raw, ok := args["owner_email"]; ok {
		if err := setOwnerUpdate(update, raw); err != nil {
			return nil, err
		}
	}
	tf, err := normalize.DateRange(args)
	if err != nil {
		return nil, err
	}
	if tf != nil {
		update.Set("timeframe", tf)
	}
	return update.Fields()
}

func (s *Server) objectiveOps() []operation {
	createSchema := schemaObject(mergeProps(dateRangeProps(), schemaMap{
		"name":        schemaString("Objective name."),
		"description": schemaString("Objective description."),
		"owner_email": schemaString("Objective owner email."),
	}), "name")

	updateSchema := schemaObject(mergeProps(dateRangeProps(), schemaMap{
		"id":          schemaString("Objective id."),
		"name":        schemaString("New objective name."),
		"description": schemaString("New objective description."),
		"owner_email": schemaString("New owner email; an explicit empty string clears the owner."),
	}), "id")

	linkSchema := schemaObject(schemaMap{
		"objective_id": schemaString("Objective id."),
		"feature_id":   schemaString("Feature id."),
	}, "objective_id", "feature_id")

	linkListSchema := schemaObject(mergeProps(listProps(nil), schemaMap{
		"objective_id": schemaString("Objective id."),
	}), "objective_id")

	return []operation{
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_objectives",
				Description: "List objectives. Walks pagination up to 'limit' items.",
				InputSchema: schemaObject(listProps(nil)),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return s.pb.ListObjectives(ctx, listOptions(args, nil))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_objective",
				Description: "Get a single objective by id.",
				InputSchema: idOnlySchema("Objective id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetObjective(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_create_objective",
				Description: "Create an objective.",
				InputSchema: createSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := strategicCreateBody(args)
				if err != nil {
					return nil, err
				}
				return s.pb.CreateObjective(ctx, body)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_update_objective",
				Description: "Update an objective. Only explicitly provided fields change; an empty owner_email clears the owner.",
				InputSchema: updateSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				fields, err := strategicUpdateFields(args)
				if err != nil {
					return nil, err
				}
				return s.pb.UpdateObjective(ctx, id, fields)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_delete_objective",
				Description: "Delete an objective by id.",
				InputSchema: idOnlySchema("Objective id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.DeleteObjective(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_objective_links",
				Description: "List the features linked to an objective. Walks pagination up to 'limit' items.",
				InputSchema: linkListSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				objectiveID, err := requireString(args, "objective_id")
				if err != nil {
					return nil, err
				}
				return s.pb.ListObjectiveFeatureLinks(ctx, objectiveID, listOptions(args, nil))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_link_objective_to_feature",
				Description: "Link an objective to a feature.",
				InputSchema: linkSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				objectiveID, err := requireString(args, "objective_id")
				if err != nil {
					return nil, err
				}
				featureID, err := requireString(args, "feature_id")
				if err != nil {
					return nil, err
				}
				return s.pb.LinkObjectiveToFeature(ctx, objectiveID, featureID)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_unlink_objective_from_feature",
				Description: "Remove the link between an objective and a feature.",
				InputSchema: linkSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				objectiveID, err := requireString(args, "objective_id")
				if err != nil {
					return nil, err
				}
				featureID, err := requireString(args, "feature_id")
				if err != nil {
					return nil, err
				}
				return s.pb.UnlinkObjectiveFromFeature(ctx, objectiveID, featureID)
			},
		},
	}
}
