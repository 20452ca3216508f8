package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"productboard-mcp/internal/normalize"
)

func (s *Server) featureOps() []operation {
	listSchema := schemaObject(listProps(mergeProps(statusProps(), parentProps(), schemaMap{
		"owner_email": schemaString("Filter by feature owner email."),
		"archived":    schemaLoose("Filter by archived state (boolean-ish)."),
	})))

	createProps := mergeProps(statusProps(), parentProps(), schemaMap{
		"name":        schemaString("Feature name."),
		"description": schemaString("Feature description (HTML allowed)."),
		"owner_email": schemaString("Feature owner email."),
		"timeframe":   schemaLoose("Timeframe object {start, end}."),
		"start":       schemaString("Timeframe start date."),
		"end":         schemaString("Timeframe end date."),
	})

	updateProps := mergeProps(statusProps(), schemaMap{
		"id":          schemaString("Feature id."),
		"name":        schemaString("New feature name."),
		"description": schemaString("New feature description."),
		"owner_email": schemaString("New owner email; an explicit empty string clears the owner."),
		"archived":    schemaLoose("Archived state (boolean-ish)."),
		"timeframe":   schemaLoose("Timeframe object {start, end}."),
		"start":       schemaString("Timeframe start date."),
		"end":         schemaString("Timeframe end date."),
	})

	return []operation{
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_features",
				Description: "List features, optionally filtered by status, parent or owner. Walks pagination up to 'limit' items.",
				InputSchema: listSchema,
			},
			handler: s.handleListFeatures,
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_feature",
				Description: "Get a single feature by id.",
				InputSchema: idOnlySchema("Feature id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetFeature(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_create_feature",
				Description: "Create a feature under a product, component or parent feature. Exactly one parent is required.",
				InputSchema: schemaObject(createProps, "name"),
			},
			handler: s.handleCreateFeature,
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_update_feature",
				Description: "Update a feature. Only explicitly provided fields change; an empty owner_email clears the owner.",
				InputSchema: schemaObject(updateProps, "id"),
			},
			handler: s.handleUpdateFeature,
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_delete_feature",
				Description: "Delete a feature by id.",
				InputSchema: idOnlySchema("Feature id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.DeleteFeature(ctx, id)
			},
		},
	}
}

func (s *Server) handleListFeatures(ctx context.Context, args map[string]any) (any, error) {
	convenience := map[string]string{}
	if err := statusQuery(args, convenience); err != nil {
		return nil, err
	}
	if err := parentQuery(args, convenience); err != nil {
		return nil, err
	}
	if email, ok := normalize.String(args["owner_email"]); ok {
		convenience["owner.email"] = email
	}
	if v, ok := args["archived"]; ok {
		archived, err := normalize.Bool(v)
		if err != nil {
			return nil, err
		}
		if archived {
			convenience["archived"] = "true"
		} else {
			convenience["archived"] = "false"
		}
	}
	return s.pb.ListFeatures(ctx, listOptions(args, convenience))
}

func (s *Server) handleCreateFeature(ctx context.Context, args map[string]any) (any, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	parent, err := normalize.RequireParent(args)
	if err != nil {
		return nil, err
	}
	status, err := normalize.Status(args)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"name":   name,
		"parent": parent,
	}
	if desc, ok := normalize.String(args["description"]); ok {
		body["description"] = desc
	}
	if status != nil {
		body["status"] = status
	}
	if tf := normalize.Timeframe(args); tf != nil {
		body["timeframe"] = tf
	}
	if email, ok := normalize.String(args["owner_email"]); ok {
		body["owner"] = map[string]any{"email": email}
	}
	return s.pb.CreateFeature(ctx, body)
}

func (s *Server) handleUpdateFeature(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}

	update := normalize.NewUpdate()
	update.SetFrom(args, "name")
	update.SetFrom(args, "description")

	if anyKeyPresent(args, "status", "status_id", "status_name") {
		status, err := normalize.Status(args)
		if err != nil {
			return nil, err
		}
		if status != nil {
			update.Set("status", status)
		}
	}
	if v, ok := args["archived"]; ok {
		archived, err := normalize.Bool(v)
		if err != nil {
			return nil, err
		}
		update.Set("archived", archived)
	}
	if tf := normalize.Timeframe(args); tf != nil {
		update.Set("timeframe", tf)
	}
	if raw, ok := args["owner_email"]; ok {
		// presence semantics: an explicit empty string clears the owner
		if err := setOwnerUpdate(update, raw); err != nil {
			return nil, err
		}
	}

	fields, err := update.Fields()
	if err != nil {
		return nil, err
	}
	return s.pb.UpdateFeature(ctx, id, fields)
}
