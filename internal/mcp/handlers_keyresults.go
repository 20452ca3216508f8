package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"productboard-mcp/internal/normalize"
)

func (s *Server) keyResultOps() []operation {
	createSchema := schemaObject(mergeProps(dateRangeProps(), progressProps(), schemaMap{
		"name":         schemaString("Key result name."),
		"objective_id": schemaString("Id of the objective the key result belongs to."),
		"type":         schemaEnum("Key result type.", "number", "percentage", "currency", "boolean"),
	}), "name", "objective_id")

	updateSchema := schemaObject(mergeProps(dateRangeProps(), progressProps(), schemaMap{
		"id":   schemaString("Key result id."),
		"name": schemaString("New key result name."),
	}), "id")

	return []operation{
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_key_results",
				Description: "List key results. Walks pagination up to 'limit' items.",
				InputSchema: schemaObject(listProps(schemaMap{
					"objective_id": schemaString("Only key results of this objective."),
				})),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				convenience := map[string]string{}
				if id, ok := normalize.String(args["objective_id"]); ok {
					convenience["objective.id"] = id
				}
				return s.pb.ListKeyResults(ctx, listOptions(args, convenience))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_key_result",
				Description: "Get a single key result by id.",
				InputSchema: idOnlySchema("Key result id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetKeyResult(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_create_key_result",
				Description: "Create a key result under an objective.",
				InputSchema: createSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				name, err := requireString(args, "name")
				if err != nil {
					return nil, err
				}
				objectiveID, err := requireString(args, "objective_id")
				if err != nil {
					return nil, err
				}
				body := map[string]any{
					"name":      name,
					"objective": map[string]any{"id": objectiveID},
				}
				if typ, ok := normalize.String(args["type"]); ok {
					body["type"] = typ
				}
				progress, err := normalize.Progress(args)
				if err != nil {
					return nil, err
				}
				for key, value := range progress {
					body[key] = value
				}
				tf, err := normalize.DateRange(args)
				if err != nil {
					return nil, err
				}
				if tf != nil {
					body["timeframe"] = tf
				}
				return s.pb.CreateKeyResult(ctx, body)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_update_key_result",
				Description: "Update a key result. Only explicitly provided fields change.",
				InputSchema: updateSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				update := normalize.NewUpdate()
				update.SetFrom(args, "name")
				progress, err := normalize.Progress(args)
				if err != nil {
					return nil, err
				}
				for key, value := range progress {
					update.Set(key, value)
				}
				tf, err := normalize.DateRange(args)
				if err != nil {
					return nil, err
				}
				if tf != nil {
					update.Set("timeframe", tf)
				}
				fields, err := update.Fields()
				if err != nil {
					return nil, err
				}
				return s.pb.UpdateKeyResult(ctx, id, fields)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_delete_key_result",
				Description: "Delete a key result by id.",
				InputSchema: idOnlySchema("Key result id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.DeleteKeyResult(ctx, id)
			},
		},
	}
}
