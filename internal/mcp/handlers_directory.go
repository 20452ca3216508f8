package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"productboard-mcp/internal/normalize"
)

func (s *Server) directoryOps() []operation {
	return []operation{
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_companies",
				Description: "List companies. Walks pagination up to 'limit' items.",
				InputSchema: schemaObject(listProps(schemaMap{
					"term": schemaString("Search term matched against company names."),
				})),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				convenience := map[string]string{}
				if term, ok := normalize.String(args["term"]); ok {
					convenience["term"] = term
				}
				return s.pb.ListCompanies(ctx, listOptions(args, convenience))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_company",
				Description: "Get a single company by id.",
				InputSchema: idOnlySchema("Company id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetCompany(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_users",
				Description: "List workspace users. Walks pagination up to 'limit' items.",
				InputSchema: schemaObject(listProps(nil)),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return s.pb.ListUsers(ctx, listOptions(args, nil))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_user",
				Description: "Get a single user by id.",
				InputSchema: idOnlySchema("User id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetUser(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_current_user",
				Description: "Get the user the configured API token belongs to.",
				InputSchema: schemaObject(schemaMap{}),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return s.pb.GetCurrentUser(ctx)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_custom_fields",
				Description: "List hierarchy-entity custom field definitions. Walks pagination up to 'limit' items.",
				InputSchema: schemaObject(listProps(schemaMap{
					"type": schemaString("Comma separated custom field types to include, e.g. \"text,number\"."),
				})),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				convenience := map[string]string{}
				if typ, ok := normalize.String(args["type"]); ok {
					convenience["type"] = typ
				}
				return s.pb.ListCustomFields(ctx, listOptions(args, convenience))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_custom_field",
				Description: "Get a single custom field definition by id.",
				InputSchema: idOnlySchema("Custom field id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetCustomField(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_custom_field_values",
				Description: "List custom field values across hierarchy entities. Walks pagination up to 'limit' items.",
				InputSchema: schemaObject(listProps(schemaMap{
					"custom_field_id":     schemaString("Only values of this custom field."),
					"hierarchy_entity_id": schemaString("Only values attached to this feature or component."),
					"type":                schemaString("Comma separated custom field types to include."),
				})),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				convenience := map[string]string{}
				if id, ok := normalize.String(args["custom_field_id"]); ok {
					convenience["customField.id"] = id
				}
				if id, ok := normalize.String(args["hierarchy_entity_id"]); ok {
					convenience["hierarchyEntity.id"] = id
				}
				if typ, ok := normalize.String(args["type"]); ok {
					convenience["type"] = typ
				}
				return s.pb.ListCustomFieldValues(ctx, listOptions(args, convenience))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_custom_field_value",
				Description: "Get the value of one custom field on one hierarchy entity.",
				InputSchema: schemaObject(schemaMap{
					"custom_field_id":     schemaString("Custom field id."),
					"hierarchy_entity_id": schemaString("Feature or component id."),
				}, "custom_field_id", "hierarchy_entity_id"),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				fieldID, err := requireString(args, "custom_field_id")
				if err != nil {
					return nil, err
				}
				entityID, err := requireString(args, "hierarchy_entity_id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetCustomFieldValue(ctx, fieldID, entityID)
			},
		},
	}
}
