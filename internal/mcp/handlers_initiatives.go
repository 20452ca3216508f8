package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) initiativeOps() []operation {
	createSchema := schemaObject(mergeProps(dateRangeProps(), schemaMap{
		"name":        schemaString("Initiative name."),
		"description": schemaString("Initiative description."),
		"owner_email": schemaString("Initiative owner email."),
	}), "name")

	updateSchema := schemaObject(mergeProps(dateRangeProps(), schemaMap{
		"id":          schemaString("Initiative id."),
		"name":        schemaString("New initiative name."),
		"description": schemaString("New initiative description."),
		"owner_email": schemaString("New owner email; an explicit empty string clears the owner."),
	}), "id")

	linkSchema := schemaObject(schemaMap{
		"initiative_id": schemaString("Initiative id."),
		"feature_id":    schemaString("Feature id."),
	}, "initiative_id", "feature_id")

	linkListSchema := schemaObject(mergeProps(listProps(nil), schemaMap{
		"initiative_id": schemaString("Initiative id."),
	}), "initiative_id")

	return []operation{
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_initiatives",
				Description: "List initiatives. Walks pagination up to 'limit' items.",
				InputSchema: schemaObject(listProps(nil)),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return s.pb.ListInitiatives(ctx, listOptions(args, nil))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_initiative",
				Description: "Get a single initiative by id.",
				InputSchema: idOnlySchema("Initiative id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetInitiative(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_create_initiative",
				Description: "Create an initiative.",
				InputSchema: createSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := strategicCreateBody(args)
				if err != nil {
					return nil, err
				}
				return s.pb.CreateInitiative(ctx, body)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_update_initiative",
				Description: "Update an initiative. Only explicitly provided fields change; an empty owner_email clears the owner.",
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
				return s.pb.UpdateInitiative(ctx, id, fields)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_delete_initiative",
				Description: "Delete an initiative by id.",
				InputSchema: idOnlySchema("Initiative id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.DeleteInitiative(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_initiative_links",
				Description: "List the features linked to an initiative. Walks pagination up to 'limit' items.",
				InputSchema: linkListSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				initiativeID, err := requireString(args, "initiative_id")
				if err != nil {
					return nil, err
				}
				return s.pb.ListInitiativeFeatureLinks(ctx, initiativeID, listOptions(args, nil))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_link_initiative_to_feature",
				Description: "Link an initiative to a feature.",
				InputSchema: linkSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				initiativeID, err := requireString(args, "initiative_id")
				if err != nil {
					return nil, err
				}
				featureID, err := requireString(args, "feature_id")
				if err != nil {
					return nil, err
				}
				return s.pb.LinkInitiativeToFeature(ctx, initiativeID, featureID)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_unlink_initiative_from_feature",
				Description: "Remove the link between an initiative and a feature.",
				InputSchema: linkSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				initiativeID, err := requireString(args, "initiative_id")
				if err != nil {
					return nil, err
				}
				featureID, err := requireString(args, "feature_id")
				if err != nil {
					return nil, err
				}
				return s.pb.UnlinkInitiativeFromFeature(ctx, initiativeID, featureID)
			},
		},
	}
}
