package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"productboard-mcp/internal/normalize"
)

func (s *Server) releaseOps() []operation {
	listSchema := schemaObject(listProps(schemaMap{
		"release_group_id": schemaString("Filter releases by release group id."),
	}))

	createSchema := schemaObject(mergeProps(dateRangeProps(), schemaMap{
		"name":             schemaString("Release name."),
		"description":      schemaString("Release description."),
		"release_group_id": schemaString("Release group the release belongs to."),
		"state":            schemaEnum("Release state.", "upcoming", "in-progress", "completed"),
	}), "name", "release_group_id")

	updateSchema := schemaObject(mergeProps(dateRangeProps(), schemaMap{
		"id":          schemaString("Release id."),
		"name":        schemaString("New release name."),
		"description": schemaString("New release description."),
		"state":       schemaEnum("New release state.", "upcoming", "in-progress", "completed"),
	}), "id")

	assignmentListSchema := schemaObject(listProps(schemaMap{
		"feature_id": schemaString("Filter assignments by feature id."),
		"release_id": schemaString("Filter assignments by release id."),
	}))

	assignmentSetSchema := schemaObject(schemaMap{
		"feature_id": schemaString("Feature id."),
		"release_id": schemaString("Release id."),
		"assigned":   schemaLoose("Whether the feature is assigned to the release: true/false, 1/0, \"true\"/\"false\" or \"1\"/\"0\"."),
	}, "feature_id", "release_id", "assigned")

	return []operation{
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_releases",
				Description: "List releases, optionally filtered by release group. Walks pagination up to 'limit' items.",
				InputSchema: listSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				convenience := map[string]string{}
				if groupID, ok := normalize.String(args["release_group_id"]); ok {
					convenience["releaseGroup.id"] = groupID
				}
				return s.pb.ListReleases(ctx, listOptions(args, convenience))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_release",
				Description: "Get a single release by id.",
				InputSchema: idOnlySchema("Release id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetRelease(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_create_release",
				Description: "Create a release in a release group.",
				InputSchema: createSchema,
			},
			handler: s.handleCreateRelease,
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_update_release",
				Description: "Update a release. Only explicitly provided fields change.",
				InputSchema: updateSchema,
			},
			handler: s.handleUpdateRelease,
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_delete_release",
				Description: "Delete a release by id.",
				InputSchema: idOnlySchema("Release id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.DeleteRelease(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_release_groups",
				Description: "List release groups. Walks pagination up to 'limit' items.",
				InputSchema: schemaObject(listProps(nil)),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return s.pb.ListReleaseGroups(ctx, listOptions(args, nil))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_release_group",
				Description: "Get a single release group by id.",
				InputSchema: idOnlySchema("Release group id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetReleaseGroup(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_feature_release_assignments",
				Description: "List feature-release assignments, optionally filtered by feature or release. Walks pagination up to 'limit' items.",
				InputSchema: assignmentListSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				convenience := map[string]string{}
				if featureID, ok := normalize.String(args["feature_id"]); ok {
					convenience["feature.id"] = featureID
				}
				if releaseID, ok := normalize.String(args["release_id"]); ok {
					convenience["release.id"] = releaseID
				}
				return s.pb.ListFeatureReleaseAssignments(ctx, listOptions(args, convenience))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_set_feature_release_assignment",
				Description: "Assign a feature to a release, or retract the assignment.",
				InputSchema: assignmentSetSchema,
			},
			handler: s.handleSetAssignment,
		},
	}
}

func (s *Server) handleCreateRelease(ctx context.Context, args map[string]any) (any, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	groupID, err := requireString(args, "release_group_id")
	if err != nil {
		return nil, err
	}
	tf, err := normalize.DateRange(args)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"name":         name,
		"releaseGroup": map[string]any{"id": groupID},
	}
	if desc, ok := normalize.String(args["description"]); ok {
		body["description"] = desc
	}
	if state, ok := normalize.String(args["state"]); ok {
		body["state"] = state
	}
	if tf != nil {
		body["timeframe"] = tf
	}
	return s.pb.CreateRelease(ctx, body)
}

func (s *Server) handleUpdateRelease(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}

	update := normalize.NewUpdate()
	update.SetFrom(args, "name")
	update.SetFrom(args, "description")
	update.SetFrom(args, "state")
	if groupID, ok := normalize.String(args["release_group_id"]); ok {
		update.Set("releaseGroup", map[string]any{"id": groupID})
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
	return s.pb.UpdateRelease(ctx, id, fields)
}

func (s *Server) handleSetAssignment(ctx context.Context, args map[string]any) (any, error) {
	featureID, err := requireString(args, "feature_id")
	if err != nil {
		return nil, err
	}
	releaseID, err := requireString(args, "release_id")
	if err != nil {
		return nil, err
	}
	raw, ok := args["assigned"]
	if !ok {
		return nil, normalize.Errorf("missing required argument %q", "assigned")
	}
	assigned, err := normalize.Bool(raw)
	if err != nil {
		return nil, err
	}
	return s.pb.SetFeatureReleaseAssignment(ctx, featureID, releaseID, assigned)
}
