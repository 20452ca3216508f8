package mcp

import (
	"context"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"productboard-mcp/internal/normalize"
)

func (s *Server) noteOps() []operation {
	listSchema := schemaObject(listProps(schemaMap{
		"term":        schemaString("Full-text search term."),
		"owner_email": schemaString("Filter by note owner email."),
		"company_id":  schemaString("Filter by company id."),
		"feature_id":  schemaString("Filter by linked feature id."),
		"tags":        schemaLoose("Filter by tags: array of strings or a comma-separated string (matches any)."),
	}))

	createSchema := schemaObject(schemaMap{
		"title":          schemaString("Note title."),
		"content":        schemaString("Note content (HTML allowed)."),
		"display_url":    schemaString("URL shown as the note source."),
		"user_email":     schemaString("Email of the customer the note is attributed to."),
		"company_domain": schemaString("Domain of the company the note is attributed to."),
		"tags":           schemaLoose("Tags: array of strings or a comma-separated string."),
	}, "title", "content")

	updateSchema := schemaObject(schemaMap{
		"id":      schemaString("Note id."),
		"title":   schemaString("New note title."),
		"content": schemaString("New note content."),
	}, "id")

	tagSchema := schemaObject(schemaMap{
		"note_id": schemaString("Note id."),
		"tag":     schemaString("Tag name."),
	}, "note_id", "tag")

	return []operation{
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_notes",
				Description: "List notes (cursor-paginated), optionally filtered by term, owner, company, feature or tags. Walks pagination up to 'limit' items.",
				InputSchema: listSchema,
			},
			handler: s.handleListNotes,
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_note",
				Description: "Get a single note by id.",
				InputSchema: idOnlySchema("Note id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetNote(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_create_note",
				Description: "Create a customer feedback note.",
				InputSchema: createSchema,
			},
			handler: s.handleCreateNote,
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_update_note",
				Description: "Update a note. Only explicitly provided fields change.",
				InputSchema: updateSchema,
			},
			handler: s.handleUpdateNote,
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_delete_note",
				Description: "Delete a note by id.",
				InputSchema: idOnlySchema("Note id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.DeleteNote(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_add_note_tag",
				Description: "Attach a tag to a note.",
				InputSchema: tagSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				noteID, err := requireString(args, "note_id")
				if err != nil {
					return nil, err
				}
				tag, err := requireString(args, "tag")
				if err != nil {
					return nil, err
				}
				return s.pb.AddNoteTag(ctx, noteID, tag)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_remove_note_tag",
				Description: "Remove a tag from a note.",
				InputSchema: tagSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				noteID, err := requireString(args, "note_id")
				if err != nil {
					return nil, err
				}
				tag, err := requireString(args, "tag")
				if err != nil {
					return nil, err
				}
				return s.pb.RemoveNoteTag(ctx, noteID, tag)
			},
		},
	}
}

func (s *Server) handleListNotes(ctx context.Context, args map[string]any) (any, error) {
	convenience := map[string]string{}
	if term, ok := normalize.String(args["term"]); ok {
		convenience["term"] = term
	}
	if email, ok := normalize.String(args["owner_email"]); ok {
		convenience["ownerEmail"] = email
	}
	if companyID, ok := normalize.String(args["company_id"]); ok {
		convenience["companyId"] = companyID
	}
	if featureID, ok := normalize.String(args["feature_id"]); ok {
		convenience["featureId"] = featureID
	}
	if raw, ok := args["tags"]; ok {
		tags, err := normalize.Tags(raw)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			convenience["anyTag"] = strings.Join(tags, ",")
		}
	}
	return s.pb.ListNotes(ctx, listOptions(args, convenience))
}

func (s *Server) handleCreateNote(ctx context.Context, args map[string]any) (any, error) {
	title, err := requireString(args, "title")
	if err != nil {
		return nil, err
	}
	content, err := requireString(args, "content")
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"title":   title,
		"content": content,
	}
	if displayURL, ok := normalize.String(args["display_url"]); ok {
		body["display_url"] = displayURL
	}
	if email, ok := normalize.String(args["user_email"]); ok {
		body["user"] = map[string]any{"email": email}
	}
	if domain, ok := normalize.String(args["company_domain"]); ok {
		body["company"] = map[string]any{"domain": domain}
	}
	if raw, ok := args["tags"]; ok {
		tags, err := normalize.Tags(raw)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			body["tags"] = tags
		}
	}
	return s.pb.CreateNote(ctx, body)
}

func (s *Server) handleUpdateNote(ctx context.Context, args map[string]any) (any, error) {
	id, err := requireString(args, "id")
	if err != nil {
		return nil, err
	}
	update := normalize.NewUpdate()
	update.SetFrom(args, "title")
	update.SetFrom(args, "content")
	fields, err := update.Fields()
	if err != nil {
		return nil, err
	}
	return s.pb.UpdateNote(ctx, id, fields)
}
