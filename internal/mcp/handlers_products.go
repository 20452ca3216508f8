package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"productboard-mcp/internal/normalize"
)

func (s *Server) productOps() []operation {
	componentListSchema := schemaObject(listProps(schemaMap{
		"product_id": schemaString("Filter components by parent product id."),
	}))

	componentCreateSchema := schemaObject(schemaMap{
		"name":        schemaString("Component name."),
		"description": schemaString("Component description."),
		"product_id":  schemaString("Parent product id."),
	}, "name", "product_id")

	return []operation{
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_products",
				Description: "List products. Walks pagination up to 'limit' items.",
				InputSchema: schemaObject(listProps(nil)),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return s.pb.ListProducts(ctx, listOptions(args, nil))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_product",
				Description: "Get a single product by id.",
				InputSchema: idOnlySchema("Product id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetProduct(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_list_components",
				Description: "List components, optionally filtered by product. Walks pagination up to 'limit' items.",
				InputSchema: componentListSchema,
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				convenience := map[string]string{}
				if productID, ok := normalize.String(args["product_id"]); ok {
					convenience["product.id"] = productID
				}
				return s.pb.ListComponents(ctx, listOptions(args, convenience))
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_get_component",
				Description: "Get a single component by id.",
				InputSchema: idOnlySchema("Component id."),
			},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				id, err := requireString(args, "id")
				if err != nil {
					return nil, err
				}
				return s.pb.GetComponent(ctx, id)
			},
		},
		{
			tool: &mcpsdk.Tool{
				Name:        "pb_create_component",
				Description: "Create a component under a product.",
				InputSchema: componentCreateSchema,
			},
			handler: s.handleCreateComponent,
		},
	}
}

func (s *Server) handleCreateComponent(ctx context.Context, args map[string]any) (any, error) {
	name, err := requireString(args, "name")
	if err != nil {
		return nil, err
	}
	productID, err := requireString(args, "product_id")
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"name":   name,
		"parent": map[string]any{"product": map[string]any{"id": productID}},
	}
	if desc, ok := normalize.String(args["description"]); ok {
		body["description"] = desc
	}
	return s.pb.CreateComponent(ctx, body)
}
