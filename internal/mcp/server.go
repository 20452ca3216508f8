// Package mcp exposes the Productboard client as MCP tools: a static catalog
// of operations, a dispatch boundary that converts every outcome into the
// uniform envelope, and the stdio server wiring.
package mcp

import (
	"context"
	"encoding/json"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"productboard-mcp/internal/normalize"
	"productboard-mcp/internal/productboard"
)

// operation pairs a tool declaration with its handler. The catalog is built
// once at startup and never mutated.
type operation struct {
	tool    *mcpsdk.Tool
	handler func(ctx context.Context, args map[string]any) (any, error)
}

// Server holds the Productboard client and the tool catalog.
type Server struct {
	pb     productboard.Client
	ops    map[string]operation
	server *mcpsdk.Server
}

// NewServer builds the MCP server with every tool registered.
func NewServer(client productboard.Client, version string) *Server {
	s := &Server{pb: client}
	s.ops = s.catalog()

	s.server = mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "productboard-mcp",
		Version: version,
	}, nil)

	for name, op := range s.ops {
		name := name
		s.server.AddTool(op.tool, func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
			args, err := parseArgs(req)
			if err != nil {
				return errorResult(err), nil
			}
			return s.Dispatch(ctx, name, args), nil
		})
	}

	return s
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Int("tools", len(s.ops)).Msg("MCP server starting stdio transport")
	return s.server.Run(ctx, &mcpsdk.StdioTransport{})
}

// Dispatch routes one invocation through the catalog and wraps the outcome in
// the uniform envelope. Unknown operation names are a validation error, never
// a transport fault, and no handler error escapes as a protocol error.
func (s *Server) Dispatch(ctx context.Context, name string, args map[string]any) *mcpsdk.CallToolResult {
	op, ok := s.ops[name]
	if !ok {
		return errorResult(normalize.Errorf("unknown operation %q", name))
	}
	data, err := op.handler(ctx, args)
	if err != nil {
		log.Debug().Str("tool", name).Err(err).Msg("tool call failed")
		return errorResult(err)
	}
	return successResult(data)
}

func parseArgs(req *mcpsdk.CallToolRequest) (map[string]any, error) {
	if len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, normalize.Errorf("invalid arguments: %v", err)
	}
	return args, nil
}
