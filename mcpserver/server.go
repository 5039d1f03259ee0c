/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mcpserver exposes a loaded token project to MCP clients over stdio.
package mcpserver

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"bennypowers.dev/stratum/graph"
	"bennypowers.dev/stratum/internal/version"
	"bennypowers.dev/stratum/load"
	"bennypowers.dev/stratum/resolver"
	"bennypowers.dev/stratum/token"
)

// Server answers token queries about one project.
type Server struct {
	server  *mcp.Server
	project *load.Project
	graph   *graph.Graph
	res     *resolver.Resolver
}

// New registers the token tools for a loaded project.
func New(proj *load.Project) *Server {
	preferred := resolver.WithPreferredMode(proj.Config.Preferred())
	s := &Server{
		server:  mcp.NewServer(&mcp.Implementation{Name: "stratum", Version: version.Get()}, nil),
		project: proj,
		graph:   graph.Build(proj.Result.Tokens, preferred),
		res:     resolver.New(proj.Result.Tokens, preferred),
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tokens",
		Description: "List design tokens, resolved, filtered by layer, mode, path prefix and type.",
	}, s.listTokens)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_token",
		Description: "Follow a token's reference chain down to its literal value.",
	}, s.resolveToken)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "dependents",
		Description: "List the tokens that reference a token, directly or transitively.",
	}, s.dependents)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "dependencies",
		Description: "List the tokens a token references directly.",
	}, s.dependencies)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lint",
		Description: "Report broken references, layer-flow violations and other token problems.",
	}, s.lint)

	return s
}

// Run serves over stdin and stdout until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves a single session over t.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

// textResult carries out as JSON text for clients that ignore structured
// content.
func textResult(out any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(data)}}}, nil
}

func keyStrings(keys []token.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
