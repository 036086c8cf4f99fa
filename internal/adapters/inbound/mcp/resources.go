package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ncprotocol/ncp/internal/domain/validation"
)

const codeURIPrefix = "ncp://codes/"

// registerResources registers all NCP MCP resources on the given server.
func registerResources(s *server.MCPServer, d *deps) {
	// 1. ncp://semantic-types - official semantic types
	s.AddResource(
		mcplib.NewResource(
			"ncp://semantic-types",
			"Semantic Types",
			mcplib.WithResourceDescription("Official values for the semantic_type field"),
			mcplib.WithMIMEType("application/json"),
		),
		staticJSON(func() any { return validation.SemanticTypes() }),
	)

	// 2. ncp://codes - every finding code
	s.AddResource(
		mcplib.NewResource(
			"ncp://codes",
			"Finding Codes",
			mcplib.WithResourceDescription("Every finding code the validator emits, with severity and pillar"),
			mcplib.WithMIMEType("application/json"),
		),
		staticJSON(func() any { return validation.Catalog() }),
	)

	// 3. ncp://codes/{code} - a single finding code (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			codeURIPrefix+"{code}",
			"Finding Code",
			mcplib.WithTemplateDescription("Documentation for a single finding code"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleCodeResource(),
	)

	// 4. ncp://history - recorded validation runs
	s.AddResource(
		mcplib.NewResource(
			"ncp://history",
			"Validation History",
			mcplib.WithResourceDescription("Recorded validation runs for this project, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(d),
	)
}

func staticJSON(value func() any) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonContents(request.Params.URI, value())
	}
}

func handleCodeResource() server.ResourceTemplateHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		code := templateArg(request, "code")
		if code == "" {
			code = strings.TrimPrefix(request.Params.URI, codeURIPrefix)
		}
		info, ok := validation.Lookup(strings.ToUpper(code))
		if !ok {
			return nil, fmt.Errorf("unknown code %q", code)
		}
		return jsonContents(request.Params.URI, info)
	}
}

func handleHistoryResource(d *deps) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := d.svc.History("", 0)
		if err != nil {
			return nil, err
		}
		return jsonContents(request.Params.URI, entries)
	}
}

// templateArg reads a variable populated by resource template matching.
func templateArg(request mcplib.ReadResourceRequest, name string) string {
	switch v := request.Params.Arguments[name].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
