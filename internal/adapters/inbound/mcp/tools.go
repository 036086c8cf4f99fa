package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ncprotocol/ncp/internal/application"
	"github.com/ncprotocol/ncp/internal/domain/validation"
)

// registerTools registers all NCP MCP tools on the given server.
func registerTools(s *server.MCPServer, d *deps) {
	// 1. ncp_validate_payload
	s.AddTool(
		mcplib.NewTool("ncp_validate_payload",
			mcplib.WithDescription("Validate an NCP payload given as a JSON string. Returns status, compliance level, score and findings."),
			mcplib.WithString("payload",
				mcplib.Required(),
				mcplib.Description("The payload document as JSON text"),
			),
			mcplib.WithString("domain", mcplib.Description("Domain the payload is published on, for the origin check")),
			mcplib.WithBoolean("strict_protocol", mcplib.Description("Require protocol to be exactly NCP/1.0")),
			mcplib.WithBoolean("no_origin_check", mcplib.Description("Skip the identity.url / domain comparison")),
			mcplib.WithBoolean("require_origin", mcplib.Description("Only grant VERIFIED-L1 after a positive origin match")),
		),
		handleValidatePayload(d),
	)

	// 2. ncp_validate_url
	s.AddTool(
		mcplib.NewTool("ncp_validate_url",
			mcplib.WithDescription("Fetch the NCP payload for a web page (meta tag or /.well-known/ncp.json) and validate it"),
			mcplib.WithString("url",
				mcplib.Required(),
				mcplib.Description("Page or payload URL (http or https)"),
			),
			mcplib.WithBoolean("strict_protocol", mcplib.Description("Require protocol to be exactly NCP/1.0")),
			mcplib.WithBoolean("no_origin_check", mcplib.Description("Skip the identity.url / domain comparison")),
			mcplib.WithBoolean("require_origin", mcplib.Description("Only grant VERIFIED-L1 after a positive origin match")),
		),
		handleValidateURL(d),
	)

	// 3. ncp_explain_code
	s.AddTool(
		mcplib.NewTool("ncp_explain_code",
			mcplib.WithDescription("Explain a finding code: its severity, pillar and meaning"),
			mcplib.WithString("code",
				mcplib.Required(),
				mcplib.Description("Finding code, e.g. IDENTITY_URL_INVALID"),
			),
		),
		handleExplainCode(),
	)
}

func overridesFrom(request mcplib.CallToolRequest) application.Overrides {
	args := request.GetArguments()
	strict, _ := args["strict_protocol"].(bool)
	noOrigin, _ := args["no_origin_check"].(bool)
	requireOrigin, _ := args["require_origin"].(bool)
	return application.Overrides{
		StrictProtocol: strict,
		NoOriginCheck:  noOrigin,
		RequireOrigin:  requireOrigin,
	}
}

func handleValidatePayload(d *deps) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		payload, err := request.RequireString("payload")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		domainName, _ := request.GetArguments()["domain"].(string)

		report, err := d.svc.ValidatePayload([]byte(payload), domainName, application.ValidateRequest{
			ProjectPath: d.projectPath,
			Overrides:   overridesFrom(request),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleValidateURL(d *deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		target, err := request.RequireString("url")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if !application.IsRemote(target) {
			return errorResult("url must start with http:// or https://"), nil
		}

		report, err := d.svc.Validate(ctx, application.ValidateRequest{
			Target:      target,
			ProjectPath: d.projectPath,
			Overrides:   overridesFrom(request),
			NoHistory:   true,
		})
		if err != nil {
			d.logger.Debug("mcp url validation failed", zap.String("url", target), zap.Error(err))
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleExplainCode() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		code, err := request.RequireString("code")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		info, ok := validation.Lookup(strings.ToUpper(strings.TrimSpace(code)))
		if !ok {
			return errorResult(fmt.Sprintf("unknown code %q", code)), nil
		}
		return jsonResult(info)
	}
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
