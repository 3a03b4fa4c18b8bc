package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/qgen/internal/generator"
	"github.com/kalambet/qgen/internal/questions"
)

const rolesResourceURI = "qgen://roles"

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Service QuestionService
	Version string
}

// NewMCPServer creates an MCP server with the qgen tools and resources
// registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	if deps.Version == "" {
		deps.Version = "dev"
	}
	s := server.NewMCPServer(
		"qgen",
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("qgen generates interview questions for a job role, skill set and seniority level."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("generate_questions",
			mcp.WithDescription("Generate five interview questions for a role, skills and seniority level."),
			mcp.WithString("role", mcp.Description("Job role, e.g. Backend Developer"), mcp.Required()),
			mcp.WithString("skills", mcp.Description("Comma-separated skills, e.g. Go, PostgreSQL"), mcp.Required()),
			mcp.WithString("level", mcp.Description("Entry/Junior, Mid-Level, Senior or Lead/Principal (default Mid-Level)")),
			mcp.WithString("mode", mcp.Description("ai (default) or fallback"), mcp.Enum(string(generator.ModeAI), string(generator.ModeFallback))),
		),
		mcpGenerateQuestions(deps),
	)

	s.AddTool(
		mcp.NewTool("followup_questions",
			mcp.WithDescription("Generate three follow-up questions of one type."),
			mcp.WithString("role", mcp.Description("Job role")),
			mcp.WithString("type", mcp.Description("behavioral, technical_depth, scenario or leadership"), mcp.Required()),
			mcp.WithString("skills", mcp.Description("Comma-separated skills")),
			mcp.WithString("level", mcp.Description("Seniority level (default Mid-Level)")),
		),
		mcpFollowupQuestions(deps),
	)

	s.AddResource(
		mcp.NewResource(
			rolesResourceURI,
			"Job Roles",
			mcp.WithResourceDescription("Known job roles with their categories"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceRoles,
	)

	return s
}

func mcpGenerateQuestions(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		role, err := req.RequireString("role")
		if err != nil {
			return mcpError("role is required"), nil
		}
		skills, err := req.RequireString("skills")
		if err != nil {
			return mcpError("skills is required"), nil
		}

		res := deps.Service.Generate(ctx, generator.Request{
			Role:   role,
			Skills: skills,
			Level:  req.GetString("level", ""),
			Mode:   generator.Mode(req.GetString("mode", "")),
		})
		if res.Source == generator.SourceRejected {
			return mcpError(res.Text), nil
		}
		return mcpText(res.Text), nil
	}
}

func mcpFollowupQuestions(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		qt, err := req.RequireString("type")
		if err != nil {
			return mcpError("type is required"), nil
		}

		res := deps.Service.Followup(ctx, generator.FollowupRequest{
			Role:   req.GetString("role", ""),
			Skills: req.GetString("skills", ""),
			Level:  req.GetString("level", ""),
			Type:   questions.QuestionType(qt),
		})
		return mcpText(res.Text), nil
	}
}

func mcpResourceRoles(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(roleEntries())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roles: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
