// Package mcpserver exposes the linter as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/HenryVilani/directory-lint/internal/presets"
	"github.com/HenryVilani/directory-lint/internal/source"
	"github.com/HenryVilani/directory-lint/lint"
)

// Server wires the tools to one linter.
type Server struct {
	linter *lint.Linter
	ignore []string
	mcp    *server.MCPServer
}

// New builds the MCP server. ignore is appended to every validation.
func New(l *lint.Linter, version string, ignore []string) *Server {
	s := &Server{
		linter: l,
		ignore: ignore,
		mcp:    server.NewMCPServer("dirlint", version, server.WithToolCapabilities(false)),
	}

	schemaArgs := []mcp.ToolOption{
		mcp.WithString("root", mcp.Required(), mcp.Description("Absolute path of the tree root")),
		mcp.WithString("schema_file", mcp.Description("Schema file (.json, .yaml or .hcl)")),
		mcp.WithString("preset", mcp.Description("Preset name, used instead of schema_file")),
		mcp.WithObject("preset_options", mcp.Description("Preset options as string values, e.g. {\"typescript\": \"false\"}")),
	}

	s.mcp.AddTool(mcp.NewTool("validate_tree", append([]mcp.ToolOption{
		mcp.WithDescription("Validate a directory tree against a schema and report every problem"),
		mcp.WithArray("ignore", mcp.Description("Names or globs to skip"), mcp.WithStringItems()),
	}, schemaArgs...)...), s.validateTree)

	s.mcp.AddTool(mcp.NewTool("generate_tree", append([]mcp.ToolOption{
		mcp.WithDescription("Create the files and directories a schema describes"),
		mcp.WithBoolean("overwrite", mcp.Description("Rewrite files that already exist")),
		mcp.WithBoolean("recursive", mcp.Description("Create missing parents of root")),
	}, schemaArgs...)...), s.generateTree)

	s.mcp.AddTool(mcp.NewTool("list_presets",
		mcp.WithDescription("List the built-in project presets"),
	), s.listPresets)

	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// ServeStdio serves requests on the given streams until ctx is done.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func sourceFrom(req mcp.CallToolRequest) source.Source {
	src := source.Source{
		File:   req.GetString("schema_file", ""),
		Preset: req.GetString("preset", ""),
	}
	if raw, ok := req.GetArguments()["preset_options"].(map[string]any); ok {
		src.PresetOptions = make(map[string]string, len(raw))
		for k, v := range raw {
			src.PresetOptions[k] = fmt.Sprint(v)
		}
	}
	return src
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) validateTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := source.Resolve(sourceFrom(req))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("load schema", err), nil
	}

	ignore := append(append([]string{}, s.ignore...), doc.Ignore...)
	ignore = append(ignore, req.GetStringSlice("ignore", nil)...)

	res, err := s.linter.Validate(ctx, root, doc.Schema, lint.ValidateOptions{Ignore: ignore})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("validate", err), nil
	}
	return jsonResult(res)
}

func (s *Server) generateTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root, err := req.RequireString("root")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := source.Resolve(sourceFrom(req))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("load schema", err), nil
	}

	res, err := s.linter.Generate(ctx, root, doc.Schema, lint.GenerateOptions{
		Overwrite: req.GetBool("overwrite", false),
		Recursive: req.GetBool("recursive", false),
	})
	if err != nil {
		return mcp.NewToolResultErrorFromErr("generate", err), nil
	}
	return jsonResult(res)
}

type presetInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Defaults    any    `json:"defaults"`
}

func (s *Server) listPresets(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []presetInfo
	for _, p := range presets.List() {
		out = append(out, presetInfo{Name: p.Name, Description: p.Description, Defaults: p.Defaults()})
	}
	return jsonResult(out)
}
