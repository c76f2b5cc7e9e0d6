package docxtree

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPConfig configures the tools added by RegisterMCP.
type MCPConfig struct {
	// AssetDir is the default directory for extracted images when a call
	// gives none. Relative assetDir arguments are resolved against it.
	// Empty discards images unless the call names a directory.
	AssetDir string

	// Logger receives conversion events. Nil disables logging.
	Logger *slog.Logger
}

// RegisterMCP registers the docx_convert and docx_metadata tools on srv.
// Every call opens and closes its own reader.
func RegisterMCP(srv *mcp.Server, cfg MCPConfig) {
	registerConvertTool(srv, cfg)
	registerMetadataTool(srv, cfg)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func toolError(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}

// --- convert ---

type convertReq struct {
	Path           string `json:"path"`
	AssetDir       string `json:"assetDir,omitempty"`
	HeadersFooters bool   `json:"headersFooters,omitempty"`
	InOrderMath    bool   `json:"inOrderMath,omitempty"`
}

func (r convertReq) assetDir(base string) string {
	switch {
	case r.AssetDir == "":
		return base
	case filepath.IsAbs(r.AssetDir) || base == "":
		return r.AssetDir
	default:
		return filepath.Join(base, r.AssetDir)
	}
}

func registerConvertTool(srv *mcp.Server, cfg MCPConfig) {
	tool := &mcp.Tool{
		Name:        "docx_convert",
		Description: "Convert a .docx file into a JSON content tree of paragraphs, headings, tables, breaks and images.",
		InputSchema: inputSchema(map[string]any{
			"path":           map[string]any{"type": "string", "description": "Path of the .docx file"},
			"assetDir":       map[string]any{"type": "string", "description": "Directory that receives extracted images"},
			"headersFooters": map[string]any{"type": "boolean", "description": "Also collect header and footer text"},
			"inOrderMath":    map[string]any{"type": "boolean", "description": "Join math paragraph fragments in document order"},
		}, []string{"path"}),
	}

	srv.AddTool(tool, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r convertReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}
		if r.Path == "" {
			return toolError(fmt.Errorf("invalid arguments: path is required")), nil
		}

		ext := Open(r.Path).WithLogger(cfg.Logger)
		if dir := r.assetDir(cfg.AssetDir); dir != "" {
			ext = ext.WithAssetDir(dir)
		}
		if r.HeadersFooters {
			ext = ext.IncludeHeadersFooters()
		}
		if r.InOrderMath {
			ext = ext.InOrderMath()
		}

		data, warnings, err := ext.JSON()
		if err != nil {
			return toolError(err), nil
		}

		res := &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}
		if len(warnings) > 0 {
			res.Content = append(res.Content, &mcp.TextContent{Text: "Warnings:\n" + FormatWarnings(warnings)})
		}
		return res, nil
	})
}

// --- metadata ---

type metadataReq struct {
	Path string `json:"path"`
}

func registerMetadataTool(srv *mcp.Server, _ MCPConfig) {
	tool := &mcp.Tool{
		Name:        "docx_metadata",
		Description: "Read the title and author of a .docx file.",
		InputSchema: inputSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "Path of the .docx file"},
		}, []string{"path"}),
	}

	srv.AddTool(tool, func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var r metadataReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return toolError(fmt.Errorf("invalid arguments: %w", err)), nil
		}
		if r.Path == "" {
			return toolError(fmt.Errorf("invalid arguments: path is required")), nil
		}

		meta, err := Open(r.Path).Metadata()
		if err != nil {
			return toolError(err), nil
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return toolError(fmt.Errorf("marshal: %w", err)), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}
