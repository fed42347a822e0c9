// Package mcpserver exposes a toolbox over the MCP protocol using the
// official MCP Go SDK. Handler-level faults (upstream or store failures) are
// returned as {"error": ...} payloads in the tool's normal success shape;
// only dispatch-level faults — unknown tool, invalid arguments, recovered
// panics — surface as protocol tool errors.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/helioslabs/prodinfo/pkg/toolerr"
	"github.com/helioslabs/prodinfo/pkg/tools/toolbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server serves a toolbox over MCP.
type Server struct {
	server *mcp.Server
}

// New creates a Server with the given implementation name and version.
func New(name, version string) *Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)

	return &Server{server: server}
}

// Register adds every tool in the toolbox to the server. All calls route
// through tb.Dispatch so argument validation and middleware apply regardless
// of transport.
func (s *Server) Register(tb *toolbox.ToolBox) error {
	for _, t := range tb.Tools() {
		schema, err := t.InputSchema()
		if err != nil {
			return fmt.Errorf("mcpserver: register %s: %w", t.Name, err)
		}

		s.server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schema,
		}, dispatchHandler(tb, t.Name))
	}

	return nil
}

// Serve starts serving MCP requests, reading from in and writing to out. It
// blocks until ctx is cancelled or the transport closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	transport := &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	}

	return s.run(ctx, transport)
}

// run starts the server with the given transport. Exported via Serve for
// production use; called directly by tests with InMemoryTransport.
func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// dispatchHandler wraps one named tool as an SDK ToolHandler routed through
// the toolbox dispatcher.
func dispatchHandler(tb *toolbox.ToolBox, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := toolbox.Args{}
		if raw := req.Params.Arguments; len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return errorResult(fmt.Sprintf("invalid arguments for %s: not a JSON object", name)), nil
			}
		}

		payload, err := tb.Dispatch(ctx, name, args)
		if err != nil {
			switch toolerr.KindOf(err) {
			case toolerr.KindUpstreamUnavailable, toolerr.KindUpstreamDataMissing, toolerr.KindStoreUnavailable:
				// Errors are data at the protocol boundary.
				return textResult(toolerr.Envelope(err))
			default:
				return errorResult(err.Error()), nil
			}
		}

		return textResult(payload)
	}
}

// textResult marshals a payload into a text content result. String payloads
// pass through verbatim so tools like echo return their text unchanged.
func textResult(payload any) (*mcp.CallToolResult, error) {
	text, ok := payload.(string)
	if !ok {
		data, err := json.Marshal(payload)
		if err != nil {
			return errorResult(fmt.Sprintf("marshal result: %v", err)), nil
		}

		text = string(data)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
