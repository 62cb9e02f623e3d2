// Package mcpserver exposes the blackbox client over the Model Context
// Protocol so agent hosts can run chats and list models as tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hqslab/blackbox/pkg/blackbox"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"
)

// ChatClient is the slice of the blackbox client the server drives.
type ChatClient interface {
	Chat(ctx context.Context, query, model string) (*blackbox.ChatResult, error)
}

// verifyClient ensures blackbox.Client satisfies ChatClient at compile time.
var _ ChatClient = (*blackbox.Client)(nil)

// Server serves blackbox tools over the MCP protocol using the official MCP
// Go SDK.
type Server struct {
	client ChatClient
	server *mcp.Server
}

// New creates a Server exposing the given client under the given name and
// version. Two tools are registered: blackbox_chat asks a question and
// returns the answer plus its sources, blackbox_models lists the available
// model names.
func New(client ChatClient, name, version string) *Server {
	s := &Server{
		client: client,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
	}

	s.server.AddTool(&mcp.Tool{
		Name:        "blackbox_chat",
		Description: "Ask blackbox.ai a question and get the streamed answer together with its supporting sources",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"query":{"type":"string","description":"The question to ask"},"model":{"type":"string","description":"Friendly model name such as GPT_4O; defaults to GPT_4O"}},"required":["query"]}`),
	}, s.handleChat)

	s.server.AddTool(&mcp.Tool{
		Name:        "blackbox_models",
		Description: "List the chat models available on blackbox.ai as a name to id table",
		InputSchema: json.RawMessage(`{"type":"object"}`),
	}, s.handleModels)

	return s
}

// Serve starts serving MCP requests. It reads requests from in and writes
// responses to out. It blocks until ctx is cancelled or the transport closes.
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

type chatArgs struct {
	Query string `json:"query"`
	Model string `json:"model,omitempty"`
}

// handleChat runs one chat call. The answer text is the first content item;
// when sources came back they follow as a second item of raw JSON. Client
// failures surface as tool errors, not protocol errors.
func (s *Server) handleChat(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.Params.Arguments
	if args == nil {
		args = json.RawMessage("{}")
	}

	var in chatArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return errorResult(fmt.Errorf("decode arguments: %w", err)), nil
	}

	if strings.TrimSpace(in.Query) == "" {
		return errorResult(errors.New("query is required")), nil
	}

	res, err := s.client.Chat(ctx, in.Query, in.Model)
	if err != nil {
		return errorResult(err), nil
	}

	content := []mcp.Content{&mcp.TextContent{Text: res.StreamingResponse}}
	if len(res.Sources) > 0 {
		content = append(content, &mcp.TextContent{Text: string(res.Sources)})
	}

	return &mcp.CallToolResult{Content: content}, nil
}

// handleModels returns the friendly name to wire id table as JSON.
func (s *Server) handleModels(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table := lo.SliceToMap(blackbox.ModelNames(), func(name string) (string, string) {
		m, _ := blackbox.ResolveModel(name)
		return name, string(m)
	})

	payload, err := json.Marshal(table)
	if err != nil {
		return errorResult(fmt.Errorf("marshal model table: %w", err)), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(payload)}},
	}, nil
}

// errorResult wraps an error as a tool-level failure.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

// nopWriteCloser wraps an io.Writer as an io.WriteCloser with a no-op Close.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
