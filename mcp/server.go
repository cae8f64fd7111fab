// Package mcp serves existgen's commands as tools over the Model Context
// Protocol: newline-delimited JSON-RPC 2.0 on a reader and a writer,
// normally stdin and stdout.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/logger"
)

// maxMessageSize bounds a single JSON-RPC line.
const maxMessageSize = 1024 * 1024

// ToolHandler runs a tool. args is the "arguments" object of the call,
// which may not exist.
type ToolHandler func(ctx context.Context, args gjson.Result) (string, error)

// Tool is a named handler with its input schema.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     ToolHandler
}

// Config identifies the server to clients.
type Config struct {
	Name    string
	Version string
}

// Server dispatches JSON-RPC requests to registered tools.
type Server struct {
	config Config
	log    *zap.SugaredLogger

	mu    sync.RWMutex
	tools map[string]Tool
}

// NewServer creates a Server with no tools.
func NewServer(config Config) *Server {
	return &Server{
		config: config,
		log:    logger.ComponentLogger("mcp"),
		tools:  make(map[string]Tool),
	}
}

// Name returns the server name.
func (s *Server) Name() string { return s.config.Name }

// Register adds tool, replacing any tool of the same name.
func (s *Server) Register(tool Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools[tool.Name] = tool
	s.log.Debugw("registered", logger.FieldTool, tool.Name)
}

// Tools lists the registered tools sorted by name.
func (s *Server) Tools() []ToolInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]ToolInfo, 0, len(s.tools))
	for _, tool := range s.tools {
		schema := tool.InputSchema
		if schema == nil {
			schema = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		infos = append(infos, ToolInfo{Name: tool.Name, Description: tool.Description, InputSchema: schema})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Call runs the named tool directly.
func (s *Server) Call(ctx context.Context, name string, args gjson.Result) (string, error) {
	s.mu.RLock()
	tool, ok := s.tools[name]
	s.mu.RUnlock()
	if !ok {
		return "", errors.Newf("tool not found: %s", name)
	}
	return tool.Handler(ctx, args)
}

// Serve reads one request per line from r and writes responses to w
// until r is exhausted or ctx is done.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.log.Infow("serving", "name", s.config.Name, "version", s.config.Version)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxMessageSize)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.Handle(ctx, line)
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return errors.Wrap(err, "writing response")
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading requests")
	}
	return nil
}

// Handle processes one message. It returns nil for notifications.
func (s *Server) Handle(ctx context.Context, data []byte) *Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return failure(nil, ParseError, "parse error")
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		return failure(req.ID, InvalidRequest, "invalid request")
	}
	s.log.Debugw("request", logger.FieldMethod, req.Method)

	var result any
	switch req.Method {
	case "initialize":
		result = InitializeResult{
			ProtocolVersion: ProtocolVersion,
			ServerInfo:      ServerInfo{Name: s.config.Name, Version: s.config.Version},
			Capabilities:    ServerCapabilities{Tools: &ToolsCapability{}},
		}
	case "ping":
		result = struct{}{}
	case "tools/list":
		result = ToolsListResult{Tools: s.Tools()}
	case "tools/call":
		res, rpcErr := s.callTool(ctx, req.Params)
		if rpcErr != nil {
			return failure(req.ID, rpcErr.Code, rpcErr.Message)
		}
		result = res
	default:
		if req.IsNotification() {
			return nil
		}
		return failure(req.ID, MethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}

	if req.IsNotification() {
		return nil
	}
	return &Response{JSONRPC: "2.0", Result: result, ID: req.ID}
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (ToolCallResult, *Error) {
	if len(params) == 0 || !gjson.ValidBytes(params) {
		return ToolCallResult{}, &Error{Code: InvalidParams, Message: "invalid params"}
	}
	p := gjson.ParseBytes(params)
	name := p.Get("name").String()

	s.mu.RLock()
	tool, ok := s.tools[name]
	s.mu.RUnlock()
	if !ok {
		return ToolCallResult{}, &Error{Code: InvalidParams, Message: fmt.Sprintf("tool not found: %s", name)}
	}

	text, err := tool.Handler(ctx, p.Get("arguments"))
	if err != nil {
		s.log.Debugw("tool failed", logger.FieldTool, name, logger.FieldError, err)
		return textResult(err.Error(), true), nil
	}
	return textResult(text, false), nil
}

func failure(id json.RawMessage, code int, message string) *Response {
	return &Response{JSONRPC: "2.0", Error: &Error{Code: code, Message: message}, ID: id}
}
