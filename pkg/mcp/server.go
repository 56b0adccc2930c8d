// Copyright 2026 The devnarrate authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// maxLineBytes bounds a single request line. Host requests are small;
// this is headroom, not a tuning knob.
const maxLineBytes = 4 * 1024 * 1024

// CallFunc executes one tool call.
type CallFunc func(ctx context.Context, args map[string]any) (*ToolResult, error)

// ToolHandler pairs a tool description with its implementation.
type ToolHandler struct {
	Tool Tool
	Call CallFunc
}

// Server dispatches MCP requests to registered tools. Requests are
// processed sequentially in arrival order, so handlers need no
// synchronization of their own.
type Server struct {
	name    string
	version string
	logger  *slog.Logger
	tools   map[string]*ToolHandler
	order   []string
}

// NewServer creates an MCP server.
func NewServer(name, version string, logger *slog.Logger) *Server {
	return &Server{
		name:    name,
		version: version,
		logger:  logger,
		tools:   make(map[string]*ToolHandler),
	}
}

// RegisterTool registers a tool handler. Re-registering a name
// replaces the previous handler.
func (s *Server) RegisterTool(handler *ToolHandler) {
	if _, exists := s.tools[handler.Tool.Name]; !exists {
		s.order = append(s.order, handler.Tool.Name)
	}
	s.tools[handler.Tool.Name] = handler
}

// ServeStdio reads newline-delimited JSON-RPC requests from in and
// writes responses to out until in closes or ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			if err := enc.Encode(errorResponse(nil, codeParseError, "parse error")); err != nil {
				return err
			}
			continue
		}

		resp := s.dispatch(ctx, &req)
		if resp == nil {
			// notification, no response expected
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// dispatch routes one request. It returns nil for notifications.
func (s *Server) dispatch(ctx context.Context, req *request) *response {
	if req.ID == nil {
		// Notifications (e.g. notifications/initialized) carry no ID
		// and must not be answered.
		return nil
	}

	switch req.Method {
	case "initialize":
		return okResponse(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    s.name,
				"version": s.version,
			},
		})

	case "ping":
		return okResponse(req.ID, map[string]any{})

	case "tools/list":
		tools := make([]Tool, 0, len(s.order))
		for _, name := range s.order {
			tools = append(tools, s.tools[name].Tool)
		}
		return okResponse(req.ID, map[string]any{"tools": tools})

	case "tools/call":
		return s.callTool(ctx, req)

	default:
		return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (s *Server) callTool(ctx context.Context, req *request) *response {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "invalid tool call parameters")
	}

	handler, ok := s.tools[params.Name]
	if !ok {
		return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("tool not found: %s", params.Name))
	}

	callID := uuid.New().String()
	s.logger.Info("tool call", "call_id", callID, "tool", params.Name)

	result, err := handler.Call(ctx, params.Arguments)
	if err != nil {
		// Tool failures stay in-band so the host LLM can read them.
		s.logger.Error("tool call failed", "call_id", callID, "tool", params.Name, "error", err)
		return okResponse(req.ID, ErrorResult(err.Error()))
	}

	s.logger.Info("tool call done", "call_id", callID, "tool", params.Name, "is_error", result.IsError)
	return okResponse(req.ID, result)
}

func okResponse(id json.RawMessage, result any) *response {
	return &response{JSONRPC: "2.0", ID: id, Result: result}
}

func errorResponse(id json.RawMessage, code int, message string) *response {
	if id == nil {
		id = json.RawMessage("null")
	}
	return &response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}}
}
