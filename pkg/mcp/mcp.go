// Copyright 2026 The devnarrate authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package mcp implements a minimal MCP (Model Context Protocol) server
// over newline-delimited JSON-RPC 2.0 on stdio. It handles the
// initialize/tools handshake an MCP host performs and dispatches
// tools/call requests to registered handlers.
package mcp

import "encoding/json"

// protocolVersion is the MCP revision this server speaks.
const protocolVersion = "2024-11-05"

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Tool describes one callable tool to the host.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Content is one block of a tool result. Only text content is used.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is a tool execution result. IsError marks in-band tool
// failures (bad arguments, git failures); protocol-level failures use
// JSON-RPC errors instead.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// TextResult wraps plain text as a tool result.
func TextResult(text string) *ToolResult {
	return &ToolResult{Content: []Content{{Type: "text", Text: text}}}
}

// JSONResult marshals v and wraps it as a tool result. Marshal
// failures degrade to an error result rather than a dropped response.
func JSONResult(v any) *ToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("failed to encode result: " + err.Error())
	}
	return TextResult(string(data))
}

// ErrorResult wraps an error message as an in-band tool failure.
func ErrorResult(message string) *ToolResult {
	return &ToolResult{
		Content: []Content{{Type: "text", Text: message}},
		IsError: true,
	}
}

// request is an incoming JSON-RPC request or notification.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// response is an outgoing JSON-RPC response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// callParams are the parameters of a tools/call request.
type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}
