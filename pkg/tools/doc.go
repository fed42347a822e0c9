// Package tools provides tool dispatch and MCP (Model Context Protocol) integration.
//
// It is organized into sub-packages:
//   - [github.com/helioslabs/prodinfo/pkg/tools/toolbox] — Tool type, parameter validation, and the dispatching ToolBox registry
//   - [github.com/helioslabs/prodinfo/pkg/tools/mcpserver] — MCP server using the official MCP Go SDK for exposing a toolbox over the protocol
//
// The toolbox sub-package is the foundation layer; mcpserver is a thin
// wrapper around the official MCP Go SDK
// (github.com/modelcontextprotocol/go-sdk) that routes every call through
// ToolBox.Dispatch.
package tools
