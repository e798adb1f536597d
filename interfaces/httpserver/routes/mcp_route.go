package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"nasa-server/services/space-tools/domain/registry"
	"nasa-server/services/space-tools/domain/tool"
	"nasa-server/services/space-tools/interfaces/httpserver/responses"
	"nasa-server/services/space-tools/utils/mcptool"
	"nasa-server/services/space-tools/utils/platformerrors"
)

var allowedMCPMethods = map[string]bool{
	// Initialization / handshake
	"initialize":                true,
	"notifications/initialized": true,
	"ping":                      true,

	// Tools
	"tools/list": true,
	"tools/call": true,
}

// MCPRoute exposes the registry's tool catalog over the Model Context
// Protocol. Every registered tool dispatches through the registry so
// namespacing, metadata stamping, and recovery apply uniformly.
type MCPRoute struct {
	registry    *registry.Registry
	mcpServer   *mcpserver.MCPServer
	httpHandler http.Handler
}

// NewMCPRoute builds the MCP server and registers every tool in the
// registry's catalog.
func NewMCPRoute(reg *registry.Registry) *MCPRoute {
	server := mcpserver.NewMCPServer("nasa-space-tools", "1.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	registerTools(server, reg)

	return &MCPRoute{
		registry:    reg,
		mcpServer:   server,
		httpHandler: mcpserver.NewStreamableHTTPServer(server, mcpserver.WithStateLess(true)),
	}
}

func registerTools(server *mcpserver.MCPServer, reg *registry.Registry) {
	for _, registered := range reg.Tools() {
		toolName := registered.Name
		server.AddTool(
			mcpgo.NewTool(toolName,
				mcptool.SchemaToMCPOptions(registered.Description, registered.Parameters)...,
			),
			func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
				env := reg.Dispatch(ctx, toolName, tool.Args(req.GetArguments()))

				jsonBytes, err := json.Marshal(env)
				if err != nil {
					return nil, err
				}

				return mcpgo.NewToolResultText(string(jsonBytes)), nil
			},
		)
	}
}

func (route *MCPRoute) RegisterRouter(router *gin.RouterGroup) {
	router.POST("/mcp",
		MCPMethodGuard(allowedMCPMethods),
		route.serveMCP,
	)
}

// serveMCP streams Model Context Protocol responses using the underlying MCP server.
func (route *MCPRoute) serveMCP(reqCtx *gin.Context) {
	route.httpHandler.ServeHTTP(reqCtx.Writer, reqCtx.Request)
}

// MCPMethodGuard rejects MCP requests whose JSON-RPC method is not in the
// allow list before they reach the MCP server.
func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		bodyBytes, err := io.ReadAll(reqCtx.Request.Body)
		if err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeInternal, "failed to read MCP request body", "4be01a77-63d9-4a0b-9c58-12f3a42de815")
			return
		}
		_ = reqCtx.Request.Body.Close()

		if len(bodyBytes) == 0 {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "empty MCP request body", "c92f0b24-76e5-4d0a-8f31-6a97cd20e4fb")
			return
		}

		reqCtx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var payload struct {
			Method string `json:"method"`
		}

		if err := json.Unmarshal(bodyBytes, &payload); err != nil {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid MCP request payload", "9d64f3c8-1a2e-47bb-8c05-e57a88b91f36")
			return
		}

		if payload.Method == "" {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "missing method field in MCP request", "5a80de12-94c7-4f6a-b1e9-3c2d507f8ab4")
			return
		}

		if !allowedMethods[payload.Method] {
			responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "unsupported MCP method: "+payload.Method, "e17b5f09-30da-48c1-a672-8b94c6e3d250")
			return
		}

		reqCtx.Next()
	}
}
