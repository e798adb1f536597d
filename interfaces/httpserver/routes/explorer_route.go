package routes

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"nasa-server/services/space-tools/domain/registry"
	"nasa-server/services/space-tools/domain/tool"
	"nasa-server/services/space-tools/interfaces/httpserver/responses"
	"nasa-server/services/space-tools/utils/platformerrors"
)

// ExplorerRoute exposes the tool catalog over plain REST for callers that do
// not speak MCP. Tool and query invocations always answer 200 with a result
// envelope; only malformed requests get an HTTP error status.
type ExplorerRoute struct {
	registry *registry.Registry
	engine   *registry.Engine
}

// NewExplorerRoute creates the REST explorer route.
func NewExplorerRoute(reg *registry.Registry, engine *registry.Engine) *ExplorerRoute {
	return &ExplorerRoute{
		registry: reg,
		engine:   engine,
	}
}

func (route *ExplorerRoute) RegisterRouter(router *gin.RouterGroup) {
	router.GET("/tools", route.listTools)
	router.POST("/tools/:name", route.callTool)
	router.GET("/status", route.getStatus)
	router.POST("/queries/:query", route.runQuery)
}

type toolCatalog struct {
	Server string                    `json:"server"`
	Count  int                       `json:"count"`
	Tools  []registry.RegisteredTool `json:"tools"`
}

// listTools returns the full namespaced tool catalog.
func (route *ExplorerRoute) listTools(reqCtx *gin.Context) {
	tools := route.registry.Tools()
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[toolCatalog]{
		Status: "ok",
		Result: toolCatalog{
			Server: route.registry.Info().Name,
			Count:  len(tools),
			Tools:  tools,
		},
	})
}

// callTool dispatches one namespaced tool call. Failures inside the tool
// surface as failure envelopes with HTTP 200.
func (route *ExplorerRoute) callTool(reqCtx *gin.Context) {
	toolName := reqCtx.Param("name")

	args, ok := route.bindArgs(reqCtx)
	if !ok {
		return
	}

	env := route.registry.Dispatch(reqCtx.Request.Context(), toolName, args)
	reqCtx.JSON(http.StatusOK, env)
}

// getStatus reports per-source health and the overall tool count.
func (route *ExplorerRoute) getStatus(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[registry.StatusSnapshot]{
		Status: "ok",
		Result: route.registry.Status(),
	})
}

// runQuery executes one cross-source composite query.
func (route *ExplorerRoute) runQuery(reqCtx *gin.Context) {
	query := reqCtx.Param("query")

	args, ok := route.bindArgs(reqCtx)
	if !ok {
		return
	}

	env := route.engine.Run(reqCtx.Request.Context(), query, args)
	reqCtx.JSON(http.StatusOK, env)
}

// bindArgs reads the optional JSON argument object from the request body. An
// empty body means no arguments; anything else must be a JSON object.
func (route *ExplorerRoute) bindArgs(reqCtx *gin.Context) (tool.Args, bool) {
	body, err := io.ReadAll(reqCtx.Request.Body)
	if err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeInternal, "failed to read request body", "0f3ab6d1-58c2-4e7a-9b40-d12e96c75a83")
		return nil, false
	}
	if len(body) == 0 {
		return tool.Args{}, true
	}

	var args tool.Args
	if err := json.Unmarshal(body, &args); err != nil || args == nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "request body must be a JSON object of arguments", "72c4e9f8-0b1d-4a36-85fe-69d03ab2c417")
		return nil, false
	}
	return args, true
}
