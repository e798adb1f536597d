package registry

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"nasa-server/services/space-tools/domain/tool"
	"nasa-server/services/space-tools/infrastructure/metrics"
)

const (
	serverName      = "nasa-space-tools"
	serverVersion   = "1.0.0"
	protocolVersion = "2024-11-05"

	// namespaceSeparator joins source id and operation name into the public
	// tool name. Dispatch splits on the first occurrence only, so operation
	// names may contain it.
	namespaceSeparator = "_"
)

// Registry aggregates all source adapters under one namespaced call
// surface. The adapter list and dispatch map are built once at construction
// and read-only afterwards.
type Registry struct {
	adapters   []tool.Adapter
	bySource   map[string]tool.Adapter
	apiKeyMode string
}

// New builds a registry over the given adapters. Adapter order fixes the
// catalog order.
func New(apiKeyMode string, adapters ...tool.Adapter) *Registry {
	bySource := make(map[string]tool.Adapter, len(adapters))
	for _, adapter := range adapters {
		bySource[adapter.Source()] = adapter
	}
	r := &Registry{
		adapters:   adapters,
		bySource:   bySource,
		apiKeyMode: apiKeyMode,
	}
	log.Info().Int("sources", len(adapters)).Msg("tool registry initialized")
	return r
}

// RegisteredTool is one catalog entry: the operation descriptor under its
// namespaced name, plus the owning source.
type RegisteredTool struct {
	tool.Descriptor
	Source string `json:"source"`
}

// ServerInfo identifies this server to MCP callers.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// InitializeResult is the MCP-style initialization handshake payload.
type InitializeResult struct {
	ProtocolVersion string           `json:"protocol_version"`
	Capabilities    map[string]any   `json:"capabilities"`
	ServerInfo      ServerInfo       `json:"server_info"`
	Tools           []RegisteredTool `json:"tools"`
}

// Tools returns the merged catalog: every adapter's operations prefixed with
// the adapter's source id, in fixed adapter-then-declaration order.
func (r *Registry) Tools() []RegisteredTool {
	var tools []RegisteredTool
	for _, adapter := range r.adapters {
		source := adapter.Source()
		for _, descriptor := range adapter.Operations() {
			descriptor.Name = source + namespaceSeparator + descriptor.Name
			tools = append(tools, RegisteredTool{
				Descriptor: descriptor,
				Source:     source,
			})
		}
	}
	return tools
}

// Info identifies this server to callers.
func (r *Registry) Info() ServerInfo {
	return ServerInfo{
		Name:        serverName,
		Version:     serverVersion,
		Description: "NASA Space Tools server providing access to APOD, NeoWs, and Mars Rover data",
	}
}

// Initialize performs the server handshake. Idempotent; the catalog is
// rebuilt deterministically on every call.
func (r *Registry) Initialize() InitializeResult {
	tools := r.Tools()
	log.Info().Int("tools", len(tools)).Msg("server initialized")

	return InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities: map[string]any{
			"tools":     map[string]any{},
			"resources": map[string]any{},
			"prompts":   map[string]any{},
		},
		ServerInfo: r.Info(),
		Tools:      tools,
	}
}

// Dispatch routes one tool call to the owning adapter and stamps call
// metadata onto the result. This is the outermost safety net: no error or
// panic escapes as anything but a failure envelope, and every envelope
// carries metadata, routing failures included.
func (r *Registry) Dispatch(ctx context.Context, toolName string, args tool.Args) (env tool.Envelope) {
	started := time.Now()

	source, operation := "", toolName
	if separator := strings.Index(toolName, namespaceSeparator); separator >= 0 {
		source = toolName[:separator]
		operation = toolName[separator+len(namespaceSeparator):]
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Str("tool", toolName).Interface("panic", rec).Msg("tool execution panicked")
			env = tool.Failf("Tool execution failed: %v", rec)
		}

		env.Metadata = &tool.Metadata{
			Source:    source,
			Operation: operation,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Server:    serverName,
		}

		status := "ok"
		if !env.Success {
			status = "error"
		}
		metrics.RecordToolCall(toolName, source, status, time.Since(started).Seconds())
	}()

	if source == "" {
		return tool.Failf("Invalid tool name format: %s", toolName)
	}

	adapter, ok := r.bySource[source]
	if !ok {
		return tool.Failf("Unknown tool source: %s", source)
	}

	log.Info().Str("source", source).Str("operation", operation).Msg("dispatching tool call")

	return adapter.Execute(ctx, operation, args)
}

// SourceStatus is one source's slice of the status snapshot.
type SourceStatus struct {
	Status      string `json:"status"`
	ToolsCount  int    `json:"tools_count"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

// StatusSnapshot is the full server health report.
type StatusSnapshot struct {
	ServerStatus string                  `json:"server_status"`
	TotalSources int                     `json:"total_sources"`
	TotalTools   int                     `json:"total_tools"`
	NASAAPIKey   string                  `json:"nasa_api_key"`
	Sources      map[string]SourceStatus `json:"sources"`
	LastCheck    string                  `json:"last_check"`
}

// Status probes every source's catalog. A failing source is reported in
// place, never fatal to the snapshot.
func (r *Registry) Status() StatusSnapshot {
	sources := make(map[string]SourceStatus, len(r.adapters))
	totalTools := 0

	for _, adapter := range r.adapters {
		name := adapter.Source()
		sources[name] = r.probeSource(adapter)
		totalTools += sources[name].ToolsCount
	}

	return StatusSnapshot{
		ServerStatus: "running",
		TotalSources: len(r.adapters),
		TotalTools:   totalTools,
		NASAAPIKey:   r.apiKeyMode,
		Sources:      sources,
		LastCheck:    time.Now().UTC().Format(time.RFC3339),
	}
}

func (r *Registry) probeSource(adapter tool.Adapter) (status SourceStatus) {
	defer func() {
		if rec := recover(); rec != nil {
			status = SourceStatus{
				Status: "error",
				Error:  fmtPanic(rec),
			}
		}
	}()

	operations := adapter.Operations()
	return SourceStatus{
		Status:      "healthy",
		ToolsCount:  len(operations),
		Description: adapter.Description(),
	}
}

func fmtPanic(rec any) string {
	if err, ok := rec.(error); ok {
		return err.Error()
	}
	if s, ok := rec.(string); ok {
		return s
	}
	return "unexpected failure"
}
