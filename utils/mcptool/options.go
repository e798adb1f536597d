package mcptool

import (
	"sort"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"nasa-server/services/space-tools/domain/tool"
)

// SchemaToMCPOptions converts a declarative operation schema into MCP tool
// options for the mark3labs MCP server SDK. Properties are emitted in sorted
// name order so the advertised catalog is stable between calls.
func SchemaToMCPOptions(description string, schema tool.Schema) []mcpgo.ToolOption {
	opts := []mcpgo.ToolOption{
		mcpgo.WithDescription(description),
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		property := schema.Properties[name]
		propertyOpts := propertyOptions(property, required[name])

		switch property.Type {
		case "string":
			opts = append(opts, mcpgo.WithString(name, propertyOpts...))
		case "integer", "number":
			opts = append(opts, mcpgo.WithNumber(name, propertyOpts...))
		case "boolean":
			opts = append(opts, mcpgo.WithBoolean(name, propertyOpts...))
		default:
			continue
		}
	}

	return opts
}

func propertyOptions(property tool.Property, required bool) []mcpgo.PropertyOption {
	propertyOpts := []mcpgo.PropertyOption{}
	if property.Description != "" {
		propertyOpts = append(propertyOpts, mcpgo.Description(property.Description))
	}
	if required {
		propertyOpts = append(propertyOpts, mcpgo.Required())
	}
	if property.Pattern != "" {
		propertyOpts = append(propertyOpts, mcpgo.Pattern(property.Pattern))
	}
	if len(property.Enum) > 0 {
		propertyOpts = append(propertyOpts, mcpgo.Enum(property.Enum...))
	}
	if property.Minimum != nil {
		propertyOpts = append(propertyOpts, mcpgo.Min(*property.Minimum))
	}
	if property.Maximum != nil {
		propertyOpts = append(propertyOpts, mcpgo.Max(*property.Maximum))
	}
	switch def := property.Default.(type) {
	case string:
		propertyOpts = append(propertyOpts, mcpgo.DefaultString(def))
	case int:
		propertyOpts = append(propertyOpts, mcpgo.DefaultNumber(float64(def)))
	case float64:
		propertyOpts = append(propertyOpts, mcpgo.DefaultNumber(def))
	case bool:
		propertyOpts = append(propertyOpts, mcpgo.DefaultBool(def))
	}
	return propertyOpts
}
