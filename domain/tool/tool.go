package tool

import "context"

// Property describes one parameter in an operation's declarative schema.
// The schema doubles as documentation and as the JSON-schema-like catalog
// exposed to MCP and REST callers.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Schema is a JSON-schema-like object declaration for operation arguments.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Descriptor identifies one callable capability of a source adapter.
// Descriptors are declared statically and never mutated after registration.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Adapter presents one data source's capabilities as a set of named
// operations. Operations() is static and deterministic; Execute never lets
// an error escape as a Go error, every failure surfaces inside the envelope.
type Adapter interface {
	Source() string
	Description() string
	Operations() []Descriptor
	Execute(ctx context.Context, operation string, args Args) Envelope
}

// ObjectSchema builds an object schema from properties and required names.
func ObjectSchema(properties map[string]Property, required ...string) Schema {
	if required == nil {
		required = []string{}
	}
	return Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Float returns a pointer suitable for Property.Minimum / Property.Maximum.
func Float(v float64) *float64 {
	return &v
}
