package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
)

// ParamType is the declared type of a tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
)

// Param declares one named tool parameter. Optional parameters may carry a
// Default that is applied when the caller omits them.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     any
}

// Args holds a tool call's validated arguments keyed by parameter name.
// After dispatch validation every value matches its declared type: TypeString
// is string, TypeNumber is float64, TypeInteger is int, TypeBoolean is bool.
type Args map[string]any

// String returns the named string argument, or "" if absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Float returns the named number argument, or 0 if absent.
func (a Args) Float(name string) float64 {
	f, _ := a[name].(float64)
	return f
}

// Handler executes a tool with validated arguments and returns the result
// payload. Handlers classify their own faults as *toolerr.Error values so the
// dispatcher can tell handler faults apart from dispatch faults.
type Handler func(ctx context.Context, args Args) (any, error)

// Tool is a named, schema-typed operation invocable through the protocol
// boundary.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// jsonSchema mirrors the subset of JSON Schema that flat parameter lists need.
type jsonSchema struct {
	Type                 string                 `json:"type"`
	Description          string                 `json:"description,omitempty"`
	Default              any                    `json:"default,omitempty"`
	Properties           map[string]*jsonSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
}

// InputSchema renders the declared parameters as a JSON Schema object for the
// protocol's tool listing. Undeclared properties are rejected at the schema
// level to match dispatch validation.
func (t Tool) InputSchema() (json.RawMessage, error) {
	closed := false
	schema := &jsonSchema{
		Type:                 "object",
		Properties:           make(map[string]*jsonSchema, len(t.Params)),
		AdditionalProperties: &closed,
	}

	for _, p := range t.Params {
		schema.Properties[p.Name] = &jsonSchema{
			Type:        string(p.Type),
			Description: p.Description,
			Default:     p.Default,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("toolbox: schema for %s: %w", t.Name, err)
	}

	return data, nil
}
