// Package tools defines HTTP tool documents. A tool describes an external HTTP
// endpoint an agent may call, including the parameters the model must supply.
package tools

import "strings"

// Tool is a single HTTP tool definition.
type Tool struct {
	ID          string     `json:"id" yaml:"id" bson:"id"`
	Name        string     `json:"name" yaml:"name" bson:"name"`
	Description string     `json:"description" yaml:"description" bson:"description"`
	HTTPConfig  HTTPConfig `json:"httpConfig" yaml:"httpConfig" bson:"http_config"`
}

// HTTPConfig describes how the runtime invokes the tool.
type HTTPConfig struct {
	BaseURL    string            `json:"baseUrl" yaml:"baseUrl" bson:"base_url"`
	Method     string            `json:"method" yaml:"method" bson:"method"`
	Endpoint   string            `json:"endpoint" yaml:"endpoint" bson:"endpoint"`
	Headers    map[string]string `json:"headers" yaml:"headers" bson:"headers"`
	Parameters []Parameter       `json:"parameters" yaml:"parameters" bson:"parameters"`
}

// Parameter describes one request parameter.
// Default is omitted from the stored document when unset.
type Parameter struct {
	Name        string        `json:"name" yaml:"name" bson:"name"`
	Type        ParameterType `json:"type" yaml:"type" bson:"type"`
	Description string        `json:"description" yaml:"description" bson:"description"`
	Required    bool          `json:"required" yaml:"required" bson:"required"`
	Default     any           `json:"default,omitempty" yaml:"default,omitempty" bson:"default,omitempty"`
}

// ParameterType is the declared type of a parameter value.
type ParameterType string

// Parameter types.
const (
	TypeString  ParameterType = "string"
	TypeNumber  ParameterType = "number"
	TypeInteger ParameterType = "integer"
	TypeFloat   ParameterType = "float"
	TypeBoolean ParameterType = "boolean"
	TypeObject  ParameterType = "object"
	TypeArray   ParameterType = "array"
)

// Valid reports whether t is a known parameter type.
func (t ParameterType) Valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeInteger, TypeFloat, TypeBoolean, TypeObject, TypeArray:
		return true
	default:
		return false
	}
}

// Key returns the unique identifier of the tool.
func (t Tool) Key() string {
	return t.ID
}

// Normalize upper-cases the method and replaces nil collections with empty ones.
func (t *Tool) Normalize() {
	t.HTTPConfig.Method = normalizeMethod(t.HTTPConfig.Method)
	if t.HTTPConfig.Headers == nil {
		t.HTTPConfig.Headers = map[string]string{}
	}
	if t.HTTPConfig.Parameters == nil {
		t.HTTPConfig.Parameters = []Parameter{}
	}
}

// URL joins the base URL and endpoint.
func (c HTTPConfig) URL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.Endpoint
}
