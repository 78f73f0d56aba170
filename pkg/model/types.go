package model

import (
	"strconv"
	"strings"
)

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleMinItems  = "minItems"
	ValidationRuleMaxItems  = "maxItems"
	ValidationRuleFormat    = "format"
)

// ValidationRule represents a single validation constraint applied to a field.
// Length and cardinality limits encode their threshold in Params["value"];
// format rules carry the format name in Params["format"]. Messages, when
// present, hold the user-facing copy in Params["message"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Option is one entry of a closed set rendered by select controls.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field models an individual input inside a form. Struct fields are annotated
// so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []Option          `json:"enum,omitempty"`
	Nested      []Field           `json:"nested,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Rule returns the first validation rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// IntRule parses the numeric threshold stored on a rule of the given kind.
func (f Field) IntRule(kind string) (int, bool) {
	rule, ok := f.Rule(kind)
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(strings.TrimSpace(rule.Params["value"]))
	if err != nil {
		return 0, false
	}
	return value, true
}

// Hint returns a trimmed UI hint value.
func (f Field) Hint(key string) string {
	if f.UIHints == nil {
		return ""
	}
	return strings.TrimSpace(f.UIHints[key])
}

// DisplayLabel prefers the explicit label and falls back to a humanised name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return DefaultLabeler(f.Name)
}

// Leaves walks the model and returns dotted leaf paths in document order.
// Array items are expanded with the provided length lookup so callers can
// resolve paths such as "users.0.email".
func (m FormModel) Leaves(length func(path string) int) []string {
	var out []string
	for _, field := range m.Fields {
		out = appendLeaves(out, field, field.Name, length)
	}
	return out
}

func appendLeaves(out []string, field Field, path string, length func(string) int) []string {
	switch field.Type {
	case FieldTypeObject:
		for _, child := range field.Nested {
			out = appendLeaves(out, child, path+"."+child.Name, length)
		}
	case FieldTypeArray:
		if field.Items == nil {
			return append(out, path)
		}
		n := 0
		if length != nil {
			n = length(path)
		}
		for idx := 0; idx < n; idx++ {
			itemPath := path + "." + strconv.Itoa(idx)
			if field.Items.Type == FieldTypeObject {
				for _, child := range field.Items.Nested {
					out = appendLeaves(out, child, itemPath+"."+child.Name, length)
				}
				continue
			}
			out = append(out, itemPath)
		}
	default:
		out = append(out, path)
	}
	return out
}
