package openapi

import (
	"strconv"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/project"
)

var registerFormats sync.Once

// ensureFormats registers the string formats the derived schemas use with
// kin-openapi's global format table.
func ensureFormats() {
	registerFormats.Do(func() {
		openapi3.DefineStringFormatValidator("email", openapi3.NewRegexpFormatValidator(openapi3.FormatOfStringForEmail))
	})
}

// SchemaFromModel derives the request body schema of fm.
func SchemaFromModel(fm model.FormModel) *openapi3.Schema {
	ensureFormats()
	return objectSchema(fm.Fields)
}

// ProjectSchema returns the request body schema of the project form.
func ProjectSchema() *openapi3.Schema {
	return SchemaFromModel(project.FormModel())
}

// ResultSchema describes the handler result.
func ResultSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema())
	schema.Required = []string{"success", "message"}
	return schema
}

func objectSchema(fields []model.Field) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, field := range fields {
		if field.Name == "" {
			continue
		}
		schema.WithProperty(field.Name, fieldSchema(field))
		if field.Required {
			required = append(required, field.Name)
		}
	}
	schema.Required = required
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeBoolean:
		schema = openapi3.NewBoolSchema()
	case model.FieldTypeObject:
		schema = objectSchema(field.Nested)
	case model.FieldTypeArray:
		schema = openapi3.NewArraySchema()
		if field.Items != nil {
			schema.WithItems(fieldSchema(*field.Items))
		}
	default:
		schema = openapi3.NewStringSchema()
		if field.Format != "" {
			schema.WithFormat(field.Format)
		}
		if len(field.Enum) > 0 {
			values := make([]any, 0, len(field.Enum))
			for _, option := range field.Enum {
				values = append(values, option.Value)
			}
			schema.WithEnum(values...)
		}
	}

	schema.Description = field.Description
	if field.Label != "" {
		schema.Title = field.Label
	}
	if field.Default != nil {
		schema.WithDefault(field.Default)
	}

	for _, rule := range field.Validations {
		applyRule(schema, rule)
	}
	return schema
}

func applyRule(schema *openapi3.Schema, rule model.ValidationRule) {
	n, err := strconv.ParseUint(rule.Params["value"], 10, 64)
	switch rule.Kind {
	case model.ValidationRuleMinLength:
		if err == nil {
			schema.WithMinLength(int64(n))
		}
	case model.ValidationRuleMaxLength:
		if err == nil {
			schema.WithMaxLength(int64(n))
		}
	case model.ValidationRuleMinItems:
		if err == nil {
			schema.WithMinItems(int64(n))
		}
	case model.ValidationRuleMaxItems:
		if err == nil {
			schema.WithMaxItems(int64(n))
		}
	case model.ValidationRuleFormat:
		if format := rule.Params["format"]; format != "" {
			schema.WithFormat(format)
		}
	}
}
