package fields

import (
	"github.com/goliatone/go-formfields/pkg/model"
)

var defaultRegistry = NewRegistry()

// FromModel builds the component for a top-level field with the default
// registry.
func FromModel(field model.Field) (Component, error) {
	return defaultRegistry.Build(field, "")
}

// Compose builds components for every top-level field with the default
// registry.
func Compose(form model.FormModel) ([]Component, error) {
	return defaultRegistry.Compose(form)
}

// Seed derives a value tree from form. Strings start empty, booleans false,
// and lists hold as many blank entries as their minItems rule requires.
// Field defaults of the matching kind win.
func Seed(form model.FormModel) map[string]any {
	out := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		out[field.Name] = seedField(field)
	}
	return out
}

func seedField(field model.Field) any {
	switch field.Type {
	case model.FieldTypeBoolean:
		if value, ok := field.Default.(bool); ok {
			return value
		}
		return false
	case model.FieldTypeObject:
		nested := make(map[string]any, len(field.Nested))
		for _, child := range field.Nested {
			nested[child.Name] = seedField(child)
		}
		return nested
	case model.FieldTypeArray:
		n, _ := field.IntRule(model.ValidationRuleMinItems)
		items := make([]any, 0, n)
		for i := 0; i < n; i++ {
			if field.Items == nil {
				items = append(items, "")
				continue
			}
			items = append(items, seedField(*field.Items))
		}
		return items
	default:
		if value, ok := field.Default.(string); ok {
			return value
		}
		return ""
	}
}
