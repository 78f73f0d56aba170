package fields

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/model"
)

// Built-in component identifiers.
const (
	ComponentInput    = "input"
	ComponentTextarea = "textarea"
	ComponentSelect   = "select"
	ComponentCheckbox = "checkbox"
	ComponentGroup    = "group"
	ComponentArray    = "array"
)

// Matcher decides whether a component should handle the supplied field.
type Matcher func(field model.Field) bool

// Builder constructs a component for field bound at path.
type Builder func(r *Registry, field model.Field, path string) (Component, error)

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry maps model fields to components. Explicit "component" UI hints
// are honoured first; otherwise higher priority matchers win and ties fall
// back to registration order.
type Registry struct {
	mu       sync.RWMutex
	rules    []rule
	builders map[string]Builder
}

// NewRegistry constructs a registry with the built-in components registered.
func NewRegistry() *Registry {
	reg := &Registry{builders: make(map[string]Builder)}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for name. Callers should avoid duplicate names;
// the latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// RegisterBuilder sets the constructor used for name.
func (r *Registry) RegisterBuilder(name string, builder Builder) {
	if r == nil || builder == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[strings.TrimSpace(name)] = builder
}

// Resolve returns the component name for a field.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := field.Hint("component"); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Build resolves and constructs the component for field. parent is the path
// of the enclosing object, empty at the top level.
func (r *Registry) Build(field model.Field, parent string) (Component, error) {
	name, ok := r.Resolve(field)
	if !ok {
		return nil, fmt.Errorf("fields: no component for field %q", field.Name)
	}
	r.mu.RLock()
	builder := r.builders[name]
	r.mu.RUnlock()
	if builder == nil {
		return nil, fmt.Errorf("fields: component %q for field %q has no builder", name, field.Name)
	}
	return builder(r, field, joinPath(parent, field.Name))
}

// Compose builds components for every top-level field of form in document
// order.
func (r *Registry) Compose(form model.FormModel) ([]Component, error) {
	return r.composeFields(form.Fields, "")
}

func (r *Registry) composeFields(fields []model.Field, parent string) ([]Component, error) {
	out := make([]Component, 0, len(fields))
	for _, field := range fields {
		component, err := r.Build(field, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, component)
	}
	return out, nil
}

func (r *Registry) registerBuiltins() {
	r.Register(ComponentCheckbox, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})
	r.Register(ComponentArray, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeArray
	})
	r.Register(ComponentGroup, 70, func(field model.Field) bool {
		return field.Type == model.FieldTypeObject
	})
	r.Register(ComponentSelect, 60, func(field model.Field) bool {
		return len(field.Enum) > 0
	})
	r.Register(ComponentInput, 10, func(field model.Field) bool {
		return field.Type == model.FieldTypeString
	})

	r.builders[ComponentInput] = buildInput
	r.builders[ComponentTextarea] = buildTextarea
	r.builders[ComponentSelect] = buildSelect
	r.builders[ComponentCheckbox] = buildCheckbox
	r.builders[ComponentGroup] = buildGroup
	r.builders[ComponentArray] = buildArray
}

func buildInput(_ *Registry, field model.Field, path string) (Component, error) {
	return Input{
		Name:        path,
		Label:       field.DisplayLabel(),
		Description: field.Description,
		Type:        inputType(field),
		Placeholder: field.Hint("placeholder"),
	}, nil
}

func buildTextarea(_ *Registry, field model.Field, path string) (Component, error) {
	return Textarea{
		Name:        path,
		Label:       field.DisplayLabel(),
		Description: field.Description,
		Placeholder: field.Hint("placeholder"),
	}, nil
}

func buildSelect(_ *Registry, field model.Field, path string) (Component, error) {
	options := make([]binding.Option, 0, len(field.Enum))
	for _, opt := range field.Enum {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		options = append(options, binding.Option{Value: opt.Value, Label: label})
	}
	return Select{
		Name:        path,
		Label:       field.DisplayLabel(),
		Description: field.Description,
		Options:     options,
	}, nil
}

func buildCheckbox(_ *Registry, field model.Field, path string) (Component, error) {
	return Checkbox{
		Name:        path,
		Label:       field.DisplayLabel(),
		Description: field.Description,
		Horizontal:  field.Hint("horizontal") == "true",
	}, nil
}

func buildGroup(r *Registry, field model.Field, path string) (Component, error) {
	children, err := r.composeFields(field.Nested, path)
	if err != nil {
		return nil, err
	}
	return Group{
		Name:        path,
		Legend:      field.DisplayLabel(),
		Description: field.Description,
		Children:    children,
	}, nil
}

func buildArray(_ *Registry, field model.Field, path string) (Component, error) {
	array := Array{
		Name:        path,
		Label:       field.DisplayLabel(),
		Description: field.Description,
		ItemLabel:   field.Hint("itemLabel"),
		AddLabel:    field.Hint("addLabel"),
		RemoveLabel: field.Hint("removeLabel"),
	}
	if max, ok := field.IntRule(model.ValidationRuleMaxItems); ok {
		array.Max = max
	}

	if item := field.Items; item != nil {
		switch {
		case item.Type == model.FieldTypeObject && len(item.Nested) == 1:
			array.ItemField = item.Nested[0].Name
			array.ItemType = inputType(item.Nested[0])
		case item.Type == model.FieldTypeObject:
			return nil, fmt.Errorf("fields: array %q items must have exactly one field", path)
		default:
			array.ItemType = inputType(*item)
		}
	}

	if array.ItemLabel == "" {
		array.ItemLabel = array.Label + " %d"
	}
	if array.AddLabel == "" {
		array.AddLabel = "Add"
	}
	if array.RemoveLabel == "" {
		array.RemoveLabel = "Remove"
	}
	return array, nil
}

func inputType(field model.Field) string {
	if hint := field.Hint("inputType"); hint != "" {
		return hint
	}
	if strings.EqualFold(field.Format, "email") {
		return "email"
	}
	return "text"
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
