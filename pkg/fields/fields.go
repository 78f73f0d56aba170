package fields

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/pkg/binding"
)

// Component renders itself through a binder.
type Component interface {
	Render(b binding.Binder) (string, error)
}

// Input is a single-line text control. Type defaults to "text".
type Input struct {
	Name        string
	Label       string
	Description string
	Type        string
	Placeholder string
}

func (c Input) Render(b binding.Binder) (string, error) {
	return b.Input(binding.Control{
		Name:        c.Name,
		Label:       c.Label,
		Description: c.Description,
		Type:        c.Type,
		Placeholder: c.Placeholder,
	})
}

// Textarea is a multi-line text control.
type Textarea struct {
	Name        string
	Label       string
	Description string
	Placeholder string
}

func (c Textarea) Render(b binding.Binder) (string, error) {
	return b.Textarea(binding.Control{
		Name:        c.Name,
		Label:       c.Label,
		Description: c.Description,
		Placeholder: c.Placeholder,
	})
}

// Select picks one value out of Options.
type Select struct {
	Name        string
	Label       string
	Description string
	Options     []binding.Option
}

func (c Select) Render(b binding.Binder) (string, error) {
	return b.Select(binding.Control{
		Name:        c.Name,
		Label:       c.Label,
		Description: c.Description,
		Options:     c.Options,
	})
}

// Checkbox is a boolean control.
type Checkbox struct {
	Name        string
	Label       string
	Description string
	Horizontal  bool
}

func (c Checkbox) Render(b binding.Binder) (string, error) {
	return b.Checkbox(binding.Control{
		Name:        c.Name,
		Label:       c.Label,
		Description: c.Description,
		Horizontal:  c.Horizontal,
	})
}

// Group renders its children inside a fieldset. Name is optional and lets
// the group surface an error reported at that path.
type Group struct {
	Name        string
	Legend      string
	Description string
	Children    []Component
}

func (c Group) Render(b binding.Binder) (string, error) {
	body, err := RenderAll(b, c.Children...)
	if err != nil {
		return "", err
	}
	return b.Group(binding.Group{
		Name:        c.Name,
		Legend:      c.Legend,
		Description: c.Description,
	}, body)
}

// RenderAll renders components in order and joins their markup.
func RenderAll(b binding.Binder, components ...Component) (string, error) {
	if b == nil {
		return "", fmt.Errorf("fields: binder is nil")
	}
	parts := make([]string, 0, len(components))
	for idx, component := range components {
		if component == nil {
			continue
		}
		markup, err := component.Render(b)
		if err != nil {
			return "", fmt.Errorf("fields: render component %d: %w", idx, err)
		}
		parts = append(parts, markup)
	}
	return strings.Join(parts, "\n"), nil
}
