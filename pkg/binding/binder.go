package binding

import (
	"fmt"
	"strconv"
	"strings"
)

// Binder is the contract reusable field components render through. Each
// binding family provides one.
type Binder interface {
	Family() string
	Input(c Control) (string, error)
	Textarea(c Control) (string, error)
	Select(c Control) (string, error)
	Checkbox(c Control) (string, error)
	Group(g Group, body string) (string, error)
	Array(spec ArraySpec, row func(idx int) (string, error)) (string, error)
	Len(path string) int
	Change(path string, value any) error
	Blur(path string) error
}

// Status is the state a family reports for one path. Invalid and Error are
// already resolved by the family's own visibility rule.
type Status struct {
	Value        any
	Invalid      bool
	Error        string
	ChangeHandle string
	BlurHandle   string
}

// StateFunc resolves the status of a path.
type StateFunc func(path string) Status

// Primitives implements the rendering half of Binder on top of a StateFunc.
// Families embed it and add Family, Change and Blur.
type Primitives struct {
	family string
	kit    Kit
	state  StateFunc
	length func(path string) int
}

// NewPrimitives wires a kit to a family's state lookup.
func NewPrimitives(family string, kit Kit, state StateFunc, length func(path string) int) Primitives {
	return Primitives{family: family, kit: kit, state: state, length: length}
}

func (p Primitives) Input(c Control) (string, error) {
	return p.control(KindInput, c)
}

func (p Primitives) Textarea(c Control) (string, error) {
	return p.control(KindTextarea, c)
}

func (p Primitives) Select(c Control) (string, error) {
	return p.control(KindSelect, c)
}

func (p Primitives) Checkbox(c Control) (string, error) {
	return p.control(KindCheckbox, c)
}

// Len reports the length of the list at path.
func (p Primitives) Len(path string) int {
	if p.length == nil {
		return 0
	}
	return p.length(path)
}

// Group renders a fieldset around an already rendered body.
func (p Primitives) Group(g Group, body string) (string, error) {
	if p.kit == nil {
		return "", fmt.Errorf("binding: kit is nil")
	}
	view := FieldsetView{
		Family:      p.family,
		Name:        g.Name,
		Legend:      g.Legend,
		Description: g.Description,
		Body:        body,
	}
	if g.Name != "" && p.state != nil {
		status := p.state(g.Name)
		view.Invalid, view.Error = status.Invalid, status.Error
	}
	return p.kit.Fieldset(view)
}

// Array renders one row per list entry plus the add and remove affordances.
// Remove is offered only while more than one entry remains; add is disabled
// at spec.Max.
func (p Primitives) Array(spec ArraySpec, row func(idx int) (string, error)) (string, error) {
	if p.kit == nil {
		return "", fmt.Errorf("binding: kit is nil")
	}
	n := p.Len(spec.Name)
	view := ArrayView{
		Family:      p.family,
		Name:        spec.Name,
		Label:       spec.Label,
		Description: spec.Description,
		Len:         n,
		Max:         spec.Max,
		CanAdd:      spec.Max <= 0 || n < spec.Max,
		AddLabel:    spec.AddLabel,
		AddAction:   AddAction(spec.Name),
		Rows:        make([]ArrayRow, 0, n),
	}
	if p.state != nil {
		status := p.state(spec.Name)
		view.Invalid, view.Error = status.Invalid, status.Error
	}

	for idx := 0; idx < n; idx++ {
		body, err := row(idx)
		if err != nil {
			return "", fmt.Errorf("binding: render %s row %d: %w", spec.Name, idx, err)
		}
		view.Rows = append(view.Rows, ArrayRow{
			Index:        idx,
			Body:         body,
			Removable:    n > 1,
			RemoveLabel:  RowLabel(spec.RemoveLabel, idx),
			RemoveAction: RemoveAction(spec.Name, idx),
		})
	}
	return p.kit.Array(view)
}

func (p Primitives) control(kind Kind, c Control) (string, error) {
	if p.kit == nil {
		return "", fmt.Errorf("binding: kit is nil")
	}
	if strings.TrimSpace(c.Name) == "" {
		return "", fmt.Errorf("binding: %s control requires a name", kind)
	}
	var status Status
	if p.state != nil {
		status = p.state(c.Name)
	}
	return p.kit.Control(BuildView(kind, p.family, c, status))
}

// BuildView combines control parameters with a resolved status. The error is
// only carried when the status is invalid.
func BuildView(kind Kind, family string, c Control, status Status) ControlView {
	view := ControlView{
		Kind:         kind,
		Family:       family,
		Name:         c.Name,
		Label:        c.Label,
		Description:  c.Description,
		Placeholder:  c.Placeholder,
		Horizontal:   c.Horizontal,
		Invalid:      status.Invalid,
		ChangeHandle: status.ChangeHandle,
		BlurHandle:   status.BlurHandle,
	}
	if status.Invalid {
		view.Error = status.Error
	}

	switch kind {
	case KindCheckbox:
		view.Checked = Truthy(status.Value)
		view.Value = "true"
	case KindInput:
		view.InputType = c.Type
		if view.InputType == "" {
			view.InputType = "text"
		}
		view.Value = Text(status.Value)
	default:
		view.Value = Text(status.Value)
	}

	if kind == KindSelect {
		view.Options = make([]OptionView, 0, len(c.Options))
		for _, opt := range c.Options {
			view.Options = append(view.Options, OptionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == view.Value,
			})
		}
	}
	return view
}

// RowLabel formats a per-row label using the one-based row number.
func RowLabel(format string, idx int) string {
	if strings.Contains(format, "%d") {
		return fmt.Sprintf(format, idx+1)
	}
	return format
}

// Text renders a value for a text control.
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Truthy interprets checkbox values, including posted strings.
func Truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}
