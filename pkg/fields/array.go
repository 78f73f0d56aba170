package fields

import (
	"strconv"

	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/form"
)

// Array renders one input per list entry. Entries live at
// "<Name>.<i>.<ItemField>", or "<Name>.<i>" when ItemField is empty.
// ItemLabel and RemoveLabel may contain a %d verb replaced by the one-based
// row number. Max caps the add affordance; zero means uncapped.
type Array struct {
	Name        string
	Label       string
	Description string
	ItemLabel   string
	ItemField   string
	ItemType    string
	Max         int
	AddLabel    string
	RemoveLabel string
}

func (c Array) Render(b binding.Binder) (string, error) {
	spec := binding.ArraySpec{
		Name:        c.Name,
		Label:       c.Label,
		Description: c.Description,
		Max:         c.Max,
		AddLabel:    c.AddLabel,
		RemoveLabel: c.RemoveLabel,
	}
	return b.Array(spec, func(idx int) (string, error) {
		return b.Input(binding.Control{
			Name:  c.ItemPath(idx),
			Label: binding.RowLabel(c.ItemLabel, idx),
			Type:  c.ItemType,
		})
	})
}

// ItemPath returns the bound path of entry idx.
func (c Array) ItemPath(idx int) string {
	path := c.Name + "." + strconv.Itoa(idx)
	if c.ItemField != "" {
		path += "." + c.ItemField
	}
	return path
}

// Blank returns the value appended by Add.
func (c Array) Blank() any {
	if c.ItemField == "" {
		return ""
	}
	return map[string]any{c.ItemField: ""}
}

// Add appends a blank entry unless the list already holds Max entries. It
// reports whether an entry was appended.
func (c Array) Add(f *form.Form) (bool, error) {
	list := f.Array(c.Name)
	if c.Max > 0 && list.Len() >= c.Max {
		return false, nil
	}
	if err := list.Append(c.Blank()); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes entry idx unless it is the last remaining one. It reports
// whether an entry was removed.
func (c Array) Remove(f *form.Form, idx int) (bool, error) {
	list := f.Array(c.Name)
	if list.Len() <= 1 {
		return false, nil
	}
	if err := list.Remove(idx); err != nil {
		return false, err
	}
	return true, nil
}
