// Package accessor binds fields through explicit accessor handles. Every
// primitive receives the handle for its own path; a field is flagged invalid
// only once it has been touched and fails validation.
package accessor

import (
	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/form"
)

// Family is the binder family name.
const Family = "accessor"

// Handle names emitted on rendered controls.
const (
	ChangeHandle = "field.handleChange"
	BlurHandle   = "field.handleBlur"
)

// Binder renders primitives from accessor handles.
type Binder struct {
	binding.Primitives
	form *form.Form
}

var _ binding.Binder = (*Binder)(nil)

// New binds kit to f.
func New(f *form.Form, kit binding.Kit) *Binder {
	b := &Binder{form: f}
	b.Primitives = binding.NewPrimitives(Family, kit, b.status, f.Len)
	return b
}

func (b *Binder) Family() string {
	return Family
}

// Accessor returns the handle for path.
func (b *Binder) Accessor(path string) form.Accessor {
	return b.form.Field(path)
}

// Change delivers value through the accessor's HandleChange.
func (b *Binder) Change(path string, value any) error {
	return b.form.Field(path).HandleChange(value)
}

// Blur delivers focus loss through the accessor's HandleBlur.
func (b *Binder) Blur(path string) error {
	b.form.Field(path).HandleBlur()
	return nil
}

// Status resolves the visible state of an accessor.
func Status(field form.Accessor) binding.Status {
	meta := field.Meta()
	status := binding.Status{
		Value:        field.Value(),
		Invalid:      meta.Touched && !meta.Valid,
		ChangeHandle: ChangeHandle,
		BlurHandle:   BlurHandle,
	}
	if status.Invalid && len(meta.Errors) > 0 {
		status.Error = meta.Errors[0]
	}
	return status
}

func (b *Binder) status(path string) binding.Status {
	return Status(b.form.Field(path))
}
