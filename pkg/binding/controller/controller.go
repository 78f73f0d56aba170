// Package controller binds fields the controller way: each primitive is
// rendered from the bundle returned by registering its path against the form.
// A field is invalid as soon as an error exists for it.
package controller

import (
	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/form"
)

// Family is the binder family name.
const Family = "controller"

// Handle names emitted on rendered controls.
const (
	ChangeHandle = "field.onChange"
	BlurHandle   = "field.onBlur"
)

// Binder renders primitives from controller bundles.
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

// Change delivers value through the bundle's OnChange handle.
func (b *Binder) Change(path string, value any) error {
	field, _ := b.form.Controller(path)
	return field.OnChange(value)
}

// Blur delivers focus loss through the bundle's OnBlur handle.
func (b *Binder) Blur(path string) error {
	field, _ := b.form.Controller(path)
	field.OnBlur()
	return nil
}

func (b *Binder) status(path string) binding.Status {
	field, state := b.form.Controller(path)
	return binding.Status{
		Value:        field.Value,
		Invalid:      state.Invalid,
		Error:        state.Error,
		ChangeHandle: ChangeHandle,
		BlurHandle:   BlurHandle,
	}
}
