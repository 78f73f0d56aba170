package form

// FieldMeta is the validity snapshot exposed by an Accessor.
type FieldMeta struct {
	Touched bool
	Dirty   bool
	Valid   bool
	Errors  []string
}

// Accessor is an explicit handle on one field. Rendering code receives it as
// an argument instead of looking field state up implicitly.
type Accessor struct {
	form *Form
	path string
}

// Field returns the accessor for path.
func (f *Form) Field(path string) Accessor {
	return Accessor{form: f, path: path}
}

// Name returns the dotted field path.
func (a Accessor) Name() string {
	return a.path
}

// Value returns the current value.
func (a Accessor) Value() any {
	value, _ := a.form.Value(a.path)
	return deepCopy(value)
}

// HandleChange records an edit.
func (a Accessor) HandleChange(value any) error {
	return a.form.Change(a.path, value)
}

// HandleBlur marks the field as touched.
func (a Accessor) HandleBlur() {
	a.form.Blur(a.path)
}

// Meta returns the field's current tracking and validity state.
func (a Accessor) Meta() FieldMeta {
	f := a.form
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := append([]string(nil), f.errors[a.path]...)
	return FieldMeta{
		Touched: hasPrefixed(f.touched, a.path),
		Dirty:   hasPrefixed(f.dirty, a.path),
		Valid:   len(errs) == 0,
		Errors:  errs,
	}
}
