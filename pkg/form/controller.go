package form

// ControllerField is the render bundle handed to controller-style adapters.
type ControllerField struct {
	Name     string
	Value    any
	OnChange func(value any) error
	OnBlur   func()
}

// FieldState is the validation state that accompanies a ControllerField.
// Invalid is set as soon as an error exists for the path; errors only exist
// once validation ran after a submit attempt.
type FieldState struct {
	Invalid bool
	Touched bool
	Dirty   bool
	Error   string
}

// Controller registers path against the form and returns its bundle.
func (f *Form) Controller(path string) (ControllerField, FieldState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, _ := f.values.Get(path)
	field := ControllerField{
		Name:     path,
		Value:    deepCopy(value),
		OnChange: func(v any) error { return f.Change(path, v) },
		OnBlur:   func() { f.Blur(path) },
	}

	state := FieldState{
		Touched: hasPrefixed(f.touched, path),
		Dirty:   hasPrefixed(f.dirty, path),
	}
	if msgs := f.errors[path]; len(msgs) > 0 {
		state.Invalid = true
		state.Error = msgs[0]
	}
	return field, state
}
