package form

import (
	"fmt"
	"strconv"
)

// FieldArray manipulates the list stored at a path. Append is uncapped;
// callers that need a cap enforce it before calling.
type FieldArray struct {
	form *Form
	path string
}

// Array returns the field array at path.
func (f *Form) Array(path string) *FieldArray {
	return &FieldArray{form: f, path: path}
}

// Name returns the dotted path of the list.
func (a *FieldArray) Name() string {
	return a.path
}

// Len returns the number of entries.
func (a *FieldArray) Len() int {
	return a.form.Len(a.path)
}

// Items returns a copy of the entries.
func (a *FieldArray) Items() []any {
	value, _ := a.form.Value(a.path)
	list, _ := deepCopy(value).([]any)
	return list
}

// ItemPath returns the dotted path of entry idx.
func (a *FieldArray) ItemPath(idx int) string {
	return a.path + "." + strconv.Itoa(idx)
}

// Append adds item at the end of the list.
func (a *FieldArray) Append(item any) error {
	f := a.form
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.values.Len(a.path)
	if err := f.values.Set(a.path+"."+strconv.Itoa(n), item); err != nil {
		return fmt.Errorf("form: append to %q: %w", a.path, err)
	}
	f.dirty[a.path] = true
	if f.revalidate && f.submits > 0 {
		f.runValidation()
	}
	return nil
}

// Remove deletes entry idx. Touched, dirty and error state of later entries
// move down with them.
func (a *FieldArray) Remove(idx int) error {
	f := a.form
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.values.Len(a.path)
	if idx < 0 || idx >= n {
		return fmt.Errorf("form: remove %q: index %d out of range [0,%d)", a.path, idx, n)
	}
	if err := f.values.Delete(a.ItemPath(idx)); err != nil {
		return fmt.Errorf("form: remove %q: %w", a.path, err)
	}
	f.shift(a.path, idx)
	f.dirty[a.path] = true
	if f.revalidate && f.submits > 0 {
		f.runValidation()
	}
	return nil
}
