package binding

import "fmt"

// Edit is one user interaction delivered by a front-end. Blur marks the
// field touched after the change.
type Edit struct {
	Path  string
	Value any
	Blur  bool
}

// Dispatch applies edits in order through the binder's handles.
func Dispatch(b Binder, edits ...Edit) error {
	for _, edit := range edits {
		if err := b.Change(edit.Path, edit.Value); err != nil {
			return fmt.Errorf("binding: %s change %q: %w", b.Family(), edit.Path, err)
		}
		if !edit.Blur {
			continue
		}
		if err := DispatchBlur(b, edit.Path); err != nil {
			return err
		}
	}
	return nil
}

// DispatchBlur delivers a focus loss through the binder's blur handle.
func DispatchBlur(b Binder, path string) error {
	if err := b.Blur(path); err != nil {
		return fmt.Errorf("binding: %s blur %q: %w", b.Family(), path, err)
	}
	return nil
}
