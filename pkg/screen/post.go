package screen

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/render"
)

// ApplyPost replays a posted form onto the screen and returns the decoded
// action. Controls are delivered in document order through the variant's
// change and blur handles, so a posted control counts as interacted with.
// Checkboxes missing from the post are false. The users list is resized to
// cover every posted index. The add and remove actions are applied here;
// callers run Submit for the submit action.
func (s *Screen) ApplyPost(values url.Values) (binding.Action, error) {
	action, ok := binding.ParseAction(values.Get(render.ActionField))
	if !ok {
		return binding.Action{}, fmt.Errorf("screen: unknown action %q", values.Get(render.ActionField))
	}

	if raw := strings.TrimSpace(values.Get(render.SubmitCountField)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			s.form.RestoreSubmitCount(n)
		}
	}

	if err := s.resizeUsers(postedLength(values, s.users.Name)); err != nil {
		return action, err
	}

	binder := s.Binder(nil)
	edits := make([]binding.Edit, 0, len(values))
	for _, path := range s.model.Leaves(s.form.Len) {
		current, _ := s.form.Value(path)
		if _, isBool := current.(bool); isBool {
			edits = append(edits, binding.Edit{Path: path, Value: binding.Truthy(values.Get(path)), Blur: true})
			continue
		}
		if _, posted := values[path]; !posted {
			continue
		}
		edits = append(edits, binding.Edit{Path: path, Value: values.Get(path), Blur: true})
	}
	if err := binding.Dispatch(binder, edits...); err != nil {
		return action, err
	}

	switch action.Kind {
	case binding.ActionAdd:
		if action.Target != s.users.Name {
			return action, fmt.Errorf("screen: no list named %q", action.Target)
		}
		_, err := s.users.Add(s.form)
		return action, err
	case binding.ActionRemove:
		if action.Target != s.users.Name {
			return action, fmt.Errorf("screen: no list named %q", action.Target)
		}
		_, err := s.users.Remove(s.form, action.Index)
		return action, err
	}
	return action, nil
}

// HiddenFields returns the hidden inputs the next post must carry.
func (s *Screen) HiddenFields(extra map[string]string) map[string]string {
	return render.MergeHiddenFields(extra, render.SubmitCount(s.form.SubmitCount()))
}

func (s *Screen) resizeUsers(n int) error {
	if n <= 0 {
		return nil
	}
	list := s.form.Array(s.users.Name)
	for list.Len() < n {
		if err := list.Append(s.users.Blank()); err != nil {
			return err
		}
	}
	for list.Len() > n {
		if err := list.Remove(list.Len() - 1); err != nil {
			return err
		}
	}
	return nil
}

// maxPostedEntries bounds the list length a post can request.
const maxPostedEntries = 64

// postedLength returns one past the highest index posted under name, or zero
// when no entry was posted. Indexes at or above maxPostedEntries are ignored.
func postedLength(values url.Values, name string) int {
	prefix := name + "."
	n := 0
	for key := range values {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		head, _, _ := strings.Cut(strings.TrimPrefix(key, prefix), ".")
		idx, err := strconv.Atoi(head)
		if err != nil || idx < 0 || idx >= maxPostedEntries {
			continue
		}
		if idx+1 > n {
			n = idx + 1
		}
	}
	return n
}
