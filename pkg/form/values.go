package form

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Values is a value tree made of maps and slices addressed by dotted paths
// such as "users.0.email". The zero value is an empty tree.
type Values struct {
	root map[string]any
}

// NewValues seeds a tree with a deep copy of the provided map.
func NewValues(seed map[string]any) *Values {
	return &Values{root: cloneMap(seed)}
}

// Get resolves a dotted path.
func (v *Values) Get(path string) (any, bool) {
	if v == nil {
		return nil, false
	}
	return getPath(v.root, path)
}

// Set writes a value using a dotted path, creating intermediate maps and
// slices as needed.
func (v *Values) Set(path string, value any) error {
	if v == nil {
		return fmt.Errorf("form: values are nil")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("form: empty path")
	}
	if v.root == nil {
		v.root = make(map[string]any)
	}
	return setPath(v.root, path, deepCopy(value))
}

// Delete removes the value at path. Slice entries are removed and later
// entries shift down by one.
func (v *Values) Delete(path string) error {
	if v == nil || v.root == nil {
		return nil
	}
	parentPath, key := splitLast(path)
	var parent any = v.root
	if parentPath != "" {
		var ok bool
		if parent, ok = getPath(v.root, parentPath); !ok {
			return nil
		}
	}
	switch node := parent.(type) {
	case map[string]any:
		delete(node, key)
		return nil
	case []any:
		idx, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("form: expected numeric segment, got %q", key)
		}
		if idx < 0 || idx >= len(node) {
			return nil
		}
		trimmed := make([]any, 0, len(node)-1)
		trimmed = append(trimmed, node[:idx]...)
		trimmed = append(trimmed, node[idx+1:]...)
		return setPath(v.root, parentPath, trimmed)
	default:
		return fmt.Errorf("form: cannot delete %q from %T", path, parent)
	}
}

// Len reports the number of entries of the slice at path, or zero.
func (v *Values) Len(path string) int {
	value, ok := v.Get(path)
	if !ok {
		return 0
	}
	list, _ := value.([]any)
	return len(list)
}

// Clone returns an independent copy of the tree.
func (v *Values) Clone() *Values {
	if v == nil {
		return NewValues(nil)
	}
	return NewValues(v.root)
}

// Map returns a deep copy of the underlying map.
func (v *Values) Map() map[string]any {
	if v == nil {
		return make(map[string]any)
	}
	return cloneMap(v.root)
}

// Paths lists every path in the tree, containers included, sorted so that
// parents precede their children.
func (v *Values) Paths() []string {
	if v == nil {
		return nil
	}
	var out []string
	walk(v.root, "", func(path string, _ any) {
		out = append(out, path)
	})
	return out
}

// Leaves lists the paths that hold scalar values.
func (v *Values) Leaves() []string {
	if v == nil {
		return nil
	}
	var out []string
	walk(v.root, "", func(path string, value any) {
		switch value.(type) {
		case map[string]any, []any:
		default:
			out = append(out, path)
		}
	})
	return out
}

func (v *Values) MarshalJSON() ([]byte, error) {
	if v == nil || v.root == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v.root)
}

func (v *Values) UnmarshalJSON(data []byte) error {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return err
	}
	v.root = root
	return nil
}

func walk(node any, prefix string, visit func(path string, value any)) {
	switch typed := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			path := joinPath(prefix, key)
			visit(path, typed[key])
			walk(typed[key], path, visit)
		}
	case []any:
		for idx, item := range typed {
			path := joinPath(prefix, strconv.Itoa(idx))
			visit(path, item)
			walk(item, path, visit)
		}
	}
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

func splitLast(path string) (string, string) {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneMap(typed)
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []map[string]any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = cloneMap(v)
		}
		return clone
	case []string:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = v
		}
		return clone
	default:
		return typed
	}
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// setPath writes value at path. Slices that grow are written back into their
// parent container so the change is visible from the root.
func setPath(root map[string]any, path string, value any) error {
	_, err := assign(root, strings.Split(path, "."), value, path)
	return err
}

// assign returns the container after writing value beneath it.
func assign(node any, segments []string, value any, path string) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	segment := segments[0]
	rest := segments[1:]

	switch typed := node.(type) {
	case map[string]any:
		child, err := assign(typed[segment], rest, value, path)
		if err != nil {
			return nil, err
		}
		typed[segment] = child
		return typed, nil
	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("form: expected numeric segment, got %q", segment)
		}
		if idx < 0 {
			return nil, fmt.Errorf("form: negative index in path %q", path)
		}
		if len(typed) <= idx {
			typed = append(typed, make([]any, idx+1-len(typed))...)
		}
		child, err := assign(typed[idx], rest, value, path)
		if err != nil {
			return nil, err
		}
		typed[idx] = child
		return typed, nil
	case nil:
		if idx, err := strconv.Atoi(segment); err == nil {
			if idx < 0 {
				return nil, fmt.Errorf("form: negative index in path %q", path)
			}
			return assign(make([]any, idx+1), segments, value, path)
		}
		return assign(make(map[string]any), segments, value, path)
	default:
		return nil, fmt.Errorf("form: unexpected container %T for segment %q", node, segment)
	}
}
