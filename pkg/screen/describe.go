package screen

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/goliatone/go-formfields/pkg/model"
)

// describe renders the submitted values as 2-space indented JSON. Object keys
// follow the declaration order of fields; keys the model does not declare
// come last in lexical order.
func describe(fields []model.Field, snapshot map[string]any) string {
	raw, err := json.MarshalIndent(ordered(model.Field{Nested: fields}, snapshot), "", "  ")
	if err != nil {
		return ""
	}
	return string(raw)
}

type member struct {
	key   string
	value any
}

type orderedObject []member

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func ordered(field model.Field, value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(orderedObject, 0, len(v))
		seen := make(map[string]bool, len(v))
		for _, child := range field.Nested {
			item, ok := v[child.Name]
			if !ok || seen[child.Name] {
				continue
			}
			seen[child.Name] = true
			out = append(out, member{key: child.Name, value: ordered(child, item)})
		}
		rest := make([]string, 0, len(v)-len(seen))
		for key := range v {
			if !seen[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			out = append(out, member{key: key, value: ordered(model.Field{}, v[key])})
		}
		return out
	case []any:
		var item model.Field
		if field.Items != nil {
			item = *field.Items
		}
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = ordered(item, entry)
		}
		return out
	default:
		return value
	}
}
