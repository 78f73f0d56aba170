package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Reserved control names posted alongside the project fields.
const (
	// ActionField carries the button that submitted the form: "submit",
	// "add:<array>" or "remove:<array>:<index>".
	ActionField = "_action"
	// SubmitCountField carries the number of submit attempts so a stateless
	// handler can restore revalidation behaviour.
	SubmitCountField = "_submits"
	// CSRFField is the default name of the anti-forgery token input.
	CSRFField = "_csrf"
)

// HiddenField represents a hidden form input emitted alongside the visible
// fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying the provided token under
// CSRFField.
func CSRFToken(token string) HiddenField {
	return Hidden(CSRFField, token)
}

// SubmitCount constructs the hidden submit counter.
func SubmitCount(n int) HiddenField {
	return Hidden(SubmitCountField, strconv.Itoa(n))
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
