package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by the dotted field paths used by the form state.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Merged folds form-level messages under the empty key so the result can be
// handed straight to form.SetErrors.
func (m ErrorMapping) Merged() map[string][]string {
	out := make(map[string][]string, len(m.Fields)+1)
	for path, msgs := range m.Fields {
		out[path] = append([]string(nil), msgs...)
	}
	if len(m.Form) > 0 {
		out[""] = append([]string(nil), m.Form...)
	}
	return out
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises error payloads (JSON pointers, bracket indexes,
// request wrappers) into dotted field paths that exist in form. List indexes
// are preserved so an entry error stays on its entry. Unknown paths are
// treated as form-level errors so messages are not lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	patterns := make(map[string]struct{})
	collectFieldPatterns(form.Fields, "", patterns)

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, rawPath := range keys {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		mapped, ok := mapErrorPath(rawPath, patterns)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[mapped] = normalizeMessages(append(mapping.Fields[mapped], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// ParsePrettified turns a flat issue summary ("✖ message" lines optionally
// followed by "  → at users[0].email") back into a path-keyed payload. Root
// issues land under the empty key.
func ParsePrettified(message string) map[string][]string {
	out := make(map[string][]string)
	var pending []string

	flush := func(path string) {
		for _, msg := range pending {
			if !containsMessage(out[path], msg) {
				out[path] = append(out[path], msg)
			}
		}
		pending = nil
	}

	for _, line := range strings.Split(message, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "✖"):
			flush("")
			if msg := strings.TrimSpace(strings.TrimPrefix(trimmed, "✖")); msg != "" {
				pending = append(pending, msg)
			}
		case strings.HasPrefix(trimmed, "→"):
			at := strings.TrimSpace(strings.TrimPrefix(trimmed, "→"))
			at = strings.TrimSpace(strings.TrimPrefix(at, "at"))
			flush(strings.Join(parsePathSegments(at), "."))
		default:
			pending = append(pending, trimmed)
		}
	}
	flush("")

	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" || containsMessage(out, trimmed) {
			continue
		}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func containsMessage(list []string, msg string) bool {
	for _, existing := range list {
		if existing == msg {
			return true
		}
	}
	return false
}

// mapErrorPath returns the longest prefix of raw that names a known field.
func mapErrorPath(raw string, patterns map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}

	segments := dropWrapperSegments(parsePathSegments(trimmed))
	for end := len(segments); end > 0; end-- {
		candidate := segments[:end]
		if _, ok := patterns[patternOf(candidate)]; ok {
			return strings.Join(candidate, "."), true
		}
	}
	return "", false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "#/")
	clean = strings.TrimPrefix(clean, "$.")
	clean = strings.TrimLeft(clean, "#/.$")

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":    {},
		"request": {},
		"payload": {},
		"data":    {},
		"project": {},
	}
	out := segments
	for len(out) > 1 {
		if _, ok := wrappers[strings.ToLower(out[0])]; !ok {
			break
		}
		out = out[1:]
	}
	return out
}

// patternOf replaces list indexes with "*".
func patternOf(segments []string) string {
	parts := make([]string, len(segments))
	for i, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			parts[i] = "*"
			continue
		}
		parts[i] = segment
	}
	return strings.Join(parts, ".")
}

func collectFieldPatterns(fields []model.Field, prefix string, dest map[string]struct{}) {
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		path := joinPath(prefix, name)
		dest[path] = struct{}{}

		if len(field.Nested) > 0 {
			collectFieldPatterns(field.Nested, path, dest)
		}
		if field.Items != nil {
			item := path + ".*"
			dest[item] = struct{}{}
			if len(field.Items.Nested) > 0 {
				collectFieldPatterns(field.Items.Nested, item, dest)
			}
		}
	}
}

func joinPath(parent, child string) string {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
