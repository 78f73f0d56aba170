package validation

import (
	"sort"
	"strconv"
	"strings"
)

// Issue represents a single failed constraint. Path holds string keys and int
// indexes from the record root; an empty path marks a root-level issue.
type Issue struct {
	Path    []any  `json:"path"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// DotPath renders the path using the dotted form names the form state uses
// (for example "users.0.email").
func (i Issue) DotPath() string {
	return JoinPath(i.Path)
}

// DisplayPath renders the path for error summaries (for example
// "users[0].email").
func (i Issue) DisplayPath() string {
	var b strings.Builder
	for _, segment := range i.Path {
		switch v := segment.(type) {
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(v))
			b.WriteByte(']')
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(toString(v))
		}
	}
	return b.String()
}

// Issues is the structured failure returned by schema validation. It
// implements error so callers can propagate it and recover it with errors.As.
type Issues []Issue

func (is Issues) Error() string {
	if len(is) == 0 {
		return "validation: no issues"
	}
	if len(is) == 1 {
		return "validation: " + is[0].Message
	}
	return "validation: " + is[0].Message + " (and " + strconv.Itoa(len(is)-1) + " more)"
}

// ByPath groups messages under their dotted path. Messages are trimmed and
// de-duplicated while preserving their original order.
func (is Issues) ByPath() map[string][]string {
	if len(is) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range is {
		msg := strings.TrimSpace(issue.Message)
		if msg == "" {
			continue
		}
		key := issue.DotPath()
		if containsString(out[key], msg) {
			continue
		}
		out[key] = append(out[key], msg)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Has reports whether any issue is attached to the exact dotted path.
func (is Issues) Has(path string) bool {
	for _, issue := range is {
		if issue.DotPath() == path {
			return true
		}
	}
	return false
}

// Prettify renders the issues as a flat, human-readable summary. Issues are
// ordered by path depth (shallowest first, stable otherwise):
//
//	✖ Project name must be at least 2 characters long
//	  → at name
func (is Issues) Prettify() string {
	sorted := make(Issues, len(is))
	copy(sorted, is)
	sort.SliceStable(sorted, func(a, b int) bool {
		return len(sorted[a].Path) < len(sorted[b].Path)
	})

	lines := make([]string, 0, len(sorted)*2)
	for _, issue := range sorted {
		lines = append(lines, "✖ "+issue.Message)
		if len(issue.Path) > 0 {
			lines = append(lines, "  → at "+issue.DisplayPath())
		}
	}
	return strings.Join(lines, "\n")
}

// Prefixed returns a copy of the issues with prefix prepended to every path.
func (is Issues) Prefixed(prefix ...any) Issues {
	if len(prefix) == 0 || len(is) == 0 {
		return is
	}
	out := make(Issues, 0, len(is))
	for _, issue := range is {
		path := make([]any, 0, len(prefix)+len(issue.Path))
		path = append(path, prefix...)
		path = append(path, issue.Path...)
		issue.Path = path
		out = append(out, issue)
	}
	return out
}

// JoinPath joins path segments with dots.
func JoinPath(path []any) string {
	parts := make([]string, 0, len(path))
	for _, segment := range path {
		parts = append(parts, toString(segment))
	}
	return strings.Join(parts, ".")
}

// SplitPath is the inverse of JoinPath. Numeric segments become ints.
func SplitPath(dotted string) []any {
	dotted = strings.Trim(strings.TrimSpace(dotted), ".")
	if dotted == "" {
		return nil
	}
	parts := strings.Split(dotted, ".")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if idx, err := strconv.Atoi(part); err == nil {
			out = append(out, idx)
			continue
		}
		out = append(out, part)
	}
	return out
}

func toString(segment any) string {
	switch v := segment.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
