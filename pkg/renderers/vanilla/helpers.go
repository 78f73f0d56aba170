package vanilla

import "strings"

// controlID derives a DOM id from a dotted field path, so "users.0.email"
// becomes "ff-users-0-email".
func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "ff-" + strings.ReplaceAll(trimmed, ".", "-")
}

func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "ff-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}
