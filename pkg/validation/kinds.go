package validation

import "fmt"

// Kind names the JSON kind of a decoded value: string, number, boolean,
// array, object, null, or undefined for a missing key.
func Kind(value any, present bool) string {
	if !present {
		return "undefined"
	}
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// Expected builds a type-mismatch issue.
func Expected(path []any, want string, value any, present bool) Issue {
	return Issue{
		Path:    path,
		Code:    "invalid_type",
		Message: fmt.Sprintf("Invalid input: expected %s, received %s", want, Kind(value, present)),
	}
}
