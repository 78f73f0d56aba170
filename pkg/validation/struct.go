package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages maps "<pattern>|<tag>" keys to user-facing copy. Patterns are
// dotted paths where array indexes are replaced by "*", so "users.*.email|email"
// covers every entry of the users list.
type Messages map[string]string

// StructValidator runs validator/v10 struct tags and translates failures into
// Issues keyed by JSON field names.
type StructValidator struct {
	validate *validator.Validate
	messages Messages
}

// NewStructValidator constructs a validator that reports JSON tag names.
func NewStructValidator(messages Messages) *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	registerRules(v)

	copied := make(Messages, len(messages))
	for key, value := range messages {
		copied[key] = value
	}
	return &StructValidator{validate: v, messages: copied}
}

// Validate checks value against its struct tags. The prefix is prepended to
// every reported path, which lets callers validate slice entries one by one
// while keeping their position in the parent record.
func (s *StructValidator) Validate(ctx context.Context, value any, prefix ...any) Issues {
	if s == nil || s.validate == nil {
		return Issues{{Path: prefix, Code: "internal", Message: "validation: validator is not configured"}}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	err := s.validate.StructCtx(ctx, value)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return Issues{{Path: prefix, Code: "internal", Message: invalid.Error()}}
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return Issues{{Path: prefix, Code: "internal", Message: err.Error()}}
	}

	out := make(Issues, 0, len(failures))
	for _, failure := range failures {
		path := append(append([]any{}, prefix...), namespacePath(failure.Namespace())...)
		out = append(out, Issue{
			Path:    path,
			Code:    failure.Tag(),
			Message: s.message(path, failure),
		})
	}
	return out
}

func (s *StructValidator) message(path []any, failure validator.FieldError) string {
	if msg, ok := s.messages[wildcardPath(path)+"|"+failure.Tag()]; ok {
		return msg
	}
	return fallbackMessage(failure)
}

func fallbackMessage(failure validator.FieldError) string {
	noun := "string"
	unit := "characters"
	switch failure.Kind() {
	case reflect.Slice, reflect.Array:
		noun, unit = "array", "items"
	case reflect.Map:
		noun, unit = "object", "keys"
	}

	switch failure.Tag() {
	case "min", "gte", TagMinUTF16:
		return fmt.Sprintf("Too small: expected %s to have >=%s %s", noun, failure.Param(), unit)
	case "max", "lte", TagMaxUTF16:
		return fmt.Sprintf("Too big: expected %s to have <=%s %s", noun, failure.Param(), unit)
	case "len":
		return fmt.Sprintf("Invalid length: expected %s to have %s %s", noun, failure.Param(), unit)
	case "email":
		return "Invalid email address"
	case "oneof":
		options := strings.Fields(failure.Param())
		quoted := make([]string, 0, len(options))
		for _, option := range options {
			quoted = append(quoted, strconv.Quote(option))
		}
		return "Invalid option: expected one of " + strings.Join(quoted, "|")
	case "required":
		return "Invalid input"
	default:
		return fmt.Sprintf("Invalid input: failed %q rule", failure.Tag())
	}
}

// namespacePath converts "Project.users[0].email" into ["users", 0, "email"],
// dropping the leading struct type name.
func namespacePath(namespace string) []any {
	parts := strings.Split(namespace, ".")
	if len(parts) > 0 {
		parts = parts[1:]
	}
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				out = append(out, part)
				break
			}
			if open > 0 {
				out = append(out, part[:open])
			}
			end := strings.IndexByte(part[open:], ']')
			if end < 0 {
				out = append(out, part[open:])
				break
			}
			key := part[open+1 : open+end]
			if idx, err := strconv.Atoi(key); err == nil {
				out = append(out, idx)
			} else {
				out = append(out, key)
			}
			part = part[open+end+1:]
		}
	}
	return out
}

func wildcardPath(path []any) string {
	parts := make([]string, 0, len(path))
	for _, segment := range path {
		if _, ok := segment.(int); ok {
			parts = append(parts, "*")
			continue
		}
		parts = append(parts, toString(segment))
	}
	return strings.Join(parts, ".")
}
