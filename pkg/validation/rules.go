package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// Tags every StructValidator registers on top of the validator/v10 built-ins.
// TagEmail replaces the built-in rule.
const (
	TagEmail    = "email"
	TagMinUTF16 = "min_utf16"
	TagMaxUTF16 = "max_utf16"
)

// The local part may not start with a dot and no two dots may be adjacent;
// IsEmail checks both before matching.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// IsEmail reports whether value is an ASCII address with a dotted domain and
// an alphabetic top-level label of at least two letters. Quoted local parts
// are rejected.
func IsEmail(value string) bool {
	if strings.HasPrefix(value, ".") || strings.Contains(value, "..") {
		return false
	}
	return emailPattern.MatchString(value)
}

// UTF16Len is the length of value in UTF-16 code units, the unit browser
// string lengths are measured in.
func UTF16Len(value string) int {
	return len(utf16.Encode([]rune(value)))
}

func registerRules(v *validator.Validate) {
	mustRegister(v, TagEmail, func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.String && IsEmail(fl.Field().String())
	})
	mustRegister(v, TagMinUTF16, utf16Bound(func(n, limit int) bool { return n >= limit }))
	mustRegister(v, TagMaxUTF16, utf16Bound(func(n, limit int) bool { return n <= limit }))
}

func utf16Bound(within func(n, limit int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return within(UTF16Len(fl.Field().String()), limit)
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}
