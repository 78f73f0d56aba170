package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"name":              "Name",
		"user_email":        "User Email",
		"notifications.sms": "Notifications Sms",
		"itemLabel":         "Item Label",
		"address2":          "Address 2",
		"":                  "",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q): want %q, got %q", input, want, got)
		}
	}
}

func TestFieldRules(t *testing.T) {
	field := Field{
		Name: "users",
		Validations: []ValidationRule{
			{Kind: ValidationRuleMinItems, Params: map[string]string{"value": "1"}},
			{Kind: ValidationRuleMaxItems, Params: map[string]string{"value": " 5 "}},
			{Kind: ValidationRuleFormat, Params: map[string]string{"format": "email"}},
		},
		UIHints: map[string]string{"addLabel": " Add User "},
	}

	if max, ok := field.IntRule(ValidationRuleMaxItems); !ok || max != 5 {
		t.Fatalf("maxItems: got %d, %v", max, ok)
	}
	if _, ok := field.IntRule(ValidationRuleFormat); ok {
		t.Fatalf("format rule has no numeric value")
	}
	if _, ok := field.Rule(ValidationRuleMinLength); ok {
		t.Fatalf("unexpected minLength rule")
	}
	if got := field.Hint("addLabel"); got != "Add User" {
		t.Fatalf("hint: got %q", got)
	}
	if got := field.DisplayLabel(); got != "Users" {
		t.Fatalf("label: got %q", got)
	}
}

func TestFormModelLeaves(t *testing.T) {
	form := FormModel{
		Fields: []Field{
			{Name: "name", Type: FieldTypeString},
			{Name: "notifications", Type: FieldTypeObject, Nested: []Field{
				{Name: "email", Type: FieldTypeBoolean},
				{Name: "sms", Type: FieldTypeBoolean},
			}},
			{Name: "users", Type: FieldTypeArray, Items: &Field{
				Type:   FieldTypeObject,
				Nested: []Field{{Name: "email", Type: FieldTypeString}},
			}},
			{Name: "tags", Type: FieldTypeArray, Items: &Field{Type: FieldTypeString}},
		},
	}

	lengths := map[string]int{"users": 2, "tags": 1}
	got := form.Leaves(func(path string) int { return lengths[path] })
	want := []string{
		"name",
		"notifications.email",
		"notifications.sms",
		"users.0.email",
		"users.1.email",
		"tags.0",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("leaves mismatch (-want +got):\n%s", diff)
	}

	if got := form.Leaves(nil); len(got) != 3 {
		t.Fatalf("expected arrays to contribute nothing without lengths, got %v", got)
	}
}
