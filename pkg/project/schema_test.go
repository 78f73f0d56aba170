package project

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/validation"
)

func validRecord() map[string]any {
	return map[string]any{
		"name":        "Ab",
		"status":      "active",
		"description": "",
		"notifications": map[string]any{
			"email": true,
			"sms":   false,
			"push":  false,
		},
		"users": []any{map[string]any{"email": "a@b.com"}},
	}
}

func issuesOf(t *testing.T, err error) validation.Issues {
	t.Helper()
	var issues validation.Issues
	if !errors.As(err, &issues) {
		t.Fatalf("expected validation.Issues, got %T (%v)", err, err)
	}
	return issues
}

func TestSchemaAcceptsValidRecord(t *testing.T) {
	got, err := NewSchema().Validate(validRecord())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	want := Project{
		Name:          "Ab",
		Status:        StatusActive,
		Notifications: Notifications{Email: true},
		Users:         []User{{Email: "a@b.com"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("project mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaNameLengthBounds(t *testing.T) {
	cases := map[string]struct {
		name string
		want string
	}{
		"too short": {name: "A", want: "Project name must be at least 2 characters long"},
		"empty":     {name: "", want: "Project name must be at least 2 characters long"},
		"too long":  {name: strings.Repeat("a", 101), want: "Project name cannot be longer than 100 characters."},
	}

	for label, tc := range cases {
		t.Run(label, func(t *testing.T) {
			record := validRecord()
			record["name"] = tc.name

			_, err := NewSchema().Validate(record)
			issues := issuesOf(t, err)
			if diff := cmp.Diff(map[string][]string{"name": {tc.want}}, issues.ByPath()); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}

	for _, length := range []int{2, 100} {
		record := validRecord()
		record["name"] = strings.Repeat("n", length)
		if _, err := NewSchema().Validate(record); err != nil {
			t.Fatalf("length %d should be accepted: %v", length, err)
		}
	}
}

func TestSchemaNameLengthCountsUTF16Units(t *testing.T) {
	cases := map[string]struct {
		name string
		want []string
	}{
		"one surrogate pair":  {name: "😀"},
		"fifty pairs":         {name: strings.Repeat("😀", 50)},
		"single accented":     {name: "é", want: []string{"Project name must be at least 2 characters long"}},
		"fifty one pairs":     {name: strings.Repeat("😀", 51), want: []string{"Project name cannot be longer than 100 characters."}},
		"hundred accented ok": {name: strings.Repeat("é", 100)},
	}

	for label, tc := range cases {
		t.Run(label, func(t *testing.T) {
			record := validRecord()
			record["name"] = tc.name

			_, err := NewSchema().Validate(record)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected %q to be accepted: %v", tc.name, err)
				}
				return
			}
			issues := issuesOf(t, err)
			if diff := cmp.Diff(map[string][]string{"name": tc.want}, issues.ByPath()); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchemaUsersCardinalityIsRootError(t *testing.T) {
	empty := validRecord()
	empty["users"] = []any{}

	_, err := NewSchema().Validate(empty)
	issues := issuesOf(t, err)
	want := map[string][]string{"users": {"At least one user must be assigned to the project."}}
	if diff := cmp.Diff(want, issues.ByPath()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	six := validRecord()
	users := make([]any, 0, 6)
	for i := 0; i < 6; i++ {
		users = append(users, map[string]any{"email": "u@example.com"})
	}
	six["users"] = users

	_, err = NewSchema().Validate(six)
	issues = issuesOf(t, err)
	want = map[string][]string{"users": {"Maximum of 5 users can be assigned to the project."}}
	if diff := cmp.Diff(want, issues.ByPath()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaEmailScopedToIndex(t *testing.T) {
	record := validRecord()
	record["users"] = []any{
		map[string]any{"email": "a@b.com"},
		map[string]any{"email": "not-an-email"},
		map[string]any{"email": ""},
	}

	_, err := NewSchema().Validate(record)
	issues := issuesOf(t, err)
	want := map[string][]string{
		"users.1.email": {"Invalid email address"},
		"users.2.email": {"Invalid email address"},
	}
	if diff := cmp.Diff(want, issues.ByPath()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	formats := []struct {
		email  string
		accept bool
	}{
		{email: "a@b.com", accept: true},
		{email: "first.last+tag@sub.example.io", accept: true},
		{email: "o'neil@example.com", accept: true},
		{email: "a@b.c"},
		{email: `"x y"@b.com`},
		{email: "ünï@b.com"},
		{email: "a..b@c.com"},
		{email: "a@b"},
		{email: ".a@b.com"},
		{email: "a.@b.com"},
	}
	for _, tc := range formats {
		record := validRecord()
		record["users"] = []any{map[string]any{"email": tc.email}}
		_, err := NewSchema().Validate(record)
		if tc.accept {
			if err != nil {
				t.Fatalf("expected %q to be accepted: %v", tc.email, err)
			}
			continue
		}
		issues := issuesOf(t, err)
		want := map[string][]string{"users.0.email": {"Invalid email address"}}
		if diff := cmp.Diff(want, issues.ByPath()); diff != "" {
			t.Fatalf("%q: issues mismatch (-want +got):\n%s", tc.email, diff)
		}
	}
}

func TestSchemaIssuesFollowFieldOrder(t *testing.T) {
	record := validRecord()
	record["name"] = "A"
	record["status"] = 7
	record["notifications"] = "all"
	record["users"] = []any{}

	_, err := NewSchema().Validate(record)
	issues := issuesOf(t, err)
	if diff := cmp.Diff([]string{"name", "status", "notifications", "users"}, dotPaths(issues)); diff != "" {
		t.Fatalf("issue order mismatch (-want +got):\n%s", diff)
	}

	want := "✖ Project name must be at least 2 characters long\n" +
		"  → at name\n" +
		"✖ Invalid option: expected one of \"active\"|\"inactive\"|\"completed\"\n" +
		"  → at status\n" +
		"✖ Invalid input: expected object, received string\n" +
		"  → at notifications\n" +
		"✖ At least one user must be assigned to the project.\n" +
		"  → at users"
	if diff := cmp.Diff(want, issues.Prettify()); diff != "" {
		t.Fatalf("prettify mismatch (-want +got):\n%s", diff)
	}

	record = validRecord()
	users := make([]any, 0, 6)
	for i := 0; i < 6; i++ {
		users = append(users, map[string]any{"email": "bad"})
	}
	users[2] = map[string]any{"email": 3}
	record["users"] = users

	_, err = NewSchema().Validate(record)
	wantEntries := []string{
		"users.0.email", "users.1.email", "users.2.email",
		"users.3.email", "users.4.email", "users.5.email", "users",
	}
	if diff := cmp.Diff(wantEntries, dotPaths(issuesOf(t, err))); diff != "" {
		t.Fatalf("entry order mismatch (-want +got):\n%s", diff)
	}
}

func dotPaths(issues validation.Issues) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.DotPath())
	}
	return out
}

func TestSchemaEntriesCheckedAlongsideCardinality(t *testing.T) {
	record := validRecord()
	users := make([]any, 0, 6)
	for i := 0; i < 6; i++ {
		users = append(users, map[string]any{"email": "bad"})
	}
	record["users"] = users

	_, err := NewSchema().Validate(record)
	issues := issuesOf(t, err)
	if !issues.Has("users") || !issues.Has("users.5.email") {
		t.Fatalf("expected root and entry issues, got %v", issues.ByPath())
	}
}

func TestSchemaStatusEnumeration(t *testing.T) {
	record := validRecord()
	record["status"] = "archived"

	_, err := NewSchema().Validate(record)
	issues := issuesOf(t, err)
	want := map[string][]string{"status": {`Invalid option: expected one of "active"|"inactive"|"completed"`}}
	if diff := cmp.Diff(want, issues.ByPath()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaDescriptionNormalisation(t *testing.T) {
	record := validRecord()
	record["description"] = ""
	got, err := NewSchema().Validate(record)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Description != nil {
		t.Fatalf("expected empty description to become absent, got %q", *got.Description)
	}

	record["description"] = "x"
	got, err = NewSchema().Validate(record)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Description == nil || *got.Description != "x" {
		t.Fatalf("expected description to be retained, got %v", got.Description)
	}

	delete(record, "description")
	got, err = NewSchema().Validate(record)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Description != nil {
		t.Fatalf("expected missing description to stay absent")
	}
}

func TestSchemaIdempotent(t *testing.T) {
	schema := NewSchema()
	record := validRecord()
	record["description"] = "kept"

	first, err := schema.Validate(record)
	if err != nil {
		t.Fatalf("first validate: %v", err)
	}
	second, err := schema.Validate(first)
	if err != nil {
		t.Fatalf("second validate: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validate is not idempotent (-first +second):\n%s", diff)
	}
}

func TestSchemaTypeMismatches(t *testing.T) {
	record := map[string]any{
		"name":          42,
		"notifications": map[string]any{"email": "yes", "sms": false},
		"users":         "nobody",
	}

	_, err := NewSchema().Validate(record)
	issues := issuesOf(t, err)
	want := map[string][]string{
		"name":                {"Invalid input: expected string, received number"},
		"status":              {`Invalid option: expected one of "active"|"inactive"|"completed"`},
		"notifications.email": {"Invalid input: expected boolean, received string"},
		"notifications.push":  {"Invalid input: expected boolean, received undefined"},
		"users":               {"Invalid input: expected array, received string"},
	}
	if diff := cmp.Diff(want, issues.ByPath()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaRejectsNonObjects(t *testing.T) {
	for _, candidate := range []any{nil, "project", []any{1}} {
		_, err := NewSchema().Validate(candidate)
		issues := issuesOf(t, err)
		if len(issues) != 1 || len(issues[0].Path) != 0 {
			t.Fatalf("expected a single root issue for %v, got %v", candidate, issues)
		}
	}
}

func TestSchemaAcceptsDefaultsShapeAfterEdits(t *testing.T) {
	record := Defaults()
	record["name"] = "Launch"
	record["users"] = []any{map[string]any{"email": "team@example.com"}}

	got, err := NewSchema().Validate(record)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Status != StatusInactive {
		t.Fatalf("expected default status, got %q", got.Status)
	}
}

func TestHandlerCreateProject(t *testing.T) {
	handler := NewHandler()

	ok := handler.CreateProject(context.Background(), validRecord())
	if diff := cmp.Diff(Result{Success: true, Message: CreatedMessage}, ok); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	record := validRecord()
	record["name"] = "A"
	record["users"] = []any{map[string]any{"email": "bad"}}
	failed := handler.CreateProject(context.Background(), record)
	want := Result{
		Success: false,
		Message: "✖ Project name must be at least 2 characters long\n" +
			"  → at name\n" +
			"✖ Invalid email address\n" +
			"  → at users[0].email",
	}
	if diff := cmp.Diff(want, failed); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewHandler().CreateProject(ctx, validRecord())
	if result.Success {
		t.Fatalf("expected cancelled submission to fail")
	}
	if result.Message != context.Canceled.Error() {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestFormModelMatchesSchemaBounds(t *testing.T) {
	form := FormModel()
	if len(form.Fields) != 5 {
		t.Fatalf("expected 5 top-level fields, got %d", len(form.Fields))
	}
	users := form.Fields[4]
	if max, ok := users.IntRule("maxItems"); !ok || max != MaxUsers {
		t.Fatalf("users maxItems: got %d, %v", max, ok)
	}
	name := form.Fields[0]
	if min, ok := name.IntRule("minLength"); !ok || min != MinNameLength {
		t.Fatalf("name minLength: got %d, %v", min, ok)
	}
}
