package openapi

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/project"
)

const validSubmission = `{
  "name": "Ab",
  "status": "active",
  "description": "",
  "notifications": {"email": true, "sms": false, "push": false},
  "users": [{"email": "a@b.com"}]
}`

func decode(t *testing.T, raw string) any {
	t.Helper()
	var out any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestDocumentValidates(t *testing.T) {
	doc := Document()
	if err := Validate(context.Background(), doc); err != nil {
		t.Fatalf("validate: %v", err)
	}

	item := doc.Paths.Find("/api/projects")
	if item == nil || item.Post == nil {
		t.Fatalf("expected POST /api/projects")
	}
	if item.Post.OperationID != project.OperationID {
		t.Fatalf("unexpected operation id %q", item.Post.OperationID)
	}
	if item.Post.Responses.Status(200) == nil {
		t.Fatalf("expected a 200 response")
	}
}

func TestProjectSchemaAgreesWithGoSchema(t *testing.T) {
	schema := ProjectSchema()
	goSchema := project.NewSchema()

	cases := []struct {
		name   string
		mutate func(map[string]any)
		accept bool
	}{
		{name: "valid submission", accept: true},
		{name: "short name", mutate: func(m map[string]any) { m["name"] = "A" }},
		{name: "no users", mutate: func(m map[string]any) { m["users"] = []any{} }},
		{name: "unknown status", mutate: func(m map[string]any) { m["status"] = "archived" }},
		{name: "bad email", mutate: func(m map[string]any) {
			m["users"] = []any{map[string]any{"email": "nope"}}
		}},
		{name: "six users", mutate: func(m map[string]any) {
			users := make([]any, 0, 6)
			for i := 0; i < 6; i++ {
				users = append(users, map[string]any{"email": "u@example.com"})
			}
			m["users"] = users
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := decode(t, validSubmission).(map[string]any)
			if tc.mutate != nil {
				tc.mutate(candidate)
			}
			openapiErr := schema.VisitJSON(candidate)
			_, goErr := goSchema.Check(candidate)

			if tc.accept != (openapiErr == nil) {
				t.Fatalf("openapi accept=%v, got err %v", tc.accept, openapiErr)
			}
			if tc.accept != (goErr == nil) {
				t.Fatalf("go schema accept=%v, got err %v", tc.accept, goErr)
			}
		})
	}
}

func TestEncodeAndLoad(t *testing.T) {
	ctx := context.Background()
	for _, asYAML := range []bool{false, true} {
		raw, err := Encode(Document(), asYAML)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if asYAML && !strings.Contains(string(raw), "openapi: 3.0.3") {
			t.Fatalf("expected yaml output, got:\n%s", raw)
		}
		doc, err := Load(ctx, raw)
		if err != nil {
			t.Fatalf("load (yaml=%v): %v", asYAML, err)
		}
		body := doc.Paths.Find("/api/projects").Post.RequestBody.Value.Content.Get("application/json").Schema.Value
		if diff := cmp.Diff([]string{"name", "status", "notifications", "users"}, body.Required); diff != "" {
			t.Fatalf("required mismatch (-want +got):\n%s", diff)
		}
		users := body.Properties["users"].Value
		if users.MaxItems == nil || *users.MaxItems != project.MaxUsers || users.MinItems != project.MinUsers {
			t.Fatalf("unexpected users bounds: min=%d max=%v", users.MinItems, users.MaxItems)
		}
	}

	if _, err := Load(ctx, nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
