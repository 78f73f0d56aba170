package fields_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/binding/accessor"
	"github.com/goliatone/go-formfields/pkg/binding/controller"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/project"
)

type markerKit struct {
	controls []binding.ControlView
	arrays   []binding.ArrayView
}

func (k *markerKit) Control(view binding.ControlView) (string, error) {
	k.controls = append(k.controls, view)
	return fmt.Sprintf("[%s %s]", view.Kind, view.Name), nil
}

func (k *markerKit) Fieldset(view binding.FieldsetView) (string, error) {
	return "{" + view.Legend + " " + view.Body + "}", nil
}

func (k *markerKit) Array(view binding.ArrayView) (string, error) {
	k.arrays = append(k.arrays, view)
	rows := make([]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, row.Body)
	}
	return "(" + strings.Join(rows, " ") + ")", nil
}

func TestSeedMatchesProjectDefaults(t *testing.T) {
	if diff := cmp.Diff(project.Defaults(), fields.Seed(project.FormModel())); diff != "" {
		t.Fatalf("seed mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeProjectForm(t *testing.T) {
	components, err := fields.Compose(project.FormModel())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	want := []fields.Component{
		fields.Input{Name: "name", Label: "Name", Type: "text"},
		fields.Select{Name: "status", Label: "Status", Options: []binding.Option{
			{Value: "active", Label: "active"},
			{Value: "inactive", Label: "inactive"},
			{Value: "completed", Label: "completed"},
		}},
		fields.Textarea{Name: "description", Label: "Description", Description: "Be specific and concise as possible."},
		fields.Group{
			Name:        "notifications",
			Legend:      "Notifications",
			Description: "Receive notifications for project updates.",
			Children: []fields.Component{
				fields.Checkbox{Name: "notifications.email", Label: "Email", Horizontal: true},
				fields.Checkbox{Name: "notifications.sms", Label: "Text", Horizontal: true},
				fields.Checkbox{Name: "notifications.push", Label: "In App", Horizontal: true},
			},
		},
		fields.Array{
			Name:        "users",
			Label:       "User Email Address",
			Description: "Assign up to 5 users to this project (including yourself).",
			ItemLabel:   "User %d Email",
			ItemField:   "email",
			ItemType:    "email",
			Max:         project.MaxUsers,
			AddLabel:    "Add User",
			RemoveLabel: "Remove User %d",
		},
	}
	if diff := cmp.Diff(want, components); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentsRenderUnderBothFamilies(t *testing.T) {
	components, err := fields.Compose(project.FormModel())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	var outputs []string
	for _, build := range []func(*form.Form, binding.Kit) binding.Binder{
		func(f *form.Form, k binding.Kit) binding.Binder { return controller.New(f, k) },
		func(f *form.Form, k binding.Kit) binding.Binder { return accessor.New(f, k) },
	} {
		f := form.New(project.Defaults(), form.ValidatorFunc(project.NewSchema().Check))
		out, err := fields.RenderAll(build(f, &markerKit{}), components...)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		outputs = append(outputs, out)
	}

	want := "[input name]\n[select status]\n[textarea description]\n" +
		"{Notifications [checkbox notifications.email]\n[checkbox notifications.sms]\n[checkbox notifications.push]}\n" +
		"([input users.0.email])"
	for _, out := range outputs {
		if diff := cmp.Diff(want, out); diff != "" {
			t.Fatalf("markup mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestArrayAddStopsAtMax(t *testing.T) {
	users := fields.Array{Name: "users", ItemField: "email", Max: 2, ItemLabel: "User %d Email", RemoveLabel: "Remove User %d"}
	f := form.New(project.Defaults(), nil)

	added, err := users.Add(f)
	if err != nil || !added {
		t.Fatalf("expected first add to succeed, got %v %v", added, err)
	}
	added, err = users.Add(f)
	if err != nil || added {
		t.Fatalf("expected add at capacity to be a no-op, got %v %v", added, err)
	}
	if f.Len("users") != 2 {
		t.Fatalf("len: %d", f.Len("users"))
	}

	// The raw list primitive stays uncapped.
	if err := f.Array("users").Append(users.Blank()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if f.Len("users") != 3 {
		t.Fatalf("expected raw append past capacity, got %d", f.Len("users"))
	}

	kit := &markerKit{}
	if _, err := users.Render(controller.New(f, kit)); err != nil {
		t.Fatalf("render: %v", err)
	}
	view := kit.arrays[0]
	if view.CanAdd || view.Len != 3 {
		t.Fatalf("expected add disabled over capacity: %+v", view)
	}
	labels := []string{kit.controls[0].Label, kit.controls[2].Label}
	if diff := cmp.Diff([]string{"User 1 Email", "User 3 Email"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if view.Rows[1].RemoveLabel != "Remove User 2" {
		t.Fatalf("remove label: %q", view.Rows[1].RemoveLabel)
	}
}

func TestArrayRemoveKeepsLastEntry(t *testing.T) {
	users := fields.Array{Name: "users", ItemField: "email", Max: project.MaxUsers}
	f := form.New(project.Defaults(), nil)

	removed, err := users.Remove(f, 0)
	if err != nil || removed {
		t.Fatalf("expected remove of the last entry to be a no-op, got %v %v", removed, err)
	}

	_, _ = users.Add(f)
	_ = f.Change("users.1.email", "b@example.com")
	removed, err = users.Remove(f, 0)
	if err != nil || !removed {
		t.Fatalf("expected remove to succeed, got %v %v", removed, err)
	}
	if got, _ := f.Value("users.0.email"); got != "b@example.com" {
		t.Fatalf("expected entries to renumber, got %v", got)
	}
}

func TestRegistryExplicitHintWins(t *testing.T) {
	reg := fields.NewRegistry()
	field := model.Field{
		Name:    "bio",
		Type:    model.FieldTypeString,
		UIHints: map[string]string{"component": "textarea"},
	}
	if got, ok := reg.Resolve(field); !ok || got != fields.ComponentTextarea {
		t.Fatalf("expected explicit hint, got %q (%v)", got, ok)
	}

	reg.Register("rich-text", 100, func(f model.Field) bool { return f.Format == "html" })
	if got, _ := reg.Resolve(model.Field{Type: model.FieldTypeString, Format: "html"}); got != "rich-text" {
		t.Fatalf("expected higher priority matcher, got %q", got)
	}
	if _, err := reg.Build(model.Field{Name: "body", Type: model.FieldTypeString, Format: "html"}, ""); err == nil {
		t.Fatalf("expected error for component without builder")
	}

	reg.RegisterBuilder("rich-text", func(_ *fields.Registry, f model.Field, path string) (fields.Component, error) {
		return fields.Textarea{Name: path, Label: f.DisplayLabel()}, nil
	})
	component, err := reg.Build(model.Field{Name: "body", Type: model.FieldTypeString, Format: "html"}, "post")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff(fields.Textarea{Name: "post.body", Label: "Body"}, component); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryRejectsUnknownKinds(t *testing.T) {
	if _, err := fields.FromModel(model.Field{Name: "blob", Type: "binary"}); err == nil {
		t.Fatalf("expected error for unresolvable field")
	}
}
