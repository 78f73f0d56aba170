package screen

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/project"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
)

type countingSubmitter struct {
	calls    int
	inner    project.Submitter
	override *project.Result
}

func (c *countingSubmitter) CreateProject(ctx context.Context, candidate any) project.Result {
	c.calls++
	if c.override != nil {
		return *c.override
	}
	return c.inner.CreateProject(ctx, candidate)
}

func newScreen(t *testing.T, variant Variant, submitter project.Submitter, options ...Option) (*Screen, *MemoryNotifier) {
	t.Helper()
	notifier := &MemoryNotifier{}
	s, err := New(variant, submitter, notifier, options...)
	if err != nil {
		t.Fatalf("new screen: %v", err)
	}
	return s, notifier
}

func fillValidProject(t *testing.T, s *Screen) {
	t.Helper()
	b := s.Binder(nil)
	for path, value := range map[string]any{
		"name":                "Ab",
		"status":              "active",
		"notifications.email": true,
		"users.0.email":       "a@b.com",
	} {
		if err := b.Change(path, value); err != nil {
			t.Fatalf("change %s: %v", path, err)
		}
	}
}

func TestSubmitValidProjectResets(t *testing.T) {
	for _, variant := range Variants() {
		t.Run(string(variant), func(t *testing.T) {
			submitter := &countingSubmitter{inner: project.NewHandler()}
			var transitions []string
			s, notifier := newScreen(t, variant, submitter, WithObserver(func(from, to State) {
				transitions = append(transitions, from.String()+">"+to.String())
			}))
			fillValidProject(t, s)

			if err := s.Submit(context.Background()); err != nil {
				t.Fatalf("submit: %v", err)
			}
			if submitter.calls != 1 {
				t.Fatalf("expected handler to run once, ran %d", submitter.calls)
			}
			if diff := cmp.Diff(project.Defaults(), s.Form().Snapshot()); diff != "" {
				t.Fatalf("form did not reset (-want +got):\n%s", diff)
			}
			if s.Status() != StateIdle {
				t.Fatalf("expected idle, got %s", s.Status())
			}
			wantTransitions := []string{"idle>submitting", "submitting>success", "success>idle"}
			if diff := cmp.Diff(wantTransitions, transitions); diff != "" {
				t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
			}

			notes := notifier.Drain()
			if len(notes) != 1 || notes[0].Kind != KindSuccess || notes[0].Title != project.CreatedMessage {
				t.Fatalf("unexpected notifications: %+v", notes)
			}
			if !strings.Contains(notes[0].Description, "\n  \"name\": \"Ab\"") {
				t.Fatalf("expected indented snapshot, got %q", notes[0].Description)
			}

			outcome, ok := s.LastOutcome()
			if !ok || outcome.State != StateSuccess || outcome.Snapshot["name"] != "Ab" {
				t.Fatalf("unexpected outcome: %+v", outcome)
			}
		})
	}
}

func TestSubmitShortNameSkipsHandler(t *testing.T) {
	for _, variant := range Variants() {
		t.Run(string(variant), func(t *testing.T) {
			submitter := &countingSubmitter{inner: project.NewHandler()}
			s, notifier := newScreen(t, variant, submitter)
			fillValidProject(t, s)
			_ = s.Binder(nil).Change("name", "A")

			err := s.Submit(context.Background())
			if !errors.Is(err, form.ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if submitter.calls != 0 {
				t.Fatalf("handler must not run for invalid input")
			}
			if s.Status() != StateIdle {
				t.Fatalf("expected idle, got %s", s.Status())
			}
			if diff := cmp.Diff([]string{"Project name must be at least 2 characters long"}, s.Form().Errors("name")); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
			if got, _ := s.Form().Value("name"); got != "A" {
				t.Fatalf("values must be retained, got %v", got)
			}
			if len(notifier.Pending()) != 0 {
				t.Fatalf("invalid submissions raise no notification")
			}
			if _, ok := s.LastOutcome(); ok {
				t.Fatalf("no outcome expected")
			}
		})
	}
}

func TestSubmitEmptyUsersIsRootError(t *testing.T) {
	s, _ := newScreen(t, VariantAccessor, project.NewHandler())
	fillValidProject(t, s)
	if err := s.Form().Array("users").Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := s.Submit(context.Background()); !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	want := map[string][]string{"users": {"At least one user must be assigned to the project."}}
	if diff := cmp.Diff(want, s.Form().AllErrors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestAddIsNoOpAtCapacity(t *testing.T) {
	s, _ := newScreen(t, VariantController, project.NewHandler())
	fillValidProject(t, s)

	post := url.Values{"name": {"Ab"}, "status": {"active"}, "_action": {"add:users"}}
	for i := 0; i < 6; i++ {
		if _, err := s.ApplyPost(post); err != nil {
			t.Fatalf("apply add %d: %v", i, err)
		}
		post.Set("users."+strconv.Itoa(s.Form().Len("users")-1)+".email", "u@example.com")
	}
	if got := s.Form().Len("users"); got != project.MaxUsers {
		t.Fatalf("expected list capped at %d, got %d", project.MaxUsers, got)
	}

	// The raw list primitive is uncapped, and submission then fails on
	// cardinality.
	for i := 0; i < s.Form().Len("users"); i++ {
		_ = s.Form().Change("users."+strconv.Itoa(i)+".email", "u@example.com")
	}
	if err := s.Form().Array("users").Append(map[string]any{"email": "six@example.com"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Submit(context.Background()); !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if diff := cmp.Diff([]string{"Maximum of 5 users can be assigned to the project."}, s.Form().Errors("users")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRejectedSubmissionKeepsValuesAndSurfacesErrors(t *testing.T) {
	rejected := project.Result{
		Success: false,
		Message: "✖ Invalid email address\n  → at users[0].email",
	}
	submitter := &countingSubmitter{override: &rejected}
	var transitions []State
	s, notifier := newScreen(t, VariantAccessor, submitter, WithObserver(func(_, to State) {
		transitions = append(transitions, to)
	}))
	fillValidProject(t, s)

	if err := s.Submit(context.Background()); !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if got, _ := s.Form().Value("name"); got != "Ab" {
		t.Fatalf("values must be retained, got %v", got)
	}
	if diff := cmp.Diff([]string{"Invalid email address"}, s.Form().Errors("users.0.email")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Notification{{Kind: KindError, Title: FailureMessage}}, notifier.Drain()); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]State{StateSubmitting, StateFailure, StateIdle}, transitions); diff != "" {
		t.Fatalf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyPostReplaysControls(t *testing.T) {
	s, _ := newScreen(t, VariantAccessor, project.NewHandler())

	action, err := s.ApplyPost(url.Values{
		"name":                {"Launch"},
		"status":              {"completed"},
		"description":         {"Ship it"},
		"notifications.sms":   {"true"},
		"users.0.email":       {"a@b.com"},
		"users.1.email":       {"c@d.com"},
		"_action":             {"remove:users:0"},
		"_submits":            {"0"},
		"notifications.email": {""},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if action.Index != 0 || action.Target != "users" {
		t.Fatalf("unexpected action %+v", action)
	}

	want := map[string]any{
		"name":        "Launch",
		"status":      "completed",
		"description": "Ship it",
		"notifications": map[string]any{
			"email": false,
			"sms":   true,
			"push":  false,
		},
		"users": []any{map[string]any{"email": "c@d.com"}},
	}
	if diff := cmp.Diff(want, s.Form().Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if !s.Form().Touched("name") {
		t.Fatalf("posted controls count as touched")
	}

	if _, err := s.ApplyPost(url.Values{"_action": {"explode"}}); err == nil {
		t.Fatalf("expected unknown action error")
	}
}

func TestApplyPostRestoresRevalidation(t *testing.T) {
	s, _ := newScreen(t, VariantAccessor, project.NewHandler())
	if _, err := s.ApplyPost(url.Values{"name": {"A"}, "users.0.email": {"a@b.com"}, "_submits": {"1"}}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if diff := cmp.Diff([]string{"Project name must be at least 2 characters long"}, s.Form().Errors("name")); diff != "" {
		t.Fatalf("expected revalidation after a prior submit (-want +got):\n%s", diff)
	}
	if got := s.HiddenFields(nil)["_submits"]; got != "1" {
		t.Fatalf("expected submit counter to round-trip, got %q", got)
	}
}

func TestRenderPageShowsOnlyTouchedErrorsForAccessor(t *testing.T) {
	kit, err := vanilla.NewKit()
	if err != nil {
		t.Fatalf("kit: %v", err)
	}

	s, _ := newScreen(t, VariantAccessor, project.NewHandler())
	s.Form().SetErrors(map[string][]string{"name": {"Project name must be at least 2 characters long"}})

	page, err := s.RenderPage(kit, PageOptions{Action: "/accessor"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(page, `aria-invalid="true"`) {
		t.Fatalf("untouched accessor fields must not be flagged:\n%s", page)
	}

	s.Form().Blur("name")
	page, err = s.RenderPage(kit, PageOptions{
		Action:        "/accessor",
		Notifications: []Notification{{Kind: KindError, Title: FailureMessage}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`aria-invalid="true"`, "<h1>Reusable</h1>", ">Create</button>", FailureMessage, `name="_submits" value="0"`, `data-family="accessor"`} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected %s in:\n%s", want, page)
		}
	}
}

func TestParseVariant(t *testing.T) {
	if v, err := ParseVariant(" Controller "); err != nil || v != VariantController {
		t.Fatalf("parse: %v %v", v, err)
	}
	if _, err := ParseVariant("context"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := New(VariantAccessor, nil, nil); err == nil {
		t.Fatalf("expected missing submitter error")
	}
}
