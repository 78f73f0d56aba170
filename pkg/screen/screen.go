package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/binding/accessor"
	"github.com/goliatone/go-formfields/pkg/binding/controller"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/project"
	"github.com/goliatone/go-formfields/pkg/render"
)

// FailureMessage is the notification raised when the handler rejects a
// submission.
const FailureMessage = "Failed to create project"

// ErrRejected is returned by Submit when the handler reported failure.
var ErrRejected = errors.New("screen: submission rejected")

// Variant selects the binding family a screen renders through.
type Variant string

const (
	VariantController Variant = controller.Family
	VariantAccessor   Variant = accessor.Family
)

// Variants lists the supported variants.
func Variants() []Variant {
	return []Variant{VariantController, VariantAccessor}
}

// ParseVariant resolves a variant name.
func ParseVariant(name string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(name))) {
	case VariantController:
		return VariantController, nil
	case VariantAccessor:
		return VariantAccessor, nil
	default:
		return "", fmt.Errorf("screen: unknown variant %q", name)
	}
}

// Heading is the title shown above the variant's form.
func (v Variant) Heading() string {
	if v == VariantController {
		return "Project"
	}
	return "Reusable"
}

// State is the submission state of a screen.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome records the last completed submission. Snapshot holds the values
// that were submitted.
type Outcome struct {
	State    State
	Result   project.Result
	Snapshot map[string]any
}

// Observer is called on every state transition.
type Observer func(from, to State)

// Option configures a Screen.
type Option func(*Screen)

// WithObserver registers a transition observer.
func WithObserver(fn Observer) Option {
	return func(s *Screen) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// WithLogger sets the logger used for the screen and its form.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Screen) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFormOptions forwards options to the underlying form.
func WithFormOptions(options ...form.Option) Option {
	return func(s *Screen) {
		s.formOptions = append(s.formOptions, options...)
	}
}

// Screen is one form instance. Submissions are serialised; field edits from
// different screens never interact.
type Screen struct {
	submitMu sync.Mutex
	stateMu  sync.Mutex

	variant     Variant
	model       model.FormModel
	form        *form.Form
	components  []fields.Component
	users       fields.Array
	submitter   project.Submitter
	notifier    Notifier
	observers   []Observer
	state       State
	last        *Outcome
	logger      *slog.Logger
	formOptions []form.Option
}

// New creates a screen seeded with project.Defaults.
func New(variant Variant, submitter project.Submitter, notifier Notifier, options ...Option) (*Screen, error) {
	if _, err := ParseVariant(string(variant)); err != nil {
		return nil, err
	}
	if submitter == nil {
		return nil, fmt.Errorf("screen: submitter is required")
	}
	if notifier == nil {
		notifier = &MemoryNotifier{}
	}

	s := &Screen{
		variant:   variant,
		model:     project.FormModel(),
		submitter: submitter,
		notifier:  notifier,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	components, err := fields.Compose(s.model)
	if err != nil {
		return nil, fmt.Errorf("screen: compose fields: %w", err)
	}
	s.components = components
	for _, component := range components {
		if array, ok := component.(fields.Array); ok && array.Name == "users" {
			s.users = array
		}
	}

	formOptions := append([]form.Option{form.WithLogger(s.logger)}, s.formOptions...)
	s.form = form.New(project.Defaults(), form.ValidatorFunc(project.NewSchema().Check), formOptions...)
	return s, nil
}

// Variant returns the binding family of the screen.
func (s *Screen) Variant() Variant {
	return s.variant
}

// Form returns the form session.
func (s *Screen) Form() *form.Form {
	return s.form
}

// Model returns the form model the screen renders.
func (s *Screen) Model() model.FormModel {
	return s.model
}

// Components returns the composed field components in document order.
func (s *Screen) Components() []fields.Component {
	return append([]fields.Component(nil), s.components...)
}

// Users returns the users list component.
func (s *Screen) Users() fields.Array {
	return s.users
}

// Binder binds kit to the screen's form through the variant's family. A nil
// kit yields a binder usable for Change and Blur only.
func (s *Screen) Binder(kit binding.Kit) binding.Binder {
	if s.variant == VariantController {
		return controller.New(s.form, kit)
	}
	return accessor.New(s.form, kit)
}

// Status returns the current state.
func (s *Screen) Status() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

// LastOutcome returns the last completed submission, if any.
func (s *Screen) LastOutcome() (Outcome, bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.last == nil {
		return Outcome{}, false
	}
	return *s.last, true
}

// Submit runs the submit pipeline. An invalid snapshot leaves the screen Idle
// with field errors stored on the form and returns an error wrapping
// form.ErrInvalid. A rejected submission keeps the entered values, raises the
// failure notification and returns ErrRejected. An accepted one resets the
// form and raises the confirmation with the submitted values.
func (s *Screen) Submit(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	err := s.form.HandleSubmit(ctx, func(ctx context.Context, snapshot map[string]any, _ any) error {
		s.transition(StateSubmitting)
		result := s.submitter.CreateProject(ctx, snapshot)

		if result.Success {
			s.finish(StateSuccess, result, snapshot)
			s.form.Reset()
			s.notifier.Success(result.Message, describe(s.model.Fields, snapshot))
			s.logger.InfoContext(ctx, "project submitted", "variant", s.variant, "form", s.form.ID())
			s.transition(StateIdle)
			return nil
		}

		s.finish(StateFailure, result, snapshot)
		if payload := render.ParsePrettified(result.Message); len(payload) > 0 {
			s.form.SetErrors(render.MapErrorPayload(s.model, payload).Merged())
		}
		s.notifier.Error(FailureMessage)
		s.logger.WarnContext(ctx, "project submission failed", "variant", s.variant, "message", result.Message)
		s.transition(StateIdle)
		return ErrRejected
	})
	if errors.Is(err, form.ErrInvalid) {
		s.logger.DebugContext(ctx, "project submission invalid", "variant", s.variant, "errors", len(s.form.AllErrors()))
	}
	return err
}

func (s *Screen) finish(state State, result project.Result, snapshot map[string]any) {
	s.transition(state)
	s.stateMu.Lock()
	s.last = &Outcome{State: state, Result: result, Snapshot: snapshot}
	s.stateMu.Unlock()
}

func (s *Screen) transition(to State) {
	s.stateMu.Lock()
	from := s.state
	s.state = to
	observers := append([]Observer(nil), s.observers...)
	s.stateMu.Unlock()

	if from == to {
		return
	}
	for _, fn := range observers {
		fn(from, to)
	}
}
