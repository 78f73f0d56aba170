package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formfields/pkg/validation"
)

// ErrInvalid is returned by HandleSubmit when the snapshot fails validation.
// The returned error also wraps the validation.Issues when the validator
// reported them.
var ErrInvalid = errors.New("form: submission is invalid")

// Validator checks a value snapshot and returns the normalised record.
type Validator interface {
	Validate(candidate any) (any, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(candidate any) (any, error)

func (fn ValidatorFunc) Validate(candidate any) (any, error) {
	return fn(candidate)
}

// SubmitFunc receives the snapshot taken at submit time and the record the
// validator produced from it.
type SubmitFunc func(ctx context.Context, snapshot map[string]any, normalized any) error

// Option configures a Form.
type Option func(*Form)

// WithRevalidateOnChange controls whether edits made after the first submit
// attempt re-run validation. Enabled by default.
func WithRevalidateOnChange(enabled bool) Option {
	return func(f *Form) {
		f.revalidate = enabled
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Form is one isolated form session. Methods are safe for concurrent use but
// updates are applied strictly in call order.
type Form struct {
	mu sync.Mutex

	id         string
	defaults   *Values
	values     *Values
	touched    map[string]bool
	dirty      map[string]bool
	errors     map[string][]string
	lastIssues validation.Issues
	submits    int
	validator  Validator
	revalidate bool
	logger     *slog.Logger
}

// New creates a form seeded with defaults. A nil validator accepts every
// snapshot as is.
func New(defaults map[string]any, validator Validator, options ...Option) *Form {
	f := &Form{
		id:         uuid.NewString(),
		defaults:   NewValues(defaults),
		values:     NewValues(defaults),
		touched:    make(map[string]bool),
		dirty:      make(map[string]bool),
		errors:     make(map[string][]string),
		validator:  validator,
		revalidate: true,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// ID returns the instance identifier.
func (f *Form) ID() string {
	return f.id
}

// Snapshot returns a deep copy of the current values.
func (f *Form) Snapshot() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Map()
}

// Value returns the current value at path.
func (f *Form) Value(path string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Get(path)
}

// Len reports the length of the list at path.
func (f *Form) Len(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Len(path)
}

// Change records a user edit.
func (f *Form) Change(path string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.values.Set(path, value); err != nil {
		return err
	}
	f.markDirty(path)
	if f.revalidate && f.submits > 0 {
		f.runValidation()
	}
	return nil
}

// Blur marks the field as touched.
func (f *Form) Blur(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if path = strings.TrimSpace(path); path != "" {
		f.touched[path] = true
	}
}

// Errors returns the messages attached to path. The root path "" holds
// form-level errors.
func (f *Form) Errors(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.errors[path]...)
}

// AllErrors returns a copy of the errors map.
func (f *Form) AllErrors() map[string][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]string, len(f.errors))
	for path, msgs := range f.errors {
		out[path] = append([]string(nil), msgs...)
	}
	return out
}

// SetErrors replaces the errors map, typically with errors reported by a
// server after client validation was bypassed.
func (f *Form) SetErrors(errs map[string][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = make(map[string][]string, len(errs))
	for path, msgs := range errs {
		if len(msgs) > 0 {
			f.errors[path] = append([]string(nil), msgs...)
		}
	}
}

// Touched reports whether path, or any path beneath it, was touched.
func (f *Form) Touched(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return hasPrefixed(f.touched, path)
}

// Dirty reports whether path, or any path beneath it, differs from its
// default.
func (f *Form) Dirty(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return hasPrefixed(f.dirty, path)
}

// SubmitCount returns the number of submit attempts since the last reset.
func (f *Form) SubmitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submits
}

// Reset restores the defaults and clears all tracking state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = f.defaults.Clone()
	f.touched = make(map[string]bool)
	f.dirty = make(map[string]bool)
	f.errors = make(map[string][]string)
	f.lastIssues = nil
	f.submits = 0
	f.logger.Debug("form reset", "form", f.id)
}

// RestoreSubmitCount seeds the submit counter. Stateless front-ends use it to
// carry the counter across requests.
func (f *Form) RestoreSubmitCount(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n >= 0 {
		f.submits = n
	}
}

// Validate runs the validator against the current values and stores the
// resulting errors without counting a submit attempt.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.runValidation()
	return ok
}

// HandleSubmit takes a snapshot, marks every path touched and validates. When
// the snapshot is invalid the errors are stored and an error wrapping
// ErrInvalid is returned without calling onValid. Otherwise onValid is called
// and its error returned.
func (f *Form) HandleSubmit(ctx context.Context, onValid SubmitFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}

	f.mu.Lock()
	f.submits++
	snapshot := f.values.Map()
	for _, path := range f.values.Paths() {
		f.touched[path] = true
	}
	normalized, ok := f.runValidation()
	issues := f.lastIssues
	f.mu.Unlock()

	if !ok {
		f.logger.DebugContext(ctx, "form submit rejected", "form", f.id, "errors", len(issues))
		if len(issues) > 0 {
			return fmt.Errorf("%w: %w", ErrInvalid, issues)
		}
		return ErrInvalid
	}

	f.logger.DebugContext(ctx, "form submit accepted", "form", f.id)
	if onValid == nil {
		return nil
	}
	return onValid(ctx, snapshot, normalized)
}

// runValidation must be called with mu held.
func (f *Form) runValidation() (any, bool) {
	f.lastIssues = nil
	if f.validator == nil {
		f.errors = make(map[string][]string)
		return f.values.Map(), true
	}

	normalized, err := f.validator.Validate(f.values.Map())
	if err == nil {
		f.errors = make(map[string][]string)
		return normalized, true
	}

	var issues validation.Issues
	if errors.As(err, &issues) {
		f.lastIssues = issues
		f.errors = issues.ByPath()
		if f.errors == nil {
			f.errors = make(map[string][]string)
		}
		return nil, false
	}
	f.errors = map[string][]string{"": {err.Error()}}
	return nil, false
}

func (f *Form) markDirty(path string) {
	current, _ := f.values.Get(path)
	initial, seeded := f.defaults.Get(path)
	if seeded && reflect.DeepEqual(current, initial) {
		delete(f.dirty, path)
		return
	}
	f.dirty[path] = true
}

// shift renumbers tracking keys beneath the list at path after the entry at
// removed was deleted.
func (f *Form) shift(path string, removed int) {
	f.touched = shiftBool(f.touched, path, removed)
	f.dirty = shiftBool(f.dirty, path, removed)

	prefix := path + "."
	next := make(map[string][]string, len(f.errors))
	for key, msgs := range f.errors {
		renamed, keep := shiftKey(key, prefix, removed)
		if keep {
			next[renamed] = msgs
		}
	}
	f.errors = next
}

func shiftBool(src map[string]bool, path string, removed int) map[string]bool {
	prefix := path + "."
	out := make(map[string]bool, len(src))
	for key, value := range src {
		if renamed, keep := shiftKey(key, prefix, removed); keep {
			out[renamed] = value
		}
	}
	return out
}

func shiftKey(key, prefix string, removed int) (string, bool) {
	if !strings.HasPrefix(key, prefix) {
		return key, true
	}
	rest := strings.TrimPrefix(key, prefix)
	head, tail, _ := strings.Cut(rest, ".")
	idx, err := strconv.Atoi(head)
	if err != nil {
		return key, true
	}
	switch {
	case idx == removed:
		return "", false
	case idx < removed:
		return key, true
	}
	renamed := prefix + strconv.Itoa(idx-1)
	if tail != "" {
		renamed += "." + tail
	}
	return renamed, true
}

func hasPrefixed(set map[string]bool, path string) bool {
	if set[path] {
		return true
	}
	prefix := path + "."
	for key, value := range set {
		if value && strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
