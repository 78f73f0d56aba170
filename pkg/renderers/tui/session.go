package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/screen"
)

// Session fills a screen from terminal prompts. Every answer is delivered
// through the screen's change and blur handles, then the screen is submitted.
// Fields reported invalid are prompted again until the submission succeeds,
// the user declines to retry, or the attempt limit is reached.
type Session struct {
	driver      PromptDriver
	styles      Styles
	maxAttempts int
	logger      *slog.Logger
}

// New constructs a session prompting through survey on the process terminal.
func New(options ...Option) *Session {
	s := &Session{
		styles: DefaultStyles(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run prompts for every field of sc and submits it.
func (s *Session) Run(ctx context.Context, sc *screen.Screen) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if sc == nil {
		return errors.New("tui: screen is nil")
	}

	if err := s.info(ctx, s.styles.Heading.Render(sc.Variant().Heading())); err != nil {
		return err
	}
	if summary := sc.Model().Summary; summary != "" {
		if err := s.info(ctx, s.styles.Muted.Render(summary)); err != nil {
			return err
		}
	}

	b := sc.Binder(nil)
	pending := sc.Components()
	for attempt := 1; ; attempt++ {
		for _, component := range pending {
			if err := s.prompt(ctx, sc, b, component); err != nil {
				return err
			}
		}

		err := sc.Submit(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, form.ErrInvalid) && !errors.Is(err, screen.ErrRejected) {
			return err
		}
		s.logger.DebugContext(ctx, "submission not accepted", "attempt", attempt, "error", err)

		errs := sc.Form().AllErrors()
		if err := s.reportErrors(ctx, errs); err != nil {
			return err
		}
		if s.maxAttempts > 0 && attempt >= s.maxAttempts {
			return fmt.Errorf("tui: no accepted submission after %d attempts: %w", attempt, err)
		}
		retry, cerr := s.driver.Confirm(ctx, ConfirmConfig{Message: "Edit and resubmit?", Default: true})
		if cerr != nil {
			return cerr
		}
		if !retry {
			return ErrDeclined
		}

		pending = needingAttention(sc.Components(), errs)
		if len(pending) == 0 {
			pending = sc.Components()
		}
	}
}

func (s *Session) prompt(ctx context.Context, sc *screen.Screen, b binding.Binder, component fields.Component) error {
	switch c := component.(type) {
	case fields.Input:
		return s.promptInput(ctx, sc, b, c.Name, c.Label, c.Description)
	case fields.Textarea:
		answer, err := s.driver.TextArea(ctx, TextAreaConfig{
			Message: c.Label,
			Default: current(sc, c.Name),
			Help:    c.Description,
		})
		if err != nil {
			return err
		}
		return s.deliver(ctx, sc, b, c.Name, answer)
	case fields.Select:
		return s.promptSelect(ctx, sc, b, c)
	case fields.Checkbox:
		value, _ := sc.Form().Value(c.Name)
		answer, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: c.Label,
			Default: binding.Truthy(value),
			Help:    c.Description,
		})
		if err != nil {
			return err
		}
		return s.deliver(ctx, sc, b, c.Name, answer)
	case fields.Group:
		if c.Legend != "" {
			if err := s.info(ctx, s.styles.Heading.Render(c.Legend)); err != nil {
				return err
			}
		}
		if c.Description != "" {
			if err := s.info(ctx, s.styles.Muted.Render(c.Description)); err != nil {
				return err
			}
		}
		for _, child := range c.Children {
			if err := s.prompt(ctx, sc, b, child); err != nil {
				return err
			}
		}
		return s.showErrors(ctx, sc, c.Name)
	case fields.Array:
		return s.promptArray(ctx, sc, b, c)
	default:
		return fmt.Errorf("tui: unsupported component %T", component)
	}
}

func (s *Session) promptInput(ctx context.Context, sc *screen.Screen, b binding.Binder, path, label, help string) error {
	answer, err := s.driver.Input(ctx, InputConfig{
		Message: label,
		Default: current(sc, path),
		Help:    help,
	})
	if err != nil {
		return err
	}
	return s.deliver(ctx, sc, b, path, answer)
}

func (s *Session) promptSelect(ctx context.Context, sc *screen.Screen, b binding.Binder, c fields.Select) error {
	labels := make([]string, len(c.Options))
	selected := current(sc, c.Name)
	defaultIdx := -1
	for i, option := range c.Options {
		labels[i] = option.Label
		if option.Value == selected {
			defaultIdx = i
		}
	}
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      c.Label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         c.Description,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(c.Options) {
			if err := s.info(ctx, s.styles.Error.Render("Invalid selection for "+c.Label)); err != nil {
				return err
			}
			continue
		}
		return s.deliver(ctx, sc, b, c.Name, c.Options[idx].Value)
	}
}

// promptArray prompts each entry, then offers the list affordances: adding
// an entry while below Max and removing one while more than one remains.
func (s *Session) promptArray(ctx context.Context, sc *screen.Screen, b binding.Binder, c fields.Array) error {
	if err := s.info(ctx, s.styles.Heading.Render(c.Label)); err != nil {
		return err
	}
	if c.Description != "" {
		if err := s.info(ctx, s.styles.Muted.Render(c.Description)); err != nil {
			return err
		}
	}
	f := sc.Form()
	for i := 0; i < f.Len(c.Name); i++ {
		if err := s.promptInput(ctx, sc, b, c.ItemPath(i), binding.RowLabel(c.ItemLabel, i), ""); err != nil {
			return err
		}
	}

	for {
		n := f.Len(c.Name)
		choices := []string{"Done"}
		canAdd := c.Max == 0 || n < c.Max
		if canAdd {
			choices = append(choices, c.AddLabel)
		}
		removeFrom := len(choices)
		if n > 1 {
			for i := 0; i < n; i++ {
				choices = append(choices, binding.RowLabel(c.RemoveLabel, i))
			}
		}
		if len(choices) == 1 {
			break
		}

		message := c.Label
		if c.Max > 0 {
			message = fmt.Sprintf("%s (%d/%d)", c.Label, n, c.Max)
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: choices, DefaultIndex: 0})
		if err != nil {
			return err
		}

		switch {
		case idx <= 0 || idx >= len(choices):
			return s.showErrors(ctx, sc, c.Name)
		case canAdd && idx == 1:
			added, err := c.Add(f)
			if err != nil {
				return err
			}
			if added {
				if err := s.promptInput(ctx, sc, b, c.ItemPath(n), binding.RowLabel(c.ItemLabel, n), ""); err != nil {
					return err
				}
			}
		default:
			if _, err := c.Remove(f, idx-removeFrom); err != nil {
				return err
			}
		}
	}
	return s.showErrors(ctx, sc, c.Name)
}

func (s *Session) deliver(ctx context.Context, sc *screen.Screen, b binding.Binder, path string, value any) error {
	if err := binding.Dispatch(b, binding.Edit{Path: path, Value: value, Blur: true}); err != nil {
		return err
	}
	return s.showErrors(ctx, sc, path)
}

// showErrors prints the messages stored at path. They are present once the
// form revalidates on change, that is after the first submission.
func (s *Session) showErrors(ctx context.Context, sc *screen.Screen, path string) error {
	if path == "" {
		return nil
	}
	for _, msg := range sc.Form().Errors(path) {
		if err := s.info(ctx, s.styles.Error.Render("  "+msg)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) reportErrors(ctx context.Context, errs map[string][]string) error {
	paths := make([]string, 0, len(errs))
	for path := range errs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		label := path
		if label == "" {
			label = "form"
		}
		for _, msg := range errs[path] {
			if err := s.info(ctx, s.styles.Error.Render(label+": "+msg)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, msg)
}

func current(sc *screen.Screen, path string) string {
	value, _ := sc.Form().Value(path)
	return binding.Text(value)
}

// needingAttention keeps the components bound at or above an errored path.
func needingAttention(components []fields.Component, errs map[string][]string) []fields.Component {
	var out []fields.Component
	for _, component := range components {
		name := componentName(component)
		for path := range errs {
			if name != "" && (path == name || strings.HasPrefix(path, name+".")) {
				out = append(out, component)
				break
			}
		}
	}
	return out
}

func componentName(component fields.Component) string {
	switch c := component.(type) {
	case fields.Input:
		return c.Name
	case fields.Textarea:
		return c.Name
	case fields.Select:
		return c.Name
	case fields.Checkbox:
		return c.Name
	case fields.Group:
		return c.Name
	case fields.Array:
		return c.Name
	}
	return ""
}
