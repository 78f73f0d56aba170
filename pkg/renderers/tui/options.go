package tui

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

// Styles controls how headings, notices and errors are printed.
type Styles struct {
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the ANSI styles used by sessions and notifiers.
func DefaultStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// PlainStyles returns styles that print text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Heading: plain, Muted: plain, Success: plain, Error: plain}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithStyles overrides the output styles.
func WithStyles(styles Styles) Option {
	return func(s *Session) {
		s.styles = styles
	}
}

// WithMaxAttempts bounds the number of submissions per run. Zero or less
// means unbounded.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		s.maxAttempts = n
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
