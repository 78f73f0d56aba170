package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Values pre-populates rendered controls using dotted field paths (e.g.
	// "users.0.email").
	Values map[string]any
	// Errors surfaces validation feedback keyed by dotted field path. The
	// empty key holds form-level messages.
	Errors map[string][]string
	// Hidden lists extra hidden inputs rendered inside the form element.
	Hidden map[string]string
	// Theme carries resolved theme tokens and template overrides.
	Theme *theme.RendererConfig
}
