package vanilla

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys a theme manifest may override.
const (
	PartialInput    = "forms.input"
	PartialTextarea = "forms.textarea"
	PartialSelect   = "forms.select"
	PartialCheckbox = "forms.checkbox"
	PartialFieldset = "forms.fieldset"
	PartialArray    = "forms.array"
	PartialForm     = "forms.form"
	PartialPage     = "forms.page"
	PartialToast    = "forms.toast"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "formfields"

// StylesheetAsset is the asset key of the theme stylesheet.
const StylesheetAsset = "vanilla.stylesheet"

// DefaultPartials maps partial keys to the embedded templates.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialInput:    "templates/controls/input.tmpl",
		PartialTextarea: "templates/controls/textarea.tmpl",
		PartialSelect:   "templates/controls/select.tmpl",
		PartialCheckbox: "templates/controls/checkbox.tmpl",
		PartialFieldset: "templates/controls/fieldset.tmpl",
		PartialArray:    "templates/controls/array.tmpl",
		PartialForm:     "templates/form.tmpl",
		PartialPage:     "templates/page.tmpl",
		PartialToast:    "templates/toast.tmpl",
	}
}

// DefaultManifest describes the built-in theme with a light default and a
// "dark" variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#2563eb",
			"danger":  "#dc2626",
			"success": "#16a34a",
			"surface": "#ffffff",
			"text":    "#111827",
			"muted":   "#6b7280",
			"radius":  "0.5rem",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				StylesheetAsset: StylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand":   "#60a5fa",
					"surface": "#0f172a",
					"text":    "#e2e8f0",
					"muted":   "#94a3b8",
				},
			},
		},
	}
}

// NewThemeRegistry returns a registry holding the built-in manifest and any
// extra manifests.
func NewThemeRegistry(extra ...*theme.Manifest) (*theme.MemoryRegistry, error) {
	registry := theme.NewRegistry()
	for _, manifest := range append([]*theme.Manifest{DefaultManifest()}, extra...) {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("vanilla: register theme: %w", err)
		}
	}
	return registry, nil
}

// ResolveTheme selects a theme and variant from provider and flattens it into
// the config the kit consumes. An empty name selects the built-in theme and
// an empty variant the base tokens. Unknown themes and variants are errors.
func ResolveTheme(provider theme.ThemeProvider, name, variant string) (*theme.RendererConfig, error) {
	selector := theme.Selector{Registry: provider, DefaultTheme: DefaultThemeName}
	selection, err := selector.Select(name, strings.TrimSpace(variant))
	if err != nil {
		return nil, fmt.Errorf("vanilla: %w", err)
	}
	if selection.Manifest.Name != selection.Theme {
		return nil, fmt.Errorf("vanilla: theme %q is not registered", selection.Theme)
	}
	if selection.Variant != "" {
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			return nil, fmt.Errorf("vanilla: theme %q has no variant %q", selection.Theme, selection.Variant)
		}
	}
	cfg := selection.RendererTheme(DefaultPartials())
	return &cfg, nil
}

// DefaultTheme resolves a variant of the built-in theme.
func DefaultTheme(variant string) (*theme.RendererConfig, error) {
	registry, err := NewThemeRegistry()
	if err != nil {
		return nil, err
	}
	return ResolveTheme(registry, "", variant)
}

// Stylesheets returns the resolved stylesheet URLs of a config in key order.
func Stylesheets(cfg *theme.RendererConfig, keys ...string) []string {
	if cfg == nil || cfg.AssetURL == nil {
		return nil
	}
	if len(keys) == 0 {
		keys = []string{StylesheetAsset}
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if url := cfg.AssetURL(key); url != "" {
			out = append(out, url)
		}
	}
	return out
}
