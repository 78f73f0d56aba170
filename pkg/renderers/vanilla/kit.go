package vanilla

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/render"
	rendertemplate "github.com/goliatone/go-formfields/pkg/render/template"
	gotemplate "github.com/goliatone/go-formfields/pkg/render/template/gotemplate"
)

// Option configures a Kit or Renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	classes          map[string]string
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The
// embedded bundle stays available as a fallback.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk ahead of the
// embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		if _, err := os.Stat(path); err == nil {
			cfg.templatesDir = path
		}
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithChromeClasses overrides the CSS classes exposed to templates under
// "classes". Keys are the slots listed by DefaultClasses.
func WithChromeClasses(overrides map[string]string) Option {
	return func(cfg *config) {
		cfg.classes = overrides
	}
}

// WithLogger sets the logger used to report theme fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// FormView wraps rendered fields in a form element.
type FormView struct {
	ID          string               `json:"id,omitempty"`
	Family      string               `json:"family"`
	Method      string               `json:"method"`
	Action      string               `json:"action"`
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Body        string               `json:"body"`
	SubmitLabel string               `json:"submit_label"`
	Hidden      []render.HiddenField `json:"hidden,omitempty"`
	Errors      []string             `json:"errors,omitempty"`
}

// Link is a navigation entry on a page.
type Link struct {
	Href        string `json:"href"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// PageView is a full HTML document. Form and Toasts hold rendered markup.
type PageView struct {
	Title       string            `json:"title"`
	Heading     string            `json:"heading"`
	Description string            `json:"description,omitempty"`
	Form        string            `json:"form,omitempty"`
	Toasts      []string          `json:"toasts,omitempty"`
	Links       []Link            `json:"links,omitempty"`
	Tokens      map[string]string `json:"tokens,omitempty"`
	Theme       string            `json:"theme,omitempty"`
	Variant     string            `json:"variant,omitempty"`
	Stylesheets []string          `json:"stylesheets,omitempty"`
}

// Toast kinds.
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

// ToastView is a transient notification. Title and Description are plain
// text; any markup is stripped before rendering.
type ToastView struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Kit renders binding views and page chrome through pongo2 templates.
type Kit struct {
	templates rendertemplate.TemplateRenderer
	partials  map[string]string
	policy    *bluemonday.Policy
	logger    *slog.Logger
}

var _ binding.Kit = (*Kit)(nil)

// NewKit constructs a kit backed by the embedded templates unless options
// say otherwise.
func NewKit(options ...Option) (*Kit, error) {
	cfg := newConfig(options)

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOptions := []gotemplate.Option{gotemplate.WithExtension(".tmpl")}
		if cfg.templatesDir != "" {
			engineOptions = append(engineOptions, gotemplate.WithBaseDir(cfg.templatesDir))
		}
		if cfg.templateFS != nil {
			engineOptions = append(engineOptions, gotemplate.WithFS(cfg.templateFS))
		}
		engineOptions = append(engineOptions, gotemplate.WithFS(TemplatesFS()))

		engine, err := gotemplate.New(engineOptions...)
		if err != nil {
			return nil, fmt.Errorf("vanilla: configure template renderer: %w", err)
		}
		renderer = engine
	}

	if err := renderer.GlobalContext(map[string]any{"classes": mergeClasses(cfg.classes)}); err != nil {
		return nil, fmt.Errorf("vanilla: apply chrome classes: %w", err)
	}

	return &Kit{
		templates: renderer,
		partials:  DefaultPartials(),
		policy:    bluemonday.StrictPolicy(),
		logger:    cfg.logger,
	}, nil
}

func newConfig(options []Option) config {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithTheme returns a copy of the kit whose partials follow cfg. Overrides
// naming a template the engine cannot load keep the default partial.
func (k *Kit) WithTheme(cfg *theme.RendererConfig) *Kit {
	clone := *k
	clone.partials = make(map[string]string, len(k.partials))
	for key, value := range k.partials {
		clone.partials[key] = value
	}
	if cfg == nil {
		return &clone
	}
	for key, path := range cfg.Partials {
		if _, known := clone.partials[key]; !known || path == "" || path == clone.partials[key] {
			continue
		}
		if !k.templates.Exists(path) {
			k.logger.Warn("theme partial not found, using default", "partial", key, "template", path)
			continue
		}
		clone.partials[key] = path
	}
	return &clone
}

// Partial returns the template currently bound to key.
func (k *Kit) Partial(key string) string {
	return k.partials[key]
}

// Control renders one primitive.
func (k *Kit) Control(view binding.ControlView) (string, error) {
	var key string
	switch view.Kind {
	case binding.KindInput:
		key = PartialInput
	case binding.KindTextarea:
		key = PartialTextarea
	case binding.KindSelect:
		key = PartialSelect
	case binding.KindCheckbox:
		key = PartialCheckbox
	default:
		return "", fmt.Errorf("vanilla: unknown control kind %q", view.Kind)
	}
	if view.ID == "" {
		view.ID = controlID(view.Name)
	}
	return k.render(key, map[string]any{"field": view})
}

// Fieldset renders a group around already rendered children.
func (k *Kit) Fieldset(view binding.FieldsetView) (string, error) {
	return k.render(PartialFieldset, map[string]any{"fieldset": view})
}

// Array renders a list with its add and remove affordances.
func (k *Kit) Array(view binding.ArrayView) (string, error) {
	if view.ID == "" {
		view.ID = controlID(view.Name)
	}
	return k.render(PartialArray, map[string]any{"array": view})
}

// Form renders the form element.
func (k *Kit) Form(view FormView) (string, error) {
	if view.Method == "" {
		view.Method = "post"
	}
	if view.SubmitLabel == "" {
		view.SubmitLabel = "Submit"
	}
	return k.render(PartialForm, map[string]any{"form": view})
}

// Toast renders a notification with its text sanitised.
func (k *Kit) Toast(view ToastView) (string, error) {
	if view.Kind == "" {
		view.Kind = ToastSuccess
	}
	view.Title = k.policy.Sanitize(view.Title)
	view.Description = k.policy.Sanitize(view.Description)
	return k.render(PartialToast, map[string]any{"toast": view})
}

// Page renders a full document.
func (k *Kit) Page(view PageView) (string, error) {
	if view.Title == "" {
		view.Title = view.Heading
	}
	return k.render(PartialPage, map[string]any{"page": view})
}

func (k *Kit) render(key string, data map[string]any) (string, error) {
	if k == nil || k.templates == nil {
		return "", fmt.Errorf("vanilla: template renderer is nil")
	}
	name := k.partials[key]
	if name == "" {
		return "", fmt.Errorf("vanilla: no template bound to %q", key)
	}
	out, err := k.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("vanilla: render %q: %w", key, err)
	}
	return out, nil
}
