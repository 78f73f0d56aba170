package vanilla

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-formfields/pkg/binding/controller"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/form"
	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/render"
)

// Renderer renders a whole FormModel to HTML without keeping any state. Values
// and errors come from the render options, so the output is a preview of the
// form as a controller-bound screen would show it.
type Renderer struct {
	kit *Kit
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	kit, err := NewKit(options...)
	if err != nil {
		return nil, err
	}
	return &Renderer{kit: kit}, nil
}

// Kit exposes the underlying kit.
func (r *Renderer) Kit() *Kit {
	return r.kit
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, fm model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r == nil || r.kit == nil {
		return nil, fmt.Errorf("vanilla renderer: kit is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := form.New(fields.Seed(fm), nil)
	paths := make([]string, 0, len(options.Values))
	for path := range options.Values {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := f.Change(path, options.Values[path]); err != nil {
			return nil, fmt.Errorf("vanilla renderer: apply value %q: %w", path, err)
		}
	}
	f.SetErrors(options.Errors)

	kit := r.kit
	if options.Theme != nil {
		kit = kit.WithTheme(options.Theme)
	}

	components, err := fields.Compose(fm)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: compose: %w", err)
	}
	body, err := fields.RenderAll(controller.New(f, kit), components...)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render fields: %w", err)
	}

	out, err := kit.Form(FormView{
		Family:      controller.Family,
		Method:      fm.Method,
		Action:      fm.Endpoint,
		Title:       fm.Title,
		Description: fm.Description,
		Body:        body,
		SubmitLabel: fm.Metadata["submitLabel"],
		Hidden:      render.SortedHiddenFields(options.Hidden),
		Errors:      options.Errors[""],
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	return []byte(out), nil
}
