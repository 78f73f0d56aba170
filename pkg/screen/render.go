package screen

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfields/pkg/binding"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/render"
	"github.com/goliatone/go-formfields/pkg/renderers/vanilla"
)

// SubmitLabel is the caption of the submit button.
const SubmitLabel = "Create"

// PageOptions carries the per-request parts of a rendered screen.
type PageOptions struct {
	Action        string
	Hidden        map[string]string
	Notifications []Notification
	Theme         *theme.RendererConfig
	Links         []vanilla.Link
}

// RenderFields renders the field group through the variant's binder.
func (s *Screen) RenderFields(kit binding.Kit) (string, error) {
	b := s.Binder(kit)
	body, err := fields.RenderAll(b, s.components...)
	if err != nil {
		return "", fmt.Errorf("screen: render %s fields: %w", s.variant, err)
	}
	return b.Group(binding.Group{}, body)
}

// RenderForm renders the form element posting to action.
func (s *Screen) RenderForm(kit *vanilla.Kit, action string, hidden map[string]string) (string, error) {
	body, err := s.RenderFields(kit)
	if err != nil {
		return "", err
	}
	return kit.Form(vanilla.FormView{
		ID:          s.form.ID(),
		Family:      string(s.variant),
		Method:      "post",
		Action:      action,
		Body:        body,
		SubmitLabel: SubmitLabel,
		Hidden:      render.SortedHiddenFields(s.HiddenFields(hidden)),
		Errors:      s.form.Errors(""),
	})
}

// RenderPage renders the complete document for the screen.
func (s *Screen) RenderPage(kit *vanilla.Kit, opts PageOptions) (string, error) {
	if opts.Theme != nil {
		kit = kit.WithTheme(opts.Theme)
	}
	formMarkup, err := s.RenderForm(kit, opts.Action, opts.Hidden)
	if err != nil {
		return "", err
	}

	toasts := make([]string, 0, len(opts.Notifications))
	for _, note := range opts.Notifications {
		toast, err := kit.Toast(vanilla.ToastView{Kind: note.Kind, Title: note.Title, Description: note.Description})
		if err != nil {
			return "", err
		}
		toasts = append(toasts, toast)
	}

	page := vanilla.PageView{
		Title:   s.variant.Heading() + " · " + s.model.Summary,
		Heading: s.variant.Heading(),
		Form:    formMarkup,
		Toasts:  toasts,
		Links:   opts.Links,
	}
	if opts.Theme != nil {
		page.Tokens = opts.Theme.Tokens
		page.Theme = opts.Theme.Theme
		page.Variant = opts.Theme.Variant
		page.Stylesheets = vanilla.Stylesheets(opts.Theme)
	}
	return kit.Page(page)
}
