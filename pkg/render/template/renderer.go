package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers rely on. Template names
// are resolved relative to the engine's loaders; the extension is optional.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
	Exists(name string) bool
}
