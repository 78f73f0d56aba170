package render

import (
	"context"

	"github.com/goliatone/go-formfields/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML, terminal
// transcript and so on).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
