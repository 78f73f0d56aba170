package project

import (
	"context"
	"errors"
	"log/slog"

	"github.com/goliatone/go-formfields/pkg/validation"
)

// CreatedMessage is the confirmation returned for accepted records.
const CreatedMessage = "Project created successfully"

// Result is the outcome reported by the submission boundary.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submitter is the boundary form screens call once client-side validation
// passes. The candidate is untyped on purpose: callers may bypass the client
// validation, so implementations re-validate.
type Submitter interface {
	CreateProject(ctx context.Context, candidate any) Result
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the logger used to trace submissions.
func WithHandlerLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithHandlerSchema swaps the schema used for re-validation.
func WithHandlerSchema(schema *Schema) HandlerOption {
	return func(h *Handler) {
		if schema != nil {
			h.schema = schema
		}
	}
}

// Handler is the mock submission handler. It never persists anything and
// always accepts a record that passes the schema.
type Handler struct {
	schema *Schema
	logger *slog.Logger
}

var _ Submitter = (*Handler)(nil)

// NewHandler constructs the mock handler.
func NewHandler(options ...HandlerOption) *Handler {
	h := &Handler{
		schema: NewSchema(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// CreateProject re-validates the candidate and echoes the outcome. Invalid
// records yield the prettified issue summary as the message.
func (h *Handler) CreateProject(ctx context.Context, candidate any) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{Success: false, Message: err.Error()}
	}

	project, err := h.schema.Validate(candidate)
	if err != nil {
		var issues validation.Issues
		message := err.Error()
		if errors.As(err, &issues) {
			message = issues.Prettify()
		}
		h.logger.InfoContext(ctx, "project rejected", "error", err)
		return Result{Success: false, Message: message}
	}

	h.logger.InfoContext(ctx, "project accepted", "name", project.Name, "status", project.Status, "users", len(project.Users))
	return Result{Success: true, Message: CreatedMessage}
}
