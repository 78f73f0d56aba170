package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/project"
)

// Version is the info.version of generated documents.
const Version = "1.0.0"

// Document returns the OpenAPI description of the project endpoint.
func Document() *openapi3.T {
	return FromModel(project.FormModel(), "Form fields API")
}

// FromModel builds a single-operation document for fm. The operation accepts
// the derived schema as JSON and answers with the handler result.
func FromModel(fm model.FormModel, title string) *openapi3.T {
	method := strings.ToUpper(strings.TrimSpace(fm.Method))
	if method == "" {
		method = http.MethodPost
	}

	body := openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchema(SchemaFromModel(fm))

	result := openapi3.NewResponse().
		WithDescription("Handler result").
		WithJSONSchema(ResultSchema())

	operation := &openapi3.Operation{
		OperationID: fm.OperationID,
		Summary:     fm.Summary,
		Description: fm.Description,
		RequestBody: &openapi3.RequestBodyRef{Value: body},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: result}),
			openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Rejected submission").WithJSONSchema(ResultSchema()),
			}),
		),
	}

	item := &openapi3.PathItem{}
	item.SetOperation(method, operation)

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: Version,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(fm.Endpoint, item)),
	}
}

// Validate checks doc against the OpenAPI 3 rules.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if doc == nil {
		return fmt.Errorf("openapi: document is nil")
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return fmt.Errorf("openapi: validate: %w", err)
	}
	return nil
}

// Load parses and validates a JSON or YAML document.
func Load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("openapi: document payload is empty")
	}
	ensureFormats()
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := Validate(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Encode serialises doc as indented JSON, or as YAML when asYAML is set.
func Encode(doc *openapi3.T, asYAML bool) ([]byte, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	if !asYAML {
		return raw, nil
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("openapi: decode json: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode yaml: %w", err)
	}
	return out, nil
}
