// Package openapi describes the project creation endpoint as an OpenAPI 3
// document. Schemas are derived from the form model so the document, the
// rendered form and the handler agree on bounds, enums and formats.
package openapi
