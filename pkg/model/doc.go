// Package model defines the typed form model consumed by the reusable field
// components and the renderers. A FormModel lists Fields in document order;
// nested objects carry their children in Nested and arrays describe their
// element shape through Items. Validation rules use canonical identifiers
// (minLength/maxLength, minItems/maxItems, format, enum) with string
// parameters so every consumer (HTML attributes, terminal prompt checks,
// OpenAPI export) reads the same constraint the same way. UIHints carries
// renderer-facing directives such as `component`, `inputType`, `itemLabel`,
// `horizontal` and `addLabel`.
package model
