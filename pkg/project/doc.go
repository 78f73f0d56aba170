// Package project holds the only domain entity of the module: a transient
// project record built per form session, validated at submit time and
// discarded after the mocked round trip. It provides the validation schema,
// the form session defaults, the form model consumed by the reusable field
// components and the mock submission handler.
package project
