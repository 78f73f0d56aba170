// Package form owns the state of one form session: values keyed by dotted
// paths, touched and dirty tracking, field errors and the submission
// pipeline. Both binding families read from and write to a *Form; the form
// itself knows nothing about rendering.
package form
