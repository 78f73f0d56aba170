// Package binding connects named form fields to rendering primitives. It
// defines the view types a Kit renders, the Binder contract reusable field
// components are written against, and the shared primitive implementation
// both binding families build on. The families differ only in how they read
// field state: see the controller and accessor subpackages.
package binding
