// Package fields provides the reusable field components of the project form.
// A component only knows its parameters; the binding family it renders
// through decides how values, handles and errors are wired. The same
// component tree therefore renders under every family.
package fields
