package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassPage        ChromeClass = "formfields-page"
	ClassForm        ChromeClass = "formfields-form"
	ClassHeader      ChromeClass = "formfields-header"
	ClassSection     ChromeClass = "formfields-section"
	ClassField       ChromeClass = "formfields-field"
	ClassLabel       ChromeClass = "formfields-label"
	ClassControl     ChromeClass = "formfields-control"
	ClassDescription ChromeClass = "formfields-description"
	ClassError       ChromeClass = "formfields-error"
	ClassInvalid     ChromeClass = "formfields-field--invalid"
	ClassCheckbox    ChromeClass = "formfields-checkbox"
	ClassHorizontal  ChromeClass = "formfields-horizontal"
	ClassFieldset    ChromeClass = "formfields-fieldset"
	ClassGroup       ChromeClass = "formfields-group"
	ClassArray       ChromeClass = "formfields-array"
	ClassRow         ChromeClass = "formfields-array-row"
	ClassButton      ChromeClass = "formfields-button"
	ClassPrimary     ChromeClass = "formfields-button--primary"
	ClassAdd         ChromeClass = "formfields-button--add"
	ClassRemove      ChromeClass = "formfields-button--remove"
	ClassActions     ChromeClass = "formfields-actions"
	ClassErrors      ChromeClass = "formfields-errors"
	ClassToast       ChromeClass = "formfields-toast"
	ClassToasts      ChromeClass = "formfields-toasts"
	ClassNav         ChromeClass = "formfields-nav"
)

// DefaultClasses maps the template class slots to their default values.
// Templates read them through the global "classes" context.
func DefaultClasses() map[string]string {
	return map[string]string{
		"page":        string(ClassPage),
		"form":        string(ClassForm),
		"header":      string(ClassHeader),
		"section":     string(ClassSection),
		"field":       string(ClassField),
		"label":       string(ClassLabel),
		"control":     string(ClassControl),
		"description": string(ClassDescription),
		"error":       string(ClassError),
		"invalid":     string(ClassInvalid),
		"checkbox":    string(ClassCheckbox),
		"horizontal":  string(ClassHorizontal),
		"fieldset":    string(ClassFieldset),
		"group":       string(ClassGroup),
		"array":       string(ClassArray),
		"row":         string(ClassRow),
		"button":      string(ClassButton),
		"primary":     string(ClassPrimary),
		"add":         string(ClassAdd),
		"remove":      string(ClassRemove),
		"actions":     string(ClassActions),
		"errors":      string(ClassErrors),
		"toast":       string(ClassToast),
		"toasts":      string(ClassToasts),
		"nav":         string(ClassNav),
	}
}

// mergeClasses applies overrides on top of the defaults. Override values are
// cleaned of generated id-like tokens; empty overrides keep the default.
func mergeClasses(overrides map[string]string) map[string]string {
	classes := DefaultClasses()
	for slot, value := range overrides {
		if _, ok := classes[slot]; !ok {
			continue
		}
		if cleaned := sanitizeClassList(value); cleaned != "" {
			classes[slot] = cleaned
		}
	}
	return classes
}
