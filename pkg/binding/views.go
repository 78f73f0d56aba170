package binding

// Kind names a rendering primitive.
type Kind string

const (
	KindInput    Kind = "input"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
)

// Option is one entry of a closed set.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Control parameterises one primitive. Type is the input type of KindInput
// controls ("text", "email"); Horizontal places a checkbox label beside the
// control.
type Control struct {
	Name        string
	Label       string
	Description string
	Type        string
	Placeholder string
	Options     []Option
	Horizontal  bool
}

// Group parameterises a fieldset.
type Group struct {
	Name        string
	Legend      string
	Description string
}

// ArraySpec parameterises a list of repeated rows. Max disables the add
// affordance once the list holds Max entries; zero means uncapped.
// RemoveLabel may contain a %d verb replaced by the one-based row number.
type ArraySpec struct {
	Name        string
	Label       string
	Description string
	Max         int
	AddLabel    string
	RemoveLabel string
}

// OptionView is an Option annotated with its selection state.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ControlView is everything a Kit needs to render one primitive.
type ControlView struct {
	Kind         Kind         `json:"kind"`
	Family       string       `json:"family"`
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Label        string       `json:"label"`
	Description  string       `json:"description,omitempty"`
	InputType    string       `json:"input_type,omitempty"`
	Placeholder  string       `json:"placeholder,omitempty"`
	Value        string       `json:"value"`
	Checked      bool         `json:"checked"`
	Options      []OptionView `json:"options,omitempty"`
	Horizontal   bool         `json:"horizontal"`
	Invalid      bool         `json:"invalid"`
	Error        string       `json:"error,omitempty"`
	ChangeHandle string       `json:"change_handle"`
	BlurHandle   string       `json:"blur_handle"`
}

// FieldsetView wraps already rendered children.
type FieldsetView struct {
	Family      string `json:"family"`
	Name        string `json:"name"`
	Legend      string `json:"legend"`
	Description string `json:"description,omitempty"`
	Body        string `json:"body"`
	Invalid     bool   `json:"invalid"`
	Error       string `json:"error,omitempty"`
}

// ArrayRow is one rendered entry of an ArrayView.
type ArrayRow struct {
	Index        int    `json:"index"`
	Body         string `json:"body"`
	Removable    bool   `json:"removable"`
	RemoveLabel  string `json:"remove_label"`
	RemoveAction string `json:"remove_action"`
}

// ArrayView is a rendered list with its affordances.
type ArrayView struct {
	Family      string     `json:"family"`
	Name        string     `json:"name"`
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Rows        []ArrayRow `json:"rows"`
	Len         int        `json:"len"`
	Max         int        `json:"max"`
	CanAdd      bool       `json:"can_add"`
	AddLabel    string     `json:"add_label"`
	AddAction   string     `json:"add_action"`
	Invalid     bool       `json:"invalid"`
	Error       string     `json:"error,omitempty"`
}

// Kit renders views into markup.
type Kit interface {
	Control(view ControlView) (string, error)
	Fieldset(view FieldsetView) (string, error)
	Array(view ArrayView) (string, error)
}
