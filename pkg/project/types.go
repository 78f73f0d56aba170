package project

// Status is the closed set of project states.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCompleted Status = "completed"
)

// Statuses returns the enumeration in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusCompleted}
}

// Notifications is the fixed set of delivery channels a project can enable.
type Notifications struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
	Push  bool `json:"push"`
}

// User is one assignee entry.
type User struct {
	Email string `json:"email" validate:"email"`
}

// Project is the validated, normalised record. Description is nil when the
// submitted value was missing or empty.
type Project struct {
	Name          string        `json:"name" validate:"min_utf16=2,max_utf16=100"`
	Status        Status        `json:"status" validate:"oneof=active inactive completed"`
	Description   *string       `json:"description,omitempty"`
	Notifications Notifications `json:"notifications"`
	Users         []User        `json:"users" validate:"min=1,max=5"`
}

const (
	// MinUsers and MaxUsers bound the users list.
	MinUsers = 1
	MaxUsers = 5

	MinNameLength = 2
	MaxNameLength = 100
)

// Defaults returns the value tree a new form session starts from.
func Defaults() map[string]any {
	return map[string]any{
		"name":        "",
		"status":      string(StatusInactive),
		"description": "",
		"notifications": map[string]any{
			"email": false,
			"sms":   false,
			"push":  false,
		},
		"users": []any{
			map[string]any{"email": ""},
		},
	}
}
