package project

import (
	"strconv"

	"github.com/goliatone/go-formfields/pkg/model"
)

// OperationID identifies the create operation across the HTTP surface and the
// OpenAPI document.
const OperationID = "createProject"

// FormModel describes the project creation form. Field order is the
// document order used by every renderer.
func FormModel() model.FormModel {
	statusOptions := make([]model.Option, 0, len(Statuses()))
	for _, status := range Statuses() {
		statusOptions = append(statusOptions, model.Option{Value: string(status), Label: string(status)})
	}

	return model.FormModel{
		OperationID: OperationID,
		Endpoint:    "/api/projects",
		Method:      "POST",
		Title:       "Reusable",
		Summary:     "Create a project",
		Fields: []model.Field{
			{
				Name:     "name",
				Type:     model.FieldTypeString,
				Required: true,
				Label:    "Name",
				Validations: []model.ValidationRule{
					lengthRule(model.ValidationRuleMinLength, MinNameLength),
					lengthRule(model.ValidationRuleMaxLength, MaxNameLength),
				},
			},
			{
				Name:     "status",
				Type:     model.FieldTypeString,
				Required: true,
				Label:    "Status",
				Default:  string(StatusInactive),
				Enum:     statusOptions,
				UIHints:  map[string]string{"component": "select"},
			},
			{
				Name:        "description",
				Type:        model.FieldTypeString,
				Label:       "Description",
				Description: "Be specific and concise as possible.",
				UIHints:     map[string]string{"component": "textarea"},
			},
			{
				Name:        "notifications",
				Type:        model.FieldTypeObject,
				Required:    true,
				Label:       "Notifications",
				Description: "Receive notifications for project updates.",
				Nested: []model.Field{
					checkbox("email", "Email"),
					checkbox("sms", "Text"),
					checkbox("push", "In App"),
				},
			},
			{
				Name:        "users",
				Type:        model.FieldTypeArray,
				Required:    true,
				Label:       "User Email Address",
				Description: "Assign up to 5 users to this project (including yourself).",
				Items: &model.Field{
					Type: model.FieldTypeObject,
					Nested: []model.Field{
						{
							Name:     "email",
							Type:     model.FieldTypeString,
							Format:   "email",
							Required: true,
							Label:    "Email",
							Validations: []model.ValidationRule{
								{Kind: model.ValidationRuleFormat, Params: map[string]string{"format": "email"}},
							},
							UIHints: map[string]string{"inputType": "email"},
						},
					},
				},
				Validations: []model.ValidationRule{
					lengthRule(model.ValidationRuleMinItems, MinUsers),
					lengthRule(model.ValidationRuleMaxItems, MaxUsers),
				},
				UIHints: map[string]string{
					"itemLabel":   "User %d Email",
					"addLabel":    "Add User",
					"removeLabel": "Remove User %d",
				},
			},
		},
	}
}

func lengthRule(kind string, value int) model.ValidationRule {
	return model.ValidationRule{Kind: kind, Params: map[string]string{"value": strconv.Itoa(value)}}
}

func checkbox(name, label string) model.Field {
	return model.Field{
		Name:    name,
		Type:    model.FieldTypeBoolean,
		Label:   label,
		Default: false,
		UIHints: map[string]string{"horizontal": "true"},
	}
}
