package project

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formfields/pkg/validation"
)

var schemaMessages = validation.Messages{
	"name|min_utf16": "Project name must be at least 2 characters long",
	"name|max_utf16": "Project name cannot be longer than 100 characters.",
	"users|min":      "At least one user must be assigned to the project.",
	"users|max":      "Maximum of 5 users can be assigned to the project.",
}

// Schema validates candidate project records. It is safe for concurrent use
// and holds no per-call state.
type Schema struct {
	structs *validation.StructValidator
}

// NewSchema constructs the project schema.
func NewSchema() *Schema {
	return &Schema{structs: validation.NewStructValidator(schemaMessages)}
}

// Validate checks a candidate record and returns the normalised project. The
// candidate may be any JSON-compatible value (maps, structs, form snapshots).
// Failures are returned as validation.Issues; Validate never panics.
func (s *Schema) Validate(candidate any) (Project, error) {
	tree, err := canonicalize(candidate)
	if err != nil {
		return Project{}, validation.Issues{{Code: "invalid_type", Message: "Invalid input: " + err.Error()}}
	}

	decoded, issues := decode(tree)
	issues = append(issues, s.constraints(decoded, issues)...)
	if len(issues) > 0 {
		return Project{}, inFieldOrder(issues)
	}
	return normalize(decoded), nil
}

// Check is Validate with an untyped result, matching the validator contract
// of form sessions.
func (s *Schema) Check(candidate any) (any, error) {
	p, err := s.Validate(candidate)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// constraints runs the struct rules, skipping paths that already failed
// decoding so a type error is not followed by a misleading bound error.
func (s *Schema) constraints(p Project, typeIssues validation.Issues) validation.Issues {
	ctx := context.Background()
	var out validation.Issues
	for _, issue := range s.structs.Validate(ctx, p) {
		if !shadowed(issue, typeIssues) {
			out = append(out, issue)
		}
	}
	for idx, user := range p.Users {
		for _, issue := range s.structs.Validate(ctx, user, "users", idx) {
			if !shadowed(issue, typeIssues) {
				out = append(out, issue)
			}
		}
	}
	return out
}

// fieldOrder is the declaration order of the record keys.
var fieldOrder = map[string]int{
	"name":          0,
	"status":        1,
	"description":   2,
	"notifications": 3,
	"users":         4,
}

// inFieldOrder sorts issues by the declaration order of their top-level key.
// Under a list key, entry issues come in index order ahead of issues on the
// list itself.
func inFieldOrder(issues validation.Issues) validation.Issues {
	sort.SliceStable(issues, func(i, j int) bool {
		ki, ei := issueRank(issues[i])
		kj, ej := issueRank(issues[j])
		if ki != kj {
			return ki < kj
		}
		return ei < ej
	})
	return issues
}

func issueRank(issue validation.Issue) (int, int) {
	if len(issue.Path) == 0 {
		return -1, 0
	}
	key, _ := issue.Path[0].(string)
	rank, ok := fieldOrder[key]
	if !ok {
		rank = len(fieldOrder)
	}
	switch {
	case len(issue.Path) == 1:
		return rank, math.MaxInt
	default:
		if idx, ok := issue.Path[1].(int); ok {
			return rank, idx
		}
		return rank, 0
	}
}

func shadowed(issue validation.Issue, typeIssues validation.Issues) bool {
	path := issue.DotPath()
	for _, typed := range typeIssues {
		prefix := typed.DotPath()
		if prefix == "" || path == prefix || strings.HasPrefix(path, prefix+".") {
			return true
		}
	}
	return false
}

// normalize applies post-validation transforms. An empty description is
// treated as absent.
func normalize(p Project) Project {
	if p.Description != nil && *p.Description == "" {
		p.Description = nil
	}
	if p.Users != nil {
		p.Users = append([]User(nil), p.Users...)
	}
	return p
}

func canonicalize(candidate any) (any, error) {
	if candidate == nil {
		return nil, nil
	}
	raw, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("unable to read record: %w", err)
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("unable to read record: %w", err)
	}
	return tree, nil
}

func decode(tree any) (Project, validation.Issues) {
	var (
		p      Project
		issues validation.Issues
	)

	root, ok := tree.(map[string]any)
	if !ok {
		return p, validation.Issues{validation.Expected(nil, "object", tree, true)}
	}

	if value, present := root["name"]; !present || !isString(value) {
		issues = append(issues, validation.Expected([]any{"name"}, "string", value, present))
	} else {
		p.Name = value.(string)
	}

	status, present := root["status"]
	if s, ok := status.(string); present && ok {
		p.Status = Status(s)
	} else {
		issues = append(issues, statusIssue())
	}

	if value, present := root["description"]; present && value != nil {
		if s, ok := value.(string); ok {
			p.Description = &s
		} else {
			issues = append(issues, validation.Expected([]any{"description"}, "string", value, true))
		}
	}

	notifications, present := root["notifications"]
	if obj, ok := notifications.(map[string]any); ok {
		p.Notifications.Email = decodeBool(obj, "email", &issues)
		p.Notifications.SMS = decodeBool(obj, "sms", &issues)
		p.Notifications.Push = decodeBool(obj, "push", &issues)
	} else {
		issues = append(issues, validation.Expected([]any{"notifications"}, "object", notifications, present))
	}

	users, present := root["users"]
	list, ok := users.([]any)
	if !ok {
		issues = append(issues, validation.Expected([]any{"users"}, "array", users, present))
		return p, issues
	}
	p.Users = make([]User, 0, len(list))
	for idx, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			issues = append(issues, validation.Expected([]any{"users", idx}, "object", item, true))
			p.Users = append(p.Users, User{})
			continue
		}
		email, present := entry["email"]
		if s, ok := email.(string); ok && present {
			p.Users = append(p.Users, User{Email: s})
			continue
		}
		issues = append(issues, validation.Expected([]any{"users", idx, "email"}, "string", email, present))
		p.Users = append(p.Users, User{})
	}
	return p, issues
}

func decodeBool(obj map[string]any, key string, issues *validation.Issues) bool {
	value, present := obj[key]
	b, ok := value.(bool)
	if !ok || !present {
		*issues = append(*issues, validation.Expected([]any{"notifications", key}, "boolean", value, present))
		return false
	}
	return b
}

func statusIssue() validation.Issue {
	quoted := make([]string, 0, len(Statuses()))
	for _, status := range Statuses() {
		quoted = append(quoted, strconv.Quote(string(status)))
	}
	return validation.Issue{
		Path:    []any{"status"},
		Code:    "invalid_value",
		Message: "Invalid option: expected one of " + strings.Join(quoted, "|"),
	}
}

func isString(value any) bool {
	_, ok := value.(string)
	return ok
}
