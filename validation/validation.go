// Package validation turns the raw values resolved from the command line
// into typed input values, reporting every problem found on every field.
//
// The Validator interface is the only thing the executor depends on: any
// validation library can be plugged in. The default Engine coerces values
// according to their schema type, and checks rules with go-playground/validator.
package validation

import (
	"errors"
	"slices"

	"github.com/go-playground/validator/v10"

	flagerrors "github.com/versecafe/zcli/internal/errors"
	"github.com/versecafe/zcli/schema"
)

// Issue codes.
const (
	CodeRequired = "required" // The value is absent and has no default.
	CodeType     = "type"     // The value cannot be coerced to the field type.
	CodeChoice   = "choice"   // The value is not among the enum choices.
	CodeRule     = "rule"     // The value does not satisfy the field rules.
)

// ErrInvalidChoice indicates that the provided value is not among the valid choices.
var ErrInvalidChoice = errors.New("invalid choice")

// Issue is one problem found on one field.
type Issue = flagerrors.Issue

// Validator coerces and validates a set of named raw values against their fields.
// It returns the validated values, or all the issues found.
type Validator interface {
	Validate(raw map[string]any, fields []*schema.Field) (map[string]any, []Issue)
}

// Func adapts a function to the Validator interface.
type Func func(raw map[string]any, fields []*schema.Field) (map[string]any, []Issue)

// Validate implements Validator.
func (f Func) Validate(raw map[string]any, fields []*schema.Field) (map[string]any, []Issue) {
	return f(raw, fields)
}

// Engine is the default validator.
type Engine struct {
	validate *validator.Validate
}

// New returns an engine using a default go-playground validator.
func New() *Engine {
	return NewWith(validator.New())
}

// NewWith returns an engine checking rules with the given validator,
// on which custom validations may have been registered.
func NewWith(v *validator.Validate) *Engine {
	return &Engine{validate: v}
}

// Validate implements Validator. Fields are checked in the order given,
// and all of them are checked even when some fail.
func (e *Engine) Validate(raw map[string]any, fields []*schema.Field) (map[string]any, []Issue) {
	values := make(map[string]any, len(fields))

	var issues []Issue

	for _, field := range fields {
		value, issue := e.field(raw[field.Key], field)
		if issue != nil {
			issue.Path = field.Key
			issues = append(issues, *issue)

			continue
		}

		values[field.Key] = value
	}

	if len(issues) > 0 {
		return nil, issues
	}

	return values, nil
}

func (e *Engine) field(raw any, field *schema.Field) (any, *Issue) {
	info := field.Info()

	if raw == nil {
		switch {
		case info.HasDefault:
			return info.Default, nil
		case info.Optional:
			return nil, nil
		default:
			return nil, &Issue{Code: CodeRequired, Message: "required"}
		}
	}

	value, issue := coerce(raw, info)
	if issue != nil {
		return nil, issue
	}

	if info.Rules != "" {
		if err := e.validate.Var(value, info.Rules); err != nil {
			return nil, &Issue{Code: CodeRule, Message: ruleMessage(value, err)}
		}
	}

	return value, nil
}

// IsMissing returns true if all issues report absent values.
func IsMissing(issues []Issue) bool {
	return len(issues) > 0 && !slices.ContainsFunc(issues, func(issue Issue) bool {
		return issue.Code != CodeRequired
	})
}
