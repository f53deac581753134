package zcli

import (
	"github.com/versecafe/zcli/internal/errors"
)

// === Public Errors ===

var (
	// ErrUnknownFlag indicates that a flag is not declared by the command.
	ErrUnknownFlag = errors.ErrUnknownFlag

	// ErrUnknownCommand indicates that the invoked subcommand has not been found.
	ErrUnknownCommand = errors.ErrUnknownCommand

	// ErrValidation indicates that some inputs did not validate.
	ErrValidation = errors.ErrValidation

	// ErrMissingArgument indicates that a required positional argument is absent.
	ErrMissingArgument = errors.ErrMissingArgument

	// ErrMissingFlag indicates that a required flag is absent.
	ErrMissingFlag = errors.ErrMissingFlag

	// ErrDefinition indicates an invalid command definition.
	ErrDefinition = errors.ErrDefinition
)

// DefaultExitCode is the exit code of CLI errors not declaring another one.
const DefaultExitCode = errors.DefaultExitCode

// CLIError is implemented by all errors the CLI reports itself:
// they have an exit code, and might ask for the command help.
type CLIError = errors.CLIError

// Issue is one problem found on one input field.
type Issue = errors.Issue

// UserError is a generic error for actions and hooks.
type UserError = errors.UserError

// ValidationError reports all the issues found on the inputs of a command.
type ValidationError = errors.ValidationError

// UnknownFlagError reports an undeclared flag.
type UnknownFlagError = errors.UnknownFlagError

// UnknownCommandError reports an unknown subcommand.
type UnknownCommandError = errors.UnknownCommandError

// MissingArgumentError reports an absent required positional argument.
type MissingArgumentError = errors.MissingArgumentError

// MissingFlagError reports an absent required flag.
type MissingFlagError = errors.MissingFlagError

// DefinitionError is the panic value of invalid command definitions.
type DefinitionError = errors.DefinitionError

// NewUserError returns a user error with the default exit code.
func NewUserError(format string, args ...any) *UserError {
	return errors.NewUserError(format, args...)
}
