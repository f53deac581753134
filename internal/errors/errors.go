package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFlag indicates that a flag is not declared by the command.
	ErrUnknownFlag = errors.New("unknown flag")

	// ErrUnknownCommand indicates that the invoked subcommand has not been found.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrValidation indicates that resolved inputs did not validate.
	ErrValidation = errors.New("invalid inputs")

	// ErrMissingArgument indicates that a required positional argument is absent.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrMissingFlag indicates that a required flag is absent.
	ErrMissingFlag = errors.New("missing required flag")

	// ErrDefinition indicates an invalid command definition.
	ErrDefinition = errors.New("invalid command definition")
)

// DefaultExitCode is the exit code of CLI errors not declaring another one.
const DefaultExitCode = 1

// CLIError is implemented by all errors the CLI shell knows how to report.
type CLIError interface {
	error
	ExitCode() int  // Process exit code to use.
	ShowHelp() bool // Whether the command help should follow the message.
}

// Issue is one problem found on one input field.
type Issue struct {
	Path    string // Input key.
	Message string // Human readable reason.
	Code    string // Issue class, see the validation package.
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}

	return i.Path + ": " + i.Message
}

// UserError is a generic error for domain errors returned by actions and hooks.
type UserError struct {
	Message string
	Code    int
	Help    bool
	Err     error
}

// NewUserError returns a user error with the default exit code.
func NewUserError(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...), Code: DefaultExitCode}
}

func (e *UserError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

func (e *UserError) Unwrap() error { return e.Err }

// ExitCode implements CLIError.
func (e *UserError) ExitCode() int {
	if e.Code == 0 {
		return DefaultExitCode
	}

	return e.Code
}

// ShowHelp implements CLIError.
func (e *UserError) ShowHelp() bool { return e.Help }

// ValidationError aggregates all the issues found on a command's inputs.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, "  "+issue.String())
	}

	return fmt.Sprintf("%s:\n%s", ErrValidation, strings.Join(lines, "\n"))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ExitCode implements CLIError.
func (e *ValidationError) ExitCode() int { return DefaultExitCode }

// ShowHelp implements CLIError.
func (e *ValidationError) ShowHelp() bool { return true }

// UnknownFlagError reports a flag not declared by the command.
type UnknownFlagError struct {
	Flag       string
	Suggestion string
}

func (e *UnknownFlagError) Error() string {
	return withSuggestion(fmt.Sprintf("%s: %s", ErrUnknownFlag, dashed(e.Flag)), dashed(e.Suggestion))
}

func (e *UnknownFlagError) Is(target error) bool { return target == ErrUnknownFlag }

// ExitCode implements CLIError.
func (e *UnknownFlagError) ExitCode() int { return DefaultExitCode }

// ShowHelp implements CLIError.
func (e *UnknownFlagError) ShowHelp() bool { return true }

// UnknownCommandError reports a command word matching no subcommand.
type UnknownCommandError struct {
	Command    string
	Path       []string
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	msg := fmt.Sprintf("%s %q", ErrUnknownCommand, e.Command)
	if len(e.Path) > 0 {
		msg += fmt.Sprintf(" for %q", strings.Join(e.Path, " "))
	}

	return withSuggestion(msg, e.Suggestion)
}

func (e *UnknownCommandError) Is(target error) bool { return target == ErrUnknownCommand }

// ExitCode implements CLIError.
func (e *UnknownCommandError) ExitCode() int { return DefaultExitCode }

// ShowHelp implements CLIError.
func (e *UnknownCommandError) ShowHelp() bool { return true }

// MissingArgumentError reports an absent required positional argument.
type MissingArgumentError struct {
	Name       string
	Validation *ValidationError
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s: <%s>", ErrMissingArgument, e.Name)
}

func (e *MissingArgumentError) Is(target error) bool { return target == ErrMissingArgument }

func (e *MissingArgumentError) Unwrap() error { return e.Validation }

// ExitCode implements CLIError.
func (e *MissingArgumentError) ExitCode() int { return DefaultExitCode }

// ShowHelp implements CLIError.
func (e *MissingArgumentError) ShowHelp() bool { return true }

// MissingFlagError reports an absent required flag.
type MissingFlagError struct {
	Flag       string
	Validation *ValidationError
}

func (e *MissingFlagError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFlag, dashed(e.Flag))
}

func (e *MissingFlagError) Is(target error) bool { return target == ErrMissingFlag }

func (e *MissingFlagError) Unwrap() error { return e.Validation }

// ExitCode implements CLIError.
func (e *MissingFlagError) ExitCode() int { return DefaultExitCode }

// ShowHelp implements CLIError.
func (e *MissingFlagError) ShowHelp() bool { return true }

// DefinitionError is the panic value of invalid command definitions.
type DefinitionError struct {
	Command string
	Err     error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrDefinition, e.Command, e.Err)
}

func (e *DefinitionError) Is(target error) bool { return target == ErrDefinition }

func (e *DefinitionError) Unwrap() error { return e.Err }

// AsCLIError returns the CLI error in err's chain, if any.
func AsCLIError(err error) (CLIError, bool) {
	var cliErr CLIError
	if errors.As(err, &cliErr) {
		return cliErr, true
	}

	return nil, false
}

func dashed(flag string) string {
	switch len([]rune(flag)) {
	case 0:
		return ""
	case 1:
		return "-" + flag
	default:
		return "--" + flag
	}
}

func withSuggestion(msg, suggestion string) string {
	if suggestion == "" {
		return msg
	}

	return fmt.Sprintf("%s (did you mean %q?)", msg, suggestion)
}
