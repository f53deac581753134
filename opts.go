package zcli

import (
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/versecafe/zcli/completion"
	"github.com/versecafe/zcli/help"
	"github.com/versecafe/zcli/internal/tokenizer"
	"github.com/versecafe/zcli/validation"
)

// === Configuration (Functional Options) ===

// Option is a functional option for configuring a CLI.
type Option func(o *options)

// options holds the collaborators and settings of a CLI.
type options struct {
	env         map[string]string
	stdout      io.Writer
	stderr      io.Writer
	logger      *zap.Logger
	validator   validation.Validator
	help        help.Renderer
	completer   completion.Provider
	strictFlags bool
	laxCommands bool
	stopEarly   bool
	noNegation  bool
}

func defaultOptions() *options {
	return &options{
		logger:    zap.NewNop(),
		validator: validation.New(),
		help:      help.Default(),
		completer: completion.Default(),
	}
}

// WithEnv sets the environment variables read by the CLI, instead of
// those of the process.
func WithEnv(env map[string]string) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithOutput sets the writers for the output and the errors of the CLI.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// WithLogger sets the logger for the debug logs of each run.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithValidator replaces the validation engine.
func WithValidator(v validation.Validator) Option {
	return func(o *options) {
		if v != nil {
			o.validator = v
		}
	}
}

// WithValidation uses the given go-playground/validator object for
// the validation rules of the default engine, so that custom rules
// can be registered on it.
func WithValidation(v *validator.Validate) Option {
	return func(o *options) {
		o.validator = validation.NewWith(v)
	}
}

// WithHelp replaces the help renderer.
func WithHelp(renderer help.Renderer) Option {
	return func(o *options) {
		if renderer != nil {
			o.help = renderer
		}
	}
}

// WithCompleter replaces the completion provider.
func WithCompleter(provider completion.Provider) Option {
	return func(o *options) {
		if provider != nil {
			o.completer = provider
		}
	}
}

// WithStrictFlags makes flags not declared by the invoked command an error.
// They are ignored by default.
func WithStrictFlags() Option {
	return func(o *options) {
		o.strictFlags = true
	}
}

// WithStrictCommands sets whether words not naming a subcommand are an error,
// when the command has subcommands. It is true by default: when false, these
// words are positional arguments of the command.
func WithStrictCommands(strict bool) Option {
	return func(o *options) {
		o.laxCommands = !strict
	}
}

// WithStopEarly makes all words found after the first positional
// argument positional arguments, even if they look like flags.
func WithStopEarly() Option {
	return func(o *options) {
		o.stopEarly = true
	}
}

// WithNegation sets whether --no-<flag> sets <flag> to false.
// It is true by default.
func WithNegation(allow bool) Option {
	return func(o *options) {
		o.noNegation = !allow
	}
}

// tokenizerOptions returns the options of the command line tokenizer.
func (o *options) tokenizerOptions() []tokenizer.Option {
	opts := []tokenizer.Option{tokenizer.AllowNegated(!o.noNegation)}

	if o.stopEarly {
		opts = append(opts, tokenizer.StopEarly())
	}

	return opts
}

// environ returns the environment snapshot of one run.
func (o *options) environ() map[string]string {
	if o.env != nil {
		return o.env
	}

	env := make(map[string]string)

	for _, variable := range os.Environ() {
		if key, value, found := strings.Cut(variable, "="); found {
			env[key] = value
		}
	}

	return env
}

// outputs returns the output writers of one run.
func (o *options) outputs() (stdout, stderr io.Writer) {
	stdout, stderr = o.stdout, o.stderr

	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return stdout, stderr
}
