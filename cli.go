package zcli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/versecafe/zcli/completion"
	flagerrors "github.com/versecafe/zcli/internal/errors"
	"github.com/versecafe/zcli/internal/exec"
	"github.com/versecafe/zcli/internal/tokenizer"
)

const (
	completionFlag    = "--get-completions"
	passthroughMarker = "--"
	carapaceCommand   = "_carapace"
	versionFlag       = "version"
	versionShortFlag  = "V"
	errorPrefix       = "error:"
	exitSuccess       = 0
	exitInternalError = 1
)

// ErrorEvent is given to the error handler of a CLI.
type ErrorEvent struct {
	Err     CLIError // Error of the run.
	Command []string // Path of the command reached, root name first.
}

// ErrorHandler handles the CLI errors of a run. When it returns true,
// the error is considered handled: it is not reported, and the run
// exits with code 0.
type ErrorHandler func(ctx context.Context, event ErrorEvent) bool

// CLI is the entry point of a command-line application: a root command,
// with a version, an error handler and the collaborators used to run it.
//
// Unlike commands, a CLI is configured in place: its methods return the
// CLI itself for chaining. It must not be configured while running.
type CLI struct {
	root    Command
	version string
	onError ErrorHandler
	opts    *options
}

// New returns a CLI whose root command has the given name.
func New(name string, opts ...Option) *CLI {
	cli := &CLI{
		root: NewCommand(name),
		opts: defaultOptions(),
	}

	for _, apply := range opts {
		apply(cli.opts)
	}

	return cli
}

// Root returns the root command.
func (c *CLI) Root() Command { return c.root }

// Version sets the version printed by --version and -V.
func (c *CLI) Version(version string) *CLI {
	c.version = version

	return c
}

// OnError sets the handler of the CLI errors of each run.
func (c *CLI) OnError(handler ErrorHandler) *CLI {
	c.onError = handler

	return c
}

// Describe sets the one line description of the root command.
func (c *CLI) Describe(desc string) *CLI {
	c.root = c.root.Describe(desc)

	return c
}

// Meta sets the description, examples and visibility of the root command.
func (c *CLI) Meta(meta Meta) *CLI {
	c.root = c.root.Meta(meta)

	return c
}

// Inputs adds fields to the root command only.
func (c *CLI) Inputs(fields Schema) *CLI {
	c.root = c.root.Inputs(fields)

	return c
}

// GlobalInputs adds fields to all commands.
func (c *CLI) GlobalInputs(fields Schema) *CLI {
	c.root = c.root.GlobalInputs(fields)

	return c
}

// Context sets the provider of the root context.
func (c *CLI) Context(provider ProviderFunc) *CLI {
	c.root = c.root.Context(provider)

	return c
}

// Before adds a hook run before the action of the root command.
func (c *CLI) Before(hook HookFunc) *CLI {
	c.root = c.root.Before(hook)

	return c
}

// After adds a hook run after the action of the root command.
func (c *CLI) After(hook AfterFunc) *CLI {
	c.root = c.root.After(hook)

	return c
}

// Action sets the handler of the root command.
func (c *CLI) Action(action ActionFunc) *CLI {
	c.root = c.root.Action(action)

	return c
}

// Use applies traits to all commands: their fields are global inputs.
func (c *CLI) Use(traits ...Trait) *CLI {
	c.root = c.root.use(traits, true)

	return c
}

// Command attaches a subcommand to the root command.
func (c *CLI) Command(name string, sub Command) *CLI {
	c.root = c.root.Command(name, sub)

	return c
}

// Completion returns the carapace completion script of the CLI
// for the given shell (bash, zsh, fish, powershell...).
func (c *CLI) Completion(shell string) (string, error) {
	//nolint:wrapcheck
	return completion.Snippet(c.root.Config(), shell)
}

// Run runs the CLI with the given arguments (without the program name),
// and returns the exit code of the run.
//
// CLI errors are given to the error handler, or reported with the command
// help if they ask for it, and Run returns their exit code with a nil error.
// Other errors, returned by hooks or actions, are returned unchanged.
func (c *CLI) Run(ctx context.Context, argv []string) (int, error) {
	stdout, stderr := c.opts.outputs()
	cfg := c.root.Config()

	log := c.opts.logger.With(
		zap.String("invocation", uuid.NewString()),
		zap.String("cli", cfg.Name),
	)

	log.Debug("run", zap.Strings("argv", argv))

	if len(argv) > 0 && argv[0] == carapaceCommand {
		return c.runCarapace(ctx, argv, stdout, stderr)
	}

	tokens := tokenizer.Parse(argv, c.opts.tokenizerOptions()...)

	if c.version != "" && tokens.Has(versionFlag, versionShortFlag) {
		fmt.Fprintf(stdout, "%s %s\n", cfg.Name, c.version)

		return exitSuccess, nil
	}

	if words, index, found := completionRequest(argv); found {
		log.Debug("completion request", zap.Int("index", index))
		c.complete(stdout, words, index)

		return exitSuccess, nil
	}

	res, err := exec.Run(ctx, cfg, tokens, exec.Options{
		Env:         c.opts.environ(),
		StrictFlags: c.opts.strictFlags,
		LaxCommands: c.opts.laxCommands,
		Validator:   c.opts.validator,
		Help:        c.opts.help.Render,
		Stdout:      stdout,
		Stderr:      stderr,
		Logger:      log,
	})
	if err == nil {
		log.Debug("done", zap.Strings("command", res.Path))

		return exitSuccess, nil
	}

	cliErr, ok := flagerrors.AsCLIError(err)
	if !ok {
		log.Debug("error", zap.Error(err))

		return exitInternalError, err
	}

	if c.onError != nil && c.onError(ctx, ErrorEvent{Err: cliErr, Command: res.Path}) {
		log.Debug("error handled", zap.Error(err))

		return exitSuccess, nil
	}

	log.Debug("error reported", zap.Error(err), zap.Int("code", cliErr.ExitCode()))
	c.report(stderr, cliErr, res.Path)

	return cliErr.ExitCode(), nil
}

// Main runs the CLI with the process arguments, and exits.
func (c *CLI) Main() {
	code, err := c.Run(context.Background(), os.Args[1:])
	if err != nil {
		_, stderr := c.opts.outputs()
		fmt.Fprintln(stderr, err)
	}

	os.Exit(code)
}

// report writes the error, and the help of the command if the error asks for it.
func (c *CLI) report(stderr io.Writer, err CLIError, path []string) {
	prefix := color.New(color.FgRed, color.Bold)
	if isTerminal(stderr) {
		prefix.EnableColor()
	} else {
		prefix.DisableColor()
	}

	fmt.Fprintf(stderr, "%s %s\n", prefix.Sprint(errorPrefix), err.Error())

	if !err.ShowHelp() {
		return
	}

	var sub []string
	if len(path) > 1 {
		sub = path[1:]
	}

	fmt.Fprintln(stderr)
	fmt.Fprint(stderr, c.opts.help.Render(c.root.Config(), sub))
}

// complete writes the completion candidates, one per line.
func (c *CLI) complete(stdout io.Writer, words []string, index int) {
	req := completion.NewRequest(words, index)

	for _, candidate := range c.opts.completer.Complete(c.root.Config(), req) {
		if candidate.Description == "" {
			fmt.Fprintln(stdout, candidate.Value)
		} else {
			fmt.Fprintf(stdout, "%s\t%s\n", candidate.Value, candidate.Description)
		}
	}
}

// runCarapace runs the carapace completion engine on the mirror of the command tree.
func (c *CLI) runCarapace(ctx context.Context, argv []string, stdout, stderr io.Writer) (int, error) {
	cmd := completion.Carapace(c.root.Config())
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		//nolint:wrapcheck
		return exitInternalError, err
	}

	return exitSuccess, nil
}

// completionRequest finds a --get-completions <index> <words...> request in argv.
// An invalid or absent index completes a new word after the last one.
// Words after a lone "--" are never a request.
func completionRequest(argv []string) (words []string, index int, found bool) {
	for i, word := range argv {
		if word == passthroughMarker {
			break
		}

		if word != completionFlag {
			continue
		}

		rest := argv[i+1:]
		if len(rest) == 0 {
			return nil, 0, true
		}

		words = rest[1:]

		parsed, err := strconv.Atoi(rest[0])
		if err != nil || parsed < 0 || parsed > len(words) {
			parsed = len(words)
		}

		return words, parsed, true
	}

	return nil, 0, false
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)

	return ok && (isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()))
}
