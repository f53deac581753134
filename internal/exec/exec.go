// Package exec runs a command tree against a tokenized command line:
// it routes command words to a subcommand, threads the context from the
// root down to it, resolves and validates its inputs, resolves its traits
// and runs its hooks and action, in this order.
package exec

import (
	"context"
	"io"

	"go.uber.org/zap"

	flagerrors "github.com/versecafe/zcli/internal/errors"
	"github.com/versecafe/zcli/internal/resolve"
	"github.com/versecafe/zcli/internal/tokenizer"
	"github.com/versecafe/zcli/internal/tree"
	"github.com/versecafe/zcli/schema"
	"github.com/versecafe/zcli/validation"
)

// HelpFunc renders the help of the command at path (root name first).
type HelpFunc func(root *tree.Config, path []string) string

// Options configures an execution.
type Options struct {
	Env            map[string]string    // Environment snapshot.
	StrictFlags    bool                 // Fail on undeclared flags.
	LaxCommands    bool                 // Unknown command words become positionals.
	Validator      validation.Validator // Validation engine.
	Help           HelpFunc             // Help renderer.
	Stdout, Stderr io.Writer            // Output sinks.
	Logger         *zap.Logger          // Debug logger.
}

// Result is the outcome of a successful execution.
type Result struct {
	Path     []string // Path of the command that ran.
	Value    any      // Result of the action.
	HelpOnly bool     // Help was rendered instead of running an action.
}

// state is the execution state of one invocation.
type state struct {
	opts   Options
	log    *zap.Logger
	root   *tree.Config
	tokens *tokenizer.Args
	path   []string
	ctx    tree.Values
}

// Run executes the command tree root with the tokenized command line.
// CLI errors are returned as-is, as are errors returned by hooks and actions.
// The result is never nil: on errors, it holds the path of the command reached.
func Run(ctx context.Context, root *tree.Config, tokens *tokenizer.Args, opts Options) (*Result, error) {
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}

	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}

	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	st := &state{
		opts:   opts,
		log:    log,
		root:   root,
		tokens: tokens,
		path:   []string{root.Name},
		ctx:    tree.Values{},
	}

	node, words, err := st.route(ctx, root, tokens.Commands)
	if err != nil {
		return &Result{Path: st.path}, err
	}

	return st.run(ctx, node, words)
}

// route follows command words down the tree, running the context provider of
// each traversed command. It returns the matched command and the words left.
func (st *state) route(ctx context.Context, node *tree.Config, words []string) (*tree.Config, []string, error) {
	for len(words) > 0 && len(node.Subcommands) > 0 {
		word := words[0]

		sub := node.Sub(word)
		if sub == nil {
			if st.opts.LaxCommands || word == "" {
				break
			}

			return nil, nil, &flagerrors.UnknownCommandError{
				Command:    word,
				Path:       append([]string{}, st.path...),
				Suggestion: flagerrors.Closest(word, node.SubNames()),
			}
		}

		if err := st.provide(ctx, node); err != nil {
			return nil, nil, err
		}

		st.log.Debug("routing", zap.Strings("path", st.path), zap.String("command", sub.Name))

		st.path = append(st.path, sub.Name)
		node = sub
		words = words[1:]
	}

	return node, words, nil
}

// provide merges the context contributed by the provider of node, if any.
func (st *state) provide(ctx context.Context, node *tree.Config) error {
	if node.Provider == nil {
		return nil
	}

	values, err := node.Provider(ctx, st.ctx)
	if err != nil {
		return err
	}

	st.ctx = st.ctx.Merge(values)

	return nil
}

// run executes the matched command.
func (st *state) run(ctx context.Context, node *tree.Config, words []string) (*Result, error) {
	result := &Result{Path: st.path}

	if st.tokens.Has("help", "h") {
		st.log.Debug("help requested", zap.Strings("path", st.path))
		st.help()

		result.HelpOnly = true

		return result, nil
	}

	if err := st.provide(ctx, node); err != nil {
		return result, err
	}

	inputs, err := st.inputs(node, words)
	if err != nil {
		return result, err
	}

	inv := &tree.Invocation{
		Inputs:      inputs,
		Path:        st.path,
		Passthrough: st.tokens.Passthrough,
		Stdout:      st.opts.Stdout,
		Stderr:      st.opts.Stderr,
	}

	if err := st.resolveTraits(ctx, node, inputs); err != nil {
		return result, err
	}

	inv.Context = st.ctx

	for i, hook := range node.Before {
		st.log.Debug("before hook", zap.Strings("path", st.path), zap.Int("index", i))

		if err := hook(ctx, inv); err != nil {
			return result, err
		}
	}

	if node.Action == nil {
		st.log.Debug("no action, rendering help", zap.Strings("path", st.path))
		st.help()

		result.HelpOnly = true
	} else {
		st.log.Debug("action", zap.Strings("path", st.path))

		value, err := node.Action(ctx, inv)
		if err != nil {
			return result, err
		}

		result.Value = value
	}

	for i, hook := range node.After {
		st.log.Debug("after hook", zap.Strings("path", st.path), zap.Int("index", i))

		if err := hook(ctx, inv, result.Value); err != nil {
			return result, err
		}
	}

	return result, nil
}

// inputs resolves and validates the inputs of node. Command words left over
// after routing are positionals, before the tokenized ones.
func (st *state) inputs(node *tree.Config, words []string) (tree.Inputs, error) {
	fields := node.Schema().Fields()

	positionals := make([]string, 0, len(words)+len(st.tokens.Positionals))
	positionals = append(positionals, words...)
	positionals = append(positionals, st.tokens.Positionals...)

	raw, err := resolve.Inputs(st.tokens, positionals, fields, st.opts.Env, resolve.Options{
		StrictFlags: st.opts.StrictFlags,
	})
	if err != nil {
		return nil, err
	}

	values, issues := st.opts.Validator.Validate(raw, fields)
	if len(issues) > 0 {
		st.log.Debug("validation failed", zap.Strings("path", st.path), zap.Int("issues", len(issues)))

		return nil, validationError(issues, fields)
	}

	return tree.Inputs(values), nil
}

// resolveTraits runs the trait resolvers of node in order, each one
// seeing the context accumulated by the previous ones.
func (st *state) resolveTraits(ctx context.Context, node *tree.Config, inputs tree.Inputs) error {
	for _, applied := range node.AllTraits() {
		if applied.Trait.Resolve == nil {
			continue
		}

		st.log.Debug("trait", zap.Strings("path", st.path), zap.String("trait", applied.Trait.Name))

		values, err := applied.Trait.Resolve(ctx, inputs, st.ctx)
		if err != nil {
			return err
		}

		st.ctx = st.ctx.Merge(values)
	}

	return nil
}

func (st *state) help() {
	if st.opts.Help == nil {
		return
	}

	_, _ = io.WriteString(st.opts.Stdout, st.opts.Help(st.root, st.path[1:]))
}

// validationError builds the CLI error of a set of issues. A single missing
// field is reported as a missing argument or flag.
func validationError(issues []validation.Issue, fields []*schema.Field) error {
	verr := &flagerrors.ValidationError{Issues: issues}

	if len(issues) != 1 || !validation.IsMissing(issues) {
		return verr
	}

	for _, field := range fields {
		if field.Key != issues[0].Path {
			continue
		}

		if field.IsPositional() {
			return &flagerrors.MissingArgumentError{Name: field.Key, Validation: verr}
		}

		return &flagerrors.MissingFlagError{Flag: field.FlagName(), Validation: verr}
	}

	return verr
}
