package zcli

import (
	"slices"

	flagerrors "github.com/versecafe/zcli/internal/errors"
	"github.com/versecafe/zcli/internal/tree"
	"github.com/versecafe/zcli/schema"
)

// Command builds an immutable command configuration. All its methods
// return a new command, leaving the receiver unchanged and usable.
//
// Methods declaring inputs check positional arguments at once: an invalid
// set of indices (duplicate, gap, or not starting at 0) makes them panic
// with a *DefinitionError naming the conflict.
type Command struct {
	cfg *tree.Config
}

// NewCommand returns a command with the given name, and nothing else.
func NewCommand(name string) Command {
	return Command{cfg: tree.New(name)}
}

// Config returns the configuration built so far.
func (c Command) Config() *tree.Config {
	if c.cfg == nil {
		return tree.New("")
	}

	return c.cfg
}

// Name returns the name of the command.
func (c Command) Name() string { return c.Config().Name }

// Meta sets the description, aliases, examples and visibility of the command.
func (c Command) Meta(meta Meta) Command {
	return Command{cfg: c.Config().WithMeta(meta)}
}

// Describe sets the one line description of the command.
func (c Command) Describe(desc string) Command {
	meta := c.Config().Meta
	meta.Description = desc

	return c.Meta(meta)
}

// Long sets the long description of the command, shown in its help.
func (c Command) Long(text string) Command {
	meta := c.Config().Meta
	meta.Long = text

	return c.Meta(meta)
}

// Alias adds alternative names to the command.
func (c Command) Alias(aliases ...string) Command {
	meta := c.Config().Meta
	meta.Aliases = append(slices.Clone(meta.Aliases), aliases...)

	return c.Meta(meta)
}

// Example adds usage examples to the command help.
func (c Command) Example(examples ...string) Command {
	meta := c.Config().Meta
	meta.Examples = append(slices.Clone(meta.Examples), examples...)

	return c.Meta(meta)
}

// Hide hides the command from help and completions.
func (c Command) Hide() Command {
	meta := c.Config().Meta
	meta.Hidden = true

	return c.Meta(meta)
}

// Inputs adds fields to this command only.
func (c Command) Inputs(fields schema.Schema) Command {
	cfg, err := c.Config().WithInputs(fields)
	if err != nil {
		panic(c.definitionError(err))
	}

	return Command{cfg: cfg}
}

// GlobalInputs adds fields to this command and all its subcommands,
// including those attached before.
func (c Command) GlobalInputs(fields schema.Schema) Command {
	cfg, err := c.Config().WithGlobals(fields)
	if err != nil {
		panic(c.definitionError(err))
	}

	return Command{cfg: cfg}
}

// Context sets the provider of the context values given to this
// command and its subcommands. It receives the context of the parent.
func (c Command) Context(provider ProviderFunc) Command {
	return Command{cfg: c.Config().WithProvider(provider)}
}

// Before adds a hook run before the action, after all traits are resolved.
// Hooks run in the order they are added.
func (c Command) Before(hook HookFunc) Command {
	return Command{cfg: c.Config().WithBefore(hook)}
}

// After adds a hook run after the action, with its result.
// Hooks run in the order they are added.
func (c Command) After(hook AfterFunc) Command {
	return Command{cfg: c.Config().WithAfter(hook)}
}

// Action sets the handler of the command. A command without
// action prints its help when invoked.
func (c Command) Action(action ActionFunc) Command {
	return Command{cfg: c.Config().WithAction(action)}
}

// Use applies traits to the command, in order: their fields are added to
// the command inputs, and their resolvers run before the hooks of the
// command and of its subcommands. A named trait already applied to the
// command or to one of its ancestors is ignored.
func (c Command) Use(traits ...Trait) Command {
	return c.use(traits, false)
}

func (c Command) use(traits []Trait, global bool) Command {
	cfg := c.Config()

	for _, trait := range traits {
		applied, err := tree.ApplyTrait(cfg, trait, global)
		if err != nil {
			panic(c.definitionError(err))
		}

		if applied != nil {
			cfg = applied
		}
	}

	return Command{cfg: cfg}
}

// Command attaches sub as a subcommand with the given name, replacing any
// subcommand with the same name. The subcommand and its own subcommands
// inherit the global inputs and traits of this command.
func (c Command) Command(name string, sub Command) Command {
	subcfg := sub.Config()
	if name != "" && name != subcfg.Name {
		subcfg = subcfg.WithName(name)
	}

	cfg, err := c.Config().WithSubcommand(subcfg)
	if err != nil {
		panic(c.definitionError(err))
	}

	return Command{cfg: cfg}
}

func (c Command) definitionError(err error) *flagerrors.DefinitionError {
	return &flagerrors.DefinitionError{Command: c.Name(), Err: err}
}
