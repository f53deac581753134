// Package tree holds the immutable configuration of a command tree.
//
// Every function changing a configuration returns a new one, sharing
// the unchanged parts with the original, which stays valid. Partially
// built trees can thus be attached to several parents safely.
package tree

import (
	"slices"

	"github.com/versecafe/zcli/schema"
)

// Meta is the descriptive part of a command.
type Meta struct {
	Description string   // One line description.
	Long        string   // Long description, shown in the command help.
	Hidden      bool     // Hidden from help and completions.
	Examples    []string // Usage examples.
	Aliases     []string // Alternative names the command can be invoked with.
}

// Config is one node of the command tree.
type Config struct {
	Name string
	Meta Meta

	Inputs    schema.Schema // Fields of this command only.
	Globals   schema.Schema // Fields of this command and all its subcommands.
	Inherited schema.Schema // Fields inherited from ancestors.

	Provider ProviderFunc
	Before   []HookFunc
	Action   ActionFunc
	After    []AfterFunc

	Traits          []*Applied // Traits applied to this command.
	InheritedTraits []*Applied // Traits applied to ancestors.

	Subcommands []*Config
}

// New returns an empty command configuration.
func New(name string) *Config {
	return &Config{
		Name:      name,
		Inputs:    schema.Schema{},
		Globals:   schema.Schema{},
		Inherited: schema.Schema{},
	}
}

// clone returns a copy of the node whose slices can be appended to
// without affecting the original. Schemas are never modified in place.
func (c *Config) clone() *Config {
	dup := *c
	dup.Meta.Examples = slices.Clone(c.Meta.Examples)
	dup.Meta.Aliases = slices.Clone(c.Meta.Aliases)
	dup.Before = slices.Clone(c.Before)
	dup.After = slices.Clone(c.After)
	dup.Traits = slices.Clone(c.Traits)
	dup.InheritedTraits = slices.Clone(c.InheritedTraits)
	dup.Subcommands = slices.Clone(c.Subcommands)

	return &dup
}

// Schema returns all the fields resolved when running this command:
// inherited fields, overridden by global ones, overridden by local ones.
func (c *Config) Schema() schema.Schema {
	return schema.Merge(c.Inherited, c.Globals, c.Inputs)
}

// GlobalSchema returns the fields this command passes down to its subcommands.
func (c *Config) GlobalSchema() schema.Schema {
	local := make([]schema.Schema, 0, len(c.Traits))

	for _, applied := range c.Traits {
		if !applied.Global {
			local = append(local, applied.Trait.Inputs)
		}
	}

	return schema.Merge(append([]schema.Schema{c.Inherited, c.Globals}, local...)...)
}

// Sub returns the subcommand with the given name or alias, or nil.
func (c *Config) Sub(word string) *Config {
	for _, sub := range c.Subcommands {
		if sub.Name == word || slices.Contains(sub.Meta.Aliases, word) {
			return sub
		}
	}

	return nil
}

// SubNames returns the names of the visible subcommands.
func (c *Config) SubNames() []string {
	names := make([]string, 0, len(c.Subcommands))

	for _, sub := range c.Subcommands {
		if !sub.Meta.Hidden {
			names = append(names, sub.Name)
		}
	}

	return names
}

// Find returns the node at the given path of subcommand names below c,
// and whether the whole path matched.
func (c *Config) Find(path []string) (*Config, bool) {
	node := c

	for _, word := range path {
		sub := node.Sub(word)
		if sub == nil {
			return node, false
		}

		node = sub
	}

	return node, true
}

// WithName returns a copy of c with another name.
func (c *Config) WithName(name string) *Config {
	dup := c.clone()
	dup.Name = name

	return dup
}

// WithMeta returns a copy of c with the given metadata.
func (c *Config) WithMeta(meta Meta) *Config {
	dup := c.clone()
	dup.Meta = meta
	dup.Meta.Examples = slices.Clone(meta.Examples)
	dup.Meta.Aliases = slices.Clone(meta.Aliases)

	return dup
}

// WithInputs returns a copy of c with additional local fields.
func (c *Config) WithInputs(fields schema.Schema) (*Config, error) {
	dup := c.clone()
	dup.Inputs = schema.Merge(c.Inputs, fields)

	if err := schema.CheckPositionals(dup.Schema()); err != nil {
		return nil, err
	}

	return dup, nil
}

// WithGlobals returns a copy of c with additional global fields,
// propagated to all existing subcommands.
func (c *Config) WithGlobals(fields schema.Schema) (*Config, error) {
	dup := c.clone()
	dup.Globals = schema.Merge(c.Globals, fields)

	if err := schema.CheckPositionals(dup.Schema()); err != nil {
		return nil, err
	}

	return dup.propagateAll()
}

// WithProvider returns a copy of c using the given context provider.
func (c *Config) WithProvider(provider ProviderFunc) *Config {
	dup := c.clone()
	dup.Provider = provider

	return dup
}

// WithBefore returns a copy of c with an additional before hook.
func (c *Config) WithBefore(hook HookFunc) *Config {
	dup := c.clone()
	dup.Before = append(dup.Before, hook)

	return dup
}

// WithAfter returns a copy of c with an additional after hook.
func (c *Config) WithAfter(hook AfterFunc) *Config {
	dup := c.clone()
	dup.After = append(dup.After, hook)

	return dup
}

// WithAction returns a copy of c with the given action.
func (c *Config) WithAction(action ActionFunc) *Config {
	dup := c.clone()
	dup.Action = action

	return dup
}

// WithSubcommand returns a copy of c with sub attached (replacing any
// subcommand of the same name). The globals and traits of c are propagated
// through the whole subtree of sub.
func (c *Config) WithSubcommand(sub *Config) (*Config, error) {
	mounted, err := sub.inherit(c)
	if err != nil {
		return nil, err
	}

	dup := c.clone()

	for i, existing := range dup.Subcommands {
		if existing.Name == sub.Name {
			dup.Subcommands[i] = mounted

			return dup, nil
		}
	}

	dup.Subcommands = append(dup.Subcommands, mounted)

	return dup, nil
}

// inherit returns a copy of c whose inherited fields and traits
// are those of parent, propagated to the whole subtree of c.
func (c *Config) inherit(parent *Config) (*Config, error) {
	dup := c.clone()
	dup.Inherited = parent.GlobalSchema()
	dup.InheritedTraits = parent.AllTraits()

	if err := schema.CheckPositionals(dup.Schema()); err != nil {
		return nil, &PathError{Path: []string{c.Name}, Err: err}
	}

	return dup.propagateAll()
}

// propagateAll re-attaches all subcommands, so that they inherit
// the current globals and traits of c.
func (c *Config) propagateAll() (*Config, error) {
	for i, sub := range c.Subcommands {
		mounted, err := sub.inherit(c)
		if err != nil {
			return nil, prefixPath(c.Name, err)
		}

		c.Subcommands[i] = mounted
	}

	return c, nil
}
