package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/versecafe/zcli/schema"
)

// Trait is a reusable bundle of input fields and of a context resolver.
type Trait struct {
	Name    string        // Identity for deduplication. Unnamed traits are never deduplicated.
	Inputs  schema.Schema // Fields merged into the commands applying the trait.
	Resolve ResolveFunc   // Optional context contribution.
}

// Applied is one application of a trait to a command. Inherited copies
// of an application share the same pointer.
type Applied struct {
	Trait  Trait
	Global bool // Fields were merged as globals.
}

// AllTraits returns the traits to resolve when running c, in order:
// traits inherited from ancestors first, then those applied to c.
func (c *Config) AllTraits() []*Applied {
	all := make([]*Applied, 0, len(c.InheritedTraits)+len(c.Traits))
	all = append(all, c.InheritedTraits...)

	for _, applied := range c.Traits {
		if !hasTrait(all, applied) {
			all = append(all, applied)
		}
	}

	return all
}

func hasTrait(list []*Applied, target *Applied) bool {
	for _, applied := range list {
		if applied == target {
			return true
		}

		if target.Trait.Name != "" && applied.Trait.Name == target.Trait.Name {
			return true
		}
	}

	return false
}

// ApplyTrait returns a copy of c with the trait applied, or nil if a trait
// with the same name is already applied to c or one of its ancestors.
// Trait fields are merged as globals if global is true, as local inputs
// otherwise. Subcommands of c inherit the trait.
func ApplyTrait(c *Config, trait Trait, global bool) (*Config, error) {
	applied := &Applied{Trait: copyTrait(trait), Global: global}

	if trait.Name != "" && hasTrait(c.AllTraits(), applied) {
		return nil, nil
	}

	dup := c.clone()
	if global {
		dup.Globals = schema.Merge(c.Globals, applied.Trait.Inputs)
	} else {
		dup.Inputs = schema.Merge(c.Inputs, applied.Trait.Inputs)
	}

	dup.Traits = append(dup.Traits, applied)

	if err := schema.CheckPositionals(dup.Schema()); err != nil {
		return nil, err
	}

	return dup.propagateAll()
}

func copyTrait(trait Trait) Trait {
	return Trait{
		Name:    trait.Name,
		Inputs:  schema.Merge(trait.Inputs),
		Resolve: trait.Resolve,
	}
}

// PathError is a definition error located in a command subtree.
type PathError struct {
	Path []string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("command %q: %s", strings.Join(e.Path, " "), e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

func prefixPath(name string, err error) error {
	var pathErr *PathError
	if errors.As(err, &pathErr) {
		return &PathError{Path: append([]string{name}, pathErr.Path...), Err: pathErr.Err}
	}

	return &PathError{Path: []string{name}, Err: err}
}
