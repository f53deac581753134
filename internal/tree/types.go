package tree

import (
	"context"
	"io"
	"maps"
)

// Values is the execution context threaded from the root command down to
// the action. It is never modified in place: merging always yields a new map.
type Values map[string]any

// Merge returns a new map with the values of v, overridden by those of other.
func (v Values) Merge(other Values) Values {
	merged := make(Values, len(v)+len(other))
	maps.Copy(merged, v)
	maps.Copy(merged, other)

	return merged
}

// Invocation is everything a hook or an action receives about the
// command being run.
type Invocation struct {
	Inputs      Inputs    // Validated input values.
	Context     Values    // Context accumulated by providers and traits.
	Path        []string  // Command path, root name first.
	Passthrough []string  // Words found after a lone "--".
	Stdout      io.Writer // Output sink of the invocation.
	Stderr      io.Writer // Error sink of the invocation.
}

// ActionFunc is the handler of a command. Its result is given to after hooks.
type ActionFunc func(ctx context.Context, inv *Invocation) (any, error)

// HookFunc runs before the action of a command.
type HookFunc func(ctx context.Context, inv *Invocation) error

// AfterFunc runs after the action of a command, with its result.
type AfterFunc func(ctx context.Context, inv *Invocation, result any) error

// ProviderFunc contributes context values to a command and its subcommands.
// It receives the context of the parent command.
type ProviderFunc func(ctx context.Context, parent Values) (Values, error)

// ResolveFunc is a trait resolver: it receives the validated inputs and the
// context accumulated so far, and returns values merged over the latter.
type ResolveFunc func(ctx context.Context, inputs Inputs, current Values) (Values, error)
