// Package zcli builds command-line interfaces from declarative schemas.
//
// A command declares its positional arguments and flags as a schema of
// typed fields (see the schema subpackage). When run, the command line is
// tokenized, each field is resolved from the command line, from its
// environment variable or from its default, and the values are coerced and
// validated before being given to the command action, along with a context
// built by providers and traits from the root command down to it.
//
// Commands are immutable: every builder method returns a new command, and
// partially built commands can be shared and attached to several parents:
//
//	deploy := zcli.NewCommand("deploy").
//		Describe("Deploy the application").
//		Inputs(schema.Schema{
//			"target": schema.Positional(0, schema.Enum("staging", "production")),
//			"force":  schema.Flag(schema.Bool().Default(false)).Alias("f"),
//		}).
//		Action(func(ctx context.Context, inv *zcli.Invocation) (any, error) {
//			return nil, nil
//		})
//
//	app := zcli.New("app").Version("1.0.0").Command("deploy", deploy)
//	app.Main()
//
// The command tree is also mirrored as cobra commands for rendering help
// and binding carapace shell completions.
package zcli

import (
	"github.com/versecafe/zcli/internal/tree"
	"github.com/versecafe/zcli/schema"
)

// === Core Types ===

// Schema maps input keys to their fields.
type Schema = schema.Schema

// Inputs are the validated values of a command's fields.
type Inputs = tree.Inputs

// Values is the execution context threaded from the root command down to the action.
type Values = tree.Values

// Invocation is everything a hook or an action receives about the command being run.
type Invocation = tree.Invocation

// Meta is the descriptive part of a command.
type Meta = tree.Meta

// Config is the immutable configuration of a command tree node.
type Config = tree.Config

// Trait is a reusable bundle of input fields and of a context resolver.
// Traits with a name are applied at most once along a command path.
type Trait = tree.Trait

// === Functions ===

// ActionFunc is the handler of a command. Its result is given to after hooks.
type ActionFunc = tree.ActionFunc

// HookFunc runs before the action of a command.
type HookFunc = tree.HookFunc

// AfterFunc runs after the action of a command, with its result.
type AfterFunc = tree.AfterFunc

// ProviderFunc contributes context values to a command and its subcommands.
type ProviderFunc = tree.ProviderFunc

// ResolveFunc is the context resolver of a trait.
type ResolveFunc = tree.ResolveFunc
