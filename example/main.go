package main

import (
	"context"
	"os"

	"github.com/versecafe/zcli"
	"github.com/versecafe/zcli/example/opts"
	"github.com/versecafe/zcli/example/validated"
	"github.com/versecafe/zcli/schema"
)

//
// This file contains the root command, in which we integrate all example subcommands.
//

func main() {
	debug := os.Getenv("EXAMPLE_DEBUG") != ""

	logger, err := zcli.NewConsoleLogger(debug)
	if err != nil {
		panic(err)
	}

	app := zcli.New("example", zcli.WithLogger(logger), zcli.WithStrictFlags()).
		Version("0.1.0").
		Describe("A CLI application showing various ways to declare positionals, flags and commands with schemas.").
		GlobalInputs(zcli.Schema{
			"verbose": schema.Flag(schema.Bool().Default(false)).Alias("v").Describe("Print more details"),
		}).
		Context(func(_ context.Context, parent zcli.Values) (zcli.Values, error) {
			return parent.Merge(zcli.Values{"started": "example"}), nil
		})

	// Flag commands
	app.Command("basic", opts.Basic()).
		Command("defaults", opts.Defaults())

	// Validated commands
	app.Command("valid", validated.Commands())

	// Completion scripts
	app.Command("completion", zcli.NewCommand("completion").
		Describe("Print the completion script of a shell").
		Inputs(zcli.Schema{
			"shell": schema.Positional(0, schema.Enum("bash", "zsh", "fish", "powershell", "elvish", "nushell", "oil", "tcsh", "xonsh")),
		}).
		Action(func(_ context.Context, inv *zcli.Invocation) (any, error) {
			script, err := app.Completion(inv.Inputs.String("shell"))
			if err != nil {
				return nil, zcli.NewUserError("%s", err)
			}

			_, err = inv.Stdout.Write([]byte(script))

			return nil, err
		}))

	app.Main()
}
