package opts

import (
	"context"
	"fmt"

	"github.com/versecafe/zcli"
	"github.com/versecafe/zcli/schema"
)

//
// This file contains all subcommands to which are bound
// some flags, and meant to demonstrate their use.
//

// Basic returns a command with some basic flags: short aliases that
// can be stacked (like -cp <path>), lists and environment variables.
func Basic() zcli.Command {
	return zcli.NewCommand("basic").
		Describe("Shows how to use some basic flags (shows option stacking, and lists)").
		Inputs(zcli.Schema{
			"path":  schema.Flag(schema.String().Optional()).Alias("p").Describe("a path used by your command"),
			"files": schema.Flag(schema.Array(schema.String()).Optional()).Alias("f").Describe("A list of files, with repeated flags"),
			"check": schema.Flag(schema.Bool().Default(false)).Alias("c").Describe("a boolean checker, can be used in an option stacking, like -cp <path>"),
			"user":  schema.Flag(schema.String().Optional()).FromEnv("EXAMPLE_USER").Describe("A user name, read from the environment if absent"),
			"args":  schema.Positional(0, schema.Array(schema.String()).Optional()).Describe("Remaining arguments"),
		}).
		Use(verbosity).
		Action(func(_ context.Context, inv *zcli.Invocation) (any, error) {
			out := inv.Stdout

			fmt.Fprintf(out, "Path (string):        %v\n", inv.Inputs.String("path"))
			fmt.Fprintf(out, "Files ([]string):     %v\n", inv.Inputs.Strings("files"))
			fmt.Fprintf(out, "Check (bool):         %v\n", inv.Inputs.Bool("check"))
			fmt.Fprintf(out, "User (string):        %v\n", inv.Inputs.String("user"))
			fmt.Fprintf(out, "Level (context):      %v\n", inv.Context["level"])

			if args := inv.Inputs.Strings("args"); len(args) > 0 {
				fmt.Fprintf(out, "Remaining args: %v\n", args)
			}

			return nil, nil
		})
}

// Defaults returns a command with flags having default values, and others with choices.
func Defaults() zcli.Command {
	return zcli.NewCommand("defaults").
		Describe("Contains flags with default values, and others with validated choices").
		Inputs(zcli.Schema{
			"extensions": schema.Flag(schema.Array(schema.Enum(".json", ".go", ".yaml")).Optional()).Alias("e").Describe("A flag with validated choices"),
			"default":    schema.Flag(schema.String().Default("my-value")).Alias("d").Describe("A flag with a default value, if not specified"),
			"retries":    schema.Flag(schema.Int().Default(3)).Describe("A number with a default value"),
		}).
		Action(func(_ context.Context, inv *zcli.Invocation) (any, error) {
			fmt.Fprintf(inv.Stdout, "Extensions ([]string): %v\n", inv.Inputs.Strings("extensions"))
			fmt.Fprintf(inv.Stdout, "Default (string):      %v\n", inv.Inputs.String("default"))
			fmt.Fprintf(inv.Stdout, "Retries (int):         %v\n", zcli.Number[uint8](inv.Inputs, "retries"))

			return nil, nil
		})
}

// verbosity turns the global verbose flag into a context level.
var verbosity = zcli.Trait{
	Name: "verbosity",
	Resolve: func(_ context.Context, in zcli.Inputs, _ zcli.Values) (zcli.Values, error) {
		if in.Bool("verbose") {
			return zcli.Values{"level": "debug"}, nil
		}

		return zcli.Values{"level": "info"}, nil
	},
}
