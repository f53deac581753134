package validated

import (
	"context"
	"fmt"

	"github.com/versecafe/zcli"
	"github.com/versecafe/zcli/schema"
)

// Commands returns a group of commands whose inputs are
// checked with go-playground/validator rules.
func Commands() zcli.Command {
	return zcli.NewCommand("valid").
		Describe("Commands with validated inputs").
		Command("positionals", args()).
		Command("flags", flags())
}

// args is a command whose positionals are being validated.
func args() zcli.Command {
	return zcli.NewCommand("positionals").
		Describe("Positional arguments validated with rules").
		Inputs(zcli.Schema{
			"ip":     schema.Positional(0, schema.String().Rules("ipv4")).Describe("An IPv4 address"),
			"emails": schema.Positional(1, schema.Array(schema.String()).Rules("min=1,max=2,dive,email")).Describe("A list of email addresses"),
		}).
		Action(func(_ context.Context, inv *zcli.Invocation) (any, error) {
			fmt.Fprintf(inv.Stdout, "IP (string):         %v\n", inv.Inputs.String("ip"))
			fmt.Fprintf(inv.Stdout, "Emails ([]string):   %v\n", inv.Inputs.Strings("emails"))

			return nil, nil
		})
}

// flags is a command whose flags' arguments are being validated.
func flags() zcli.Command {
	return zcli.NewCommand("flags").
		Describe("Flags validated with rules").
		Inputs(zcli.Schema{
			"path":  schema.Flag(schema.String().Rules("file")).Alias("p").Describe("A valid path on your system"),
			"dir":   schema.Flag(schema.String().Rules("dir").Default("/tmp")).Alias("d").Describe("A validated directory on your system, with a default value"),
			"ratio": schema.Flag(schema.Number().Rules("gte=0,lte=1").Optional()).Describe("A number between 0 and 1"),
		}).
		Action(func(_ context.Context, inv *zcli.Invocation) (any, error) {
			fmt.Fprintf(inv.Stdout, "Path (string):        %v\n", inv.Inputs.String("path"))
			fmt.Fprintf(inv.Stdout, "Dir (string):         %v\n", inv.Inputs.String("dir"))
			fmt.Fprintf(inv.Stdout, "Ratio (float64):      %v\n", inv.Inputs.Float("ratio"))

			return nil, nil
		})
}
