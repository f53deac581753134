package completion

import (
	comp "github.com/rsteube/carapace"
	"github.com/spf13/cobra"

	"github.com/versecafe/zcli/help"
	"github.com/versecafe/zcli/internal/tree"
	"github.com/versecafe/zcli/schema"
)

// Carapace returns the cobra mirror of root, with carapace completions
// registered on all its commands: enumerated flag values and positional
// arguments. Executing the mirror with the carapace hidden command
// ("_carapace <shell> ...") produces shell scripts and completions.
func Carapace(root *tree.Config) *cobra.Command {
	cmd := help.Mirror(root)

	bind(root, cmd)

	return cmd
}

// Snippet returns the completion script of root for the given shell.
func Snippet(root *tree.Config, shell string) (string, error) {
	//nolint:wrapcheck
	return comp.Gen(Carapace(root)).Snippet(shell)
}

// bind registers the completions of cfg onto its mirror command,
// and recursively onto the subcommands.
func bind(cfg *tree.Config, cmd *cobra.Command) {
	comps := comp.Gen(cmd)

	if flagComps := flagCompletions(cfg, cmd); len(flagComps) > 0 {
		comps.FlagCompletion(flagComps)
	}

	positionals, rest := positionalCompletions(cfg)
	if len(positionals) > 0 {
		comps.PositionalCompletion(positionals...)
	}

	if rest != nil {
		comps.PositionalAnyCompletion(*rest)
	}

	for _, sub := range cfg.Subcommands {
		if subc := help.Find(cmd, []string{sub.Name}); subc != cmd {
			bind(sub, subc)
		}
	}
}

// flagCompletions returns the completions of the enumerated flags declared
// by the command itself. Inherited flags are completed by their ancestor.
func flagCompletions(cfg *tree.Config, cmd *cobra.Command) comp.ActionMap {
	actions := comp.ActionMap{}
	local := cmd.LocalFlags()

	for _, field := range cfg.Schema().Flags() {
		if local.Lookup(field.FlagName()) == nil {
			continue
		}

		if action, found := valuesAction(field); found {
			actions[field.FlagName()] = action
		}
	}

	return actions
}

// positionalCompletions returns the completions of the positionals,
// and the completion of the trailing array positional, if any.
func positionalCompletions(cfg *tree.Config) ([]comp.Action, *comp.Action) {
	fields := cfg.Schema().Positionals()
	actions := make([]comp.Action, 0, len(fields))

	for _, field := range fields {
		action, found := valuesAction(field)
		if !found {
			action = comp.ActionValues()
		}

		if field.Info().IsArray() {
			return actions, &action
		}

		actions = append(actions, action)
	}

	return actions, nil
}

// valuesAction returns an action completing the choices of an enumerated field.
func valuesAction(field *schema.Field) (comp.Action, bool) {
	info := field.Info()
	if info.IsArray() && info.Elem != nil {
		info = *info.Elem
	}

	choices := info.EnumChoices()
	if len(choices) == 0 {
		return comp.Action{}, false
	}

	callback := func(_ comp.Context) comp.Action {
		return comp.ActionValues(choices...)
	}

	return comp.ActionCallback(callback), true
}
