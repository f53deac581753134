package help

import (
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cobra"

	"github.com/versecafe/zcli/internal/tree"
	"github.com/versecafe/zcli/schema"
)

// Mirror builds a cobra command tree with the same commands, aliases,
// descriptions and flags as root. The mirror is used for rendering usage
// and as a host for completion engines built on cobra. Its commands do
// nothing when run.
func Mirror(root *tree.Config) *cobra.Command {
	cmd := newCommand(root)
	cmd.TraverseChildren = true

	bindTree(root, cmd, map[string]bool{})
	initHelpFlags(cmd)

	return cmd
}

// Find returns the mirror command at the given path of subcommand
// names below cmd, or the deepest one found.
func Find(cmd *cobra.Command, path []string) *cobra.Command {
	for _, word := range path {
		sub := subcommand(cmd, word)
		if sub == nil {
			return cmd
		}

		cmd = sub
	}

	return cmd
}

func subcommand(cmd *cobra.Command, word string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == word || sub.HasAlias(word) {
			return sub
		}
	}

	return nil
}

// newCommand builds a command template based on the command metadata and positionals.
func newCommand(cfg *tree.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:         useLine(cfg),
		Short:       cfg.Meta.Description,
		Long:        cfg.Meta.Long,
		Aliases:     cfg.Meta.Aliases,
		Hidden:      cfg.Meta.Hidden,
		Example:     strings.Join(cfg.Meta.Examples, "\n"),
		Annotations: map[string]string{},

		// Commands are runnable so that cobra lists and renders them.
		Run: func(*cobra.Command, []string) {},
	}

	return cmd
}

// bindTree generates the flags of cfg onto cmd, and recursively
// attaches mirrors of all subcommands. Taken holds the shorthands
// of the persistent flags of the ancestors.
func bindTree(cfg *tree.Config, cmd *cobra.Command, taken map[string]bool) {
	persistent, local := ownFlags(cfg)

	generateTo(persistent, cmd.PersistentFlags(), taken)
	generateTo(local, cmd.Flags(), maps.Clone(taken))

	for _, sub := range cfg.Subcommands {
		subc := newCommand(sub)
		bindTree(sub, subc, maps.Clone(taken))
		cmd.AddCommand(subc)
	}
}

// initHelpFlags adds the help flag to all commands, once their
// persistent flags are known.
func initHelpFlags(cmd *cobra.Command) {
	cmd.InitDefaultHelpFlag()

	for _, sub := range cmd.Commands() {
		initHelpFlags(sub)
	}
}

// ownFlags returns the flags declared by cfg itself, leaving out those
// inherited from its ancestors: the ones passed down to subcommands
// are persistent, the others are local.
func ownFlags(cfg *tree.Config) (persistent, local []*schema.Field) {
	inherited := cfg.Inherited
	passed := cfg.GlobalSchema()

	for _, field := range cfg.Schema().Flags() {
		if inherited[field.Key] == field {
			continue
		}

		if passed[field.Key] == field {
			persistent = append(persistent, field)
		} else {
			local = append(local, field)
		}
	}

	return persistent, local
}

// useLine returns the command name followed by its positional arguments.
func useLine(cfg *tree.Config) string {
	words := []string{cfg.Name}

	for _, field := range cfg.Schema().Positionals() {
		words = append(words, argName(field))
	}

	return strings.Join(words, " ")
}

// argName returns the usage name of a positional argument:
// <name> when required, [name] when not, with ... for lists.
func argName(field *schema.Field) string {
	info := field.Info()

	name := schema.ToKebab(field.Key)
	if info.IsArray() {
		name += "..."
	}

	if info.Optional || info.HasDefault {
		return fmt.Sprintf("[%s]", name)
	}

	return fmt.Sprintf("<%s>", name)
}
