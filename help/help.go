// Package help renders the help of commands.
//
// The default renderer mirrors the command tree as cobra commands
// and pflag flag sets, and renders the cobra usage of the command:
// its use line, aliases, examples, subcommands and flags.
package help

import (
	"bytes"

	"github.com/versecafe/zcli/internal/tree"
)

// Renderer produces the help text of a command.
type Renderer interface {
	// Render returns the help of the command found at path
	// (subcommand names, without the root name) below root.
	Render(root *tree.Config, path []string) string
}

// Func adapts a function to a Renderer.
type Func func(root *tree.Config, path []string) string

// Render implements Renderer.
func (f Func) Render(root *tree.Config, path []string) string { return f(root, path) }

// Cobra is the default renderer, using cobra help templates.
type Cobra struct {
	// Template replaces the cobra usage template, if not empty.
	Template string
}

// Default returns the default help renderer.
func Default() *Cobra { return &Cobra{} }

// Render implements Renderer.
func (c *Cobra) Render(root *tree.Config, path []string) string {
	cmd := Find(Mirror(root), path)

	if c.Template != "" {
		cmd.SetUsageTemplate(c.Template)
	}

	var buf bytes.Buffer

	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	if err := cmd.Help(); err != nil {
		return cmd.UsageString()
	}

	return buf.String()
}
