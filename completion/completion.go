// Package completion produces completion candidates for a command line.
//
// Two engines are provided: a native one, answering the requests of
// the CLI shell (--get-completions), and carapace bindings over the
// cobra mirror of the command tree, producing shell scripts and
// runtime completions for most shells.
package completion

import (
	"slices"
	"sort"
	"strings"

	"github.com/versecafe/zcli/internal/tokenizer"
	"github.com/versecafe/zcli/internal/tree"
	"github.com/versecafe/zcli/schema"
)

// Request is a completion request.
type Request struct {
	Words   []string // Command line words, without the program name.
	Current string   // Word being completed.
	Index   int      // Index of the word being completed in Words.
}

// NewRequest returns the request completing the word at index.
func NewRequest(words []string, index int) Request {
	req := Request{Words: words, Index: index}

	if index >= 0 && index < len(words) {
		req.Current = words[index]
	}

	return req
}

// Candidate is a completion candidate.
type Candidate struct {
	Value       string
	Description string
}

// Provider produces the completion candidates of a request.
type Provider interface {
	Complete(root *tree.Config, req Request) []Candidate
}

// Func adapts a function to a Provider.
type Func func(root *tree.Config, req Request) []Candidate

// Complete implements Provider.
func (f Func) Complete(root *tree.Config, req Request) []Candidate { return f(root, req) }

// Native completes subcommands, flags, and enumerated flag and
// positional values, from the command tree alone.
type Native struct{}

// Default returns the native completion provider.
func Default() *Native { return &Native{} }

// Complete implements Provider.
func (n *Native) Complete(root *tree.Config, req Request) []Candidate {
	prior := req.Words
	if req.Index >= 0 && req.Index < len(prior) {
		prior = prior[:req.Index]
	}

	node, positionals, pending := scan(root, prior)

	switch {
	case strings.HasPrefix(req.Current, "-"):
		return flags(node, req.Current)
	case pending != nil:
		return choices(pending, req.Current)
	}

	var candidates []Candidate

	if positionals == 0 {
		candidates = append(candidates, commands(node, req.Current)...)
	}

	if field := positional(node, positionals); field != nil {
		candidates = append(candidates, choices(field, req.Current)...)
	}

	return candidates
}

// scan walks the words preceding the completed one. It returns the command
// they lead to, the number of positional words found after it, and the
// flag field expecting a value, if the last word is such a flag.
func scan(root *tree.Config, words []string) (node *tree.Config, positionals int, pending *schema.Field) {
	node = root
	routing := true

	for _, word := range words {
		if pending != nil {
			pending = nil

			continue
		}

		if word == "--" {
			routing = false

			continue
		}

		if tokenizer.IsFlag(word) {
			routing = false
			pending = valueFlag(node, word)

			continue
		}

		if routing {
			if sub := node.Sub(word); sub != nil {
				node = sub

				continue
			}
		}

		routing = false
		positionals++
	}

	return node, positionals, pending
}

// valueFlag returns the field of a flag word if it expects its value in the next word.
func valueFlag(node *tree.Config, word string) *schema.Field {
	if strings.Contains(word, "=") {
		return nil
	}

	name := strings.TrimLeft(word, "-")

	for _, field := range node.Schema().Flags() {
		if field.Info().IsBool() {
			continue
		}

		if field.FlagName() == name || slices.Contains(field.Aliases, name) {
			return field
		}
	}

	return nil
}

// flags returns the visible flags of the node matching prefix.
func flags(node *tree.Config, prefix string) []Candidate {
	var candidates []Candidate

	for _, field := range node.Schema().Flags() {
		if field.Hidden {
			continue
		}

		names := append([]string{field.FlagName()}, field.Aliases...)

		for _, name := range names {
			flag := dashed(name)
			if strings.HasPrefix(flag, prefix) {
				candidates = append(candidates, Candidate{Value: flag, Description: field.Usage()})
			}
		}
	}

	if strings.HasPrefix("--help", prefix) {
		candidates = append(candidates, Candidate{Value: "--help", Description: "Show help"})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Value < candidates[j].Value
	})

	return candidates
}

// commands returns the visible subcommands of the node matching prefix.
func commands(node *tree.Config, prefix string) []Candidate {
	var candidates []Candidate

	for _, sub := range node.Subcommands {
		if sub.Meta.Hidden || !strings.HasPrefix(sub.Name, prefix) {
			continue
		}

		candidates = append(candidates, Candidate{Value: sub.Name, Description: sub.Meta.Description})
	}

	return candidates
}

// positional returns the positional field receiving the word at index.
func positional(node *tree.Config, index int) *schema.Field {
	var last *schema.Field

	for _, field := range node.Schema().Positionals() {
		if field.Index == index {
			return field
		}

		last = field
	}

	if last != nil && last.Info().IsArray() {
		return last
	}

	return nil
}

// choices returns the enumerated values of the field matching prefix.
func choices(field *schema.Field, prefix string) []Candidate {
	info := field.Info()
	if info.IsArray() && info.Elem != nil {
		info = *info.Elem
	}

	var candidates []Candidate

	for _, choice := range info.EnumChoices() {
		if strings.HasPrefix(choice, prefix) {
			candidates = append(candidates, Candidate{Value: choice})
		}
	}

	return candidates
}

func dashed(name string) string {
	if len([]rune(name)) == 1 {
		return "-" + name
	}

	return "--" + name
}
