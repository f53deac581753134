// Package tokenizer splits raw process arguments into command words,
// positional words, flags and passthrough words. It knows nothing about
// the schema of the command being invoked.
package tokenizer

import (
	"regexp"
	"strings"
)

const (
	dash        = "-"
	doubleDash  = "--"
	negPrefix   = "no-"
	valueSep    = "="
	falseString = "false"
)

var negativeNumber = regexp.MustCompile(`^-\d+$`)

// Args is the result of tokenizing one command line.
type Args struct {
	Commands    []string         // Leading bare words, candidates for subcommand names.
	Positionals []string         // Bare words found after the first flag.
	Flags       map[string]Value // Flag values keyed by name, without dashes.
	Order       []string         // Flag keys in the order they were first seen.
	Passthrough []string         // Words found after a lone "--".
}

// Has returns true if any of the given flag keys was found.
func (a *Args) Has(keys ...string) bool {
	for _, key := range keys {
		if _, found := a.Flags[key]; found {
			return true
		}
	}

	return false
}

// opts holds tokenizing options.
type opts struct {
	stopEarly    bool
	allowNegated bool
}

// Option configures the tokenizer.
type Option func(o *opts)

// StopEarly makes every word found after the first positional a positional,
// even if it looks like a flag.
func StopEarly() Option { return func(o *opts) { o.stopEarly = true } }

// AllowNegated sets whether --no-<name> is recorded as <name>="false".
// It is true by default.
func AllowNegated(allow bool) Option { return func(o *opts) { o.allowNegated = allow } }

// Parse tokenizes argv (which must not include the program name).
func Parse(argv []string, options ...Option) *Args {
	opt := &opts{allowNegated: true}
	for _, apply := range options {
		apply(opt)
	}

	args := &Args{
		Commands:    []string{},
		Positionals: []string{},
		Flags:       map[string]Value{},
		Passthrough: []string{},
	}

	passthrough := false
	commands := true

	for i := 0; i < len(argv); i++ {
		word := argv[i]

		if passthrough {
			args.Passthrough = append(args.Passthrough, word)

			continue
		}

		if word == doubleDash {
			passthrough = true

			continue
		}

		if !IsFlag(word) {
			if commands {
				args.Commands = append(args.Commands, word)

				continue
			}

			if opt.stopEarly {
				args.Positionals = append(args.Positionals, argv[i:]...)

				break
			}

			args.Positionals = append(args.Positionals, word)

			continue
		}

		commands = false

		if strings.HasPrefix(word, doubleDash) {
			i += args.longFlag(word[2:], argv, i, opt)

			continue
		}

		i += args.shortFlags(word[1:], argv, i)
	}

	return args
}

// IsFlag returns true if the word would be parsed as a flag.
func IsFlag(word string) bool {
	if !strings.HasPrefix(word, dash) || word == dash || word == doubleDash {
		return false
	}

	return !negativeNumber.MatchString(word)
}

// longFlag records a --name[=value] flag, and returns the number
// of additional words it consumed.
func (a *Args) longFlag(body string, argv []string, index int, opt *opts) int {
	name, value, hasValue := strings.Cut(body, valueSep)

	if opt.allowNegated && strings.HasPrefix(name, negPrefix) {
		a.add(strings.TrimPrefix(name, negPrefix), String(falseString))

		return 0
	}

	if hasValue {
		a.add(name, String(value))

		return 0
	}

	return a.peek(name, argv, index)
}

// shortFlags records a -abc cluster, and returns the number of
// additional words consumed by its last character.
func (a *Args) shortFlags(cluster string, argv []string, index int) int {
	chars := []rune(cluster)

	for _, char := range chars[:len(chars)-1] {
		a.add(string(char), True())
	}

	return a.peek(string(chars[len(chars)-1]), argv, index)
}

// peek uses the next word as the flag value if it can be one.
func (a *Args) peek(name string, argv []string, index int) int {
	if next := index + 1; next < len(argv) && !IsFlag(argv[next]) && argv[next] != doubleDash {
		a.add(name, String(argv[next]))

		return 1
	}

	a.add(name, True())

	return 0
}

// add stores a flag value, collapsing repeated keys into a list.
func (a *Args) add(name string, val Value) {
	current, found := a.Flags[name]
	if !found {
		a.Flags[name] = val
		a.Order = append(a.Order, name)

		return
	}

	if current.kind == kindList {
		a.Flags[name] = List(append(current.List(), val.listItem())...)

		return
	}

	a.Flags[name] = List(current.listItem(), val.listItem())
}
