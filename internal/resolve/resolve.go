// Package resolve maps tokenized command-line words onto the fields
// of a command schema, falling back to environment variables.
//
// The resolver never reports absent required values: this is left
// to the validation step, which sees all fields at once.
package resolve

import (
	"sort"
	"strconv"
	"strings"

	flagerrors "github.com/versecafe/zcli/internal/errors"
	"github.com/versecafe/zcli/internal/tokenizer"
	"github.com/versecafe/zcli/schema"
)

const negPrefix = "no-"

// Options configures the resolver.
type Options struct {
	// StrictFlags fails on flags not declared by the schema,
	// instead of ignoring them.
	StrictFlags bool
}

// lookup is a flag name registered for a field.
type lookup struct {
	field   *schema.Field
	negated bool
}

// Inputs resolves the raw value of each field, keyed by field key. The positionals
// are the words to assign to positional fields (the tokenized positionals, possibly
// preceded by command words left over after routing). Values are strings, booleans
// or string lists coming from the command line, or values coerced from the environment.
func Inputs(tokens *tokenizer.Args, positionals []string, fields []*schema.Field, env map[string]string, opts Options) (map[string]any, error) {
	raw := map[string]any{}

	var args []*schema.Field
	var flags []*schema.Field

	for _, field := range fields {
		if field.IsPositional() {
			args = append(args, field)
		} else {
			flags = append(flags, field)
		}
	}

	assignPositionals(raw, args, positionals)

	if err := assignFlags(raw, tokens, flags, opts); err != nil {
		return nil, err
	}

	assignEnv(raw, flags, env)

	return raw, nil
}

// assignPositionals assigns words in order to the positional fields, sorted
// by index. A trailing array field takes all remaining words.
func assignPositionals(raw map[string]any, args []*schema.Field, words []string) {
	for i, field := range args {
		if i >= len(words) {
			return
		}

		if i == len(args)-1 && field.Info().IsArray() {
			raw[field.Key] = append([]string{}, words[i:]...)

			return
		}

		raw[field.Key] = words[i]
	}
}

func assignFlags(raw map[string]any, tokens *tokenizer.Args, flags []*schema.Field, opts Options) error {
	names := lookupTable(flags)

	for _, key := range tokens.Order {
		found, isKnown := names[key]
		if !isKnown {
			found, isKnown = names[schema.ToCamel(key)]
		}

		if !isKnown {
			if opts.StrictFlags {
				return &flagerrors.UnknownFlagError{Flag: key, Suggestion: flagerrors.Closest(key, suggestions(names))}
			}

			continue
		}

		raw[found.field.Key] = flagValue(tokens.Flags[key], found)
	}

	return nil
}

// lookupTable registers the primary name, aliases and negated names of all flags.
func lookupTable(flags []*schema.Field) map[string]lookup {
	names := make(map[string]lookup)

	for _, field := range flags {
		name := field.FlagName()
		names[name] = lookup{field: field}

		for _, alias := range field.Aliases {
			names[alias] = lookup{field: field}
		}

		if field.Negatable || field.Info().IsBool() {
			names[negPrefix+name] = lookup{field: field, negated: true}
		}
	}

	return names
}

func flagValue(val tokenizer.Value, found lookup) any {
	if found.negated && found.field.Info().IsBool() {
		return false
	}

	if val.IsString() {
		switch val.Str() {
		case "true":
			return true
		case "false":
			return false
		}
	}

	return val.Any()
}

// assignEnv fills the flags still unset from their environment variables.
func assignEnv(raw map[string]any, flags []*schema.Field, env map[string]string) {
	for _, field := range flags {
		if _, isSet := raw[field.Key]; isSet || field.Env == "" {
			continue
		}

		value, found := env[field.Env]
		if !found {
			continue
		}

		raw[field.Key] = envValue(value, field.Info())
	}
}

// envValue coerces an environment value according to the field kind.
func envValue(value string, info schema.Info) any {
	switch info.Kind {
	case schema.TagBoolean:
		return value == "true" || value == "1" || value == "yes"
	case schema.TagInteger:
		if parsed, err := strconv.ParseInt(value, 10, 0); err == nil {
			return int(parsed)
		}
	case schema.TagNumber:
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	case schema.TagArray:
		return strings.Split(value, ",")
	}

	return value
}

// suggestions returns the non-negated flag names, candidates for a closest match.
func suggestions(names map[string]lookup) []string {
	choices := make([]string, 0, len(names))

	for name, found := range names {
		if !found.negated {
			choices = append(choices, name)
		}
	}

	// Map order is random, sort for deterministic suggestions.
	sort.Strings(choices)

	return choices
}
