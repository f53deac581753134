package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrPositionals indicates an invalid set of positional indices.
var ErrPositionals = errors.New("invalid positional arguments")

// Merge returns a new schema containing the fields of all schemas,
// later ones overriding earlier ones. Every field is bound to its key.
func Merge(schemas ...Schema) Schema {
	merged := Schema{}

	for _, s := range schemas {
		for key, field := range s {
			if field == nil {
				continue
			}

			merged[key] = field.WithKey(key)
		}
	}

	return merged
}

// Fields returns the fields of the schema in a deterministic order:
// positionals by index first, then flags by key.
func (s Schema) Fields() []*Field {
	fields := make([]*Field, 0, len(s))

	for key, field := range s {
		if field == nil {
			continue
		}

		if field.Key != key {
			field = field.WithKey(key)
		}

		fields = append(fields, field)
	}

	sort.SliceStable(fields, func(i, j int) bool {
		left, right := fields[i], fields[j]
		if left.IsPositional() != right.IsPositional() {
			return left.IsPositional()
		}

		if left.IsPositional() && left.Index != right.Index {
			return left.Index < right.Index
		}

		return left.Key < right.Key
	})

	return fields
}

// Positionals returns the positional fields sorted by index.
func (s Schema) Positionals() []*Field {
	var positionals []*Field

	for _, field := range s.Fields() {
		if field.IsPositional() {
			positionals = append(positionals, field)
		}
	}

	return positionals
}

// Flags returns the flag fields sorted by key.
func (s Schema) Flags() []*Field {
	var flags []*Field

	for _, field := range s.Fields() {
		if !field.IsPositional() {
			flags = append(flags, field)
		}
	}

	return flags
}

// CheckPositionals verifies that the positional indices of the schema are
// unique, start at 0 and have no gap, and that an array positional, if any,
// is the only one and comes last.
func CheckPositionals(s Schema) error {
	positionals := s.Positionals()

	for i, field := range positionals {
		if i > 0 && positionals[i-1].Index == field.Index {
			return fmt.Errorf("%w: duplicate index %d for %q and %q",
				ErrPositionals, field.Index, positionals[i-1].Key, field.Key)
		}
	}

	for i, field := range positionals {
		switch {
		case i == 0 && field.Index != 0:
			return fmt.Errorf("%w: indices must start at 0, but %q has index %d",
				ErrPositionals, field.Key, field.Index)
		case field.Index != i:
			return fmt.Errorf("%w: gap before index %d (%q), index %d is missing",
				ErrPositionals, field.Index, field.Key, i)
		}
	}

	for i, field := range positionals {
		if field.Info().IsArray() && i != len(positionals)-1 {
			return fmt.Errorf("%w: array %q at index %d must be the last positional",
				ErrPositionals, field.Key, field.Index)
		}
	}

	return nil
}
