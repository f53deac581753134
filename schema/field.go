package schema

// Field is the declared contract of one input: its type, and how it
// appears on the command line. Fields are immutable, and all methods
// returning a *Field allocate a new one.
type Field struct {
	Key         string   // Key of the field in the resolved inputs, set when merged in a Schema.
	Type        *Type    // Value type.
	Index       int      // Positional index, or -1 for flags.
	Name        string   // Explicit flag name, without dashes.
	Aliases     []string // Alternative flag names (eg. short names).
	Env         string   // Environment variable read when the flag is absent.
	Negatable   bool     // Accept --no-<name> for this flag.
	Description string
	Hidden      bool
}

// Schema maps input keys to their fields.
type Schema map[string]*Field

// Positional declares a positional argument at the given index.
func Positional(index int, t *Type) *Field {
	return &Field{Type: t, Index: index}
}

// Flag declares a flag. Its name defaults to the kebab-case of its key.
func Flag(t *Type) *Field {
	return &Field{Type: t, Index: -1}
}

// IsPositional returns true if the field is a positional argument.
func (f *Field) IsPositional() bool { return f.Index >= 0 }

// Info returns the introspected type of the field.
func (f *Field) Info() Info { return Introspect(f.Type) }

// FlagName returns the primary flag name of the field.
func (f *Field) FlagName() string {
	if f.Name != "" {
		return f.Name
	}

	return ToKebab(f.Key)
}

// Usage returns the field description, or the one of its type.
func (f *Field) Usage() string {
	if f.Description != "" {
		return f.Description
	}

	return f.Info().Desc
}

// Named sets the flag name.
func (f *Field) Named(name string) *Field {
	dup := f.copy()
	dup.Name = name

	return dup
}

// Alias adds alternative flag names.
func (f *Field) Alias(aliases ...string) *Field {
	dup := f.copy()
	dup.Aliases = append(dup.Aliases, aliases...)

	return dup
}

// FromEnv sets the environment variable used when the flag is absent.
func (f *Field) FromEnv(name string) *Field {
	dup := f.copy()
	dup.Env = name

	return dup
}

// Negate accepts --no-<name> to set the flag to false.
func (f *Field) Negate() *Field {
	dup := f.copy()
	dup.Negatable = true

	return dup
}

// Describe sets the field description.
func (f *Field) Describe(desc string) *Field {
	dup := f.copy()
	dup.Description = desc

	return dup
}

// Hide hides the field from help and completions.
func (f *Field) Hide() *Field {
	dup := f.copy()
	dup.Hidden = true

	return dup
}

// WithKey returns the field bound to key, copying it if it
// was bound to another key.
func (f *Field) WithKey(key string) *Field {
	if f.Key == key {
		return f
	}

	dup := f.copy()
	dup.Key = key

	return dup
}

func (f *Field) copy() *Field {
	dup := *f
	dup.Aliases = append([]string(nil), f.Aliases...)

	return &dup
}
