// Package schema declares the inputs of a command: the value types of its
// fields, whether they are positional arguments or flags, and where else
// their values can come from (environment, defaults).
//
// Types form a small closed union: base types (string, number, integer,
// boolean, enum, array) possibly wrapped in modifiers (optional, nullable,
// default). Introspect unwraps the modifiers and reports what the resolver,
// the validator and the help/completion collaborators need to know.
package schema

// Tag identifies a node in a type.
type Tag uint8

// Base and modifier tags. Modifier tags always wrap another type.
const (
	TagString Tag = iota
	TagNumber
	TagInteger
	TagBoolean
	TagEnum
	TagArray
	TagOptional
	TagNullable
	TagDefault
)

func (t Tag) String() string {
	switch t {
	case TagString:
		return "string"
	case TagNumber:
		return "number"
	case TagInteger:
		return "integer"
	case TagBoolean:
		return "boolean"
	case TagEnum:
		return "enum"
	case TagArray:
		return "array"
	case TagOptional:
		return "optional"
	case TagNullable:
		return "nullable"
	case TagDefault:
		return "default"
	default:
		return "unknown"
	}
}

// Type is an immutable value type declaration.
// All methods returning a *Type allocate a new one.
type Type struct {
	tag     Tag
	inner   *Type    // wrapped type (modifiers) or element type (arrays)
	choices []string // enum
	def     any      // default value
	rules   string   // go-playground/validator rules
	desc    string
}

// String declares a string value.
func String() *Type { return &Type{tag: TagString} }

// Number declares a floating-point value.
func Number() *Type { return &Type{tag: TagNumber} }

// Int declares an integer value.
func Int() *Type { return &Type{tag: TagInteger} }

// Bool declares a boolean value.
func Bool() *Type { return &Type{tag: TagBoolean} }

// Enum declares a string value restricted to a set of choices.
func Enum(choices ...string) *Type {
	return &Type{tag: TagEnum, choices: append([]string(nil), choices...)}
}

// Array declares a list of values of the element type.
func Array(elem *Type) *Type { return &Type{tag: TagArray, inner: elem} }

// Tag returns the outermost tag of the type.
func (t *Type) Tag() Tag { return t.tag }

// Optional wraps the type so that an absent value is accepted.
func (t *Type) Optional() *Type { return t.wrap(TagOptional, nil) }

// Nullable wraps the type so that an absent value resolves to nil.
func (t *Type) Nullable() *Type { return t.wrap(TagNullable, nil) }

// Default wraps the type so that an absent value resolves to def.
func (t *Type) Default(def any) *Type { return t.wrap(TagDefault, def) }

// Rules attaches go-playground/validator rules (eg. "min=1,max=10")
// checked against the coerced value.
func (t *Type) Rules(rules string) *Type {
	dup := *t
	dup.rules = rules

	return &dup
}

// Describe attaches a description, used when the field has none.
func (t *Type) Describe(desc string) *Type {
	dup := *t
	dup.desc = desc

	return &dup
}

func (t *Type) wrap(tag Tag, def any) *Type {
	return &Type{tag: tag, inner: t, def: def, rules: t.rules, desc: t.desc}
}

// Inner returns the wrapped type of a modifier, the element type
// of an array, or nil.
func (t *Type) Inner() *Type { return t.inner }
