package schema

// Info is the projection of a type needed to resolve, validate,
// document and complete a field.
type Info struct {
	Kind       Tag      // Base tag, with all modifiers unwrapped.
	Elem       *Info    // Element info, for arrays.
	Choices    []string // Enum choices.
	Optional   bool     // Absent values are accepted.
	Nullable   bool     // Absent values resolve to nil.
	HasDefault bool
	Default    any
	Rules      string
	Desc       string
}

// IsArray returns true if the base kind is an array.
func (i Info) IsArray() bool { return i.Kind == TagArray }

// IsBool returns true if the base kind is a boolean.
func (i Info) IsBool() bool { return i.Kind == TagBoolean }

// IsNumeric returns true if the base kind is a number or an integer.
func (i Info) IsNumeric() bool { return i.Kind == TagNumber || i.Kind == TagInteger }

// EnumChoices returns the choices of an enum, or of the elements of an enum array.
func (i Info) EnumChoices() []string {
	if i.Kind == TagArray && i.Elem != nil {
		return i.Elem.Choices
	}

	return i.Choices
}

// Introspect unwraps the modifiers of a type recursively and classifies
// its base kind. The outermost default wins over inner ones.
func Introspect(t *Type) Info {
	info := Info{Kind: TagString}
	if t == nil {
		return info
	}

	info.Rules = t.rules
	info.Desc = t.desc

	for cur := t; cur != nil; cur = cur.inner {
		switch cur.tag {
		case TagOptional:
			info.Optional = true
		case TagNullable:
			info.Nullable = true
			info.Optional = true
		case TagDefault:
			if !info.HasDefault {
				info.HasDefault = true
				info.Default = cur.def
			}
			info.Optional = true
		case TagArray:
			info.Kind = TagArray
			elem := Introspect(cur.inner)
			info.Elem = &elem

			return info
		case TagEnum:
			info.Kind = TagEnum
			info.Choices = cur.choices

			return info
		default:
			info.Kind = cur.tag

			return info
		}
	}

	return info
}
