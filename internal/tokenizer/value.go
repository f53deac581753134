package tokenizer

type kind uint8

const (
	kindTrue kind = iota
	kindString
	kindList
)

// Value is the value recorded for a flag: either a bare boolean true
// (the flag was given without a value), a string, or a list of strings
// when the flag was repeated.
type Value struct {
	kind kind
	str  string
	list []string
}

// True returns the value of a flag given without argument.
func True() Value { return Value{kind: kindTrue} }

// String returns a string flag value.
func String(s string) Value { return Value{kind: kindString, str: s} }

// List returns a list flag value.
func List(items ...string) Value {
	list := make([]string, len(items))
	copy(list, items)

	return Value{kind: kindList, list: list}
}

// IsTrue returns true if the flag was given without a value.
func (v Value) IsTrue() bool { return v.kind == kindTrue }

// IsString returns true if the flag has a single string value.
func (v Value) IsString() bool { return v.kind == kindString }

// IsList returns true if the flag was repeated.
func (v Value) IsList() bool { return v.kind == kindList }

// Str returns the string value, or an empty string for other kinds.
func (v Value) Str() string { return v.str }

// List returns a copy of the list value, or nil for other kinds.
func (v Value) List() []string {
	if v.kind != kindList {
		return nil
	}

	list := make([]string, len(v.list))
	copy(list, v.list)

	return list
}

// Any returns the value as true, a string or a []string.
func (v Value) Any() any {
	switch v.kind {
	case kindString:
		return v.str
	case kindList:
		return v.List()
	default:
		return true
	}
}

// listItem is the representation of the value in a list slot.
func (v Value) listItem() string {
	if v.kind == kindTrue {
		return ""
	}

	return v.str
}
