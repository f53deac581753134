package help

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/versecafe/zcli/schema"
)

// flagSet describes interface,
// that's implemented by pflag library and required by the mirror.
type flagSet interface {
	VarPF(value pflag.Value, name, shorthand, usage string) *pflag.Flag
	Lookup(name string) *pflag.Flag
	ShorthandLookup(name string) *pflag.Flag
}

var _ flagSet = (*pflag.FlagSet)(nil)

// generateTo puts a pflag for each field into dst. Shorthands already
// used by dst or by an ancestor command (taken) are not reused.
func generateTo(src []*schema.Field, dst flagSet, taken map[string]bool) {
	for _, field := range src {
		name := field.FlagName()
		if dst.Lookup(name) != nil {
			continue
		}

		short, long := splitAliases(field.Aliases)
		if short != "" && (taken[short] || dst.ShorthandLookup(short) != nil) {
			long = append([]string{short}, long...)
			short = ""
		}

		info := field.Info()
		flag := dst.VarPF(newValue(info), name, short, usage(field, long))

		// Annotations used by completion engines
		flag.Annotations = map[string][]string{}

		var annots []string

		if info.IsBool() {
			flag.NoOptDefVal = "true"
		}

		if required(info) {
			annots = append(annots, "required")
		}

		if choices := info.EnumChoices(); len(choices) > 0 {
			flag.Annotations["choices"] = choices
		}

		flag.Hidden = field.Hidden
		flag.Annotations["flags"] = annots

		if short != "" {
			taken[short] = true
		}
	}
}

// splitAliases returns the first single-byte alias, usable as
// a pflag shorthand, and all the other aliases.
func splitAliases(aliases []string) (short string, long []string) {
	for _, alias := range aliases {
		if short == "" && len(alias) == 1 {
			short = alias

			continue
		}

		long = append(long, alias)
	}

	return short, long
}

// usage builds the flag description, with the details pflag cannot show.
func usage(field *schema.Field, aliases []string) string {
	parts := []string{field.Usage()}
	info := field.Info()

	if choices := info.EnumChoices(); len(choices) > 0 {
		parts = append(parts, fmt.Sprintf("(one of: %s)", strings.Join(choices, ", ")))
	}

	if len(aliases) > 0 {
		dashed := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			dashed = append(dashed, dashes(alias)+alias)
		}

		parts = append(parts, fmt.Sprintf("(aliases: %s)", strings.Join(dashed, ", ")))
	}

	if field.Env != "" {
		parts = append(parts, fmt.Sprintf("[$%s]", field.Env))
	}

	if required(info) {
		parts = append(parts, "(required)")
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}

func required(info schema.Info) bool {
	return !info.Optional && !info.HasDefault
}

func dashes(name string) string {
	if len([]rune(name)) == 1 {
		return "-"
	}

	return "--"
}

// value is the pflag.Value of a mirror flag. It only describes the
// flag type and default value, and accepts anything.
type value struct {
	typ string
	def string
}

func newValue(info schema.Info) *value {
	val := &value{typ: typeName(info)}

	if info.HasDefault && info.Default != nil {
		val.def = formatDefault(info.Default)
	}

	return val
}

func (v *value) String() string { return v.def }

func (v *value) Set(s string) error {
	v.def = s

	return nil
}

func (v *value) Type() string { return v.typ }

// typeName returns the pflag type names for which
// pflag prints the usual usage placeholders.
func typeName(info schema.Info) string {
	switch info.Kind {
	case schema.TagBoolean:
		return "bool"
	case schema.TagInteger:
		return "int"
	case schema.TagNumber:
		return "float64"
	case schema.TagArray:
		return "stringSlice"
	default:
		return "string"
	}
}

func formatDefault(def any) string {
	switch val := def.(type) {
	case []string:
		return "[" + strings.Join(val, ",") + "]"
	default:
		return fmt.Sprint(val)
	}
}
