package validation

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/versecafe/zcli/schema"
)

// coerce converts a raw resolved value (string, bool, []string, or an
// already typed value from the environment) to the kind of the field.
func coerce(raw any, info schema.Info) (any, *Issue) {
	if info.IsArray() {
		return coerceArray(raw, info)
	}

	if list, isList := raw.([]string); isList {
		return nil, typeIssue(info.Kind, fmt.Sprintf("%d values", len(list)))
	}

	switch info.Kind {
	case schema.TagString:
		if str, ok := raw.(string); ok {
			return str, nil
		}

		return nil, typeIssue(info.Kind, describe(raw))

	case schema.TagEnum:
		str, ok := raw.(string)
		if !ok {
			return nil, typeIssue(info.Kind, describe(raw))
		}

		if !slices.Contains(info.Choices, str) {
			return nil, &Issue{
				Code:    CodeChoice,
				Message: fmt.Sprintf("%s %q, expected one of: %s", ErrInvalidChoice, str, strings.Join(info.Choices, ", ")),
			}
		}

		return str, nil

	case schema.TagBoolean:
		val, err := cast.ToBoolE(raw)
		if err != nil {
			return nil, typeIssue(info.Kind, describe(raw))
		}

		return val, nil

	case schema.TagNumber:
		if _, isBool := raw.(bool); isBool {
			return nil, typeIssue(info.Kind, describe(raw))
		}

		val, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, typeIssue(info.Kind, describe(raw))
		}

		return val, nil

	case schema.TagInteger:
		return coerceInt(raw, info)
	}

	return raw, nil
}

func coerceInt(raw any, info schema.Info) (any, *Issue) {
	switch val := raw.(type) {
	case bool:
		return nil, typeIssue(info.Kind, describe(raw))
	case float64:
		if val != math.Trunc(val) {
			return nil, typeIssue(info.Kind, describe(raw))
		}

		return int(val), nil
	case string:
		// cast reads leading zeros as octal, and 0x as hexadecimal.
		parsed, err := strconv.ParseInt(strings.TrimSpace(val), 10, 0)
		if err != nil {
			return nil, typeIssue(info.Kind, describe(raw))
		}

		return int(parsed), nil
	}

	val, err := cast.ToIntE(raw)
	if err != nil {
		return nil, typeIssue(info.Kind, describe(raw))
	}

	return val, nil
}

func coerceArray(raw any, info schema.Info) (any, *Issue) {
	var items []any

	switch val := raw.(type) {
	case []string:
		for _, item := range val {
			items = append(items, item)
		}
	case []any:
		items = val
	default:
		items = []any{raw}
	}

	elem := schema.Info{Kind: schema.TagString}
	if info.Elem != nil {
		elem = *info.Elem
	}

	switch elem.Kind {
	case schema.TagString, schema.TagEnum:
		return coerceItems[string](items, elem)
	case schema.TagBoolean:
		return coerceItems[bool](items, elem)
	case schema.TagNumber:
		return coerceItems[float64](items, elem)
	case schema.TagInteger:
		return coerceItems[int](items, elem)
	default:
		return coerceItems[any](items, elem)
	}
}

// coerceItems coerces each item of a list, and returns a typed slice.
func coerceItems[T any](items []any, elem schema.Info) (any, *Issue) {
	values := make([]T, 0, len(items))

	for i, item := range items {
		val, issue := coerce(item, elem)
		if issue != nil {
			issue.Message = fmt.Sprintf("item %d: %s", i, issue.Message)

			return nil, issue
		}

		typed, _ := val.(T)
		values = append(values, typed)
	}

	return values, nil
}

func typeIssue(kind schema.Tag, received string) *Issue {
	return &Issue{Code: CodeType, Message: fmt.Sprintf("expected %s, received %s", kind, received)}
}

func describe(raw any) string {
	switch val := raw.(type) {
	case bool:
		if val {
			return "no value"
		}

		return "false"
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
