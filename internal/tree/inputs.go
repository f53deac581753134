package tree

// Inputs are the validated values of a command's fields, keyed by field key.
// Absent optional fields have a nil value.
type Inputs map[string]any

// Has returns true if the input has a non-nil value.
func (in Inputs) Has(key string) bool {
	return in[key] != nil
}

// String returns a string input, or an empty string.
func (in Inputs) String(key string) string {
	val, _ := in[key].(string)

	return val
}

// Bool returns a boolean input, or false.
func (in Inputs) Bool(key string) bool {
	val, _ := in[key].(bool)

	return val
}

// Int returns an integer input, or 0.
func (in Inputs) Int(key string) int {
	switch val := in[key].(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return 0
	}
}

// Float returns a number input, or 0.
func (in Inputs) Float(key string) float64 {
	switch val := in[key].(type) {
	case float64:
		return val
	case int:
		return float64(val)
	default:
		return 0
	}
}

// Strings returns a string list input, or nil.
func (in Inputs) Strings(key string) []string {
	val, _ := in[key].([]string)

	return val
}
