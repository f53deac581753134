package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var failedTag = regexp.MustCompile(`the '.*' tag`)

// ruleMessage rewrites an error raised by the validator on a value
// into a message more adapted to command-line inputs.
func ruleMessage(value any, err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fieldErr := fieldErrs[0]
		if fieldErr.Param() != "" {
			return fmt.Sprintf("`%v` does not satisfy %s=%s", value, fieldErr.Tag(), fieldErr.Param())
		}

		return fmt.Sprintf("`%v` is not a valid %s", value, fieldErr.Tag())
	}

	// Match the part containing the tag name
	if matched := failedTag.FindString(err.Error()); matched != "" {
		if parts := strings.Split(matched, " "); len(parts) > 1 {
			return fmt.Sprintf("`%v` is not a valid %s", value, strings.Trim(parts[1], "'"))
		}
	}

	return err.Error()
}
