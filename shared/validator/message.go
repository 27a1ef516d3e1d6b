package validator

import (
	"errors"
	"fmt"

	val "github.com/go-playground/validator/v10"
)

type describeFunc func(field, param string) string

var messages = map[string]describeFunc{
	"required": func(field, _ string) string { return field + " is required" },
	"max": func(field, param string) string {
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	},
	"email":    func(field, _ string) string { return field + " must be a valid email address" },
	"timezone": func(field, _ string) string { return field + " must be an IANA timezone name" },
	"isodate": func(field, _ string) string {
		return field + " must be a calendar date formatted as YYYY-MM-DD"
	},
	"slottime": func(field, _ string) string { return field + " must be a time formatted as HH:MM" },
}

// message describes the first failed rule that has a visitor-facing wording.
func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		describe, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		field := valErr.Field()
		if field == "" {
			field = "value"
		}

		return describe(field, valErr.Param())
	}

	return valErrors.Error()
}
