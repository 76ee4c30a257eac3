// FILE: filter.go
package puzzlekit

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Range is an inclusive [Min, Max] bound on a numeric column.
type Range struct {
	Min int `json:"min" validate:"ltefield=Max"`
	Max int `json:"max"`
}

// Filter narrows the eligible puzzle population for Random.
//
// Themes are matched by substring against the stored Themes string and
// OR-combined: a puzzle qualifies when it contains any requested token.
// This means a theme name that is a substring of another ("mate" vs
// "mateIn2") also matches the longer one; callers wanting exact tokens
// should pick names from AllThemes.
//
// Range filters are AND-combined with the theme filter and each other.
// A zero Count is treated as 1.
type Filter struct {
	Themes          []string `validate:"omitempty,dive,required"`
	RatingRange     *Range
	PopularityRange *Range
	Count           int `validate:"gte=0"`
}

// check validates the filter before any query runs and normalizes Count.
func (f *Filter) check() error {
	if err := validate.Struct(f); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return fmt.Errorf("%w: %s", ErrInvalidArgument, describe(err.(validator.ValidationErrors)))
	}
	if f.Count == 0 {
		f.Count = 1
	}
	return nil
}

// describe flattens validator output into one readable line.
func describe(errs validator.ValidationErrors) string {
	msg := ""
	for _, err := range errs {
		if msg != "" {
			msg += "; "
		}
		switch err.Tag() {
		case "required":
			msg += fmt.Sprintf("%s must not be empty", err.Namespace())
		case "gte":
			msg += fmt.Sprintf("%s must be at least %s", err.Namespace(), err.Param())
		case "ltefield":
			msg += fmt.Sprintf("%s must not exceed %s", err.Namespace(), err.Param())
		default:
			msg += fmt.Sprintf("%s failed %s validation", err.Namespace(), err.Tag())
		}
	}
	return msg
}
