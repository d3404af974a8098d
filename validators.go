package sema

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/davidenyagah/sema/pkg/api"
)

// Input validators for use with Prompt.Ask:
//
//	age, err := p.Ask("How old are you?",
//	    sema.WithValidators(sema.Digits(""), sema.InRange(18, 120, "")))
//
// A failing validator turns into a re-prompt carrying its message; an
// empty msg falls back to a sensible default.

// NonEmpty rejects blank input.
func NonEmpty(msg string) api.Validator {
	if msg == "" {
		msg = "This field is required."
	}
	return func(input string) error {
		if input == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// Digits accepts only decimal digits.
func Digits(msg string) api.Validator {
	if msg == "" {
		msg = "Please enter digits only."
	}
	return func(input string) error {
		if input == "" {
			return errors.New(msg)
		}
		for _, r := range input {
			if r < '0' || r > '9' {
				return errors.New(msg)
			}
		}
		return nil
	}
}

// Length bounds the input length in runes. A max of zero means unbounded.
func Length(min, max int, msg string) api.Validator {
	if msg == "" {
		if max > 0 {
			msg = fmt.Sprintf("Please enter between %d and %d characters.", min, max)
		} else {
			msg = fmt.Sprintf("Please enter at least %d characters.", min)
		}
	}
	return func(input string) error {
		n := len([]rune(input))
		if n < min || (max > 0 && n > max) {
			return errors.New(msg)
		}
		return nil
	}
}

// InRange accepts integers within [min, max].
func InRange(min, max int, msg string) api.Validator {
	if msg == "" {
		msg = fmt.Sprintf("Please enter a number between %d and %d.", min, max)
	}
	return func(input string) error {
		n, err := strconv.Atoi(input)
		if err != nil || n < min || n > max {
			return errors.New(msg)
		}
		return nil
	}
}

// Matches accepts input matching the given pattern.
func Matches(re *regexp.Regexp, msg string) api.Validator {
	if msg == "" {
		msg = "Invalid format."
	}
	return func(input string) error {
		if !re.MatchString(input) {
			return errors.New(msg)
		}
		return nil
	}
}

// OneOf accepts only the listed values.
func OneOf(msg string, allowed ...string) api.Validator {
	if msg == "" {
		msg = "Invalid option."
	}
	return func(input string) error {
		for _, a := range allowed {
			if input == a {
				return nil
			}
		}
		return errors.New(msg)
	}
}
