package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator checks a single string value.
type Validator func(value string) error

// Compose runs validators in order and stops at the first failure.
func Compose(validators ...Validator) Validator {
	return func(value string) error {
		for _, check := range validators {
			if err := check(value); err != nil {
				return err
			}
		}
		return nil
	}
}

// Field prefixes validation errors with the field name, unless the
// validator already mentioned it.
func Field(name string, validators ...Validator) Validator {
	inner := Compose(validators...)
	return func(value string) error {
		err := inner(value)
		if err == nil || strings.Contains(err.Error(), name) {
			return err
		}
		return fmt.Errorf("%s: %w", name, err)
	}
}

func Required() Validator {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("cannot be empty")
		}
		return nil
	}
}

func MinLength(n int) Validator {
	return func(value string) error {
		if len(value) < n {
			return fmt.Errorf("too short, minimum %d characters", n)
		}
		return nil
	}
}

func MaxLength(n int) Validator {
	return func(value string) error {
		if len(value) > n {
			return fmt.Errorf("too long, maximum %d characters", n)
		}
		return nil
	}
}

func LengthBetween(min, max int) Validator {
	return Compose(MinLength(min), MaxLength(max))
}

// Matches fails with message when the value does not match pattern. The
// pattern must be a valid regexp; it is compiled once at construction.
func Matches(pattern, message string) Validator {
	re := regexp.MustCompile(pattern)
	return func(value string) error {
		if re.MatchString(value) {
			return nil
		}
		if message == "" {
			message = "has an invalid format"
		}
		return fmt.Errorf("%s", message)
	}
}

func OneOf(allowed ...string) Validator {
	return func(value string) error {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
	}
}

func NoSpaces() Validator {
	return Matches(`^\S+$`, "must not contain spaces")
}

func Alphanumeric() Validator {
	return Matches(`^[a-zA-Z0-9]+$`, "must contain only letters and numbers")
}
