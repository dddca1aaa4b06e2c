// internal/domain/form/validator.go
package form

import (
	"strings"
	"unicode/utf16"
)

// Kind selects which validation rule applies to a field.
type Kind string

const (
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
)

// ValidateFunc reports whether a raw field value is acceptable.
type ValidateFunc func(string) bool

// ValidEmail accepts any value containing '@'. This is the whole rule,
// not an approximation of RFC 5322.
func ValidEmail(s string) bool {
	return strings.Contains(s, "@")
}

// ValidPassword accepts values longer than three characters once
// surrounding whitespace is removed. Length is counted in UTF-16 code
// units, as browsers count input length, so a character outside the
// Basic Multilingual Plane counts twice.
func ValidPassword(s string) bool {
	return passwordLength(strings.TrimSpace(s)) > 3
}

func passwordLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Validator returns the rule for kind. Unknown kinds never validate.
func Validator(kind Kind) ValidateFunc {
	switch kind {
	case KindEmail:
		return ValidEmail
	case KindPassword:
		return ValidPassword
	default:
		return func(string) bool { return false }
	}
}

func (k Kind) String() string {
	return string(k)
}
