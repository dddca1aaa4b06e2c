package form

import (
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf16"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"a@b.com", true},
		{"@", true},
		{"plainaddress", false},
		{"no-at-sign.example.com", false},
		{"two@@signs", true},
		{" spaced @ ", true},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.in); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"abc", false},
		{"abcd", true},
		{"   abc   ", false},
		{"  abcd  ", true},
		{"\tab c\n", true},
		{"äöüß", true},
		{"äöü", false},
		{"😀😀", true},
		{"😀a", false},
		{"😀ab", true},
		{" 😀 ", false},
	}
	for _, tt := range tests {
		if got := ValidPassword(tt.in); got != tt.want {
			t.Errorf("ValidPassword(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidatorsAreTotal(t *testing.T) {
	email := func(s string) bool {
		return ValidEmail(s) == strings.Contains(s, "@")
	}
	if err := quick.Check(email, nil); err != nil {
		t.Error(err)
	}

	password := func(s string) bool {
		return ValidPassword(s) == (len(utf16.Encode([]rune(strings.TrimSpace(s)))) > 3)
	}
	if err := quick.Check(password, nil); err != nil {
		t.Error(err)
	}
}

func TestValidatorByKind(t *testing.T) {
	if !Validator(KindEmail)("a@b") {
		t.Error("email validator should accept a@b")
	}
	if !Validator(KindPassword)("abcd") {
		t.Error("password validator should accept abcd")
	}
	if Validator(Kind("phone"))("a@b.com abcd") {
		t.Error("unknown kind should never validate")
	}
}
