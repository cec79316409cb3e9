package validation_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formpreview/pkg/validation"
)

func TestIsValidUsername(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"abc_12", true},
		{"a-B_9", true},
		{"abc", true},
		{strings.Repeat("x", 20), true},
		{"ab", false},
		{"a b", false},
		{strings.Repeat("x", 21), false},
		{"", false},
		{"user!", false},
		{"abc\n", false},
		{"émile", false},
	}
	for _, tc := range cases {
		if got := validation.IsValidUsername(tc.in); got != tc.want {
			t.Errorf("IsValidUsername(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"abc123", true},
		{"Passw0rd", true},
		{"P4ss!word", true},
		{"P4ss word!", false},
		{"password", false},
		{"123456", false},
		{"a1 b2", false},
		{"a1", false},
		{"a1\tbcdef", false},
		{"a1bcd ef", false},
		{"a1" + strings.Repeat("b", 23), true},
		{"a1" + strings.Repeat("b", 24), false},
		{"ab12é", false},
		{"ab12éé", true},
	}
	for _, tc := range cases {
		if got := validation.IsValidPassword(tc.in); got != tc.want {
			t.Errorf("IsValidPassword(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPredicatesAreDeterministic(t *testing.T) {
	inputs := []string{"", "abc_12", "a b", "Passw0rd", " ", strings.Repeat("z", 40)}
	for _, in := range inputs {
		if validation.IsValidUsername(in) != validation.IsValidUsername(in) {
			t.Fatalf("IsValidUsername(%q) not deterministic", in)
		}
		if validation.IsValidPassword(in) != validation.IsValidPassword(in) {
			t.Fatalf("IsValidPassword(%q) not deterministic", in)
		}
	}
}
