package validation_test

import (
	"testing"

	"github.com/goliatone/go-formpreview/pkg/validation"
)

func TestClampInput(t *testing.T) {
	cases := []struct {
		raw      string
		min, max float64
		want     string
	}{
		{"15", 0, 10, "10"},
		{"-3", 0, 10, "0"},
		{"5", 0, 10, "5"},
		{"10", 0, 10, "10"},
		{"2.5", 0, 10, "2.5"},
		{"abc", 0, 10, "abc"},
		{"", 1, 10, "1"},
		{"", 0, 10, ""},
		{" 12 ", 0, 10, "10"},
		{"\u00a012\u00a0", 0, 10, "10"},
		{"0x10", 0, 10, "10"},
		{"0o20", 0, 10, "10"},
		{"0b11", 0, 10, "0b11"},
		{"-0x10", 0, 10, "-0x10"},
		{"0x", 0, 10, "0x"},
		{"Infinity", 0, 10, "10"},
		{"-Infinity", 0, 10, "0"},
		{"1e400", 0, 10, "10"},
		{"inf", 0, 10, "inf"},
		{"+Inf", 0, 10, "+Inf"},
		{"NaN", 0, 10, "NaN"},
		{"1_000", 0, 10, "1_000"},
		{"1.", 0, 10, "1."},
		{".5e2", 0, 10, "10"},
	}
	for _, tc := range cases {
		if got := validation.ClampInput(tc.raw, tc.min, tc.max); got != tc.want {
			t.Errorf("ClampInput(%q, %v, %v) = %q, want %q", tc.raw, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := validation.Clamp(15, 0, 10); got != 10 {
		t.Fatalf("expected 10, got %v", got)
	}
	if got := validation.Clamp(-3, 0, 10); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := validation.Clamp(5, 0, 10); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestRangeFieldStoresClampedValue(t *testing.T) {
	field := validation.NewRangeField(10, 0)
	if field.Min != 0 || field.Max != 10 {
		t.Fatalf("expected bounds to be reordered, got [%v, %v]", field.Min, field.Max)
	}
	if got := field.Input("15"); got != "10" {
		t.Fatalf("expected 10, got %q", got)
	}
	n, ok := field.Number()
	if !ok || n != 10 {
		t.Fatalf("expected stored number 10, got %v (ok=%v)", n, ok)
	}
	field.Input("-3")
	if field.Value() != "0" {
		t.Fatalf("expected 0, got %q", field.Value())
	}
}
