package validation

import (
	"regexp"
	"unicode/utf16"
)

const (
	passwordMinLength = 6
	passwordMaxLength = 25
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

// IsValidUsername reports whether s is 3-20 characters drawn from ASCII
// letters, digits, underscore and hyphen.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// IsValidPassword reports whether s is 6-25 characters long, contains no
// whitespace and has at least one ASCII digit and one ASCII letter.
//
// Length is measured in UTF-16 code units and whitespace follows the
// ECMAScript \s class so the browser-side check and this one never disagree.
func IsValidPassword(s string) bool {
	var hasDigit, hasLetter bool
	for _, r := range s {
		if isECMASpace(r) {
			return false
		}
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	if !hasDigit || !hasLetter {
		return false
	}
	n := len(utf16.Encode([]rune(s)))
	return n >= passwordMinLength && n <= passwordMaxLength
}

func isECMASpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}
