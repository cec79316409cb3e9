package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-formpreview/pkg/model"
)

const (
	usernameMessage = "username must be 3-20 characters using letters, digits, underscore or hyphen"
	passwordMessage = "password must be 6-25 characters with no spaces and include a letter and a digit"
)

var patternCache sync.Map // string -> *regexp.Regexp

// CheckField validates value against the field's kind predicate and any
// declared rules. Range fields are expected to be clamped already.
func CheckField(field model.Field, value string) Result {
	var issues []Issue
	add := func(code, message string) {
		issues = append(issues, Issue{Field: field.Name, Code: code, Message: message})
	}

	if field.Required && strings.TrimSpace(value) == "" {
		add(CodeRequired, fmt.Sprintf("%s is required", field.DisplayLabel()))
	}

	switch field.Kind {
	case model.FieldKindUsername:
		if !IsValidUsername(value) {
			add(CodeBadUsername, usernameMessage)
		}
	case model.FieldKindPassword:
		if !IsValidPassword(value) {
			add(CodeInsecurePassword, passwordMessage)
		}
	case model.FieldKindRange:
		if _, ok := parseNumber(value); !ok {
			add(CodeNotANumber, fmt.Sprintf("%s must be a number", field.DisplayLabel()))
		}
	}

	for _, rule := range field.Validations {
		if issue, failed := checkRule(field, rule, value); failed {
			issues = append(issues, issue)
		}
	}

	return Result{Valid: len(issues) == 0, Issues: issues}
}

func checkRule(field model.Field, rule model.ValidationRule, value string) (Issue, bool) {
	label := field.DisplayLabel()
	fail := func(code, message string) (Issue, bool) {
		return Issue{Field: field.Name, Code: code, Message: message}, true
	}

	switch rule.Kind {
	case model.ValidationRuleRequired:
		if strings.TrimSpace(value) == "" && !field.Required {
			return fail(CodeRequired, fmt.Sprintf("%s is required", label))
		}
	case model.ValidationRuleMinLength:
		if limit, ok := rule.Value(); ok && float64(utf8.RuneCountInString(value)) < limit {
			return fail(CodeTooShort, fmt.Sprintf("%s must be at least %s characters", label, formatNumber(limit)))
		}
	case model.ValidationRuleMaxLength:
		if limit, ok := rule.Value(); ok && float64(utf8.RuneCountInString(value)) > limit {
			return fail(CodeTooLong, fmt.Sprintf("%s must be at most %s characters", label, formatNumber(limit)))
		}
	case model.ValidationRulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return Issue{}, false
		}
		re, err := compilePattern(expr)
		if err != nil {
			return fail(CodePattern, fmt.Sprintf("%s has an invalid pattern: %v", label, err))
		}
		if !re.MatchString(value) {
			return fail(CodePattern, fmt.Sprintf("%s has an invalid format", label))
		}
	case model.ValidationRuleMin, model.ValidationRuleMax:
		if field.Kind == model.FieldKindRange {
			return Issue{}, false
		}
		if strings.TrimSpace(value) == "" {
			return Issue{}, false
		}
		limit, ok := rule.Value()
		if !ok {
			return Issue{}, false
		}
		n, numeric := parseNumber(value)
		if !numeric {
			return fail(CodeNotANumber, fmt.Sprintf("%s must be a number", label))
		}
		if rule.Kind == model.ValidationRuleMin && n < limit {
			return fail(CodeBelowMin, fmt.Sprintf("%s must be at least %s", label, formatNumber(limit)))
		}
		if rule.Kind == model.ValidationRuleMax && n > limit {
			return fail(CodeAboveMax, fmt.Sprintf("%s must be at most %s", label, formatNumber(limit)))
		}
	}
	return Issue{}, false
}

func compilePattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCache.Store(expr, re)
	return re, nil
}
