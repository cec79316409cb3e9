package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes mirror the rejection reasons reported by the login service.
const (
	CodeBadUsername      = "BAD_USERNAME"
	CodeInsecurePassword = "INSECURE_PASSWORD"
	CodeRequired         = "REQUIRED"
	CodeTooShort         = "TOO_SHORT"
	CodeTooLong          = "TOO_LONG"
	CodePattern          = "PATTERN_MISMATCH"
	CodeBelowMin         = "BELOW_MIN"
	CodeAboveMax         = "ABOVE_MAX"
	CodeNotANumber       = "NOT_A_NUMBER"
	CodeUnknownField     = "UNKNOWN_FIELD"
)

var (
	// ErrSubmissionBlocked is matched by every BlockedError.
	ErrSubmissionBlocked = errors.New("validation: submission blocked")
	// ErrUnknownField is returned when input targets a field the form does not declare.
	ErrUnknownField = errors.New("validation: unknown field")
)

// Issue represents a validation failure attached to a field.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result captures validation outcomes for a single field or a whole form.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// BlockedError carries the issues that cancelled a submission.
type BlockedError struct {
	Issues []Issue
}

func (e *BlockedError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrSubmissionBlocked.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
			continue
		}
		parts = append(parts, issue.Message)
	}
	return ErrSubmissionBlocked.Error() + ": " + strings.Join(parts, "; ")
}

func (e *BlockedError) Is(target error) bool {
	return target == ErrSubmissionBlocked
}

// IssuesByField groups issue messages by field name. Issues without a field
// are collected under the empty key.
func IssuesByField(issues []Issue) map[string][]string {
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}
