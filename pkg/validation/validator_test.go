package validation_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formpreview/pkg/model"
	"github.com/goliatone/go-formpreview/pkg/validation"
)

func TestValidatorInputTogglesState(t *testing.T) {
	v := validation.New(validation.LoginForm())

	if got := v.State("username"); got != validation.StatePristine {
		t.Fatalf("expected pristine before input, got %s", got)
	}

	update, err := v.Input("username", "ab")
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if update.State != validation.StateInvalid || update.Class != "invalid" {
		t.Fatalf("expected invalid state, got %+v", update)
	}

	update, err = v.Input("username", "abc")
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if update.State != validation.StateValid || update.Class != "valid" {
		t.Fatalf("expected valid state, got %+v", update)
	}
	if len(update.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", update.Issues)
	}
}

func TestValidatorInputUnknownField(t *testing.T) {
	v := validation.New(validation.LoginForm())
	_, err := v.Input("email", "x")
	if !errors.Is(err, validation.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestValidatorSubmitBlocksInvalid(t *testing.T) {
	v := validation.New(validation.LoginForm(), validation.WithClasses(validation.BootstrapClasses))

	decision := v.Submit(map[string]string{"username": "abc_12", "password": "password"})
	if decision.Allowed {
		t.Fatalf("expected submission to be blocked")
	}
	if !decision.Cancel || !decision.StopPropagation || !decision.ShowError {
		t.Fatalf("expected cancel, stop propagation and error indicator: %+v", decision)
	}
	if decision.ErrorClass != "error-show" {
		t.Fatalf("expected error-show, got %q", decision.ErrorClass)
	}

	want := []validation.Issue{{Field: "password", Code: validation.CodeInsecurePassword}}
	if diff := cmp.Diff(want, decision.Issues, cmpopts.IgnoreFields(validation.Issue{}, "Message")); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if got := v.State("password"); got != validation.StateInvalid {
		t.Fatalf("expected password invalid, got %s", got)
	}
	if got := v.Classes().For(v.State("username")); got != "is-valid" {
		t.Fatalf("expected is-valid, got %q", got)
	}

	err := decision.Err()
	if !errors.Is(err, validation.ErrSubmissionBlocked) {
		t.Fatalf("expected ErrSubmissionBlocked, got %v", err)
	}
	var blocked *validation.BlockedError
	if !errors.As(err, &blocked) || len(blocked.Issues) != 1 {
		t.Fatalf("expected BlockedError with one issue, got %v", err)
	}
}

func TestValidatorSubmitClearsErrorIndicator(t *testing.T) {
	v := validation.New(validation.LoginForm())

	v.Submit(nil)
	if v.ErrorClass() != "error-show" {
		t.Fatalf("expected error indicator after empty submit, got %q", v.ErrorClass())
	}

	if _, err := v.Input("username", "a-B_9"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if _, err := v.Input("password", "Passw0rd"); err != nil {
		t.Fatalf("input: %v", err)
	}

	decision := v.Submit(nil)
	if !decision.Allowed || decision.Cancel || decision.ShowError {
		t.Fatalf("expected submission allowed: %+v", decision)
	}
	if decision.ErrorClass != "error" || v.ErrorClass() != "error" {
		t.Fatalf("expected error indicator cleared")
	}
	if decision.Err() != nil {
		t.Fatalf("expected nil error, got %v", decision.Err())
	}
	if !v.WasValidated() {
		t.Fatalf("expected was-validated after submit")
	}

	v.Reset()
	if v.WasValidated() || v.State("username") != validation.StatePristine || v.Value("username") != "" {
		t.Fatalf("expected reset to clear state")
	}
}

func TestValidatorClampsRangeFields(t *testing.T) {
	form := model.FormModel{
		ID: "problem",
		Fields: []model.Field{
			{
				Name: "points",
				Kind: model.FieldKindRange,
				Validations: []model.ValidationRule{
					model.Rule(model.ValidationRuleMin, 0),
					model.Rule(model.ValidationRuleMax, 10),
				},
			},
		},
	}
	v := validation.New(form)

	cases := map[string]string{"15": "10", "-3": "0", "5": "5"}
	for in, want := range cases {
		update, err := v.Input("points", in)
		if err != nil {
			t.Fatalf("input: %v", err)
		}
		if update.Value != want || v.Value("points") != want {
			t.Fatalf("Input(%q) stored %q, want %q", in, update.Value, want)
		}
		if update.State != validation.StateValid {
			t.Fatalf("expected clamped value to be valid, got %+v", update)
		}
	}

	update, _ := v.Input("points", "lots")
	if update.State != validation.StateInvalid {
		t.Fatalf("expected non-numeric input to be invalid")
	}
}

func TestCheckFieldRules(t *testing.T) {
	field := model.Field{
		Name:     "title",
		Label:    "Title",
		Kind:     model.FieldKindText,
		Required: true,
		Validations: []model.ValidationRule{
			model.Rule(model.ValidationRuleMinLength, 3),
			model.Rule(model.ValidationRuleMaxLength, 8),
			model.Rule(model.ValidationRulePattern, `^[A-Z]`),
		},
	}

	codes := func(r validation.Result) []string {
		var out []string
		for _, issue := range r.Issues {
			out = append(out, issue.Code)
		}
		return out
	}

	if diff := cmp.Diff([]string{validation.CodeRequired, validation.CodeTooShort, validation.CodePattern}, codes(validation.CheckField(field, ""))); diff != "" {
		t.Fatalf("empty value codes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{validation.CodeTooLong}, codes(validation.CheckField(field, "Very long title"))); diff != "" {
		t.Fatalf("long value codes mismatch (-want +got):\n%s", diff)
	}
	if r := validation.CheckField(field, "Graphs"); !r.Valid {
		t.Fatalf("expected valid, got %+v", r.Issues)
	}

	numeric := model.Field{
		Name: "score",
		Kind: model.FieldKindText,
		Validations: []model.ValidationRule{
			model.Rule(model.ValidationRuleMin, 1),
			model.Rule(model.ValidationRuleMax, 100),
		},
	}
	if diff := cmp.Diff([]string{validation.CodeAboveMax}, codes(validation.CheckField(numeric, "101"))); diff != "" {
		t.Fatalf("numeric codes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{validation.CodeNotANumber, validation.CodeNotANumber}, codes(validation.CheckField(numeric, "ten"))); diff != "" {
		t.Fatalf("non numeric codes mismatch (-want +got):\n%s", diff)
	}
}

func TestIssuesByField(t *testing.T) {
	got := validation.IssuesByField([]validation.Issue{
		{Field: "username", Message: "bad"},
		{Field: "username", Message: "short"},
		{Message: "form"},
	})
	want := map[string][]string{"username": {"bad", "short"}, "": {"form"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grouping mismatch (-want +got):\n%s", diff)
	}
}
