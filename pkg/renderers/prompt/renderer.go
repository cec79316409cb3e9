package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/goliatone/go-formpreview/pkg/model"
	"github.com/goliatone/go-formpreview/pkg/render"
	"github.com/goliatone/go-formpreview/pkg/validation"
)

// Renderer implements render.Renderer for terminal sessions. Each answer is
// fed through a validation.Validator as an input event, range answers are
// clamped, and the collected values only serialize once the submit gate
// allows them.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	validatorOpts     []validation.Option
	logger            *zap.Logger
}

// New constructs a prompt renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		maxAttempts:  DefaultMaxAttempts,
		theme:        Theme{ErrorPrefix: "✗ "},
		logger:       zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "prompt"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return r.outputFormat.ContentType()
}

// Render asks for every field of form and returns the serialized submission.
// A blocked submission that the user declines to fix returns an error
// matching validation.ErrSubmissionBlocked.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(form.Fields) == 0 {
		return nil, ErrNoFields
	}

	state := NewState(opts.Values, serverErrors(form, opts.Errors))
	validator := validation.New(form, r.validatorOpts...)

	if err := r.showErrors(ctx, "", state.Consume("")); err != nil {
		return nil, err
	}
	for _, field := range form.Fields {
		if err := r.promptField(ctx, validator, field, state); err != nil {
			return nil, err
		}
	}

	for {
		decision := validator.Submit(nil)
		if decision.Allowed {
			break
		}
		r.logger.Info("submission blocked",
			zap.String("form", form.ID),
			zap.Int("issues", len(decision.Issues)),
		)
		mapped := render.MapIssues(form, decision.Issues)
		if err := r.showErrors(ctx, "", mapped.Form); err != nil {
			return nil, err
		}
		for _, field := range form.Fields {
			if err := r.showErrors(ctx, field.Name, mapped.Fields[field.Name]); err != nil {
				return nil, err
			}
		}
		retry, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: "Fix the invalid fields?",
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !retry {
			return nil, decision.Err()
		}
		for _, name := range invalidFields(decision.Issues) {
			field, _ := form.Field(name)
			if err := r.promptField(ctx, validator, field, state); err != nil {
				return nil, err
			}
		}
	}

	values := render.MergeHiddenFields(validator.Values(), opts.Hidden...)
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("prompt: submit transformer: %w", err)
		}
	}
	return render.EncodeSubmission(r.outputFormat, values)
}

func (r *Renderer) promptField(ctx context.Context, validator *validation.Validator, field model.Field, state *State) error {
	if err := r.showErrors(ctx, field.Name, state.Consume(field.Name)); err != nil {
		return err
	}

	def := field.Default
	if v, ok := state.Value(field.Name); ok {
		def = v
	}
	if v := validator.Value(field.Name); v != "" {
		def = v
	}

	for attempt := 1; ; attempt++ {
		answer, err := r.ask(ctx, field, def)
		if err != nil {
			return err
		}
		update, err := validator.Input(field.Name, answer)
		if err != nil {
			return err
		}
		if update.Value != answer {
			if err := r.info(ctx, fmt.Sprintf("%s%s adjusted to %s", r.theme.InfoPrefix, field.DisplayLabel(), update.Value)); err != nil {
				return err
			}
		}
		if update.State == validation.StateValid {
			return nil
		}
		for _, issue := range update.Issues {
			if err := r.info(ctx, r.theme.ErrorPrefix+issue.Message); err != nil {
				return err
			}
		}
		if attempt >= r.maxAttempts {
			r.logger.Debug("field left invalid",
				zap.String("field", field.Name),
				zap.Int("attempts", attempt),
			)
			return nil
		}
		if field.Kind != model.FieldKindPassword {
			def = update.Value
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field model.Field, def string) (string, error) {
	label := field.DisplayLabel()
	help := fieldHelp(field)

	switch field.Kind {
	case model.FieldKindPassword:
		return r.driver.Password(ctx, InputConfig{Message: label, Help: help})
	case model.FieldKindMarkdown:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Help: help, Default: def})
	default:
		return r.driver.Input(ctx, InputConfig{Message: label, Help: help, Default: def})
	}
}

func (r *Renderer) showErrors(ctx context.Context, name string, errs []string) error {
	for _, msg := range errs {
		line := r.theme.ErrorPrefix + msg
		if name != "" {
			line = r.theme.ErrorPrefix + name + ": " + msg
		}
		if err := r.info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}

func fieldHelp(field model.Field) string {
	help := field.Description
	if field.Kind != model.FieldKindRange {
		return help
	}
	min, max, ok := field.Bounds()
	if !ok {
		return help
	}
	bounds := "between " + strconv.FormatFloat(min, 'f', -1, 64) + " and " + strconv.FormatFloat(max, 'f', -1, 64)
	if help == "" {
		return bounds
	}
	return help + " (" + bounds + ")"
}

func invalidFields(issues []validation.Issue) []string {
	seen := make(map[string]struct{}, len(issues))
	var out []string
	for _, issue := range issues {
		if _, ok := seen[issue.Field]; ok {
			continue
		}
		seen[issue.Field] = struct{}{}
		out = append(out, issue.Field)
	}
	return out
}

// serverErrors folds a server payload onto the form's field names. Paths
// that match no field end up under the empty key with the form-level errors.
func serverErrors(form model.FormModel, payload map[string][]string) map[string][]string {
	mapping := render.MapErrorPayload(form, payload)
	out := make(map[string][]string, len(mapping.Fields)+1)
	for name, msgs := range mapping.Fields {
		out[name] = msgs
	}
	if len(mapping.Form) > 0 {
		out[""] = mapping.Form
	}
	return out
}
