package validation

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formpreview/pkg/model"
)

// FieldUpdate reports the outcome of a single input event.
type FieldUpdate struct {
	Name   string
	Value  string
	State  State
	Class  string
	Issues []Issue
}

// Decision is the outcome of a submit attempt. When Allowed is false the
// caller must suppress the default action (Cancel) and stop propagation.
type Decision struct {
	Allowed         bool
	Cancel          bool
	StopPropagation bool
	ShowError       bool
	ErrorClass      string
	Issues          []Issue
}

// Err returns nil for allowed submissions and a *BlockedError otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &BlockedError{Issues: append([]Issue(nil), d.Issues...)}
}

// Option configures a Validator.
type Option func(*Validator)

// WithClasses overrides the class names reported in updates and decisions.
func WithClasses(classes ClassSet) Option {
	return func(v *Validator) {
		v.classes = classes
	}
}

// Validator tracks the visual validity state of one form's fields.
type Validator struct {
	form    model.FormModel
	classes ClassSet
	ranges  map[string]*RangeField

	mu           sync.RWMutex
	values       map[string]string
	states       map[string]State
	errorShown   bool
	wasValidated bool
}

// New constructs a validator governing every field of form.
func New(form model.FormModel, opts ...Option) *Validator {
	v := &Validator{
		form:    form,
		classes: DefaultClasses,
		ranges:  make(map[string]*RangeField),
		values:  make(map[string]string, len(form.Fields)),
		states:  make(map[string]State, len(form.Fields)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	for _, field := range form.Fields {
		v.states[field.Name] = StatePristine
		if field.Kind != model.FieldKindRange {
			continue
		}
		if min, max, ok := field.Bounds(); ok {
			v.ranges[field.Name] = NewRangeField(min, max)
		}
	}
	return v
}

// Form returns the governed form model.
func (v *Validator) Form() model.FormModel {
	return v.form
}

// Classes returns the class set in use.
func (v *Validator) Classes() ClassSet {
	return v.classes
}

// Input handles an input-change event for one field: range fields are
// clamped, the value is stored and its state flag recomputed.
func (v *Validator) Input(name, value string) (FieldUpdate, error) {
	field, ok := v.form.Field(name)
	if !ok {
		return FieldUpdate{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.applyLocked(field, value), nil
}

func (v *Validator) applyLocked(field model.Field, value string) FieldUpdate {
	if rng, ok := v.ranges[field.Name]; ok {
		value = rng.Input(value)
	}
	result := CheckField(field, value)
	state := StateValid
	if !result.Valid {
		state = StateInvalid
	}
	v.values[field.Name] = value
	v.states[field.Name] = state
	return FieldUpdate{
		Name:   field.Name,
		Value:  value,
		State:  state,
		Class:  v.classes.For(state),
		Issues: result.Issues,
	}
}

// Submit re-validates every governed field. Values present in the supplied
// map replace the stored ones first; absent fields are checked using their
// last input. The error indicator is shown when any field is invalid and
// cleared otherwise.
func (v *Validator) Submit(values map[string]string) Decision {
	v.mu.Lock()
	defer v.mu.Unlock()

	var issues []Issue
	for _, field := range v.form.Fields {
		value, ok := values[field.Name]
		if !ok {
			value = v.values[field.Name]
		}
		update := v.applyLocked(field, value)
		issues = append(issues, update.Issues...)
	}

	v.wasValidated = true
	v.errorShown = len(issues) > 0
	return Decision{
		Allowed:         !v.errorShown,
		Cancel:          v.errorShown,
		StopPropagation: v.errorShown,
		ShowError:       v.errorShown,
		ErrorClass:      v.classes.Error(v.errorShown),
		Issues:          issues,
	}
}

// State returns the state flag of a field.
func (v *Validator) State(name string) State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.states[name]
}

// Value returns the stored (possibly clamped) value of a field.
func (v *Validator) Value(name string) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.values[name]
}

// Values returns a copy of every stored value.
func (v *Validator) Values() map[string]string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[string]string, len(v.values))
	for key, value := range v.values {
		out[key] = value
	}
	return out
}

// ErrorClass returns the class of the form's error indicator.
func (v *Validator) ErrorClass() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.classes.Error(v.errorShown)
}

// WasValidated reports whether a submit has been attempted.
func (v *Validator) WasValidated() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.wasValidated
}

// Reset returns every field to pristine and hides the error indicator.
func (v *Validator) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for name := range v.states {
		v.states[name] = StatePristine
	}
	v.values = make(map[string]string, len(v.form.Fields))
	for _, rng := range v.ranges {
		rng.value = ""
	}
	v.errorShown = false
	v.wasValidated = false
}

// LoginForm returns the username/password form guarded on the login page.
func LoginForm() model.FormModel {
	return model.FormModel{
		ID:     "login",
		Method: "POST",
		Fields: []model.Field{
			{Name: "username", Kind: model.FieldKindUsername, Label: "Username"},
			{Name: "password", Kind: model.FieldKindPassword, Label: "Password"},
		},
	}
}
