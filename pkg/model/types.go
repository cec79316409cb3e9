package model

import (
	"strconv"
	"strings"
)

// FieldKind selects the predicate a validator applies to a field.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindUsername FieldKind = "username"
	FieldKindPassword FieldKind = "password"
	FieldKindRange    FieldKind = "range"
	FieldKindMarkdown FieldKind = "markdown"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleRequired  = "required"
)

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds and length limits encode their threshold in Params["value"]
// while pattern rules keep the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Value returns the "value" parameter parsed as a float.
func (r ValidationRule) Value() (float64, bool) {
	raw := strings.TrimSpace(r.Params["value"])
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Field models an individual input inside a form.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Kind        FieldKind         `json:"kind" yaml:"kind"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Default     string            `json:"default,omitempty" yaml:"default,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Bounds returns the min/max rules declared on the field. ok is false when
// either bound is missing.
func (f Field) Bounds() (min, max float64, ok bool) {
	var hasMin, hasMax bool
	for _, rule := range f.Validations {
		switch rule.Kind {
		case ValidationRuleMin:
			min, hasMin = rule.Value()
		case ValidationRuleMax:
			max, hasMax = rule.Value()
		}
	}
	return min, max, hasMin && hasMax
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Name
}

// FormModel is the top-level representation renderers and validators consume.
type FormModel struct {
	ID       string            `json:"id" yaml:"id"`
	Endpoint string            `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method   string            `json:"method,omitempty" yaml:"method,omitempty"`
	Summary  string            `json:"summary,omitempty" yaml:"summary,omitempty"`
	Fields   []Field           `json:"fields" yaml:"fields"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in declaration order.
func (m FormModel) FieldNames() []string {
	if len(m.Fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		out = append(out, field.Name)
	}
	return out
}

// Rule builds a ValidationRule carrying a single "value" parameter.
func Rule(kind string, value any) ValidationRule {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case int:
		raw = strconv.Itoa(v)
	case float64:
		raw = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if kind == ValidationRulePattern {
		return ValidationRule{Kind: kind, Params: map[string]string{"pattern": raw}}
	}
	return ValidationRule{Kind: kind, Params: map[string]string{"value": raw}}
}
