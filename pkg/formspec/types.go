package formspec

import (
	"sort"

	"github.com/goliatone/go-formpreview/pkg/model"
)

// Store keeps the parsed forms. It is safe for concurrent readers when
// treated as immutable after construction.
type Store struct {
	forms   map[string]model.FormModel
	sources map[string]string
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Endpoint string            `json:"endpoint" yaml:"endpoint"`
	Method   string            `json:"method" yaml:"method"`
	Summary  string            `json:"summary" yaml:"summary"`
	Fields   []fieldFile       `json:"fields" yaml:"fields"`
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
}

type fieldFile struct {
	Name        string            `json:"name" yaml:"name"`
	Kind        string            `json:"kind" yaml:"kind"`
	Label       string            `json:"label" yaml:"label"`
	Description string            `json:"description" yaml:"description"`
	Placeholder string            `json:"placeholder" yaml:"placeholder"`
	Required    bool              `json:"required" yaml:"required"`
	Default     string            `json:"default" yaml:"default"`
	Min         *float64          `json:"min" yaml:"min"`
	Max         *float64          `json:"max" yaml:"max"`
	MinLength   *int              `json:"minLength" yaml:"minLength"`
	MaxLength   *int              `json:"maxLength" yaml:"maxLength"`
	Pattern     string            `json:"pattern" yaml:"pattern"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// Source reports the file a form was read from.
func (s *Store) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[id]
}

// IDs lists the registered form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Overlay returns a new store holding s's forms replaced by other's where
// the ids collide.
func (s *Store) Overlay(other *Store) *Store {
	out := &Store{
		forms:   make(map[string]model.FormModel),
		sources: make(map[string]string),
	}
	for _, src := range []*Store{s, other} {
		if src == nil {
			continue
		}
		for id, form := range src.forms {
			out.forms[id] = form
			out.sources[id] = src.sources[id]
		}
	}
	return out
}
